package domain

type Table string

const (
	TableItems         Table = "items"
	TableBids          Table = "bids"
	TableCounters      Table = "counters"
	TableNotifications Table = "notifications"
	TableWallets       Table = "wallets"
	TableCustody       Table = "custody"
	TableApprovals     Table = "custody_approvals"
)
