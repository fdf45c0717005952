package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// request error
	ErrInvalidAddress   = errors.New("Invalid address")
	ErrInvalidSignature = errors.New("Invalid signature")
	ErrInvalidNonce     = errors.New("Invalid nonce")
	ErrInvalidToken     = errors.New("missing or invalid token")
)

// validation
var (
	ErrInvalidPrice    = errors.New("Price must be greater than zero")
	ErrInvalidDuration = errors.New("duration must be greater than zero")
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
)

// auction state
var (
	ErrNotStarted   = errors.New("not started")
	ErrAuctionEnded = errors.New("auction ended")
	ErrAlreadySold  = errors.New("already sold")
)

// authorization
var (
	ErrNotAuthorized         = errors.New("caller is not the seller")
	ErrTransferNotAuthorized = errors.New("transfer caller is not owner nor approved")
	ErrNotAdmin              = errors.New("require admin privilege")
)

var (
	ErrInsufficientBid = errors.New("not enough eth to bid")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrItemNotFound    = errors.New("item not found")
)

// transfer failures raised by the custodian and the currency ledger
var (
	ErrTransferFailed      = errors.New("transfer failed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrNotOwner            = errors.New("from is not the owner")
)

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidNumberFormat) ||
		errors.Is(err, ErrInvalidAddress) ||
		errors.Is(err, ErrBadParamInput)
}

func IsStateError(err error) bool {
	return errors.Is(err, ErrNotStarted) ||
		errors.Is(err, ErrAuctionEnded) ||
		errors.Is(err, ErrAlreadySold)
}

func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrNotAuthorized) ||
		errors.Is(err, ErrTransferNotAuthorized) ||
		errors.Is(err, ErrNotAdmin) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrInvalidNonce)
}

func IsTransferError(err error) bool {
	return errors.Is(err, ErrTransferFailed) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrAssetNotFound) ||
		errors.Is(err, ErrNotOwner)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrItemNotFound)
}
