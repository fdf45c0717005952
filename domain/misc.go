package domain

import (
	"strings"
)

type ChainId int32

type Address string

// EmptyAddress stands for "no identity", e.g. the highest bidder of an item without bids
const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

func (a Address) String() string {
	return string(a)
}

// TokenId is the decimal unit identity of an asset inside its collection
type TokenId string

func (i TokenId) String() string {
	return string(i)
}
