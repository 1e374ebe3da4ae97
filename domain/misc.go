package domain

import (
	"strconv"
	"strings"
)

type Table string

const (
	TableTokens   Table = "tokens"
	TableListings Table = "listings"
	TableCounters Table = "counters"
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

// Address is a lower-cased hex account address.
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId identifies a minted token. Ids are allocated monotonically
// starting at 1 and are never reused.
type TokenId uint64

func (i TokenId) String() string {
	return strconv.FormatUint(uint64(i), 10)
}

// ItemId identifies a market listing. Numbering is independent of TokenId.
type ItemId uint64

func (i ItemId) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
