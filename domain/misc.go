package domain

import (
	"strings"
)

// Address is a hex encoded ledger account address
type Address string

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

// TxHash is the hex encoded hash of a ledger transaction
type TxHash string

func (h TxHash) IsEmpty() bool {
	return len(h) == 0
}

// Table is the name of a mongo collection
type Table string

const (
	TableAccounts    Table = "accounts"
	TableListings    Table = "listings"
	TableWallets     Table = "wallets"
	TableSettlements Table = "settlements"
)
