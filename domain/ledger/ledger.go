package ledger

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
	ErrRejected          = errors.New("transfer rejected by ledger")
	ErrTimeout           = errors.New("timed out waiting for transfer finality")
	ErrSignerMismatch    = errors.New("credential does not match transfer sender")
	ErrSessionClosed     = errors.New("ledger session closed")
)

// UnsignedTransfer is a native currency transfer ready to be signed
type UnsignedTransfer struct {
	From    domain.Address
	To      domain.Address
	Amount  decimal.Decimal
	ChainId *big.Int
	Tx      *types.Transaction
}

// SignedTransfer is a transfer signed by its sender
type SignedTransfer struct {
	From  domain.Address
	Hash  domain.TxHash
	Nonce uint64
	Tx    *types.Transaction
}

type TransferStatus string

const (
	TransferSucceeded TransferStatus = "succeeded"
	TransferFailed    TransferStatus = "failed"
	// TransferPending means the ledger knows no receipt for the hash yet
	TransferPending TransferStatus = "pending"
)

// SubmitResult is the outcome of Submit. Pending means the transfer was
// broadcast but finality was not observed before the deadline.
type SubmitResult struct {
	Status TransferStatus
	Hash   domain.TxHash
	Reason string
}

func (r *SubmitResult) Succeeded() bool {
	return r.Status == TransferSucceeded
}

// Client builds, signs and submits native currency transfers
type Client interface {
	// CheckFundable reports whether address is activated, i.e. holds funds or has sent transactions
	CheckFundable(c ctx.Ctx, address domain.Address) (bool, error)
	Balance(c ctx.Ctx, address domain.Address) (decimal.Decimal, error)
	BuildTransfer(c ctx.Ctx, from, to domain.Address, amount decimal.Decimal) (*UnsignedTransfer, error)
	Sign(c ctx.Ctx, tx *UnsignedTransfer, key *ecdsa.PrivateKey) (*SignedTransfer, error)
	// Submit broadcasts tx and waits for finality. Only a broadcast the node
	// refused yields a failed result; any other broadcast error is treated as
	// a possibly accepted transfer.
	Submit(c ctx.Ctx, tx *SignedTransfer) (*SubmitResult, error)
	TransferStatus(c ctx.Ctx, hash domain.TxHash) (TransferStatus, error)
	// ConfirmedNonce is the number of transactions of address included in the latest block
	ConfirmedNonce(c ctx.Ctx, address domain.Address) (uint64, error)
}

// Connector hands out ledger connections. The release func returns the
// connection slot and must be called exactly once.
type Connector interface {
	Connect(c ctx.Ctx) (Client, func(), error)
}
