package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the item was changed or already exists
	ErrConflict = errors.New("Your Item already exist or was modified")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")
	ErrInvalidAddress      = errors.New("Invalid address")
	ErrUnauthorized        = errors.New("unauthorized")

	// auction lifecycle
	ErrInvalidBid          = errors.New("bid must be higher than the current bid")
	ErrAuctionClosed       = errors.New("auction is closed")
	ErrAuctionNotEnded     = errors.New("auction has not ended yet")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrAccountNotActivated = errors.New("account is not activated on the ledger")
	ErrSettlementFailed    = errors.New("settlement failed")
	ErrStoreUnavailable    = errors.New("listing store unavailable")
)

// SettlementError is a failed settlement together with its cause. It matches
// both ErrSettlementFailed and the cause under errors.Is.
type SettlementError struct {
	Reason error
}

func NewSettlementError(reason error) error {
	return &SettlementError{Reason: reason}
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSettlementFailed, e.Reason)
}

func (e *SettlementError) Is(target error) bool {
	return target == ErrSettlementFailed
}

func (e *SettlementError) Unwrap() error {
	return e.Reason
}
