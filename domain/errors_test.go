package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/xerrors"
)

func TestSettlementError(t *testing.T) {
	err := xerrors.Errorf("buy now: %w", NewSettlementError(ErrAccountNotActivated))

	assert.True(t, errors.Is(err, ErrSettlementFailed))
	assert.True(t, errors.Is(err, ErrAccountNotActivated))
	assert.False(t, errors.Is(err, ErrInvalidBid))

	var se *SettlementError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, ErrAccountNotActivated, se.Reason)
	assert.Contains(t, err.Error(), "settlement failed")
}
