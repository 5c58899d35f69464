package backoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, d := range want {
		req.Equal(d, b.NextDuration, "step %d", i)
		req.NoError(b.Backoff(context.Background()))
	}
	req.Equal(4, b.Attempts())

	b.Reset()
	req.Equal(0, b.Attempts())
	req.Equal(time.Millisecond, b.NextDuration)
}

func TestLinear(t *testing.T) {
	req := require.New(t)
	b := NewLinear(time.Millisecond, 0)
	req.Equal(time.Millisecond, b.NextDuration)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(2*time.Millisecond, b.NextDuration)
}

func TestBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := NewLinear(time.Hour, 0)
	require.ErrorIs(t, b.Backoff(ctx), context.Canceled)
	require.Equal(t, 0, b.Attempts())
}

func TestRetry(t *testing.T) {
	req := require.New(t)

	calls := 0
	err := NewLinear(time.Millisecond, 0).Retry(context.Background(), 5, func() (bool, error) {
		calls++
		return calls == 3, nil
	})
	req.NoError(err)
	req.Equal(3, calls)

	calls = 0
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 2, func() (bool, error) {
		calls++
		return false, nil
	})
	req.ErrorIs(err, ErrGiveUp)
	req.Equal(2, calls)

	boom := errors.New("boom")
	err = NewLinear(time.Millisecond, 0).Retry(context.Background(), 0, func() (bool, error) {
		return false, boom
	})
	req.ErrorIs(err, boom)
}
