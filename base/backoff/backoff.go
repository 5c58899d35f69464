package backoff

import (
	"context"
	"errors"
	"math"
	"time"
)

// ErrGiveUp is returned by Retry when the attempts are exhausted
var ErrGiveUp = errors.New("backoff: give up")

type Strategy interface {
	Duration(count int, start time.Duration) time.Duration
}

type Backoff struct {
	LastDuration time.Duration
	NextDuration time.Duration
	start        time.Duration
	limit        time.Duration
	count        int
	strategy     Strategy
}

func New(strategy Strategy, start time.Duration, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.LastDuration = 0
	b.NextDuration = b.next()
}

// Attempts returns how many times Backoff slept since the last Reset
func (b *Backoff) Attempts() int {
	return b.count
}

// Backoff sleeps NextDuration or until ctx is done, whichever comes first
func (b *Backoff) Backoff(ctx context.Context) error {
	timer := time.NewTimer(b.NextDuration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.count++
	b.LastDuration = b.NextDuration
	b.NextDuration = b.next()
	return nil
}

// Retry calls fn until it reports done, backing off between calls. maxAttempts
// <= 0 means no limit other than ctx.
func (b *Backoff) Retry(ctx context.Context, maxAttempts int, fn func() (done bool, err error)) error {
	for i := 0; maxAttempts <= 0 || i < maxAttempts; i++ {
		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if maxAttempts > 0 && i == maxAttempts-1 {
			break
		}
		if err := b.Backoff(ctx); err != nil {
			return err
		}
	}
	return ErrGiveUp
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(int64(math.Pow(2, float64(count)))) * start
}

func NewExponential(start time.Duration, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type linear struct{}

func (linear) Duration(count int, start time.Duration) time.Duration {
	return time.Duration(count+1) * start
}

func NewLinear(start time.Duration, limit time.Duration) *Backoff {
	return New(linear{}, start, limit)
}
