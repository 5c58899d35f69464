package ethereum

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/swiftbid/domain/mocks"
)

func TestThrottle(t *testing.T) {
	th := NewThrottle(2)
	assert.Equal(t, 2, th.Available())

	t1, err := th.Acquire(context.Background())
	require.NoError(t, err)
	t2, err := th.Acquire(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
	assert.Equal(t, 0, th.Available())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = th.Acquire(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)

	th.Release(t1)
	assert.Equal(t, 1, th.Available())
	th.Release(0)
	assert.Equal(t, 1, th.Available())
}

func TestThrottledClientReleasesToken(t *testing.T) {
	eth := &mocks.EthClientRepo{}
	eth.On("ChainID", mock.Anything).Return(big.NewInt(5), nil).Twice()

	c := NewThrottledClient(eth, 1)
	for i := 0; i < 2; i++ {
		id, err := c.ChainID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), id.Int64())
	}
	assert.Equal(t, 1, c.throttle.Available())
	eth.AssertExpectations(t)
}
