package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/swiftbid/base/ctx"
	"github.com/x-xyz/swiftbid/domain/ledger/mocks"
)

func TestConnectorSlots(t *testing.T) {
	client := &mocks.Client{}
	cn := NewConnector(client, 1)

	got, release, err := cn.Connect(ctx.Background())
	require.NoError(t, err)
	assert.Equal(t, client, got)

	c, cancel := ctx.WithTimeout(ctx.Background(), 10*time.Millisecond)
	defer cancel()
	_, _, err = cn.Connect(c)
	assert.Error(t, err)

	// release is idempotent
	release()
	release()

	_, release2, err := cn.Connect(ctx.Background())
	require.NoError(t, err)
	release2()
	assert.Equal(t, 1, cn.(*connector).throttle.Available())
}
