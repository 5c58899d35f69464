package ethereum

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/swiftbid/domain"
)

func TestToAddress(t *testing.T) {
	a, err := ToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", a.Hex())

	_, err = ToAddress("not-an-address")
	assert.Equal(t, domain.ErrInvalidAddress, err)
}

func TestKeyAddress(t *testing.T) {
	privateKey, publicKey, err := GenerateKey()
	require.NoError(t, err)

	addr := KeyAddress(privateKey)
	assert.Equal(t, domain.Address(crypto.PubkeyToAddress(*publicKey).Hex()).ToLower(), addr)
	assert.Equal(t, addr.ToLowerStr(), string(addr))
}
