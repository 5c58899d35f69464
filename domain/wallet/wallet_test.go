package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestCredentialZero(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	d := key.D

	cred := &Credential{PrivateKey: key}
	cred.Zero()

	require.Nil(t, cred.PrivateKey)
	require.Equal(t, 0, d.Sign())

	// idempotent
	cred.Zero()
	var nilCred *Credential
	nilCred.Zero()
}
