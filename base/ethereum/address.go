package ethereum

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/x-xyz/swiftbid/domain"
)

func GenerateKey() (*ecdsa.PrivateKey, *ecdsa.PublicKey, error) {
	if privateKey, err := crypto.GenerateKey(); err != nil {
		return nil, nil, err
	} else {
		publicKey := privateKey.Public().(*ecdsa.PublicKey)
		return privateKey, publicKey, nil
	}
}

// ToAddress parses a hex address, returning domain.ErrInvalidAddress when malformed
func ToAddress(a domain.Address) (common.Address, error) {
	if !common.IsHexAddress(string(a)) {
		return common.Address{}, domain.ErrInvalidAddress
	}
	return common.HexToAddress(string(a)), nil
}

// KeyAddress is the lowercased address controlled by key
func KeyAddress(key *ecdsa.PrivateKey) domain.Address {
	return domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()
}
