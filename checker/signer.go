package checker

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrKeypairUnavailable means the keypair file could not be loaded.
var ErrKeypairUnavailable = errors.New("keypair unavailable")

// KeypairSigner signs with a locally held private key. It satisfies Signer
// for the CLI and tests; deployments with hardware or remote wallets inject
// their own Signer instead.
type KeypairSigner struct {
	key solana.PrivateKey
}

// NewKeypairSigner wraps an in-memory private key.
func NewKeypairSigner(key solana.PrivateKey) *KeypairSigner {
	return &KeypairSigner{key: key}
}

// KeypairSignerFromFile loads a solana-keygen JSON keypair file.
func KeypairSignerFromFile(path string) (*KeypairSigner, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeypairUnavailable, err)
	}
	return &KeypairSigner{key: key}, nil
}

// PublicKey returns the signing key's public half, the fee payer for pings.
func (s *KeypairSigner) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// SignTransaction signs tx in place and returns it.
func (s *KeypairSigner) SignTransaction(_ context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.key.PublicKey()) {
			return &s.key
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
