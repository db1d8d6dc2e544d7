package checker

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ErrDerivationFailed means no off-curve candidate was found for any bump.
// Effectively unreachable with the fixed program and seed constants, but it
// must never fail silently.
var ErrDerivationFailed = errors.New("record address derivation failed")

// DeriveDelegationAddress computes the program-derived address holding the
// delegation record for account. The derivation is deterministic: the seeds
// are ["delegation", account bytes] and the bump is searched from 255 down
// until the candidate falls off the ed25519 curve.
func DeriveDelegationAddress(programID, account solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(DelegationSeed),
		account.Bytes(),
	}

	address, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return address, bump, nil
}
