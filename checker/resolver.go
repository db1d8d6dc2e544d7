package checker

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solbound/delcheck/pkg/solclient"
)

// Sentinel errors for resolution failures
var (
	ErrInvalidAccountKey   = errors.New("invalid account key")
	ErrAccountLookupFailed = errors.New("account lookup failed")
)

// AccountReader fetches on-chain account state at confirmed commitment.
// Absence is reported as (nil, nil), not as an error.
type AccountReader interface {
	AccountInfo(ctx context.Context, address solana.PublicKey) (*solclient.AccountInfo, error)
}

// ResolverOption configures the Resolver
// ---------------------------------------
type ResolverOption func(*Resolver)

// WithProgramID overrides the delegation program whose records are resolved
func WithProgramID(id solana.PublicKey) ResolverOption {
	return func(r *Resolver) { r.programID = id }
}

// Resolver classifies accounts as delegated or not by deriving each
// account's record address and reading the record stored there. It holds no
// cross-call state; every Resolve is a single network round trip.
type Resolver struct {
	reader    AccountReader
	programID solana.PublicKey
}

// NewResolver constructs a Resolver reading through the given AccountReader.
// By default it resolves records of the well-known delegation program.
func NewResolver(reader AccountReader, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		reader:    reader,
		programID: DelegationProgramID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve checks whether accountStr is delegated.
//
// A malformed account key fails with ErrInvalidAccountKey before any network
// access. An absent or unfunded record account is a normal not_delegated
// result. A funded record account whose data is not exactly 96 bytes is also
// not_delegated, but its account metadata is still reported. Network
// failures surface as errors and are never retried here.
func (r *Resolver) Resolve(ctx context.Context, accountStr string) (DelegationResult, error) {
	account, err := solana.PublicKeyFromBase58(accountStr)
	if err != nil {
		return DelegationResult{}, fmt.Errorf("%w: %w", ErrInvalidAccountKey, err)
	}

	recordAddr, _, err := DeriveDelegationAddress(r.programID, account)
	if err != nil {
		return DelegationResult{}, err
	}

	result := DelegationResult{
		Account:       account,
		RecordAddress: recordAddr,
		Status:        StatusNotDelegated,
	}

	info, err := r.reader.AccountInfo(ctx, recordAddr)
	if err != nil {
		return DelegationResult{}, fmt.Errorf("%w: %w", ErrAccountLookupFailed, err)
	}
	if info == nil || info.Lamports == 0 {
		return result, nil
	}

	result.RecordAccount = &RecordAccount{
		Lamports:   info.Lamports,
		Owner:      info.Owner,
		DataLength: len(info.Data),
		Executable: info.Executable,
		RentEpoch:  info.RentEpoch,
	}

	rec, ok := DecodeRecord(info.Data)
	if !ok {
		// account exists and is funded, but holds no well-formed record
		return result, nil
	}

	identity := rec.ValidatorIdentity
	result.Status = StatusDelegated
	result.ValidatorIdentity = &identity
	result.Discriminator = append([]byte(nil), rec.Discriminator[:]...)
	return result, nil
}

// ResolveMany resolves each account in order, sequentially. A failure on one
// account never aborts the batch: the failing slot is filled with a
// placeholder not_delegated result and the loop moves on. Result order
// always matches input order.
func (r *Resolver) ResolveMany(ctx context.Context, accounts []string) []DelegationResult {
	results := make([]DelegationResult, len(accounts))
	for i, account := range accounts {
		result, err := r.Resolve(ctx, account)
		if err != nil {
			results[i] = DelegationResult{Status: StatusNotDelegated}
			continue
		}
		results[i] = result
	}
	return results
}
