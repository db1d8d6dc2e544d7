package checker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"

	"github.com/solbound/delcheck/pkg/clock"
	"github.com/solbound/delcheck/pkg/solclient"
)

// Sentinel errors for ping failures
var (
	ErrBlockhashUnavailable = errors.New("blockhash fetch failed")
	ErrTransactionBuild     = errors.New("transaction build failed")
	ErrSigningRejected      = errors.New("signing rejected")
	ErrSubmitFailed         = errors.New("transaction submit failed")
	ErrTransactionFailed    = errors.New("transaction failed on chain")
	ErrConfirmationTimeout  = errors.New("confirmation window expired")
	ErrConfirmationAborted  = errors.New("confirmation aborted")
)

// DefaultConfirmPollInterval is how often confirmation status is polled.
const DefaultConfirmPollInterval = 500 * time.Millisecond

// Signer is the external signing capability. Implementations hold the key
// material; the Pinger only ever handles unsigned and signed transactions.
type Signer interface {
	SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)
}

// TransactionBroadcaster covers the network operations needed to submit a
// transaction and watch it confirm.
type TransactionBroadcaster interface {
	LatestBlockhash(ctx context.Context) (solclient.Blockhash, error)
	SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	SignatureStatus(ctx context.Context, sig solana.Signature) (solclient.SignatureStatus, error)
	BlockHeight(ctx context.Context) (uint64, error)
}

// PingerOption configures the Pinger
// -----------------------------------
type PingerOption func(*Pinger)

// WithConfirmPollInterval sets the confirmation polling interval
func WithConfirmPollInterval(d time.Duration) PingerOption {
	return func(p *Pinger) { p.pollInterval = d }
}

// WithConfirmClock injects a custom Clock (e.g., for testing)
func WithConfirmClock(c Clock) PingerOption {
	return func(p *Pinger) { p.clock = c }
}

// Pinger sends zero-lamport verification transfers as liveness probes. It is
// independent of delegation status and never retries: once the blockhash
// validity window closes, the attempt has failed for good.
type Pinger struct {
	net          TransactionBroadcaster
	clock        Clock
	pollInterval time.Duration
}

// NewPinger constructs a Pinger submitting through the given broadcaster.
func NewPinger(net TransactionBroadcaster, opts ...PingerOption) *Pinger {
	p := &Pinger{
		net:          net,
		clock:        clock.SystemClock{},
		pollInterval: DefaultConfirmPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SendPing builds a zero-lamport transfer from from to to, has signer sign
// it exactly once, submits it, and blocks until the network confirms it or
// the blockhash validity window expires. The signature of the confirmed
// transaction is returned.
func (p *Pinger) SendPing(ctx context.Context, from, to solana.PublicKey, signer Signer) (solana.Signature, error) {
	bh, err := p.net.LatestBlockhash(ctx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrBlockhashUnavailable, err)
	}

	transfer := system.NewTransferInstruction(0, from, to).Build()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{transfer},
		bh.Hash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrTransactionBuild, err)
	}

	signed, err := signer.SignTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrSigningRejected, err)
	}

	sig, err := p.net.SubmitTransaction(ctx, signed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	if err := p.awaitConfirmation(ctx, sig, bh.LastValidBlockHeight); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// awaitConfirmation polls signature status until the transaction confirms,
// fails, or the chain moves past lastValidBlockHeight.
func (p *Pinger) awaitConfirmation(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error {
	for {
		status, err := p.net.SignatureStatus(ctx, sig)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfirmationAborted, err)
		}
		if status.TxErr != nil {
			return fmt.Errorf("%w: %w", ErrTransactionFailed, status.TxErr)
		}
		if status.Confirmed {
			return nil
		}

		height, err := p.net.BlockHeight(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfirmationAborted, err)
		}
		if height > lastValidBlockHeight {
			return fmt.Errorf("%w: block height %d past %d", ErrConfirmationTimeout, height, lastValidBlockHeight)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrConfirmationAborted, ctx.Err())
		case <-p.clock.After(p.pollInterval):
		}
	}
}
