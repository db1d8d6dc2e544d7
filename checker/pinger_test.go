package checker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/pkg/solclient"
)

func TestPingerSendPing(t *testing.T) {
	t.Parallel()

	t.Run("it submits a signed ping and returns the confirmed signature", func(t *testing.T) {
		t.Parallel()

		// Arrange
		wallet := solana.NewWallet()
		to := solana.NewWallet().PublicKey()
		signer := newCountingSigner(wallet.PrivateKey)

		net := newFakeNetwork()
		net.statuses = []solclient.SignatureStatus{{Confirmed: true}}

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		sig, err := pinger.SendPing(t.Context(), wallet.PublicKey(), to, signer)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, net.submittedSig, sig)
		assert.Equal(t, 1, signer.calls, "signer must be invoked exactly once")

		require.NotNil(t, net.submitted)
		assert.Equal(t, net.blockhash.Hash, net.submitted.Message.RecentBlockhash)
		require.NotEmpty(t, net.submitted.Message.AccountKeys)
		assert.Equal(t, wallet.PublicKey(), net.submitted.Message.AccountKeys[0], "sender pays the fee")
		assert.NotEmpty(t, net.submitted.Signatures, "transaction must carry the signature")
	})

	t.Run("it polls until the transaction confirms", func(t *testing.T) {
		t.Parallel()

		// Arrange - unconfirmed twice, then confirmed
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.statuses = []solclient.SignatureStatus{{}, {}, {Confirmed: true}}

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, net.statusCalls)
	})

	t.Run("it fails when the signer rejects and never submits", func(t *testing.T) {
		t.Parallel()

		// Arrange
		net := newFakeNetwork()
		refusal := errors.New("user rejected the request")
		signer := signerFunc(func(context.Context, *solana.Transaction) (*solana.Transaction, error) {
			return nil, refusal
		})

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), signer)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrSigningRejected)
		assert.ErrorIs(t, err, refusal)
		assert.Zero(t, net.submitCalls, "no submit after signing was rejected")
		assert.Zero(t, net.statusCalls, "no confirmation polling after signing was rejected")
	})

	t.Run("it fails when the blockhash fetch fails", func(t *testing.T) {
		t.Parallel()

		// Arrange
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.blockhashErr = errors.New("rpc unreachable")

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrBlockhashUnavailable)
	})

	t.Run("it fails when submission is rejected", func(t *testing.T) {
		t.Parallel()

		// Arrange
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.submitErr = errors.New("Blockhash not found")

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrSubmitFailed)
		assert.Zero(t, net.statusCalls)
	})

	t.Run("it fails when the transaction errors on chain", func(t *testing.T) {
		t.Parallel()

		// Arrange
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.statuses = []solclient.SignatureStatus{{TxErr: errors.New("custom program error")}}

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrTransactionFailed)
	})

	t.Run("it times out once the validity height is exceeded", func(t *testing.T) {
		t.Parallel()

		// Arrange - never confirmed, chain height already past the bound
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.statuses = []solclient.SignatureStatus{{}}
		net.blockHeight = net.blockhash.LastValidBlockHeight + 1

		pinger := checker.NewPinger(net, checker.WithConfirmClock(immediateClock{}))

		// Act
		_, err := pinger.SendPing(t.Context(), wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert - expired window is a hard failure, never retried
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrConfirmationTimeout)
		assert.Equal(t, 1, net.submitCalls)
	})

	t.Run("it aborts confirmation when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		// Arrange - never confirmed, height stays inside the window
		wallet := solana.NewWallet()
		net := newFakeNetwork()
		net.statuses = []solclient.SignatureStatus{{}}

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		// A real clock keeps the poll loop waiting so cancellation wins
		pinger := checker.NewPinger(net, checker.WithConfirmPollInterval(time.Hour))

		// Act
		_, err := pinger.SendPing(ctx, wallet.PublicKey(), solana.NewWallet().PublicKey(), newCountingSigner(wallet.PrivateKey))

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, checker.ErrConfirmationAborted)
	})
}

// fakeNetwork is a scripted TransactionBroadcaster. Statuses are served in
// order; the last one repeats.
type fakeNetwork struct {
	blockhash    solclient.Blockhash
	blockhashErr error

	submitErr    error
	submitted    *solana.Transaction
	submittedSig solana.Signature
	submitCalls  int

	statuses    []solclient.SignatureStatus
	statusCalls int

	blockHeight uint64
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		blockhash: solclient.Blockhash{
			Hash:                 solana.Hash(solana.NewWallet().PublicKey()),
			LastValidBlockHeight: 1000,
		},
		submittedSig: solana.Signature{1, 2, 3},
		blockHeight:  500,
	}
}

func (f *fakeNetwork) LatestBlockhash(context.Context) (solclient.Blockhash, error) {
	if f.blockhashErr != nil {
		return solclient.Blockhash{}, f.blockhashErr
	}
	return f.blockhash, nil
}

func (f *fakeNetwork) SubmitTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return solana.Signature{}, f.submitErr
	}
	f.submitted = tx
	return f.submittedSig, nil
}

func (f *fakeNetwork) SignatureStatus(context.Context, solana.Signature) (solclient.SignatureStatus, error) {
	idx := min(f.statusCalls, len(f.statuses)-1)
	f.statusCalls++
	return f.statuses[idx], nil
}

func (f *fakeNetwork) BlockHeight(context.Context) (uint64, error) {
	return f.blockHeight, nil
}

// signerFunc adapts a function to the Signer interface
type signerFunc func(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error)

func (f signerFunc) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	return f(ctx, tx)
}

// countingSigner signs with a real keypair and counts invocations
type countingSigner struct {
	signer *checker.KeypairSigner
	calls  int
}

func newCountingSigner(key solana.PrivateKey) *countingSigner {
	return &countingSigner{signer: checker.NewKeypairSigner(key)}
}

func (s *countingSigner) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	s.calls++
	return s.signer.SignTransaction(ctx, tx)
}

// immediateClock makes every poll wait elapse instantly
type immediateClock struct{}

func (immediateClock) After(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func (immediateClock) Now() time.Time { return time.Now() }
