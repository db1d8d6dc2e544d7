package solclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// DefaultEndpoint is the public mainnet RPC used when no endpoint is configured.
const DefaultEndpoint = rpc.MainNetBeta_RPC

// AccountInfo holds the on-chain state of an account as observed at
// confirmed commitment.
type AccountInfo struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
	RentEpoch  uint64
}

// Blockhash is a recent blockhash together with the last block height at
// which a transaction built on it is still accepted.
type Blockhash struct {
	Hash                 solana.Hash
	LastValidBlockHeight uint64
}

// SignatureStatus reports how far a submitted transaction has progressed.
// TxErr is set when the transaction landed on chain but failed to execute;
// a failed transaction is never reported as Confirmed.
type SignatureStatus struct {
	Confirmed bool
	TxErr     error
}

// Client wraps a Solana JSON-RPC endpoint with the narrow set of
// operations the checker needs. All reads use confirmed commitment.
type Client struct {
	rpc *rpc.Client
}

// New creates a Client for the given RPC endpoint
func New(endpoint string) *Client {
	return &Client{
		rpc: rpc.New(endpoint),
	}
}

// NewWithHTTP creates a Client with a custom HTTP client (timeouts, proxies)
func NewWithHTTP(httpClient *http.Client, endpoint string) *Client {
	return &Client{
		rpc: rpc.NewWithCustomRPCClient(jsonrpc.NewClientWithOpts(endpoint, &jsonrpc.RPCClientOpts{
			HTTPClient: httpClient,
		})),
	}
}

// AccountInfo fetches account state at the given address under confirmed
// commitment. A missing account is not an error: it returns (nil, nil).
func (c *Client) AccountInfo(ctx context.Context, address solana.PublicKey) (*AccountInfo, error) {
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentConfirmed,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching account info: %w", err)
	}
	if res.Value == nil {
		return nil, nil
	}

	acc := res.Value
	info := &AccountInfo{
		Lamports:   acc.Lamports,
		Owner:      acc.Owner,
		Executable: acc.Executable,
	}
	if acc.Data != nil {
		info.Data = acc.Data.GetBinary()
	}
	if acc.RentEpoch != nil {
		info.RentEpoch = acc.RentEpoch.Uint64()
	}
	return info, nil
}

// LatestBlockhash fetches a recent blockhash and its validity bound.
func (c *Client) LatestBlockhash(ctx context.Context) (Blockhash, error) {
	res, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return Blockhash{}, fmt.Errorf("fetching latest blockhash: %w", err)
	}
	if res.Value == nil {
		return Blockhash{}, errors.New("fetching latest blockhash: empty response")
	}
	return Blockhash{
		Hash:                 res.Value.Blockhash,
		LastValidBlockHeight: res.Value.LastValidBlockHeight,
	}, nil
}

// SubmitTransaction sends a signed transaction. Preflight simulation runs at
// confirmed commitment, so an on-chain execution failure surfaces here.
func (c *Client) SubmitTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sending transaction: %w", err)
	}
	return sig, nil
}

// SignatureStatus reports the confirmation progress of a submitted
// transaction. An unknown signature yields a zero status, not an error.
func (c *Client) SignatureStatus(ctx context.Context, sig solana.Signature) (SignatureStatus, error) {
	res, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return SignatureStatus{}, fmt.Errorf("fetching signature status: %w", err)
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return SignatureStatus{}, nil
	}

	st := res.Value[0]
	if st.Err != nil {
		return SignatureStatus{TxErr: fmt.Errorf("transaction error: %v", st.Err)}, nil
	}

	var status SignatureStatus
	switch st.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		status.Confirmed = true
	}
	return status, nil
}

// BlockHeight returns the current block height at confirmed commitment.
func (c *Client) BlockHeight(ctx context.Context) (uint64, error) {
	height, err := c.rpc.GetBlockHeight(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("fetching block height: %w", err)
	}
	return height, nil
}
