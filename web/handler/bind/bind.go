package bind

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/web/api"
)

// Batch size bound for the accounts query parameter
const MaxBatchAccounts = 50

// Sentinel errors for request binding
var (
	ErrMissingAccount  = errors.New("account parameter is required")
	ErrMissingAccounts = errors.New("accounts parameter is required")
	ErrAccountTooLong  = errors.New("account parameter is too long")
	ErrTooManyAccounts = errors.New("too many accounts requested")
)

// GetDelegationRequest binds the single-account route's path parameter.
// Only shape is checked here; base58 validation belongs to the resolver.
func GetDelegationRequest(r *http.Request) (string, error) {
	account := r.PathValue("account")
	if account == "" {
		return "", ErrMissingAccount
	}

	// base58-encoded 32-byte keys never exceed 44 characters
	if len(account) > 44 {
		return "", fmt.Errorf("%w: %d characters", ErrAccountTooLong, len(account))
	}

	return account, nil
}

// GetDelegationsRequest binds the batch route's accounts query parameter.
// Entries are passed through untouched - a malformed entry becomes a
// placeholder result, not a request error.
func GetDelegationsRequest(r *http.Request) ([]string, error) {
	raw := r.URL.Query().Get("accounts")
	if raw == "" {
		return nil, ErrMissingAccounts
	}

	accounts := strings.Split(raw, ",")
	if len(accounts) > MaxBatchAccounts {
		return nil, fmt.Errorf("%w: %d accounts, maximum is %d", ErrTooManyAccounts, len(accounts), MaxBatchAccounts)
	}

	for i, account := range accounts {
		accounts[i] = strings.TrimSpace(account)
	}
	return accounts, nil
}

// DelegationResponse binds a domain result to the API response format
func DelegationResponse(result checker.DelegationResult) api.Delegation {
	resp := api.Delegation{
		Status: string(result.Status),
	}

	// placeholder batch slots carry zero keys; render those as empty fields
	if !result.Account.IsZero() {
		resp.Account = result.Account.String()
	}
	if !result.RecordAddress.IsZero() {
		resp.RecordAddress = result.RecordAddress.String()
	}
	if result.ValidatorIdentity != nil {
		resp.ValidatorIdentity = result.ValidatorIdentity.String()
	}
	if len(result.Discriminator) > 0 {
		resp.Discriminator = hex.EncodeToString(result.Discriminator)
	}

	if result.RecordAccount != nil {
		resp.Record = &api.RecordAccount{
			Lamports:   result.RecordAccount.Lamports,
			Owner:      result.RecordAccount.Owner.String(),
			DataLength: result.RecordAccount.DataLength,
			Executable: result.RecordAccount.Executable,
			RentEpoch:  result.RecordAccount.RentEpoch,
		}
	}

	return resp
}

// DelegationsResponse binds a batch of domain results preserving order
func DelegationsResponse(results []checker.DelegationResult) api.DelegationsResponse {
	data := make([]api.Delegation, len(results))
	for i, result := range results {
		data[i] = DelegationResponse(result)
	}
	return api.DelegationsResponse{Data: data}
}
