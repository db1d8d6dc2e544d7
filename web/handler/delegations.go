package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/pkg/httpkit"
	"github.com/solbound/delcheck/web/api"
	"github.com/solbound/delcheck/web/handler/bind"
)

// Route patterns
const (
	GetDelegationRoute  = http.MethodGet + " " + "/v1/delegations/{account}"
	GetDelegationsRoute = http.MethodGet + " " + "/v1/delegations"
)

// Sentinel errors
var (
	ErrResolveFailed = errors.New("failed to resolve delegation")
)

// DelegationResolver defines the interface for querying delegation status
type DelegationResolver interface {
	Resolve(ctx context.Context, account string) (checker.DelegationResult, error)
	ResolveMany(ctx context.Context, accounts []string) []checker.DelegationResult
}

type Delegations struct {
	resolver DelegationResolver
}

func NewDelegations(resolver DelegationResolver) *Delegations {
	return &Delegations{
		resolver: resolver,
	}
}

func (h *Delegations) AddRoutes(m *http.ServeMux) {
	m.Handle(GetDelegationRoute, httpkit.HandlerFunc(h.GetDelegation))
	m.Handle(GetDelegationsRoute, httpkit.HandlerFunc(h.GetDelegations))
}

// GetDelegation resolves a single account's delegation status
func (h *Delegations) GetDelegation(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	// Parse the path parameter using the bind layer
	account, err := bind.GetDelegationRequest(r)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	// Resolve delegation status
	result, err := h.resolver.Resolve(r.Context(), account)
	if err != nil {
		if errors.Is(err, checker.ErrInvalidAccountKey) {
			return httpkit.JsonError(api.BadRequest(err))
		}
		return httpkit.JsonError(api.BadGateway(fmt.Errorf("%w: %w", ErrResolveFailed, err)))
	}

	// Return JSON response
	return httpkit.JSON(bind.DelegationResponse(result))
}

// GetDelegations resolves a batch of accounts. Per-account failures are
// isolated into placeholder entries by the resolver, so this route only
// fails when the request itself is malformed.
func (h *Delegations) GetDelegations(w http.ResponseWriter, r *http.Request) http.HandlerFunc {
	accounts, err := bind.GetDelegationsRequest(r)
	if err != nil {
		return httpkit.JsonError(api.BadRequest(err))
	}

	results := h.resolver.ResolveMany(r.Context(), accounts)

	return httpkit.JSON(bind.DelegationsResponse(results))
}
