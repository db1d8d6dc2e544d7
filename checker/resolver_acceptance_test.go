//go:build acceptance

package checker_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solbound/delcheck/checker"
	"github.com/solbound/delcheck/checker/testcfg"
	"github.com/solbound/delcheck/pkg/solclient"
)

func TestResolverRealRPC(t *testing.T) {
	t.Parallel()

	// Load test configuration from environment
	testCfg := testcfg.New()

	// Arrange
	client := solclient.NewWithHTTP(&http.Client{
		Timeout: testCfg.HTTPClientTimeout,
	}, testCfg.RPCEndpoint)
	resolver := checker.NewResolver(client)

	// Act - resolve a real account against the live network
	result, err := resolver.Resolve(t.Context(), testCfg.Account)

	// Assert - either status is legitimate; the result must be coherent
	require.NoError(t, err)
	assert.Equal(t, testCfg.Account, result.Account.String())
	assert.False(t, result.RecordAddress.IsZero())
	assert.False(t, result.RecordAddress.IsOnCurve(), "record address must be off-curve")

	if result.Delegated() {
		require.NotNil(t, result.RecordAccount)
		require.NotNil(t, result.ValidatorIdentity)
		assert.Equal(t, checker.RecordSize, result.RecordAccount.DataLength)
	}

	t.Logf("account=%s record=%s status=%s", result.Account, result.RecordAddress, result.Status)
}
