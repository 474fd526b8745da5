package domaincheck

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Concurrency = 4
	cfg.WHOISFallback = false // keep these tests network-free; whois coverage lives in internal/whoisclient

	checker := NewChecker(cfg)
	httpmock.ActivateNonDefault(checker.rdap.HTTP)
	httpmock.ActivateNonDefault(checker.resolver.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)
	return checker
}

func TestCheckTakenDomain(t *testing.T) {
	c := newTestChecker(t)

	httpmock.RegisterResponder("GET", "https://rdap.verisign.com/com/v1/domain/google.com",
		httpmock.NewStringResponder(200, `{
			"entities": [{"roles": ["registrar"], "vcardArray": ["vcard", [["fn", {}, "text", "MarkMonitor Inc."]]]}],
			"status": ["client transfer prohibited"]
		}`))

	result := c.Check(context.Background(), "google.com")
	require.Nil(t, result.Error)
	assert.Equal(t, "google.com", result.Domain)
	assert.True(t, result.Available.Known)
	assert.False(t, result.Available.Value)
	assert.Equal(t, MethodRDAP, result.Method)
	require.NotNil(t, result.Registration)
	assert.Equal(t, "MarkMonitor Inc.", result.Registration.Registrar)
}

func TestCheckAvailableDomain(t *testing.T) {
	c := newTestChecker(t)

	httpmock.RegisterResponder("GET", "https://rdap.verisign.com/com/v1/domain/zzznonexistent987654321.com",
		httpmock.NewStringResponder(404, ""))

	result := c.Check(context.Background(), "zzznonexistent987654321.com")
	require.Nil(t, result.Error)
	assert.True(t, result.IsAvailable())
	assert.Equal(t, MethodRDAP, result.Method)
	assert.Nil(t, result.Registration)
}

func TestCheckDropsInfoWhenDetailedInfoDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WHOISFallback = false
	cfg.DetailedInfo = false
	checker := NewChecker(cfg)
	httpmock.ActivateNonDefault(checker.rdap.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder("GET", "https://rdap.verisign.com/com/v1/domain/example.com",
		httpmock.NewStringResponder(200, `{"status": ["active"]}`))

	result := checker.Check(context.Background(), "example.com")
	require.Nil(t, result.Error)
	assert.Nil(t, result.Registration)
}

func TestCheckInvalidDomainNeverReachesNetwork(t *testing.T) {
	c := newTestChecker(t)

	result := c.Check(context.Background(), "not a domain")
	require.Error(t, result.Error)
	assert.False(t, result.Available.Known)
	assert.Equal(t, MethodNone, result.Method)

	var checkErr *CheckError
	require.ErrorAs(t, result.Error, &checkErr)
	assert.Equal(t, ErrInvalidDomain, checkErr.Kind)
}

func TestCheckInvalidConfigSurfacesAsResult(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Concurrency = 0
	checker := NewChecker(cfg)

	result := checker.Check(context.Background(), "example.com")
	require.Error(t, result.Error)
	var checkErr *CheckError
	require.ErrorAs(t, result.Error, &checkErr)
	assert.Equal(t, ErrConfig, checkErr.Kind)
}

func TestCheckRDAPErrorWithoutFallbackSurfacesError(t *testing.T) {
	c := newTestChecker(t)

	httpmock.RegisterResponder("GET", "https://rdap.verisign.com/com/v1/domain/broken.com",
		httpmock.NewStringResponder(503, ""))

	result := c.Check(context.Background(), "broken.com")
	require.Error(t, result.Error)
	var checkErr *CheckError
	require.ErrorAs(t, result.Error, &checkErr)
	assert.Equal(t, ErrRDAP, checkErr.Kind)
	assert.True(t, checkErr.IsRetryable())
}

func TestCheckUnknownTLDBootstrapDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WHOISFallback = false
	cfg.BootstrapEnabled = false
	checker := NewChecker(cfg)
	httpmock.ActivateNonDefault(checker.resolver.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)

	result := checker.Check(context.Background(), "example.zzzneverassigned")
	require.Error(t, result.Error)
	var checkErr *CheckError
	require.ErrorAs(t, result.Error, &checkErr)
	assert.Equal(t, ErrBootstrap, checkErr.Kind)
}

func TestCheckRespectsOverallTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WHOISFallback = false
	cfg.Timeout = 50 * time.Millisecond
	cfg.RDAPTimeout = 50 * time.Millisecond
	checker := NewChecker(cfg)
	httpmock.ActivateNonDefault(checker.rdap.HTTP)
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder("GET", "https://rdap.verisign.com/com/v1/domain/slow.com",
		func(req *http.Request) (*http.Response, error) {
			select {
			case <-time.After(500 * time.Millisecond):
				return httpmock.NewStringResponse(200, "{}"), nil
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		})

	start := time.Now()
	result := checker.Check(context.Background(), "slow.com")
	elapsed := time.Since(start)

	require.Error(t, result.Error)
	assert.Less(t, elapsed, 400*time.Millisecond)
}
