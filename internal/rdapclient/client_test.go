package rdapclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-logr/logr"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := NewClient(2*time.Second, logr.Discard())
	httpmock.ActivateNonDefault(c.HTTP)
	return c
}

func TestCheckDomainTaken(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	body := `{
		"entities": [{"roles": ["registrar"], "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Example Registrar Inc."]]]}],
		"events": [{"eventAction": "registration", "eventDate": "1997-09-15T00:00:00Z"}, {"eventAction": "expiration", "eventDate": "2030-09-14T00:00:00Z"}],
		"status": ["client transfer prohibited"],
		"nameservers": [{"ldhName": "ns1.example.com"}, {"ldhName": "ns2.example.com"}]
	}`

	httpmock.RegisterResponder("GET", "https://rdap.example.test/domain/example.com",
		httpmock.NewStringResponder(200, body))

	taken, info, err := c.CheckDomain(context.Background(), "https://rdap.example.test/domain/", "example.com")
	require.NoError(t, err, spew.Sdump(err))
	assert.True(t, taken)
	require.NotNil(t, info)
	assert.Equal(t, "Example Registrar Inc.", info.Registrar)
	assert.Equal(t, "1997-09-15T00:00:00Z", info.CreatedAt)
	assert.Equal(t, "2030-09-14T00:00:00Z", info.ExpiresAt)
	assert.Equal(t, []string{"client transfer prohibited"}, info.Statuses)
	assert.Equal(t, []string{"ns1.example.com", "ns2.example.com"}, info.Nameservers)
}

func TestCheckDomainAvailable(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://rdap.example.test/domain/zzznonexistent.com",
		httpmock.NewStringResponder(404, ""))

	taken, info, err := c.CheckDomain(context.Background(), "https://rdap.example.test/domain/", "zzznonexistent.com")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.Nil(t, info)
}

func TestCheckDomainUnexpectedStatus(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://rdap.example.test/domain/broken.com",
		httpmock.NewStringResponder(503, "service unavailable"))

	_, _, err := c.CheckDomain(context.Background(), "https://rdap.example.test/domain/", "broken.com")
	require.Error(t, err)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 503, statusErr.Status)
}

func TestCheckDomainThrottleRetriesOnce(t *testing.T) {
	c := newTestClient()
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("GET", "https://rdap.example.test/domain/throttled.com",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(429, ""), nil
			}
			return httpmock.NewStringResponse(404, ""), nil
		})

	taken, info, err := c.CheckDomain(context.Background(), "https://rdap.example.test/domain/", "throttled.com")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.Nil(t, info)
	assert.Equal(t, 2, calls)
}
