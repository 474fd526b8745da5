package domaincheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckErrorIndicatesAvailable(t *testing.T) {
	status404 := 404
	status500 := 500

	cases := []struct {
		name string
		err  *CheckError
		want bool
	}{
		{"rdap 404", &CheckError{Kind: ErrRDAP, HTTPStatus: &status404}, true},
		{"rdap 500", &CheckError{Kind: ErrRDAP, HTTPStatus: &status500}, false},
		{"rdap no status", &CheckError{Kind: ErrRDAP}, false},
		{"whois not found", &CheckError{Kind: ErrWhois, Message: "Not Found"}, true},
		{"whois no match", &CheckError{Kind: ErrWhois, Message: "NO MATCH for domain"}, true},
		{"whois undetermined", &CheckError{Kind: ErrWhois, Message: "unable to determine status"}, false},
		{"network", &CheckError{Kind: ErrNetwork}, false},
		{"bootstrap", &CheckError{Kind: ErrBootstrap}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.IndicatesAvailable())
		})
	}
}

func TestCheckErrorIsRetryable(t *testing.T) {
	status500 := 500
	status404 := 404

	cases := []struct {
		name string
		err  *CheckError
		want bool
	}{
		{"network", &CheckError{Kind: ErrNetwork}, true},
		{"timeout", &CheckError{Kind: ErrTimeout}, true},
		{"rate-limited", &CheckError{Kind: ErrRateLimited}, true},
		{"rdap 5xx", &CheckError{Kind: ErrRDAP, HTTPStatus: &status500}, true},
		{"rdap 404", &CheckError{Kind: ErrRDAP, HTTPStatus: &status404}, false},
		{"invalid domain", &CheckError{Kind: ErrInvalidDomain}, false},
		{"bootstrap", &CheckError{Kind: ErrBootstrap}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.IsRetryable())
		})
	}
}

func TestCheckErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newNetworkError("network failure", cause)

	require.ErrorIs(t, err, cause)
}

func TestCheckErrorNilReceiverPredicates(t *testing.T) {
	var err *CheckError
	assert.False(t, err.IndicatesAvailable())
	assert.False(t, err.IsRetryable())
}

func TestCheckErrorString(t *testing.T) {
	err := newInvalidDomainError("bad..domain", "too many dots")
	assert.Contains(t, err.Error(), "invalid-domain")
	assert.Contains(t, err.Error(), "bad..domain")
	assert.Contains(t, err.Error(), "too many dots")
}
