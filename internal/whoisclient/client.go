// Package whoisclient executes WHOIS queries over TCP and classifies
// the free-text response into an availability verdict via pattern
// matching, following the same taken/available/invalid-TLD/rate-limit
// rule table across both the default and targeted-server query paths.
package whoisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/domainr/whois"
	"github.com/go-logr/logr"
)

// rateLimitRetryDelay is the single, non-configurable sleep before the
// rate-limit retry.
const rateLimitRetryDelay = 1000 * time.Millisecond

// InvalidTLDError reports that the queried TLD has no WHOIS coverage.
type InvalidTLDError struct{ Domain string }

func (e *InvalidTLDError) Error() string {
	return fmt.Sprintf("whois: invalid or unsupported tld for %q", e.Domain)
}

// UndeterminedError reports that the response body matched none of the
// classification rules.
type UndeterminedError struct{ Domain string }

func (e *UndeterminedError) Error() string {
	return fmt.Sprintf("whois: unable to determine status for %q", e.Domain)
}

// Client issues WHOIS queries, optionally against an explicit server.
type Client struct {
	Timeout time.Duration
	Logger  logr.Logger
}

// NewClient returns a Client bounding each query to timeout.
func NewClient(timeout time.Duration, logger logr.Logger) *Client {
	return &Client{Timeout: timeout, Logger: logger}
}

// CheckDomain issues a default (referral-following) WHOIS query for
// domain. taken reports whether the domain is registered; the verdict
// is decided purely by text pattern matching on the lowercased
// response body.
func (c *Client) CheckDomain(ctx context.Context, domain string) (bool, error) {
	return c.query(ctx, domain, "")
}

// CheckDomainWithServer issues a targeted query against an explicit
// WHOIS server hostname; on failure it falls back to the default bare
// query.
func (c *Client) CheckDomainWithServer(ctx context.Context, domain, server string) (bool, error) {
	taken, err := c.query(ctx, domain, server)
	if err == nil {
		return taken, nil
	}
	c.Logger.V(1).Info("targeted whois query failed, falling back to default", "domain", domain, "server", server, "error", err)
	return c.query(ctx, domain, "")
}

func (c *Client) query(ctx context.Context, domain, server string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := c.fetch(ctx, domain, server)
	if err != nil {
		return false, err
	}

	if isRateLimited(body) {
		c.Logger.V(1).Info("whois rate limited, retrying once", "domain", domain)
		select {
		case <-time.After(rateLimitRetryDelay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
		body, err = c.fetch(ctx, domain, server)
		if err != nil {
			return false, err
		}
	}

	result := classify(body)
	switch {
	case result.invalidTLD:
		return false, &InvalidTLDError{Domain: domain}
	case result.verdict == verdictAvailable:
		return false, nil
	case result.verdict == verdictTaken:
		return true, nil
	default:
		return false, &UndeterminedError{Domain: domain}
	}
}

func (c *Client) fetch(ctx context.Context, domain, server string) (string, error) {
	req, err := whois.NewRequest(domain)
	if err != nil {
		return "", err
	}
	if server != "" {
		req.Host = server
	}

	resp, err := whois.DefaultClient.FetchContext(ctx, req)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}
