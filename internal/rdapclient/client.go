// Package rdapclient issues RDAP domain queries and interprets their
// responses, following the status-code table and single throttle
// retry described for the core's RDAP step.
package rdapclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

// throttleRetryDelay is the single, non-configurable sleep before the
// 429 retry.
const throttleRetryDelay = 500 * time.Millisecond

// StatusError reports an RDAP response outside the handled 200/404
// cases: a non-2xx/404 status, or a 5xx (which callers should treat as
// retryable).
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rdap: unexpected status %d", e.Status)
}

// ParseError reports a response body that failed to decode as JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "rdap: failed to parse response: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

// Client issues RDAP queries against a resolved endpoint.
type Client struct {
	HTTP   *http.Client
	Logger logr.Logger
}

// NewClient returns a Client using an HTTP client with the given
// timeout for each request.
func NewClient(timeout time.Duration, logger logr.Logger) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

// CheckDomain queries endpoint (already ending in "/domain/") for
// domain. It returns taken=true with optional registration metadata
// on 200, taken=false on 404. Any other outcome is an error: a
// *StatusError for unexpected statuses (including 5xx, which is
// retryable), a *ParseError for malformed JSON, or the raw transport
// error for network failures. A single 429 is retried once after
// throttleRetryDelay.
func (c *Client) CheckDomain(ctx context.Context, endpoint, domain string) (bool, *Registration, error) {
	info, status, err := c.doRequest(ctx, endpoint, domain)
	if err != nil {
		return false, nil, err
	}

	if status == http.StatusTooManyRequests {
		c.Logger.V(1).Info("rdap throttled, retrying once", "domain", domain)
		select {
		case <-time.After(throttleRetryDelay):
		case <-ctx.Done():
			return false, nil, ctx.Err()
		}
		info, status, err = c.doRequest(ctx, endpoint, domain)
		if err != nil {
			return false, nil, err
		}
	}

	switch status {
	case http.StatusOK:
		return true, info, nil
	case http.StatusNotFound:
		return false, nil, nil
	default:
		return false, nil, &StatusError{Status: status}
	}
}

// doRequest performs one GET. It parses a 200 body into a
// Registration and returns the status code as-is; the caller
// interprets every status, including the 429 retry and the final
// 200/404/default mapping.
func (c *Client) doRequest(ctx context.Context, endpoint, domain string) (*Registration, int, error) {
	// Per the wire format, the query URL is the base concatenated with
	// the FQDN verbatim — no path escaping.
	queryURL := endpoint + domain

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/rdap+json, application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, &ParseError{Err: err}
		}
		info, err := parseRegistration(body)
		if err != nil {
			return nil, resp.StatusCode, &ParseError{Err: err}
		}
		return info, resp.StatusCode, nil
	}

	// Drain so the connection can be reused; body content doesn't
	// matter for non-200 statuses.
	io.Copy(io.Discard, resp.Body)
	return nil, resp.StatusCode, nil
}
