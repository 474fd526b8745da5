package bootstrap

import (
	"context"
	"strings"

	"github.com/domainr/whois"
)

// ianaWHOISHost is the authoritative WHOIS server queried for TLD
// referrals.
const ianaWHOISHost = "whois.iana.org"

// lookupWHOISReferral issues a WHOIS query for tld against IANA and
// parses the response line-wise for "refer:" and "whois:" fields.
// "refer:" wins if both are present with non-empty values; otherwise
// "whois:" is used; otherwise the referral is absent (empty string,
// no error).
func (r *Resolver) lookupWHOISReferral(ctx context.Context, tld string) (string, error) {
	req, err := whois.NewRequest(tld)
	if err != nil {
		return "", &NotFoundError{TLD: tld, Reason: "building iana referral query: " + err.Error()}
	}
	req.Host = ianaWHOISHost

	resp, err := whois.DefaultClient.FetchContext(ctx, req)
	if err != nil {
		return "", &NotFoundError{TLD: tld, Reason: "iana referral query failed: " + err.Error()}
	}

	return parseReferral(string(resp.Body)), nil
}

// parseReferral scans a WHOIS response body line-wise for "refer:" and
// "whois:" fields. "refer:" wins if both are present with non-empty
// values; otherwise "whois:" is used; otherwise the referral is
// absent (empty string).
func parseReferral(body string) string {
	var refer, whoisLine string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "refer:"):
			if v := strings.TrimSpace(line[len("refer:"):]); v != "" {
				refer = v
			}
		case strings.HasPrefix(lower, "whois:"):
			if v := strings.TrimSpace(line[len("whois:"):]); v != "" {
				whoisLine = v
			}
		}
	}

	if refer != "" {
		return refer
	}
	return whoisLine
}
