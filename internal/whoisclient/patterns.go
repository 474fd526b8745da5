package whoisclient

import "strings"

// invalidTLDPatterns signal that the queried TLD has no WHOIS server
// at all, distinct from the domain itself being available.
var invalidTLDPatterns = []string{
	"no whois server is known",
	"no whois server",
	"invalid tld",
	"unknown tld",
	"tld not found",
	"no such tld",
	"bad tld",
	"invalid domain extension",
}

// availablePatterns signal the domain is available for registration.
var availablePatterns = []string{
	"no match",
	"not found",
	"no data found",
	"no entries found",
	"domain not found",
	"domain available",
	"status: available",
	"status: free",
	"no information available",
	"not registered",
	"no matching record",
	"domain status: no object found",
	"the queried object does not exist",
	"object does not exist",
	"no matching entry",
	"domain name not found",
	"this domain name has not been registered",
	"no found",
}

// takenPatterns each indicate the presence of registration data; two
// or more distinct matches are taken as proof the domain is taken.
var takenPatterns = []string{
	"domain status:",
	"registrar:",
	"creation date:",
	"created:",
	"registry domain id:",
	"registrant:",
	"admin contact:",
	"tech contact:",
	"name server:",
	"nameservers:",
	"expiry date:",
	"expires:",
	"updated:",
	"last updated:",
}

// rateLimitPatterns signal the server is throttling us rather than
// answering the query at all.
var rateLimitPatterns = []string{
	"rate limit exceeded",
	"too many requests",
	"try again later",
	"quota exceeded",
	"limit exceeded",
	"throttled",
	"blocked",
	"rate-limited",
	"too many requests from your ip",
}

// verdict is the classification outcome of a WHOIS response body.
type verdict int

const (
	verdictUnknown verdict = iota
	verdictAvailable
	verdictTaken
)

// classificationResult carries the verdict plus, for the invalid-TLD
// and undetermined cases, enough context for the caller to build the
// right error kind.
type classificationResult struct {
	verdict      verdict
	invalidTLD   bool
	undetermined bool
}

// classify applies the substring-matching rules to a response body, in
// the significant order the wire spec requires: invalid-TLD before
// availability (some "not found" messages overlap), then the taken
// count, then the short-body heuristic, then undetermined.
func classify(body string) classificationResult {
	lower := strings.ToLower(body)

	if matchesAny(lower, invalidTLDPatterns) {
		return classificationResult{invalidTLD: true}
	}

	if matchesAny(lower, availablePatterns) {
		return classificationResult{verdict: verdictAvailable}
	}

	if countDistinctMatches(lower, takenPatterns) >= 2 {
		return classificationResult{verdict: verdictTaken}
	}

	if len(strings.TrimSpace(body)) < 50 {
		return classificationResult{verdict: verdictAvailable}
	}

	return classificationResult{undetermined: true}
}

// isRateLimited reports whether the first response before any retry
// indicates server-side throttling rather than an answer.
func isRateLimited(body string) bool {
	return matchesAny(strings.ToLower(body), rateLimitPatterns)
}

func matchesAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func countDistinctMatches(lower string, patterns []string) int {
	count := 0
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			count++
		}
	}
	return count
}
