package domaincheck

import (
	"fmt"
	"strings"
)

// ErrorKind identifies the category of a CheckError, per the closed
// taxonomy a lookup can fail with.
type ErrorKind int

const (
	// ErrInvalidDomain means the validator rejected the input string.
	ErrInvalidDomain ErrorKind = iota

	// ErrNetwork means a connection, DNS, or transport failure occurred.
	ErrNetwork

	// ErrRDAP means an RDAP protocol-level failure occurred. HTTPStatus
	// may be set.
	ErrRDAP

	// ErrWhois means the WHOIS client could not decide a verdict, or the
	// underlying tooling was unavailable.
	ErrWhois

	// ErrBootstrap means no RDAP endpoint (or WHOIS server) could be
	// discovered for the domain's TLD.
	ErrBootstrap

	// ErrParse means a JSON response body was malformed.
	ErrParse

	// ErrConfig means a CheckConfig value was invalid.
	ErrConfig

	// ErrFile means a caller-provided input could not be read. The core
	// never raises this itself; it exists so callers feeding this
	// taxonomy their own I/O failures have a slot to use.
	ErrFile

	// ErrTimeout means a deadline was exceeded.
	ErrTimeout

	// ErrRateLimited means the server signaled explicit throttling.
	ErrRateLimited

	// ErrInternal means a programmer-facing failure occurred.
	ErrInternal

	// ErrInvalidPattern means a name generator pattern string was
	// malformed.
	ErrInvalidPattern
)

// String returns a short, stable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidDomain:
		return "invalid-domain"
	case ErrNetwork:
		return "network"
	case ErrRDAP:
		return "rdap"
	case ErrWhois:
		return "whois"
	case ErrBootstrap:
		return "bootstrap"
	case ErrParse:
		return "parse"
	case ErrConfig:
		return "config"
	case ErrFile:
		return "file"
	case ErrTimeout:
		return "timeout"
	case ErrRateLimited:
		return "rate-limited"
	case ErrInternal:
		return "internal"
	case ErrInvalidPattern:
		return "invalid-pattern"
	default:
		return "unknown"
	}
}

// CheckError is the structured error type raised by every operation in
// this package. It carries enough context for the orchestrator's
// implies-available/retryable decisions without string sniffing at call
// sites.
type CheckError struct {
	Kind ErrorKind

	// Domain is the FQDN (or the pattern string, for invalid-pattern
	// errors) this error concerns, when applicable.
	Domain string

	Message string

	// HTTPStatus is set for ErrRDAP errors carrying an HTTP status code.
	HTTPStatus *int

	// Err is the underlying cause, if any (network errors, JSON decode
	// errors, etc). Unwrap returns it.
	Err error
}

func (e *CheckError) Error() string {
	if e.Domain != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Domain, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// IndicatesAvailable reports whether this error, despite being an error,
// actually implies the domain is available for registration. Mirrors
// domain-check-lib's DomainCheckError::indicates_available.
func (e *CheckError) IndicatesAvailable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ErrRDAP:
		return e.HTTPStatus != nil && *e.HTTPStatus == 404
	case ErrWhois:
		msg := strings.ToLower(e.Message)
		for _, needle := range []string{"not found", "no match", "no data found", "domain available"} {
			if strings.Contains(msg, needle) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsRetryable reports whether the failed operation is worth retrying.
// Mirrors domain-check-lib's DomainCheckError::is_retryable.
func (e *CheckError) IsRetryable() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ErrNetwork, ErrTimeout, ErrRateLimited:
		return true
	case ErrRDAP:
		return e.HTTPStatus != nil && *e.HTTPStatus >= 500 && *e.HTTPStatus <= 599
	default:
		return false
	}
}

func newInvalidDomainError(domain, reason string) *CheckError {
	return &CheckError{Kind: ErrInvalidDomain, Domain: domain, Message: reason}
}

func newInvalidPatternError(pattern, reason string) *CheckError {
	return &CheckError{Kind: ErrInvalidPattern, Domain: pattern, Message: reason}
}

func newNetworkError(message string, cause error) *CheckError {
	return &CheckError{Kind: ErrNetwork, Message: message, Err: cause}
}

func newRDAPError(domain, message string, status *int, cause error) *CheckError {
	return &CheckError{Kind: ErrRDAP, Domain: domain, Message: message, HTTPStatus: status, Err: cause}
}

func newWhoisError(domain, message string) *CheckError {
	return &CheckError{Kind: ErrWhois, Domain: domain, Message: message}
}

func newBootstrapError(tld, message string) *CheckError {
	return &CheckError{Kind: ErrBootstrap, Domain: tld, Message: message}
}

func newParseError(domain, message string, cause error) *CheckError {
	return &CheckError{Kind: ErrParse, Domain: domain, Message: message, Err: cause}
}

func newConfigError(message string) *CheckError {
	return &CheckError{Kind: ErrConfig, Message: message}
}

func newTimeoutError(domain, operation string) *CheckError {
	return &CheckError{Kind: ErrTimeout, Domain: domain, Message: operation}
}

func newInternalError(message string) *CheckError {
	return &CheckError{Kind: ErrInternal, Message: message}
}
