package domaincheck

import "time"

// CheckConfig governs one orchestrator invocation (a single Check,
// CheckBatch, or CheckStream call). Values are copied, never mutated,
// into each lookup — no lookup shares or writes back to its caller's
// config.
type CheckConfig struct {
	// Concurrency bounds in-flight lookups for CheckBatch/CheckStream.
	// Must be in [1, 100].
	Concurrency int

	// Timeout bounds a single domain's entire lookup (RDAP attempt plus
	// any WHOIS fallback).
	Timeout time.Duration

	// RDAPTimeout bounds the RDAP step alone.
	RDAPTimeout time.Duration

	// WHOISTimeout bounds the WHOIS step alone.
	WHOISTimeout time.Duration

	// WHOISFallback enables falling back to WHOIS when RDAP fails.
	WHOISFallback bool

	// BootstrapEnabled enables fetching the IANA RDAP bootstrap registry
	// for TLDs absent from the static table.
	BootstrapEnabled bool

	// DetailedInfo, when false, drops RegistrationInfo from successful
	// results even when RDAP returned it.
	DetailedInfo bool

	// TLDs is the default TLD list used to expand base names into
	// FQDNs (see generate.go). Not consulted directly by Check/
	// CheckBatch, which take FQDNs; consulted by callers building their
	// domain list.
	TLDs []string

	// Presets maps a user-defined name to a TLD list, so callers can
	// say "use my .dev-stack preset" instead of repeating TLDs.
	Presets map[string][]string
}

// DefaultConfig returns a CheckConfig with conservative, spec-aligned
// defaults: moderate concurrency, both RDAP and WHOIS enabled,
// bootstrap enabled, detailed info on.
func DefaultConfig() CheckConfig {
	return CheckConfig{
		Concurrency:      10,
		Timeout:          10 * time.Second,
		RDAPTimeout:      5 * time.Second,
		WHOISTimeout:     5 * time.Second,
		WHOISFallback:    true,
		BootstrapEnabled: true,
		DetailedInfo:     true,
	}
}

// Validate reports a config-kind CheckError for any out-of-range field.
func (c CheckConfig) Validate() error {
	if c.Concurrency < 1 || c.Concurrency > 100 {
		return newConfigError("concurrency must be between 1 and 100")
	}
	if c.Timeout <= 0 {
		return newConfigError("timeout must be positive")
	}
	if c.RDAPTimeout <= 0 {
		return newConfigError("rdap timeout must be positive")
	}
	if c.WHOISTimeout <= 0 {
		return newConfigError("whois timeout must be positive")
	}
	return nil
}

// ResolveTLDs looks up a named preset, falling back to c.TLDs when the
// name is empty or unknown. The second return reports whether the name
// matched a known preset.
func (c CheckConfig) ResolveTLDs(name string) ([]string, bool) {
	if name == "" {
		return c.TLDs, false
	}
	if tlds, ok := c.Presets[name]; ok {
		return tlds, true
	}
	return c.TLDs, false
}
