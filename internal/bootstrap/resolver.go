package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// DefaultCacheTimeout is the RDAP bootstrap cache freshness window:
// 24 hours from the last successful fetch.
const DefaultCacheTimeout = 24 * time.Hour

// NotFoundError reports that no RDAP endpoint (or WHOIS server) could
// be discovered for a TLD. Its caller maps this to a bootstrap-kind
// error.
type NotFoundError struct {
	TLD    string
	Reason string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no known rdap endpoint for %q: %s", e.TLD, e.Reason)
}

// MalformedError reports that the bootstrap registry's top-level shape
// didn't match expectations.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed bootstrap registry: %s", e.Reason)
}

// state is the resolver's entire mutable surface, copied out of and
// back into Resolver under its mutex. Nothing in this struct is ever
// touched while I/O is in flight.
type state struct {
	dynamic      map[string]string
	negative     map[string]struct{}
	whoisServers map[string]string // "" value == negative cache entry
	rdapLoaded   bool
	lastFetch    time.Time
}

// Resolver is the endpoint resolver: a two-tier TLD -> RDAP base URL
// map (static table + dynamic IANA bootstrap) plus an IANA-referral
// WHOIS server discoverer. The bootstrap map and its negative cache
// expire 24 hours after the last fetch; WHOIS referral results are
// cached for the life of the Resolver with no expiry. All state
// mutation happens under a single mutex; I/O never happens while it is
// held.
type Resolver struct {
	mu    sync.Mutex
	state state

	HTTP   *http.Client
	Logger logr.Logger
	TTL    time.Duration
}

// NewResolver constructs a Resolver with an internal 10-second-timeout
// HTTP client and the default 24-hour cache TTL.
func NewResolver(logger logr.Logger) *Resolver {
	return &Resolver{
		state: state{
			dynamic:      make(map[string]string),
			negative:     make(map[string]struct{}),
			whoisServers: make(map[string]string),
		},
		HTTP:   &http.Client{Timeout: 10 * time.Second},
		Logger: logger,
		TTL:    DefaultCacheTimeout,
	}
}

func (r *Resolver) fresh(snapshot state) bool {
	if !snapshot.rdapLoaded {
		return false
	}
	return time.Since(snapshot.lastFetch) < r.TTL
}

// snapshot copies out the fields ResolveRDAP needs under the mutex,
// then releases it before any I/O.
func (r *Resolver) snapshot() state {
	r.mu.Lock()
	defer r.mu.Unlock()
	return state{
		dynamic:      copyStringMap(r.state.dynamic),
		negative:     copySetMap(r.state.negative),
		whoisServers: copyStringMap(r.state.whoisServers),
		rdapLoaded:   r.state.rdapLoaded,
		lastFetch:    r.state.lastFetch,
	}
}

// ResolveRDAP resolves tld to an RDAP base URL. The second return
// value reports whether the URL came from the dynamic bootstrap map
// (true) as opposed to the static table (false) — callers use this to
// set DomainResult.Method to Bootstrap vs RDAP.
func (r *Resolver) ResolveRDAP(ctx context.Context, tld string, bootstrapEnabled bool) (string, bool, error) {
	if url, ok := StaticLookup(tld); ok {
		return url, false, nil
	}

	snap := r.snapshot()
	if url, ok := snap.dynamic[tld]; ok && r.fresh(snap) {
		return url, true, nil
	}
	if _, negative := snap.negative[tld]; negative && r.fresh(snap) {
		return "", false, &NotFoundError{TLD: tld, Reason: "no known RDAP endpoint"}
	}

	if !bootstrapEnabled {
		return "", false, &NotFoundError{TLD: tld, Reason: "bootstrap disabled"}
	}

	if !r.fresh(snap) {
		if err := r.fetchFullBootstrap(ctx); err != nil {
			return "", false, err
		}
		snap = r.snapshot()
		if url, ok := snap.dynamic[tld]; ok {
			return url, true, nil
		}
	}

	r.mu.Lock()
	r.state.negative[tld] = struct{}{}
	r.mu.Unlock()
	return "", false, &NotFoundError{TLD: tld, Reason: "no known RDAP endpoint"}
}

// ResolveWHOIS resolves tld to a WHOIS server hostname via cache or
// IANA referral. The second return reports whether a server was
// found.
func (r *Resolver) ResolveWHOIS(ctx context.Context, tld string) (string, bool, error) {
	snap := r.snapshot()
	if host, ok := snap.whoisServers[tld]; ok {
		if host == "" {
			return "", false, nil
		}
		return host, true, nil
	}

	host, err := r.lookupWHOISReferral(ctx, tld)
	if err != nil {
		return "", false, err
	}

	r.mu.Lock()
	r.state.whoisServers[tld] = host
	r.mu.Unlock()

	if host == "" {
		return "", false, nil
	}
	return host, true, nil
}

// GetAllKnownTLDs returns the sorted, deduplicated union of static and
// dynamic TLD keys.
func (r *Resolver) GetAllKnownTLDs() []string {
	snap := r.snapshot()
	seen := make(map[string]struct{})
	for _, tld := range staticTLDs() {
		seen[tld] = struct{}{}
	}
	for tld := range snap.dynamic {
		seen[tld] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for tld := range seen {
		out = append(out, tld)
	}
	sort.Strings(out)
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySetMap(m map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
