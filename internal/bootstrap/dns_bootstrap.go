package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// BootstrapURL is the IANA RDAP bootstrap registry endpoint.
const BootstrapURL = "https://data.iana.org/rdap/dns.json"

// bootstrapDoc mirrors the top-level shape of the IANA bootstrap JSON:
// {"services": [[[tld, tld, ...], [url, url, ...]], ...]}. Decoded
// defensively — each service is a raw array-of-arrays, and any element
// whose shape doesn't match is skipped rather than rejected.
type bootstrapDoc struct {
	Services [][]json.RawMessage `json:"services"`
}

// fetchFullBootstrap fetches and parses the IANA RDAP bootstrap
// registry, then atomically replaces the resolver's dynamic map. It
// performs its HTTP GET with no lock held, and installs the result in
// a single, brief critical section afterward — the "read cache →
// release → do I/O → acquire → install → release" pattern the
// resolver's TestableProperties require.
func (r *Resolver) fetchFullBootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BootstrapURL, nil)
	if err != nil {
		return &MalformedError{Reason: err.Error()}
	}

	resp, err := r.HTTP.Do(req)
	if err != nil {
		return &NotFoundError{TLD: "*", Reason: fmt.Sprintf("bootstrap fetch failed: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NotFoundError{TLD: "*", Reason: fmt.Sprintf("bootstrap read failed: %v", err)}
	}

	var doc bootstrapDoc
	if err := json.Unmarshal(body, &doc); err != nil || doc.Services == nil {
		return &MalformedError{Reason: "missing or non-array top-level \"services\""}
	}

	fresh := make(map[string]string)
	for _, service := range doc.Services {
		if len(service) != 2 {
			continue
		}
		var tlds, urls []string
		if err := json.Unmarshal(service[0], &tlds); err != nil {
			continue
		}
		if err := json.Unmarshal(service[1], &urls); err != nil || len(urls) == 0 {
			continue
		}

		base := strings.TrimSuffix(urls[0], "/")
		base += "/domain/"

		for _, tld := range tlds {
			fresh[strings.ToLower(tld)] = base
		}
	}

	r.mu.Lock()
	r.state.dynamic = fresh
	r.state.negative = make(map[string]struct{})
	r.state.rdapLoaded = true
	r.state.lastFetch = nowFunc()
	r.mu.Unlock()

	r.Logger.V(1).Info("fetched rdap bootstrap registry", "tlds", len(fresh))
	return nil
}

// nowFunc is a seam for tests; production code always calls time.Now.
var nowFunc = time.Now
