// Package ratepace paces outbound RDAP requests per endpoint base URL,
// so a batch hitting many domains under the same registry doesn't
// trip its throttling.
package ratepace

import (
	"sync"

	"go.uber.org/ratelimit"
)

// DefaultRate is the default pace: one request per 200ms per endpoint,
// the figure suggested for per-endpoint pacing.
const DefaultRate = 5 // requests per second == one per 200ms

// Pacer holds one rate limiter per RDAP base URL, guarded by its own
// mutex (deliberately separate from the endpoint resolver's, per the
// concurrency model's "or its own mutex" allowance).
type Pacer struct {
	mu       sync.Mutex
	limiters map[string]ratelimit.Limiter
	rate     int
}

// NewPacer returns a Pacer issuing ratePerSecond requests per second
// per distinct endpoint.
func NewPacer(ratePerSecond int) *Pacer {
	if ratePerSecond <= 0 {
		ratePerSecond = DefaultRate
	}
	return &Pacer{
		limiters: make(map[string]ratelimit.Limiter),
		rate:     ratePerSecond,
	}
}

// Wait blocks until a request to endpoint is allowed to proceed,
// creating that endpoint's limiter on first use.
func (p *Pacer) Wait(endpoint string) {
	p.mu.Lock()
	limiter, ok := p.limiters[endpoint]
	if !ok {
		limiter = ratelimit.New(p.rate, ratelimit.WithoutSlack)
		p.limiters[endpoint] = limiter
	}
	p.mu.Unlock()

	limiter.Take()
}
