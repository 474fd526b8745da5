package domaincheck

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// indexedResult tags a DomainResult with its input position so the
// batch executor can restore input order after concurrent completion,
// without ever reaching for domains[0] as a stand-in for the task that
// actually failed.
type indexedResult struct {
	index  int
	result *DomainResult
}

// CheckBatch runs Check over every domain with concurrency bounded by
// c.config.Concurrency, and returns results in the same order as the
// input. Each task is tagged with its own domain and index; a
// synthetic result is produced for any task that panics instead of
// returning normally, carrying that task's own domain — never the
// first domain in the batch.
func (c *Checker) CheckBatch(ctx context.Context, domains []string) []*DomainResult {
	if len(domains) == 0 {
		return nil
	}

	batchID := uuid.New().String()
	logger := c.logger.WithValues("batch", batchID)

	collected := make(chan indexedResult, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Concurrency)

	for i, domain := range domains {
		i, domain := i, domain
		g.Go(func() error {
			logger.V(1).Info("checking domain", "domain", domain)
			collected <- indexedResult{index: i, result: c.safeCheck(gctx, domain)}
			return nil
		})
	}

	g.Wait()
	close(collected)

	results := make([]*DomainResult, len(domains))
	for ir := range collected {
		results[ir.index] = ir.result
	}
	return results
}

// CheckStream runs Check over every domain with concurrency bounded by
// c.config.Concurrency and delivers results on the returned channel as
// they complete, in no particular order. The channel is closed once
// every domain has been checked or the caller's context is cancelled.
// Cancelling ctx stops in-flight lookups at their next suspension
// point; their results are discarded rather than delivered.
func (c *Checker) CheckStream(ctx context.Context, domains []string) <-chan *DomainResult {
	out := make(chan *DomainResult)

	batchID := uuid.New().String()
	logger := c.logger.WithValues("batch", batchID)

	go func() {
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.config.Concurrency)

		for _, domain := range domains {
			domain := domain
			g.Go(func() error {
				logger.V(1).Info("checking domain", "domain", domain)
				result := c.safeCheck(gctx, domain)
				select {
				case out <- result:
				case <-ctx.Done():
				}
				return nil
			})
		}

		g.Wait()
	}()

	return out
}

// safeCheck wraps Check with panic recovery: a task-level panic
// produces a synthetic unknown-verdict result carrying this task's own
// domain, rather than crashing the whole batch or misattributing the
// failure to some other domain in the set.
func (c *Checker) safeCheck(ctx context.Context, domain string) (result *DomainResult) {
	defer func() {
		if r := recover(); r != nil {
			result = c.errorResult(domain, time.Now(), newInternalError(fmt.Sprintf("recovered panic: %v", r)))
		}
	}()
	return c.Check(ctx, domain)
}
