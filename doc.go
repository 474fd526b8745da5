// Copyright 2017 Tom Harwood
// MIT License, see the LICENSE file.

// Package domaincheck determines, for a set of domain names, whether each
// is registered or available for registration, and extracts registration
// metadata for taken domains.
//
// It speaks RDAP (HTTPS/JSON) as its primary protocol, with WHOIS (TCP
// port 43) as a fallback for TLDs without RDAP coverage, and coordinates
// large batches of lookups concurrently against many registry endpoints.
//
// Quick usage:
//
//	checker := domaincheck.NewChecker(domaincheck.DefaultConfig())
//	result := checker.Check(context.Background(), "google.cz")
//
//	if result.Available.Known && result.Available.Value {
//	    fmt.Println("google.cz is available")
//	}
//
// Batch usage:
//
//	results := checker.CheckBatch(ctx, []string{"example.com", "example.org"})
//	for _, r := range results {
//	    fmt.Printf("%s: %v\n", r.Domain, r.Available)
//	}
package domaincheck
