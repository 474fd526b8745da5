package domaincheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/rdapcheck/domaincheck/internal/bootstrap"
	"github.com/rdapcheck/domaincheck/internal/rdapclient"
	"github.com/rdapcheck/domaincheck/internal/ratepace"
	"github.com/rdapcheck/domaincheck/internal/whoisclient"
)

// Checker is the single-domain orchestrator: for one domain it
// validates, consults the endpoint resolver, tries RDAP, and
// optionally falls back to WHOIS, interpreting availability-implying
// errors along the way.
type Checker struct {
	config CheckConfig

	resolver *bootstrap.Resolver
	rdap     *rdapclient.Client
	whois    *whoisclient.Client
	pacer    *ratepace.Pacer

	logger logr.Logger
}

// NewChecker builds a Checker for the given configuration, with a
// discard logger and default per-endpoint pacing. Use WithLogger to
// attach structured logging.
func NewChecker(config CheckConfig) *Checker {
	logger := logr.Discard()
	return &Checker{
		config:   config,
		resolver: bootstrap.NewResolver(logger),
		rdap:     rdapclient.NewClient(config.RDAPTimeout, logger),
		whois:    whoisclient.NewClient(config.WHOISTimeout, logger),
		pacer:    ratepace.NewPacer(ratepace.DefaultRate),
		logger:   logger,
	}
}

// WithLogger attaches logger to the checker and every component it
// wires, and returns the checker for chaining.
func (c *Checker) WithLogger(logger logr.Logger) *Checker {
	c.logger = logger
	c.resolver.Logger = logger
	c.rdap.Logger = logger
	c.whois.Logger = logger
	return c
}

// Check performs the full single-lookup orchestration for one domain:
// validate, try RDAP, optionally fall back to WHOIS, and interpret
// availability-implying errors. It always returns a result — never a
// Go error — per the "every operation either yields a DomainResult or
// a structured error" interface contract; validation and protocol
// failures surface as DomainResult.Error instead.
func (c *Checker) Check(ctx context.Context, domain string) *DomainResult {
	start := time.Now()

	if err := c.config.Validate(); err != nil {
		return c.errorResult(domain, start, err)
	}

	trimmed, err := normalizeDomain(domain)
	if err != nil {
		return c.errorResult(domain, start, err)
	}
	if err := validateFQDN(trimmed); err != nil {
		return c.errorResult(trimmed, start, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	taken, info, method, rdapErr := c.checkRDAP(ctx, trimmed)
	if rdapErr == nil {
		result := &DomainResult{
			Domain:    trimmed,
			Method:    method,
			CheckedAt: start,
			Duration:  time.Since(start),
		}
		if taken {
			result.Available = unavailableResult()
			if c.config.DetailedInfo {
				result.Registration = info
			}
		} else {
			result.Available = availableResult()
		}
		return result
	}

	checkErr, ok := rdapErr.(*CheckError)
	if !ok {
		checkErr = newInternalError(rdapErr.Error())
	}

	if c.config.WHOISFallback {
		whoisTaken, whoisErr := c.checkWHOIS(ctx, trimmed)
		if whoisErr == nil {
			return &DomainResult{
				Domain:    trimmed,
				Available: availabilityFromTaken(whoisTaken),
				Method:    MethodWHOIS,
				CheckedAt: start,
				Duration:  time.Since(start),
			}
		}
		if checkErr.IndicatesAvailable() {
			return &DomainResult{
				Domain:    trimmed,
				Available: availableResult(),
				Method:    MethodRDAP,
				CheckedAt: start,
				Duration:  time.Since(start),
			}
		}
		return c.errorResult(trimmed, start, checkErr)
	}

	if checkErr.IndicatesAvailable() {
		return &DomainResult{
			Domain:    trimmed,
			Available: availableResult(),
			Method:    MethodRDAP,
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	return c.errorResult(trimmed, start, checkErr)
}

func (c *Checker) errorResult(domain string, start time.Time, err error) *DomainResult {
	c.logger.V(1).Info("check failed", "domain", domain, "error", err)
	return &DomainResult{
		Domain:    domain,
		Available: unknownResult(),
		Method:    MethodNone,
		Error:     err,
		CheckedAt: start,
		Duration:  time.Since(start),
	}
}

func availabilityFromTaken(taken bool) Availability {
	if taken {
		return unavailableResult()
	}
	return availableResult()
}

// checkRDAP resolves the domain's RDAP endpoint and queries it,
// reporting whether the endpoint came from the dynamic bootstrap map
// (MethodBootstrap) or the static table (MethodRDAP).
func (c *Checker) checkRDAP(ctx context.Context, domain string) (bool, *RegistrationInfo, Method, error) {
	tld, err := tldOf(domain)
	if err != nil {
		return false, nil, MethodNone, err
	}

	endpoint, fromDynamic, err := c.resolver.ResolveRDAP(ctx, tld, c.config.BootstrapEnabled)
	if err != nil {
		return false, nil, MethodNone, wrapBootstrapError(domain, err)
	}

	if c.pacer != nil {
		c.pacer.Wait(endpoint)
	}

	rdapCtx, cancel := context.WithTimeout(ctx, c.config.RDAPTimeout)
	defer cancel()

	taken, raw, err := c.rdap.CheckDomain(rdapCtx, endpoint, domain)
	if err != nil {
		return false, nil, MethodNone, wrapRDAPError(domain, err)
	}

	method := MethodRDAP
	if fromDynamic {
		method = MethodBootstrap
	}

	var info *RegistrationInfo
	if raw != nil {
		info = &RegistrationInfo{
			Registrar:   raw.Registrar,
			CreatedAt:   raw.CreatedAt,
			UpdatedAt:   raw.UpdatedAt,
			ExpiresAt:   raw.ExpiresAt,
			Statuses:    raw.Statuses,
			Nameservers: raw.Nameservers,
		}
	}

	return taken, info, method, nil
}

// checkWHOIS resolves the domain's WHOIS server (from cache or IANA
// referral) and queries it, falling back to the default
// referral-following query when the resolver finds no server.
func (c *Checker) checkWHOIS(ctx context.Context, domain string) (bool, error) {
	tld, err := tldOf(domain)
	if err != nil {
		return false, err
	}

	whoisCtx, cancel := context.WithTimeout(ctx, c.config.WHOISTimeout)
	defer cancel()

	server, found, _ := c.resolver.ResolveWHOIS(whoisCtx, tld)

	var taken bool
	var whoisErr error
	if found {
		taken, whoisErr = c.whois.CheckDomainWithServer(whoisCtx, domain, server)
	} else {
		taken, whoisErr = c.whois.CheckDomain(whoisCtx, domain)
	}
	if whoisErr != nil {
		return false, wrapWhoisError(domain, whoisErr)
	}
	return taken, nil
}

func wrapBootstrapError(domain string, err error) *CheckError {
	return newBootstrapError(domain, err.Error())
}

func wrapRDAPError(domain string, err error) *CheckError {
	var statusErr *rdapclient.StatusError
	if errors.As(err, &statusErr) {
		status := statusErr.Status
		return newRDAPError(domain, fmt.Sprintf("unexpected status %d", status), &status, err)
	}

	var parseErr *rdapclient.ParseError
	if errors.As(err, &parseErr) {
		return newParseError(domain, "failed to parse", err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(domain, "rdap")
	}

	return newNetworkError(err.Error(), err)
}

func wrapWhoisError(domain string, err error) *CheckError {
	var invalidTLD *whoisclient.InvalidTLDError
	if errors.As(err, &invalidTLD) {
		return newBootstrapError(domain, "invalid or unsupported TLD")
	}

	var undetermined *whoisclient.UndeterminedError
	if errors.As(err, &undetermined) {
		return newWhoisError(domain, "unable to determine status")
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(domain, "whois")
	}

	return newWhoisError(domain, err.Error())
}
