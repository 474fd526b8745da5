// Command domaincheck checks a set of domain names for registration
// availability over RDAP, falling back to WHOIS, and prints a
// plain-text summary for each.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/rdapcheck/domaincheck"
)

var (
	app = kingpin.New("domaincheck", "Check domain name availability over RDAP and WHOIS.")

	domains = app.Arg("domain", "domain name(s) to check").Required().Strings()

	concurrency   = app.Flag("concurrency", "max in-flight lookups").Default("10").Int()
	timeout       = app.Flag("timeout", "per-domain timeout").Default("10s").Duration()
	noWHOIS       = app.Flag("no-whois", "disable WHOIS fallback").Bool()
	noBootstrap   = app.Flag("no-bootstrap", "disable IANA bootstrap lookups").Bool()
	verbose       = app.Flag("verbose", "log diagnostic messages to stderr").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	config := domaincheck.DefaultConfig()
	config.Concurrency = *concurrency
	config.Timeout = *timeout
	config.WHOISFallback = !*noWHOIS
	config.BootstrapEnabled = !*noBootstrap

	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "domaincheck:", err)
		os.Exit(1)
	}

	checker := domaincheck.NewChecker(config)
	if *verbose {
		checker.WithLogger(logr.New(stderrLogger{}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout*time.Duration(len(*domains)+1))
	defer cancel()

	results := checker.CheckBatch(ctx, *domains)

	printer := domaincheck.NewPrinter(os.Stdout)
	printer.PrintResults(results)
}

// stderrLogger is a minimal logr.LogSink writing diagnostics straight
// to stderr, enough for --verbose without pulling in a full logging
// backend for the CLI binary.
type stderrLogger struct{}

func (stderrLogger) Init(logr.RuntimeInfo)                  {}
func (stderrLogger) Enabled(level int) bool                  { return true }
func (l stderrLogger) Info(level int, msg string, kv ...any) {
	fmt.Fprintln(os.Stderr, "domaincheck:", msg, formatKV(kv))
}
func (l stderrLogger) Error(err error, msg string, kv ...any) {
	fmt.Fprintln(os.Stderr, "domaincheck: error:", msg, err, formatKV(kv))
}
func (stderrLogger) WithValues(kv ...any) logr.LogSink { return stderrLogger{} }
func (stderrLogger) WithName(name string) logr.LogSink { return stderrLogger{} }

func formatKV(kv []any) string {
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", kv[i], kv[i+1]))
	}
	return strings.Join(parts, " ")
}
