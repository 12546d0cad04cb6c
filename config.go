// Package mcsvariations is the module root: process-wide configuration
// glue over the weakcas shim and the telemetry logger, expressed as
// functional options the way nyan233-littlerpc configures its client and
// server (server_options.go, client/options.go: WithCustomLogger,
// WithXxx(...) Option). The lock types themselves live in their own
// packages (mcs, ticket, arraylock); this package only wires the one
// process-wide configuration input spec.md §6 describes, plus the
// diagnostic logger's verbosity.
package mcsvariations

import (
	"github.com/Skylarkarms/MCS-variations/internal/telemetry"
	"github.com/Skylarkarms/MCS-variations/weakcas"
)

type config struct {
	weaklyOrdered *bool
	logLevel      *int
}

// Option configures the process-wide state Configure applies.
type Option func(*config)

// WithWeaklyOrderedArch overrides the architecture-derived default for the
// weakly-ordered-architecture flag the weakcas shim consumes at first use.
func WithWeaklyOrderedArch(weak bool) Option {
	return func(c *config) { c.weaklyOrdered = &weak }
}

// WithLogLevel sets the verbosity of the package-wide diagnostic logger
// (internal/telemetry), e.g. bilog.DEBUG to observe node allocation and
// architecture-resolution diagnostics.
func WithLogLevel(level int) Option {
	return func(c *config) { c.logLevel = &level }
}

// Configure applies process-wide configuration. Call it, if at all,
// before the first lock Acquire in the process: weakcas.Configure below
// only takes effect on its very first call, exactly like
// WeakOpt.setWeak's one-time semantics in original_source.
func Configure(opts ...Option) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.weaklyOrdered != nil {
		weakcas.Configure(*c.weaklyOrdered)
	}
	if c.logLevel != nil {
		telemetry.SetLevel(*c.logLevel)
	}
}
