// Package telemetry provides the module's single diagnostic logger,
// constructed the way nyan233-littlerpc builds its package-level Logger
// (see logging.go / impl/common/logging.go in that repo): a bilog.Logger
// writing to stdout at PANIC level with timestamps and caller info, so it
// is silent unless something actually goes wrong or a caller explicitly
// lowers the level.
//
// Nothing on a lock's Acquire/Release fast path calls into this package —
// only one-time initialization (architecture-flag resolution) and node
// lifecycle diagnostics at Debug level, which are no-ops unless the level
// has been lowered.
package telemetry

import (
	"os"

	"github.com/zbh255/bilog"
)

// newLogger builds a bilog.Logger at the given verbosity. bilog's level
// type is unexported, so an int can't be converted to it directly; the
// switch below maps each accepted int value to its corresponding
// exported bilog constant instead.
func newLogger(level int) bilog.Logger {
	switch level {
	case int(bilog.INFO):
		return bilog.NewLogger(os.Stdout, bilog.INFO, bilog.WithTimes(), bilog.WithCaller(0), bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))
	case int(bilog.DEBUG):
		return bilog.NewLogger(os.Stdout, bilog.DEBUG, bilog.WithTimes(), bilog.WithCaller(0), bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))
	case int(bilog.TRACE):
		return bilog.NewLogger(os.Stdout, bilog.TRACE, bilog.WithTimes(), bilog.WithCaller(0), bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))
	case int(bilog.ERROR):
		return bilog.NewLogger(os.Stdout, bilog.ERROR, bilog.WithTimes(), bilog.WithCaller(0), bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))
	default:
		return bilog.NewLogger(os.Stdout, bilog.PANIC, bilog.WithTimes(), bilog.WithCaller(0), bilog.WithLowBuffer(0), bilog.WithTopBuffer(0))
	}
}

// Logger is the process-wide diagnostic logger for MCS-variations.
var Logger bilog.Logger = newLogger(int(bilog.PANIC))

// SetLevel adjusts the logger's verbosity at runtime, e.g. bilog.DEBUG to
// observe node-allocation traffic in the mcs package.
func SetLevel(level int) {
	Logger = newLogger(level)
}
