// Package weakcas implements the shim described in spec §4.1: a small set
// of compare-and-set / compare-and-exchange operations, each tagged with a
// memory ordering, that behave as "weak-with-opaque-retry" on weakly
// ordered targets and collapse to a single strong instruction on strongly
// ordered ones.
//
// Go's sync/atomic does not expose a weak compare-and-swap distinct from
// the strong one — every atomic.Pointer[T]/atomic.Bool CompareAndSwap is
// already a strong, non-spuriously-failing primitive on every GOARCH Go
// supports. There is therefore no hardware weak-CAS instruction for this
// shim to fall back to; instead it models the algorithm from spec §4.1
// directly on top of Go's strong CAS, so callers get the exact retry
// discipline (and the exact API shape: cas returns success, xchg returns
// the observed witness) described in the spec regardless of GOARCH. This
// is documented rather than hidden: the shim's IsWeak/Configure knobs
// still exist and still gate which code path runs, mirroring
// WeakOpt.Arch.isWeak()'s dispatch, even though both paths are correct on
// every real Go target.
package weakcas

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Skylarkarms/MCS-variations/internal/archdetect"
	"github.com/Skylarkarms/MCS-variations/internal/telemetry"
)

// Ordering names the four memory orderings spec §4.1 dispatches over.
// Go's atomic package does not let callers select an ordering per call —
// every operation is sequentially consistent — so Ordering here documents
// programmer intent (which of the four the caller believes it needs) and
// is retained purely for readability of call sites; see the "Polymorphism
// over memory ordering" design note in spec.md §9.
type Ordering uint8

const (
	Plain Ordering = iota
	Acquire
	Release
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Plain:
		return "plain"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case SeqCst:
		return "seq_cst"
	default:
		return "unknown"
	}
}

var (
	configureOnce sync.Once
	weak          bool
)

// Configure sets the process-wide "weakly-ordered architecture" flag
// consumed by CAS/Xchg below. It must be called, if at all, before the
// first CAS/Xchg call; later calls are ignored, matching the one-time
// semantics of WeakOpt.setWeak in original_source. Callers that never
// call Configure get archdetect.Default() lazily on first use.
func Configure(weaklyOrdered bool) {
	configureOnce.Do(func() {
		weak = weaklyOrdered
		telemetry.Logger.Debug(fmt.Sprintf("weakcas: configured explicitly, weak=%v", weak))
	})
}

// IsWeak reports the cached weakly-ordered-architecture flag, resolving it
// from archdetect on first use if Configure was never called.
func IsWeak() bool {
	configureOnce.Do(func() {
		weak = archdetect.Default()
		telemetry.Logger.Debug(fmt.Sprintf("weakcas: resolved GOARCH=%s weak=%v", runtime.GOARCH, weak))
	})
	return weak
}

// CAS implements spec §4.1's algorithm for a compare-and-set: it returns
// true iff the location held old and now holds new. accessors.CAS is a
// single attempt (Go's strong CompareAndSwap); accessors.Load is an
// "opaque" re-read used only to decide whether to retry.
//
// On a strongly-ordered target this is a single call to accessors.CAS. On
// a weakly-ordered one it retries accessors.CAS as long as the opaque
// reload keeps observing old, exactly mirroring the pseudocode in
// spec §4.1.
func CAS[T comparable](accessors Accessors[T], old, new T, ord Ordering) bool {
	if accessors.CAS(old, new) {
		return true
	}
	if !IsWeak() {
		return false
	}
	obs := accessors.Load()
	for obs == old {
		if accessors.CAS(old, new) {
			return true
		}
		obs = accessors.Load()
	}
	return false
}

// Xchg implements spec §4.1's compare-and-exchange: on success it returns
// old (the expected value); on failure it returns the observed witness.
// ord documents which of the four orderings the call site logically needs;
// see the Ordering type doc for why Go cannot vary behavior on it.
func Xchg[T comparable](accessors Accessors[T], old, new T, ord Ordering) T {
	if accessors.CAS(old, new) {
		return old
	}
	if !IsWeak() {
		return accessors.Load()
	}
	obs := accessors.Load()
	for obs == old {
		if accessors.CAS(old, new) {
			return old
		}
		obs = accessors.Load()
	}
	return obs
}

// Accessors adapts a concrete atomic location (atomic.Bool, an
// atomic.Pointer[Node], ...) to the shim's generic CAS/Xchg. CAS must be a
// single strong compare-and-swap attempt; Load must be an opaque
// (unordered beyond single-location atomicity) read of the same location.
type Accessors[T comparable] struct {
	CAS  func(old, new T) bool
	Load func() T
}
