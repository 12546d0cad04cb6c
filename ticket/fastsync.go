package ticket

import (
	"runtime"
	"sync/atomic"
)

// Fast-path states for FastSync.busy. A plain bool cannot distinguish
// "never contended" from "currently serving the ticket queue", so a
// three-state counter is used instead, mirroring the FALSE/TRUE/NAN
// constants in original_source/FastSynchronizer.java.
const (
	fastFalse uint32 = iota
	fastTrue
	fastNaN
)

// FastSync adds a fast-path bypass on top of the FairSync discipline: an
// uncontended Acquire needs no ticket at all. It is sequentially
// consistent with respect to the critical section but is not 100% fair —
// a goroutine hitting the fast path can overtake ticket holders — and,
// like FairSync, never parks.
type FastSync struct {
	ticket atomic.Uint32
	done   atomic.Uint32
	cur    uint32
	busy   atomic.Uint32
}

// NewFastSync returns an unheld FastSync lock.
func NewFastSync() *FastSync { return &FastSync{} }

// Acquire tries the fast path first; on contention it falls back to
// drawing a ticket exactly like FairSync.Acquire, then spins busy into the
// NaN state so Release knows whether to publish a ticket.
func (t *FastSync) Acquire() {
	if t.busy.CompareAndSwap(fastFalse, fastTrue) {
		return
	}

	my := t.ticket.Add(1)
	d := int32(-1)
	yield := false
	for {
		nd := int32(t.done.Load())
		if d != nd {
			d = nd
			nd = nd + 1 - int32(my)
			if nd == 0 {
				break
			}
			yield = nd < cores
		}
		if yield {
			runtime.Gosched()
		}
	}

	for !t.busy.CompareAndSwap(fastFalse, fastNaN) {
		runtime.Gosched()
	}
	t.cur = my
}

// Release clears the fast-path flag, and additionally publishes the
// served ticket if the prior holder went through the ticket path.
func (t *FastSync) Release() {
	prev := t.busy.Load()
	t.busy.Store(fastFalse)
	if prev == fastNaN {
		t.done.Store(t.cur)
	}
}
