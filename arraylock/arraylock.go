// Package arraylock implements an array-based (Anderson-style) lock: a
// fixed-size ring of flags where each waiter spins on its own dedicated
// slot, giving FIFO ordering. The flags are stored contiguously without
// padding, so neighbouring slots can share a cache line.
// It is not part of spec.md's synchronizer family and has no counterpart
// in original_source/ — it is kept from the teacher repo (ahrav-go-locks'
// alock package) as an additional baseline comparator, exercised by the
// same conformance tests as mcs and ticket.
//
// Adapted from the teacher's alock.ArrayLock: the teacher stored the
// caller's slot index (myIndex) directly on the shared *ArrayLock value,
// which is a data race the moment two goroutines call Lock concurrently
// (each overwrites the same field). Acquire here instead returns a
// Ticket the caller must pass back to Release, so per-acquire state lives
// on the caller's stack the way mcs.Node's per-acquire state does.
package arraylock

import (
	"runtime"
	"sync/atomic"
)

// Lock is a fixed-capacity array-based mutual exclusion lock. capacity
// must be known up front and must be at least the maximum number of
// goroutines contending for it at once: two waiters whose tickets map to
// the same slot both see that slot become runnable and both enter, so
// exceeding capacity breaks mutual exclusion.
type Lock struct {
	flags []atomic.Uint32
	tail  atomic.Uint32
	size  uint32
}

// Ticket identifies the slot a particular Acquire call was assigned. It
// must be passed to the matching Release and must not be reused or shared
// across goroutines.
type Ticket struct {
	slot uint32
}

// New returns an unheld Lock sized for capacity concurrent waiters.
func New(capacity uint32) *Lock {
	if capacity == 0 {
		capacity = 1
	}
	l := &Lock{
		size:  capacity,
		flags: make([]atomic.Uint32, capacity),
	}
	l.flags[0].Store(1) // The first acquirer's slot starts runnable.
	return l
}

// Acquire blocks until the caller owns the lock and returns the Ticket
// that must be handed to Release.
func (l *Lock) Acquire() Ticket {
	slot := (l.tail.Add(1) - 1) % l.size
	for l.flags[slot].Load() == 0 {
		runtime.Gosched()
	}
	return Ticket{slot: slot}
}

// TryAcquire attempts to acquire the lock without blocking, returning the
// Ticket and true on success.
func (l *Lock) TryAcquire() (Ticket, bool) {
	tail := l.tail.Load()
	slot := tail % l.size
	if l.flags[slot].Load() == 1 && l.tail.CompareAndSwap(tail, tail+1) {
		return Ticket{slot: slot}, true
	}
	return Ticket{}, false
}

// Release releases the lock acquired with the matching Ticket.
func (l *Lock) Release(t Ticket) {
	l.flags[t.slot].Store(0)
	next := (t.slot + 1) % l.size
	l.flags[next].Store(1)
}
