package mcs

import "sync/atomic"

// FairMCS is the strict-FIFO sibling of WeakUnfairMCS: every arrival
// enters the MCS queue unconditionally, with no fast path, and Release
// performs the poll-and-unpark drain (rather than Acquire, since there is
// no busy flag to spin-reclaim). Whoever's node is currently top holds the
// lock.
//
// Grounded on original_source/FairMCS.java. That source reads
// first.next non-atomically before an acquire-ordered exchange during
// drain (spec.md §9's Open Question); this implementation resolves the
// ambiguity by using an acquire-ordered atomic load throughout, per the
// spec's own recommendation, and — like WeakUnfairMCS.poll — tombstones
// the drained node explicitly on a concurrent-enqueue mismatch rather than
// leaving it live, which the literal Java translation would not do.
//
// Unlike WeakUnfairMCS, FairMCS's own tail/top bookkeeping does not go
// through the weakcas shim: original_source's FairMCS.java does not import
// WeakOpt (only WeakUnfairMCS.java does), so its CAS traffic is left as
// plain sync/atomic here too. Node's own next-slot mutation is still
// Weak-CAS-backed because Node is shared with WeakUnfairMCS.
type FairMCS struct {
	tail atomic.Pointer[Node]
	top  *Node
}

// NewFairMCS returns an unheld, empty-queue FairMCS lock.
func NewFairMCS() *FairMCS { return &FairMCS{} }

func (l *FairMCS) firstTail(n *Node) *Node {
	if l.tail.CompareAndSwap(nil, n) {
		l.top = n
		return nil
	}
	return l.tail.Load()
}

// Acquire blocks until the caller is the sole holder (the current top of
// the queue). A goroutine that finds the queue empty installs itself as
// top and tail and returns immediately, already holding the lock.
func (l *FairMCS) Acquire() {
	h := l.tail.Load()
	n := newNode()

	if h == nil {
		if h = l.firstTail(n); h == nil {
			return // Queue was empty; we are the new sole top and already hold it.
		}
	}

	for {
		if h.next.CompareAndSwap(nil, n) {
			l.tail.CompareAndSwap(h, n)
			n.park()
			return
		}
		h = l.tail.Load()
		if h == nil {
			if h = l.firstTail(n); h == nil {
				return
			}
		}
	}
}

// Release drains the queue: it promotes the next waiter to top and wakes
// it, or clears the queue entirely if none is queued.
func (l *FairMCS) Release() {
	first := l.top
	exp := first.next.Load()
	next := first.tryRemoveNext(exp)
	if next != exp {
		first.setRemoved()
	} else if next == nil {
		if l.tail.CompareAndSwap(first, nil) {
			if l.top == first {
				l.top = nil
			}
			return
		}
		next = first.next.Load()
	}
	l.top = next
	next.wake()
}
