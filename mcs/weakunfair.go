package mcs

import (
	"runtime"
	"sync/atomic"

	"github.com/Skylarkarms/MCS-variations/internal/telemetry"
	"github.com/Skylarkarms/MCS-variations/weakcas"
)

// WeakUnfairMCS is the primary synchronizer from spec §4.3: a fast-path
// busy flag combined with an MCS tail-linked queue whose head spin-waits
// while deeper waiters park, where the outgoing holder's Release is a
// single store because the incoming holder performs the queue-maintenance
// (poll) at the end of its own Acquire. It provides no fairness guarantee:
// a just-arriving goroutine may claim the fast path ahead of long-waiting
// queued nodes. It is not reentrant.
//
// Grounded on original_source/WeakUnfairMCS.java, transcribed step for
// step from spec §4.3.2.
type WeakUnfairMCS struct {
	busy atomic.Bool
	tail atomic.Pointer[Node]
	top  *Node // mutated only by the current holder, under busy == true; see spec §3 I2.
}

// NewWeakUnfairMCS returns an unheld lock with an empty queue.
func NewWeakUnfairMCS() *WeakUnfairMCS { return &WeakUnfairMCS{} }

// IsBusy is a non-authoritative observation of busy (spec §6).
func (l *WeakUnfairMCS) IsBusy() bool { return l.busy.Load() }

func (l *WeakUnfairMCS) busyAccessors() weakcas.Accessors[bool] {
	return weakcas.Accessors[bool]{
		CAS:  func(old, new bool) bool { return l.busy.CompareAndSwap(old, new) },
		Load: func() bool { return l.busy.Load() },
	}
}

func (l *WeakUnfairMCS) tailAccessors() weakcas.Accessors[*Node] {
	return weakcas.Accessors[*Node]{
		CAS:  func(old, new *Node) bool { return l.tail.CompareAndSwap(old, new) },
		Load: func() *Node { return l.tail.Load() },
	}
}

// firstTail attempts to install n as the very first tail node. On success
// it also becomes top (safe: the caller is, by construction, the sole
// queue participant at that instant) and returns nil; otherwise it returns
// the observed witness.
func (l *WeakUnfairMCS) firstTail(n *Node) *Node {
	wit := weakcas.Xchg(l.tailAccessors(), nil, n, weakcas.Acquire)
	if wit == nil {
		l.top = n
		return nil
	}
	return wit
}

// Acquire blocks until the caller is the unique holder. It establishes
// happens-before from the matching Release of the prior holder.
func (l *WeakUnfairMCS) Acquire() {
	h := l.tail.Load()
	if h == nil && weakcas.CAS(l.busyAccessors(), false, true, weakcas.Acquire) {
		return // Fast-path-1: the lock was free and no one was queued.
	}

	n := newNode()
	telemetry.Logger.Debug("weakunfairmcs: node allocated")
	needPark := true

	if h == nil {
		if h = l.firstTail(n); h == nil {
			// We own the queue head with no predecessor; skip straight to
			// the busy spin below.
			needPark = false
		}
	}

	if needPark {
	enqueue:
		for {
			prev := h.xchgNext(n)
			if prev == nil {
				break enqueue // Published as h's successor; proceed to tail fixup.
			}
			if prev.next.Load() == nil {
				// removed.next points to itself (see mcs.removed), so this
				// branch is only taken for a live node not yet linked.
				continue enqueue // prev is still mid-enqueue; retry the exchange on the same h.
			}
			// prev was REMOVED or already has a successor: advance h.
			h = l.tail.Load()
			if h == nil {
				if weakcas.CAS(l.busyAccessors(), false, true, weakcas.Acquire) {
					return // Fast-path-2
				}
				if h = l.firstTail(n); h == nil {
					needPark = false
					break enqueue
				}
			}
		}

		if needPark {
			reg := l.tailFixup(h, n)
			for h != reg && n.next.Load() == nil {
				h = reg
				reg = l.tailFixup(h, n)
			}
			n.park()
		}
	}

	for !l.busy.CompareAndSwap(false, true) {
		runtime.Gosched()
	}

	l.poll()
}

// tailFixup CAS-exchanges tail from h to n at plain ordering (spec §4.3.2
// step 6): this lock's hottest CAS target is deliberately spread across
// many node.next slots rather than a single tail word, but the tail word
// itself still needs to catch up once a successor is linked.
func (l *WeakUnfairMCS) tailFixup(h, n *Node) *Node {
	return weakcas.Xchg(l.tailAccessors(), h, n, weakcas.Plain)
}

// poll is executed by the incoming holder at the end of Acquire: it
// promotes the next queued node to top and wakes it, overlapping that
// successor's context-switch restoration with this holder's own queue
// maintenance. This is the design's defining asymmetry: Release below
// collapses to a single store because poll, not Release, pays for
// queue-maintenance.
func (l *WeakUnfairMCS) poll() {
	first := l.top
	exp := first.next.Load()
	next := first.tryRemoveNext(exp)
	if next != exp {
		// A concurrent enqueuer changed first.next between our read and
		// the exchange attempt; tombstone it explicitly so the node is
		// unambiguously evicted either way.
		first.setRemoved()
	} else if next == nil {
		if weakcas.CAS(l.tailAccessors(), first, nil, weakcas.Acquire) {
			if l.top == first {
				l.top = nil
			}
			return // Queue drained; we remain sole holder.
		}
		next = first.next.Load() // A racing enqueuer linked in; re-read.
	}
	l.top = next
	next.wake()
}

// Release makes all writes within the critical section visible to the
// next acquirer. It is undefined behavior to call Release without holding
// the lock. Per spec §4.3.3 this is exactly one store and no CAS — the
// poll/wake already happened at the end of the current holder's Acquire.
func (l *WeakUnfairMCS) Release() {
	l.busy.Store(false)
}
