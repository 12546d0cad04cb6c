package mcs

import (
	"runtime"
	"sync/atomic"
)

// spinNode is BusyMCS's per-acquire queue record. It is deliberately not
// mcs.Node: BusyMCS never parks, so it carries no Park/Unpark Bridge,
// spinning on waiting with runtime.Gosched() the way the teacher's
// original mcs.QNode spun on its waiting flag ("Similar to PAUSE in the C
// version").
type spinNode struct {
	next    atomic.Pointer[spinNode]
	waiting uint32
}

var spinRemoved = &spinNode{}

func trySpinRemove(n, exp *spinNode) *spinNode {
	if n.next.CompareAndSwap(exp, spinRemoved) {
		return exp
	}
	return n.next.Load()
}

// BusyMCS is the fast-path MCS variant that never parks: a queued waiter
// spin-yields instead of blocking on a Park/Unpark Bridge, trading energy
// efficiency for a simpler implementation with no OS-thread-parking
// dependency. Grounded on original_source/UnfairBusyMCS.java, and a direct
// generalization of the teacher's own mcs.Lock (classic MCS spin queue)
// with the fast-path busy flag UnfairBusyMCS.java adds on top.
type BusyMCS struct {
	busy   atomic.Bool
	bottom atomic.Pointer[spinNode]
	top    *spinNode
}

// NewBusyMCS returns an unheld, empty-queue BusyMCS lock.
func NewBusyMCS() *BusyMCS { return &BusyMCS{} }

func (l *BusyMCS) bottomSet(n *spinNode) *spinNode {
	if l.bottom.CompareAndSwap(nil, n) {
		l.top = n
		return nil
	}
	return l.bottom.Load()
}

// Acquire blocks until the caller is the unique holder, without ever
// parking the calling goroutine.
func (l *BusyMCS) Acquire() {
	if l.busy.CompareAndSwap(false, true) {
		return
	}

	h := l.bottom.Load()
	n := &spinNode{waiting: 1}

	if h != nil || func() bool { h = l.bottomSet(n); return h != nil }() {
	enqueue:
		for {
			if h.next.CompareAndSwap(nil, n) {
				l.bottom.CompareAndSwap(h, n)
				for atomic.LoadUint32(&n.waiting) != 0 {
					runtime.Gosched()
				}
				break enqueue
			}
			h = l.bottom.Load()
			if h == nil {
				if h = l.bottomSet(n); h == nil {
					break enqueue
				}
			}
		}
	}

	for !l.busy.CompareAndSwap(false, true) {
		runtime.Gosched()
	}

	l.poll()
}

func (l *BusyMCS) poll() {
	first := l.top
	exp := first.next.Load()
	next := trySpinRemove(first, exp)
	if next != exp {
		first.next.Store(spinRemoved)
	} else if next == nil {
		if l.bottom.CompareAndSwap(first, nil) {
			if l.top == first {
				l.top = nil
			}
			return
		}
		next = first.next.Load()
	}
	l.top = next
	atomic.StoreUint32(&next.waiting, 0)
}

// Release makes all writes within the critical section visible to the
// next acquirer. Undefined if called without holding the lock.
func (l *BusyMCS) Release() {
	l.busy.Store(false)
}
