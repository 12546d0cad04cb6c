// Package mcs implements the Weak-CAS-backed, MCS-style lock family from
// spec §4.2-§4.3: WeakUnfairMCS (the primary synchronizer, with fast-path
// bypass and pre-wake-on-acquire), FairMCS (its strict-FIFO, always-queue
// sibling), and BusyMCS (a fast-path variant that spins instead of
// parking). All three share the enqueue/tail-fixup/drain discipline
// transcribed from spec §4.3.2 and original_source/'s WeakUnfairMCS.java,
// FairMCS.java and UnfairBusyMCS.java respectively.
package mcs

import (
	"sync/atomic"

	"github.com/Skylarkarms/MCS-variations/parkbridge"
	"github.com/Skylarkarms/MCS-variations/weakcas"
)

// Node is the per-acquire waiter record from spec §4.2, shared by
// WeakUnfairMCS and FairMCS (both park via the same Park/Unpark Bridge and
// both need the identical REMOVED-tombstone next-slot discipline; Node's
// own Weak-CAS-backed next-slot mutation is shared too, a deliberate
// simplification versus original_source, which duplicates a near-identical
// private Node class in every file — see DESIGN.md).
type Node struct {
	bridge parkbridge.Bridge
	parked atomic.Bool
	next   atomic.Pointer[Node]
}

// removed is the REMOVED sentinel: a live Node value, distinguishable from
// any real node by pointer identity, used exclusively to mark a node as
// evicted from the reachable queue. Its own next points back to itself
// rather than being left nil, mirroring original_source's
// `new Node(new Node())` construction: this lets the enqueue loop's witness
// check tell "REMOVED" apart from "a live node not yet linked" purely from
// prev.next, without a separate identity check.
var removed = &Node{}

func init() {
	removed.next.Store(removed)
}

func newNode() *Node {
	n := &Node{bridge: *parkbridge.New()}
	n.parked.Store(true)
	return n
}

func (n *Node) nextAccessors() weakcas.Accessors[*Node] {
	return weakcas.Accessors[*Node]{
		CAS:  func(old, new *Node) bool { return n.next.CompareAndSwap(old, new) },
		Load: func() *Node { return n.next.Load() },
	}
}

// xchgNext attempts to publish next as this node's successor. It returns
// nil on success, or the previously observed value (a live successor or
// the REMOVED sentinel) on failure.
func (n *Node) xchgNext(next *Node) *Node {
	return weakcas.Xchg(n.nextAccessors(), nil, next, weakcas.Acquire)
}

// tryRemoveNext attempts to replace this node's next slot, expected to
// still hold exp, with the REMOVED sentinel.
func (n *Node) tryRemoveNext(exp *Node) *Node {
	return weakcas.Xchg(n.nextAccessors(), exp, removed, weakcas.Acquire)
}

// setRemoved unconditionally tombstones this node's next slot.
func (n *Node) setRemoved() {
	n.next.Store(removed)
}

// park blocks until the predecessor clears parked, absorbing spurious
// wake-ups of the underlying bridge per spec §4.4.
func (n *Node) park() {
	for n.parked.Load() {
		n.bridge.Park()
	}
}

// wake clears parked and signals the bridge. The store must be visible
// before the signal; atomic.Bool.Store already establishes that ordering.
func (n *Node) wake() {
	n.parked.Store(false)
	n.bridge.Unpark()
}
