// Package parkbridge implements the Park/Unpark Bridge from spec §4.4: a
// primitive by which a goroutine voluntarily suspends until another
// goroutine signals it, tolerant of spurious wake-ups, with an idempotent
// Unpark that grants a single permit consumable by the next Park call even
// if issued before any Park.
//
// Go has no public goroutine-parking primitive analogous to
// LockSupport.park()/unpark(Thread) — parking a goroutine means blocking
// it on a channel or runtime semaphore and letting the scheduler descend
// it off its M. A 1-buffered channel used as a single-permit semaphore is
// the idiomatic Go substitute recommended by spec §9's own design note
// ("a minimal portable implementation uses a per-thread mutex+condvar+
// permit-counter triple"); a buffered channel of capacity 1 is exactly
// that triple collapsed into one runtime-native primitive.
package parkbridge

// Bridge is a single-permit park/unpark rendezvous. Create one with New:
// the zero value has no permit channel, so its Park blocks forever and its
// Unpark does nothing.
type Bridge struct {
	permit chan struct{}
}

// New returns a ready Bridge.
func New() *Bridge {
	return &Bridge{permit: make(chan struct{}, 1)}
}

// Park blocks the calling goroutine until a permit is available, then
// consumes it. A permit issued by Unpark before Park was called is not
// lost — it is queued in the channel's buffer, matching the "issuing an
// unpark for a thread not currently parked grants a single permit"
// contract in spec §4.4.
//
// Callers that need the "while (parked) park()" spurious-wakeup-tolerant
// loop from spec §4.3.2 step 7 wrap Park in their own predicate loop
// (mcs.Node.parked); Park itself never returns spuriously since a channel
// receive only unblocks on an actual send.
func (b *Bridge) Park() {
	<-b.permit
}

// Unpark issues a single wake-up permit. It is idempotent in the sense
// that issuing a second Unpark before the first permit is consumed is a
// no-op — the channel buffer holds at most one outstanding permit, which
// is exactly the "single permit" semantics spec §4.4 requires (an unpark
// storm must not let a single Park calls consume more than one signal, and
// must not block the unparking goroutine).
func (b *Bridge) Unpark() {
	select {
	case b.permit <- struct{}{}:
	default:
	}
}
