package ticket_test

import (
	"math/rand"
	"testing"

	"github.com/Skylarkarms/MCS-variations/internal/conformance"
	"github.com/Skylarkarms/MCS-variations/ticket"
)

func TestFastSync_SequentialRoundTrip(t *testing.T) {
	conformance.SequentialRoundTrip(t, ticket.NewFastSync(), 1000)
}

func TestFastSync_ConcurrentCounter(t *testing.T) {
	conformance.ConcurrentCounter(t, ticket.NewFastSync(), 32, 500)
}

func TestFastSync_AccumulateAndProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	conformance.AccumulateAndProduct(t, ticket.NewFastSync(), 23, rng)
}

func TestFastSync_ManyWaitersOnce(t *testing.T) {
	conformance.ManyWaitersOnce(t, ticket.NewFastSync(), 300)
}

func TestFastSync_FastPathUncontended(t *testing.T) {
	l := ticket.NewFastSync()
	l.Acquire()
	l.Release()
	l.Acquire()
	l.Release()
}

func BenchmarkFastSync_Uncontended(b *testing.B) {
	l := ticket.NewFastSync()
	for i := 0; i < b.N; i++ {
		l.Acquire()
		l.Release()
	}
}

func BenchmarkFastSync_Contended(b *testing.B) {
	l := ticket.NewFastSync()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Acquire()
			l.Release()
		}
	})
}
