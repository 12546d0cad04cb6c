package mcs_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skylarkarms/MCS-variations/internal/conformance"
	"github.com/Skylarkarms/MCS-variations/mcs"
)

func TestWeakUnfairMCS_SequentialRoundTrip(t *testing.T) {
	conformance.SequentialRoundTrip(t, mcs.NewWeakUnfairMCS(), 1000)
}

func TestWeakUnfairMCS_FastPathUncontended(t *testing.T) {
	l := mcs.NewWeakUnfairMCS()
	assert.False(t, l.IsBusy())
	l.Acquire()
	assert.True(t, l.IsBusy())
	l.Release()
	assert.False(t, l.IsBusy())
}

func TestWeakUnfairMCS_ConcurrentCounter(t *testing.T) {
	conformance.ConcurrentCounter(t, mcs.NewWeakUnfairMCS(), 64, 1000)
}

func TestWeakUnfairMCS_AccumulateAndProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	conformance.AccumulateAndProduct(t, mcs.NewWeakUnfairMCS(), 23, rng)
}

func TestWeakUnfairMCS_ManyWaitersOnce(t *testing.T) {
	conformance.ManyWaitersOnce(t, mcs.NewWeakUnfairMCS(), 500)
}

func TestWeakUnfairMCS_StressManyGoroutines(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in -short mode")
	}
	conformance.ConcurrentCounter(t, mcs.NewWeakUnfairMCS(), 2000, 50)
}

func BenchmarkWeakUnfairMCS_Uncontended(b *testing.B) {
	l := mcs.NewWeakUnfairMCS()
	for i := 0; i < b.N; i++ {
		l.Acquire()
		l.Release()
	}
}

func BenchmarkWeakUnfairMCS_Contended(b *testing.B) {
	l := mcs.NewWeakUnfairMCS()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Acquire()
			l.Release()
		}
	})
}
