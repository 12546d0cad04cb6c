package weakcas_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skylarkarms/MCS-variations/weakcas"
)

func intAccessors(v *atomic.Int64) weakcas.Accessors[int64] {
	return weakcas.Accessors[int64]{
		CAS:  func(old, new int64) bool { return v.CompareAndSwap(old, new) },
		Load: func() int64 { return v.Load() },
	}
}

func TestCAS_SucceedsOnMatch(t *testing.T) {
	var v atomic.Int64
	v.Store(5)
	ok := weakcas.CAS(intAccessors(&v), 5, 7, weakcas.Acquire)
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.Load())
}

func TestCAS_FailsOnMismatch(t *testing.T) {
	var v atomic.Int64
	v.Store(5)
	ok := weakcas.CAS(intAccessors(&v), 6, 7, weakcas.Acquire)
	assert.False(t, ok)
	assert.Equal(t, int64(5), v.Load())
}

func TestXchg_ReturnsOldOnSuccess(t *testing.T) {
	var v atomic.Int64
	v.Store(1)
	got := weakcas.Xchg(intAccessors(&v), 1, 2, weakcas.Plain)
	assert.Equal(t, int64(1), got)
	assert.Equal(t, int64(2), v.Load())
}

func TestXchg_ReturnsWitnessOnFailure(t *testing.T) {
	var v atomic.Int64
	v.Store(9)
	got := weakcas.Xchg(intAccessors(&v), 1, 2, weakcas.Plain)
	assert.Equal(t, int64(9), got)
	assert.Equal(t, int64(9), v.Load())
}

func TestOrdering_String(t *testing.T) {
	cases := map[weakcas.Ordering]string{
		weakcas.Plain:   "plain",
		weakcas.Acquire: "acquire",
		weakcas.Release: "release",
		weakcas.SeqCst:  "seq_cst",
	}
	for ord, want := range cases {
		assert.Equal(t, want, ord.String())
	}
}

func TestIsWeak_StableAcrossCalls(t *testing.T) {
	first := weakcas.IsWeak()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, weakcas.IsWeak())
	}
}
