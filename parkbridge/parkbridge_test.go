package parkbridge_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Skylarkarms/MCS-variations/parkbridge"
)

func TestUnparkBeforePark_GrantsOnePermit(t *testing.T) {
	b := parkbridge.New()
	b.Unpark()

	done := make(chan struct{})
	go func() {
		b.Park()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Park never returned despite a prior Unpark")
	}
}

func TestUnparkStorm_GrantsOnlyOnePermit(t *testing.T) {
	b := parkbridge.New()
	b.Unpark()
	b.Unpark()
	b.Unpark()

	b.Park()

	parked := make(chan struct{})
	go func() {
		b.Park()
		close(parked)
	}()

	select {
	case <-parked:
		t.Fatal("a second Park returned despite only one outstanding permit")
	case <-time.After(50 * time.Millisecond):
	}

	b.Unpark()
	select {
	case <-parked:
	case <-time.After(time.Second):
		t.Fatal("Park never returned after a fresh Unpark")
	}
}

func TestPark_BlocksUntilUnpark(t *testing.T) {
	b := parkbridge.New()
	done := make(chan struct{})
	go func() {
		b.Park()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Park returned before Unpark was called")
	case <-time.After(50 * time.Millisecond):
	}

	b.Unpark()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Park never returned after Unpark")
	}
}

func TestUnpark_NeverBlocksCaller(t *testing.T) {
	b := parkbridge.New()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Unpark()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Unpark blocked the calling goroutine")
	}
	assert.True(t, true)
}
