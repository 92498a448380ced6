package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFires(t *testing.T) {
	m := New()
	fired := make(chan struct{})

	m.Schedule("ABCDE", 10*time.Millisecond, func() {
		close(fired)
	})
	require.True(t, m.Pending("ABCDE"))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}

	// The handle is removed from the registry once it fires.
	assert.Eventually(t, func() bool {
		return !m.Pending("ABCDE")
	}, time.Second, 5*time.Millisecond)
}

func TestScheduleSupersedesExisting(t *testing.T) {
	m := New()
	var firstFired, secondFired atomic.Int32
	done := make(chan struct{})

	m.Schedule("ABCDE", 20*time.Millisecond, func() {
		firstFired.Add(1)
	})
	m.Schedule("ABCDE", 10*time.Millisecond, func() {
		secondFired.Add(1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("replacement callback did not fire")
	}
	// Give the superseded timer a chance to misfire before asserting.
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int32(0), firstFired.Load())
	assert.Equal(t, int32(1), secondFired.Load())
}

func TestCancel(t *testing.T) {
	m := New()
	var fired atomic.Int32

	m.Schedule("ABCDE", 20*time.Millisecond, func() {
		fired.Add(1)
	})
	require.True(t, m.Cancel("ABCDE"))
	assert.False(t, m.Pending("ABCDE"))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Cancelling again is a harmless no-op.
	assert.False(t, m.Cancel("ABCDE"))
}

func TestCodesAreIndependent(t *testing.T) {
	m := New()
	fired := make(chan string, 2)

	m.Schedule("AAAAA", 10*time.Millisecond, func() { fired <- "AAAAA" })
	m.Schedule("BBBBB", 10*time.Millisecond, func() { fired <- "BBBBB" })

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case code := <-fired:
			got[code] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for callbacks")
		}
	}
	assert.True(t, got["AAAAA"])
	assert.True(t, got["BBBBB"])
}

func TestNegativeDelayFiresImmediately(t *testing.T) {
	m := New()
	fired := make(chan struct{})

	m.Schedule("ABCDE", -time.Second, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire")
	}
}
