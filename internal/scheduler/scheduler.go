package scheduler

import (
	"sync"
	"time"
)

// Manager is a process-wide registry mapping a session code to at most one
// pending scheduled callback. Scheduling for a code always supersedes any
// callback already pending for that code, so a natural round expiry and a
// forced end can never leave a duplicate timer behind.
type Manager struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates an empty Manager
func New() *Manager {
	return &Manager{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule registers fn to run after delay on behalf of the given session
// code. Any callback already pending for the code is cancelled and discarded
// first. The callback runs on its own goroutine, as with time.AfterFunc.
func (m *Manager) Schedule(code string, delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.timers[code]; ok {
		existing.Stop()
		delete(m.timers, code)
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		m.mu.Lock()
		// Only clear the slot if it still holds this handle; a concurrent
		// Schedule may already have replaced it.
		if current, ok := m.timers[code]; ok && current == timer {
			delete(m.timers, code)
		}
		m.mu.Unlock()

		fn()
	})
	m.timers[code] = timer
}

// Cancel stops and discards the pending callback for the code, if any. It
// reports whether a callback was pending.
func (m *Manager) Cancel(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	timer, ok := m.timers[code]
	if !ok {
		return false
	}
	timer.Stop()
	delete(m.timers, code)
	return true
}

// Pending reports whether a callback is currently scheduled for the code.
func (m *Manager) Pending(code string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.timers[code]
	return ok
}
