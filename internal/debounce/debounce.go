// Package debounce collapses rapid repeated triggers for the same key into
// a single action, fired after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Key identifies one editable cell: a row and a field within it.
type Key struct {
	RowID int
	Field string
}

// Scheduler runs at most one pending action per key. Scheduling over a live
// key cancels the previous timer and restarts the quiet period, so a burst
// of edits to the same cell yields exactly one flush.
type Scheduler struct {
	delay time.Duration

	mu     sync.Mutex
	timers map[Key]*time.Timer
}

func NewScheduler(delay time.Duration) *Scheduler {
	return &Scheduler{
		delay:  delay,
		timers: make(map[Key]*time.Timer),
	}
}

// Schedule arranges for fn to run after the quiet period, replacing any
// pending action for the same key. fn runs on its own goroutine.
func (s *Scheduler) Schedule(k Key, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[k]; ok {
		t.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		// Only clear the slot if it still holds this timer; a reschedule
		// may already have replaced it.
		if s.timers[k] == timer {
			delete(s.timers, k)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[k] = timer
}

// Cancel drops any pending action for the key.
func (s *Scheduler) Cancel(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[k]; ok {
		t.Stop()
		delete(s.timers, k)
	}
}

// Pending reports how many keys have an action waiting.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending action.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, t := range s.timers {
		t.Stop()
		delete(s.timers, k)
	}
}
