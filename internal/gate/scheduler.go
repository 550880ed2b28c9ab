package gate

import (
	"sync"
	"time"

	"github.com/groblegark/gatewarden/internal/model"
)

// armed is one live deadline timer. gen ties the timer's callback to the
// map entry it was created for: a callback whose generation no longer
// matches was superseded by a Cancel/Arm cycle and must not deliver.
type armed struct {
	timer *time.Timer
	gen   uint64
}

// Scheduler tracks one pending deadline timer per gate key and fires a
// timeout callback at most once per armed deadline. It never acts on
// gate state itself: the callback funnels the timeout into the engine's
// per-key serialized event path.
type Scheduler struct {
	mu        sync.Mutex
	timers    map[model.Key]armed
	gen       uint64
	onTimeout func(model.Key)
	stopped   bool
}

// NewScheduler creates a scheduler delivering timeouts to the given
// callback. The callback runs on the timer goroutine.
func NewScheduler(onTimeout func(model.Key)) *Scheduler {
	return &Scheduler{
		timers:    make(map[model.Key]armed),
		onTimeout: onTimeout,
	}
}

// Arm schedules a one-shot timeout for the key at the given deadline.
// Re-arming an already-armed key cancels the prior timer first, so at
// most one live timer exists per key.
func (s *Scheduler) Arm(key model.Key, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if e, ok := s.timers[key]; ok {
		e.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timers[key] = armed{
		timer: time.AfterFunc(time.Until(deadline), func() {
			s.fire(key, gen)
		}),
		gen: gen,
	}
}

// Cancel removes a pending timer for the key. No-op if the timer already
// fired or was never armed. A cancel racing the firing callback resolves
// to exactly one of "timeout delivered" or "no timeout delivered": fire
// re-checks the map entry under the lock before invoking the callback.
func (s *Scheduler) Cancel(key model.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.timers[key]; ok {
		e.timer.Stop()
		delete(s.timers, key)
	}
}

// fire runs on the timer goroutine when a deadline elapses. gen is the
// generation the elapsed timer was armed with; if the key was cancelled
// or re-armed since, the map entry is gone or carries a newer
// generation, and the stale callback delivers nothing.
func (s *Scheduler) fire(key model.Key, gen uint64) {
	s.mu.Lock()
	e, ok := s.timers[key]
	if !ok || e.gen != gen {
		s.mu.Unlock()
		return
	}
	delete(s.timers, key)
	stopped := s.stopped
	s.mu.Unlock()

	if !stopped {
		s.onTimeout(key)
	}
}

// Active returns the number of pending timers.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all pending timers and refuses further arming.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, e := range s.timers {
		e.timer.Stop()
		delete(s.timers, key)
	}
}
