package quiz

import "sync"

// Scheduler guards the tick loop that drives a session's countdowns.
// Bubble Tea tick commands already in flight cannot be revoked, so
// every scheduled tick carries the generation it was issued under and
// the receiver drops ticks whose generation no longer matches. Pausing
// is softer than cancelling: the loop keeps running but its ticks are
// ignored until resumed, which is how answer-feedback interludes stop
// the clock without tearing the loop down.
type Scheduler struct {
	mu        sync.Mutex
	gen       int
	suspended bool
	cancelled bool
}

// NewScheduler returns a scheduler with no live generation.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Restart opens a new generation, invalidating every previously issued
// tick, and returns the generation to stamp onto new ticks.
func (s *Scheduler) Restart() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.cancelled = false
	s.suspended = false
	return s.gen
}

// Cancel invalidates all ticks until the next Restart.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = true
}

// Pause suppresses tick effects without invalidating the loop.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = true
}

// Resume lifts a Pause.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suspended = false
}

// Suspended reports whether tick effects are currently suppressed.
func (s *Scheduler) Suspended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suspended
}

// Valid reports whether a tick stamped with gen should be applied.
func (s *Scheduler) Valid(gen int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.cancelled && gen == s.gen
}

// Generation returns the current generation.
func (s *Scheduler) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}
