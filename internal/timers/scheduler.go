// Package timers drives the time-based actions of one game session: the
// 1 Hz countdown of timed mode and the auto-hide of feedback toasts.
//
// A Scheduler watches the transitions of its machine and arms or cancels
// its timers to match. Every scheduled action carries a generation guard
// that the dispatcher evaluates under the session lock, so a timer that
// raced its own cancellation never lands on a later state.
package timers

import (
	"sync"
	"time"

	"kalimat/internal/game"
)

// Dispatcher applies a to the session if valid still reports true once the
// session lock is held.
type Dispatcher func(a game.Action, valid func() bool)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTickInterval overrides the countdown period.
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.tickEvery = d }
}

// WithFeedbackDuration overrides how long a toast stays visible.
func WithFeedbackDuration(d time.Duration) Option {
	return func(s *Scheduler) { s.hideAfter = d }
}

// Scheduler owns the timers of one session.
type Scheduler struct {
	dispatch  Dispatcher
	tickEvery time.Duration
	hideAfter time.Duration

	mu       sync.Mutex
	tickGen  uint64
	tickStop chan struct{}
	hideGen  uint64
	hide     *time.Timer
	stopped  bool
}

// New returns an idle scheduler.
func New(dispatch Dispatcher, opts ...Option) *Scheduler {
	s := &Scheduler{
		dispatch:  dispatch,
		tickEvery: time.Second,
		hideAfter: 2 * time.Second,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Observe reconciles the timers with the state t produced. It has the
// game.Observer signature and is called with the session lock held.
func (s *Scheduler) Observe(t game.Transition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	st := t.State
	wantClock := st.Screen == game.ScreenPlaying && st.Mode == game.ModeTimed
	switch {
	case wantClock && s.tickStop == nil:
		s.startClockLocked()
	case !wantClock && s.tickStop != nil:
		s.stopClockLocked()
	}

	switch {
	case t.FeedbackShown:
		s.armHideLocked()
	case !st.Feedback.Visible && s.hide != nil:
		s.cancelHideLocked()
	}
}

// Stop cancels every pending timer. Later transitions are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.stopClockLocked()
	s.cancelHideLocked()
}

// Pending reports which timers are armed.
func (s *Scheduler) Pending() (clock, hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickStop != nil, s.hide != nil
}

func (s *Scheduler) startClockLocked() {
	s.tickGen++
	gen := s.tickGen
	stop := make(chan struct{})
	s.tickStop = stop
	valid := func() bool { return s.current(&s.tickGen, gen) }

	go func() {
		ticker := time.NewTicker(s.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.dispatch(game.TickTimer{}, valid)
			}
		}
	}()
}

func (s *Scheduler) stopClockLocked() {
	if s.tickStop == nil {
		return
	}
	s.tickGen++
	close(s.tickStop)
	s.tickStop = nil
}

func (s *Scheduler) armHideLocked() {
	s.cancelHideLocked()
	gen := s.hideGen
	s.hide = time.AfterFunc(s.hideAfter, func() {
		s.dispatch(game.HideFeedback{}, func() bool { return s.current(&s.hideGen, gen) })
	})
}

func (s *Scheduler) cancelHideLocked() {
	s.hideGen++
	if s.hide != nil {
		s.hide.Stop()
		s.hide = nil
	}
}

func (s *Scheduler) current(gen *uint64, want uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.stopped && *gen == want
}
