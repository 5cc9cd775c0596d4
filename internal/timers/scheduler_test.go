package timers

import (
	"sync"
	"testing"
	"time"

	"kalimat/internal/game"
)

// recorder is a Dispatcher that keeps the actions whose guard still held.
type recorder struct {
	mu      sync.Mutex
	applied []string
	dropped int
}

func (r *recorder) dispatch(a game.Action, valid func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !valid() {
		r.dropped++
		return
	}
	r.applied = append(r.applied, a.Name())
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, a := range r.applied {
		if a == name {
			n++
		}
	}
	return n
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func playing(mode game.Mode) game.Transition {
	return game.Transition{State: game.State{Screen: game.ScreenPlaying, Mode: mode}, Changed: true}
}

func withFeedback(t game.Transition) game.Transition {
	t.State.Feedback = game.Feedback{Kind: game.FeedbackSuccess, Message: "+10 نقطة!", Visible: true}
	t.FeedbackShown = true
	return t
}

func TestClockRunsOnlyInTimedPlay(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithTickInterval(10*time.Millisecond), WithFeedbackDuration(time.Hour))
	defer s.Stop()

	s.Observe(playing(game.ModeClassic))
	if clock, _ := s.Pending(); clock {
		t.Fatal("clock armed in classic mode")
	}

	s.Observe(playing(game.ModeTimed))
	waitFor(t, "three ticks", func() bool { return rec.count("tick_timer") >= 3 })

	s.Observe(game.Transition{State: game.State{Screen: game.ScreenLevelComplete, Mode: game.ModeTimed}})
	if clock, _ := s.Pending(); clock {
		t.Fatal("clock still armed after leaving play")
	}
	stopped := rec.count("tick_timer")
	time.Sleep(50 * time.Millisecond)
	if got := rec.count("tick_timer"); got != stopped {
		t.Errorf("ticks kept landing after cancel: %d -> %d", stopped, got)
	}
}

func TestClockRestartsAfterContinue(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithTickInterval(10*time.Millisecond))
	defer s.Stop()

	s.Observe(playing(game.ModeTimed))
	s.Observe(game.Transition{State: game.State{Screen: game.ScreenLevelComplete, Mode: game.ModeTimed}})
	s.Observe(playing(game.ModeTimed))
	waitFor(t, "tick after restart", func() bool { return rec.count("tick_timer") >= 1 })
}

func TestFeedbackAutoHide(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithFeedbackDuration(20*time.Millisecond))
	defer s.Stop()

	s.Observe(withFeedback(playing(game.ModeClassic)))
	waitFor(t, "hide", func() bool { return rec.count("hide_feedback") == 1 })

	time.Sleep(40 * time.Millisecond)
	if got := rec.count("hide_feedback"); got != 1 {
		t.Errorf("hide fired %d times, want 1", got)
	}
}

func TestFeedbackRearmReplacesPendingHide(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithFeedbackDuration(30*time.Millisecond))
	defer s.Stop()

	s.Observe(withFeedback(playing(game.ModeClassic)))
	time.Sleep(15 * time.Millisecond)
	s.Observe(withFeedback(playing(game.ModeClassic)))

	waitFor(t, "hide", func() bool { return rec.count("hide_feedback") == 1 })
	time.Sleep(60 * time.Millisecond)
	if got := rec.count("hide_feedback"); got != 1 {
		t.Errorf("hide fired %d times after re-arm, want 1", got)
	}
}

func TestManualHideCancelsTimer(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithFeedbackDuration(20*time.Millisecond))
	defer s.Stop()

	s.Observe(withFeedback(playing(game.ModeClassic)))
	s.Observe(playing(game.ModeClassic)) // feedback now hidden
	if _, hide := s.Pending(); hide {
		t.Fatal("hide timer still armed")
	}
	time.Sleep(60 * time.Millisecond)
	if got := rec.count("hide_feedback"); got != 0 {
		t.Errorf("cancelled hide fired %d times", got)
	}
}

func TestStaleGuardRejectsReplacedTimer(t *testing.T) {
	s := New(func(game.Action, func() bool) {}, WithFeedbackDuration(time.Hour))
	defer s.Stop()

	s.Observe(withFeedback(playing(game.ModeClassic)))
	gen := s.hideGen
	guard := func() bool { return s.current(&s.hideGen, gen) }
	if !guard() {
		t.Fatal("guard rejected the live timer")
	}

	s.Observe(withFeedback(playing(game.ModeClassic)))
	if guard() {
		t.Error("guard accepted work from a replaced timer")
	}
}

func TestStopCancelsEverything(t *testing.T) {
	rec := &recorder{}
	s := New(rec.dispatch, WithTickInterval(10*time.Millisecond), WithFeedbackDuration(20*time.Millisecond))

	s.Observe(withFeedback(playing(game.ModeTimed)))
	s.Stop()
	if clock, hide := s.Pending(); clock || hide {
		t.Fatalf("pending after Stop: clock=%v hide=%v", clock, hide)
	}
	s.Observe(withFeedback(playing(game.ModeTimed)))
	if clock, hide := s.Pending(); clock || hide {
		t.Error("Observe re-armed a stopped scheduler")
	}

	time.Sleep(60 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.applied) != 0 {
		t.Errorf("actions after Stop: %v", rec.applied)
	}
}
