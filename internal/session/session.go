package session

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"kalimat/internal/game"
	"kalimat/internal/timers"
)

// Session is one player's game: a machine, its timers and the lock that
// serializes every action applied to them.
type Session struct {
	ID      string
	Created time.Time

	tracer trace.Tracer

	mu         sync.Mutex
	machine    *game.Machine
	scheduler  *timers.Scheduler
	lastAccess time.Time
}

// Dispatch applies a player action and returns the resulting transition.
func (s *Session) Dispatch(ctx context.Context, a game.Action) game.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.dispatchLocked(ctx, a)
}

// Judge lets judge pick the action from the current state and applies it
// while still holding the lock, so the state cannot move in between. When
// judge reports false nothing is dispatched and the state is returned
// unchanged.
func (s *Session) Judge(ctx context.Context, judge func(game.State) (game.Action, bool)) game.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	a, ok := judge(s.machine.State())
	if !ok {
		return game.Transition{State: s.machine.State()}
	}
	return s.dispatchLocked(ctx, a)
}

func (s *Session) dispatchLocked(ctx context.Context, a game.Action) game.Transition {
	_, span := s.tracer.Start(ctx, "game.dispatch",
		trace.WithAttributes(attribute.String("action", a.Name())))
	defer span.End()

	t := s.machine.Dispatch(a)
	span.SetAttributes(
		attribute.String("screen", t.State.Screen.String()),
		attribute.Int("level", t.State.Level),
		attribute.Int("score", t.State.Score),
		attribute.String("cue", t.Cue.String()),
		attribute.Bool("changed", t.Changed),
	)
	return t
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return s.machine.State()
}

// LastAccess reports when a player last touched the session. Timer-driven
// actions do not count.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Pending reports which timers are armed.
func (s *Session) Pending() (clock, hide bool) {
	return s.scheduler.Pending()
}

// dispatchScheduled is the timers.Dispatcher for this session.
func (s *Session) dispatchScheduled(a game.Action, valid func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !valid() {
		return
	}
	s.machine.Dispatch(a)
}

func (s *Session) close() {
	s.scheduler.Stop()
}
