// Package session keeps the in-memory game sessions of the server, one per
// browser cookie, and expires the idle ones.
package session

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"

	"kalimat/internal/game"
	"kalimat/internal/telemetry"
	"kalimat/internal/timers"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("session not found")

// Config describes how new sessions are built.
type Config struct {
	Rules   game.Rules
	Content game.Content
	// Seed fixes every session's random source when non-zero.
	Seed         int64
	TickInterval time.Duration
	Tracer       trace.Tracer
}

// Store maps session ids to sessions.
type Store struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty store.
func NewStore(cfg Config) *Store {
	if cfg.Content == nil {
		panic("session: NewStore called without content")
	}
	if cfg.Tracer == nil {
		cfg.Tracer = telemetry.NoopTracer()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	return &Store{cfg: cfg, sessions: make(map[string]*Session)}
}

// Get returns the session for id.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// GetOrCreate returns the session for id, creating it if needed. The bool
// reports whether it was created.
func (st *Store) GetOrCreate(id string) (*Session, bool, error) {
	if s, err := st.Get(id); err == nil {
		return s, false, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s, false, nil
	}
	s, err := st.newSession(id)
	if err != nil {
		return nil, false, err
	}
	st.sessions[id] = s
	log.Debug().Str("session_id", id).Msg("session created")
	return s, true, nil
}

// Delete stops and forgets the session for id.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.close()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than maxIdle and returns how many
// were removed.
func (st *Store) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if s.LastAccess().Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then stops all sessions.
func (st *Store) Run(ctx context.Context, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			st.Close()
			return
		case <-ticker.C:
			if n := st.Sweep(maxIdle); n > 0 {
				log.Info().Int("expired", n).Int("active", st.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// Close stops every session's timers and empties the store.
func (st *Store) Close() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()
	for _, s := range all {
		s.close()
	}
}

func (st *Store) newSession(id string) (*Session, error) {
	seed := st.cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = newSeed(); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	s := &Session{ID: id, Created: now, lastAccess: now, tracer: st.cfg.Tracer}
	opts := []timers.Option{timers.WithTickInterval(st.cfg.TickInterval)}
	if d := st.cfg.Rules.FeedbackDuration; d > 0 {
		opts = append(opts, timers.WithFeedbackDuration(d))
	}
	s.scheduler = timers.New(s.dispatchScheduled, opts...)
	engine := game.NewEngine(st.cfg.Rules, st.cfg.Content, rand.New(rand.NewSource(seed)))
	s.machine = game.NewMachine(engine, s.scheduler.Observe)
	return s, nil
}

// newSeed draws a seed from crypto/rand.
func newSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
