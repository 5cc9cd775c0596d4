// Package game implements the word-sorting game as a pure reducer.
//
// Reduce maps a State and an Action to the next State. Actions whose
// preconditions do not hold return the state untouched; the reducer never
// errors and never panics. Machine wraps a reducer and the current state for
// a single player.
package game

import (
	"fmt"
	"math/rand"
	"slices"

	"kalimat/internal/catalog"
	"kalimat/internal/deck"
)

const (
	msgRetry   = "حاول مرة أخرى!"
	msgPointsF = "+%d نقطة!"
)

// Content is the read side of the catalog the engine deals from.
type Content interface {
	Has(category string) bool
	Targets(category string, level int) []catalog.Item
	Distractors(category string) []catalog.Item
}

// Engine reduces actions under a fixed ruleset and content set. Its random
// source is consumed only when a level is dealt, so an Engine is not safe
// for concurrent use.
type Engine struct {
	rules   Rules
	content Content
	rng     deck.Source
}

// NewEngine builds an engine. A nil rng falls back to a time-independent
// fixed seed, which keeps tests reproducible.
func NewEngine(rules Rules, content Content, rng deck.Source) *Engine {
	if content == nil {
		panic("game: NewEngine called with nil content")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{rules: rules, content: content, rng: rng}
}

// Initial returns the engine's starting state.
func (e *Engine) Initial() State { return Initial(e.rules) }

// Reduce computes the transition for a applied to s.
func (e *Engine) Reduce(s State, a Action) Transition {
	switch a := a.(type) {
	case StartGame:
		return e.startGame(s, a)
	case SelectCategory:
		return e.selectCategory(s, a)
	case SubmitCorrect:
		return e.submitCorrect(s, a)
	case SubmitWrong:
		return e.submitWrong(s)
	case ContinueAfterLevel:
		return e.continueAfterLevel(s)
	case UsePowerUp:
		return e.usePowerUp(s, a)
	case TickTimer:
		return e.tick(s)
	case HideFeedback:
		return hideFeedback(s)
	case ShowFeedback:
		return showFeedback(s, a)
	case ResetGame:
		return Transition{State: e.Initial(), Changed: true}
	default:
		return unchanged(s)
	}
}

func (e *Engine) startGame(s State, a StartGame) Transition {
	if s.Screen != ScreenStart && s.Screen != ScreenComplete {
		return unchanged(s)
	}
	if !a.Mode.valid() {
		return unchanged(s)
	}
	category := a.Category
	if category == "" {
		category = s.Category
	}
	if !e.content.Has(category) {
		return unchanged(s)
	}
	items, quota, ok := e.deal(category, 1)
	if !ok {
		return unchanged(s)
	}

	next := e.Initial()
	next.Screen = ScreenPlaying
	next.Mode = a.Mode
	next.Category = category
	next.Items = items
	next.Quota = quota
	if a.Mode == ModeTimed {
		next.TimeLeft = e.rules.TimedDuration
	}
	return Transition{State: next, Changed: true}
}

func (e *Engine) selectCategory(s State, a SelectCategory) Transition {
	if s.Screen != ScreenStart || !e.content.Has(a.Category) || a.Category == s.Category {
		return unchanged(s)
	}
	s.Category = a.Category
	return Transition{State: s, Changed: true}
}

func (e *Engine) submitCorrect(s State, a SubmitCorrect) Transition {
	if s.Screen != ScreenPlaying || s.Resolved(a.ItemID) {
		return unchanged(s)
	}
	card, ok := s.Card(a.ItemID)
	if !ok || !card.Target {
		return unchanged(s)
	}

	points := e.rules.Points(card.Difficulty, s.Streak)
	if s.DoubleNext {
		points *= 2
		s.DoubleNext = false
	}
	s.Score += points
	s.Streak++
	s.CorrectIDs = append(slices.Clone(s.CorrectIDs), a.ItemID)
	s.Feedback = Feedback{Kind: FeedbackSuccess, Message: fmt.Sprintf(msgPointsF, points), Visible: true}

	t := Transition{Changed: true, FeedbackShown: true, Points: points, Cue: CueSuccess}
	if len(s.CorrectIDs) < s.Quota {
		t.State = s
		return t
	}

	if s.Level >= e.rules.TotalLevels {
		s.Screen = ScreenComplete
		t.State, t.Cue = s, CueComplete
		return t
	}
	items, quota, ok := e.deal(s.Category, s.Level+1)
	if !ok {
		// Catalog has fewer levels than the rules ask for.
		s.Screen = ScreenComplete
		t.State, t.Cue = s, CueComplete
		return t
	}
	s.Level++
	s.CorrectIDs = nil
	s.Items = items
	s.Quota = quota
	s.Screen = ScreenLevelComplete
	t.State, t.Cue = s, CueLevelUp
	return t
}

func (e *Engine) submitWrong(s State) Transition {
	if s.Screen != ScreenPlaying {
		return unchanged(s)
	}
	s.Streak = 0
	s.Feedback = Feedback{Kind: FeedbackError, Message: msgRetry, Visible: true}
	t := Transition{Changed: true, FeedbackShown: true, Cue: CueError}

	if e.livesEnabled(s) {
		s.Lives = max(s.Lives-1, 0)
		if s.Lives == 0 {
			s.Screen = ScreenComplete
			t.Cue = CueComplete
		}
	}
	t.State = s
	return t
}

func (e *Engine) livesEnabled(s State) bool {
	return s.Mode != ModeEndless && e.rules.StartingLives > 0
}

func (e *Engine) continueAfterLevel(s State) Transition {
	if s.Screen != ScreenLevelComplete {
		return unchanged(s)
	}
	s.Screen = ScreenPlaying
	return Transition{State: s, Changed: true}
}

func (e *Engine) usePowerUp(s State, a UsePowerUp) Transition {
	if s.Screen != ScreenPlaying || s.PowerUps.Count(a.Kind) <= 0 {
		return unchanged(s)
	}
	// Only timed mode has a clock to freeze.
	if a.Kind == PowerUpFreeze && s.Mode != ModeTimed {
		return unchanged(s)
	}
	s.PowerUps = s.PowerUps.spend(a.Kind)
	t := Transition{Changed: true, FeedbackShown: true, Cue: CueHint, Effect: a.Kind}
	msg := a.Kind.Label()

	switch a.Kind {
	case PowerUpFreeze:
		s.FreezeTicks = e.rules.FreezeTicks
	case PowerUpHint:
		i := slices.IndexFunc(s.Items, func(c Card) bool { return c.Target && !s.Resolved(c.ID) })
		if i >= 0 {
			t.RevealID = s.Items[i].ID
			msg += ": " + s.Items[i].Text
		}
	case PowerUpDoublePoints:
		s.DoubleNext = true
	}
	s.Feedback = Feedback{Kind: FeedbackHint, Message: msg, Visible: true}
	t.State = s
	return t
}

func (e *Engine) tick(s State) Transition {
	if s.Screen != ScreenPlaying || s.Mode != ModeTimed {
		return unchanged(s)
	}
	t := Transition{Changed: true}
	if s.FreezeTicks > 0 {
		s.FreezeTicks--
		t.State = s
		return t
	}
	s.TimeLeft = max(s.TimeLeft-1, 0)
	if s.TimeLeft == 0 {
		s.Screen = ScreenComplete
		t.Cue = CueComplete
	}
	t.State = s
	return t
}

func hideFeedback(s State) Transition {
	if !s.Feedback.Visible {
		return unchanged(s)
	}
	s.Feedback.Visible = false
	return Transition{State: s, Changed: true}
}

func showFeedback(s State, a ShowFeedback) Transition {
	if a.Message == "" || a.Kind < FeedbackSuccess || a.Kind > FeedbackHint {
		return unchanged(s)
	}
	s.Feedback = Feedback{Kind: a.Kind, Message: a.Message, Visible: true}
	return Transition{State: s, Changed: true, FeedbackShown: true}
}

// deal lays out the cards of a level: every target once, distractors drawn
// fresh from other categories, all shuffled. Questions are dealt without
// distractors and with their choices shuffled.
func (e *Engine) deal(category string, level int) ([]Card, int, bool) {
	targets := e.content.Targets(category, level)
	if len(targets) == 0 {
		return nil, 0, false
	}

	var pool []catalog.Item
	if targets[0].Kind == catalog.KindWord {
		pool = e.content.Distractors(category)
	}
	hand := deck.Deal(e.rng, targets, pool, e.rules.Distractors, func(it catalog.Item) string { return it.ID })

	isTarget := make(map[string]struct{}, len(targets))
	for _, it := range targets {
		isTarget[it.ID] = struct{}{}
	}
	cards := make([]Card, len(hand))
	for i, it := range hand {
		if it.Kind == catalog.KindQuestion {
			it.Choices = deck.Shuffle(e.rng, it.Choices)
		}
		_, target := isTarget[it.ID]
		cards[i] = Card{Item: it, Target: target}
	}
	return cards, min(e.rules.Quota(level), len(isTarget)), true
}
