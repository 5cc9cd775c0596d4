package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"kalimat/internal/catalog"
	"kalimat/internal/game"
	"kalimat/internal/session"
)

// App holds the server's shared dependencies.
type App struct {
	Config       Config
	IsProduction bool
	StartTime    time.Time

	Catalog  *catalog.Catalog
	Rules    game.Rules
	Sessions *session.Store

	LimiterMap     map[string]*rate.Limiter
	LimiterMutex   sync.Mutex
	RateLimitRPS   int
	RateLimitBurst int
	CookieMaxAge   time.Duration
}

// categoryRequest selects a category on the start screen.
type categoryRequest struct {
	Category string `json:"category" binding:"required"`
}

// startRequest begins a run. Mode defaults to classic.
type startRequest struct {
	Mode     string `json:"mode"`
	Category string `json:"category"`
}

// itemRequest names a dealt item.
type itemRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// dropRequest is a word dropped onto a category zone.
type dropRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Category string `json:"category" binding:"required"`
}

// answerRequest is a choice picked for a question.
type answerRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	ChoiceID string `json:"choiceId" binding:"required"`
}

// powerUpRequest spends a power-up.
type powerUpRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// gameResponse is returned by every game endpoint.
type gameResponse struct {
	State   stateView    `json:"state"`
	Cue     game.Cue     `json:"cue"`
	Changed bool         `json:"changed"`
	Points  int          `json:"points,omitempty"`
	Effect  game.PowerUp `json:"effect,omitempty"`
	Reveal  string       `json:"reveal,omitempty"`
}

// stateView is game.State as clients see it, with the dealt cards
// replaced by cardView.
type stateView struct {
	game.State
	Items []cardView `json:"items"`
}

// cardView is a dealt card without anything that tells where it belongs.
type cardView struct {
	ID         string           `json:"id"`
	Kind       catalog.Kind     `json:"kind"`
	Text       string           `json:"text"`
	Difficulty int              `json:"difficulty"`
	Tip        string           `json:"tip,omitempty"`
	Choices    []catalog.Choice `json:"choices,omitempty"`
}

// categoryView describes a category and its item count per level.
type categoryView struct {
	catalog.Category
	Levels []int       `json:"levels"`
	Items  map[int]int `json:"items"`
}
