package game

import (
	"slices"

	"kalimat/internal/catalog"
)

// Screen is the view the host should show.
type Screen int

const (
	ScreenStart Screen = iota
	ScreenPlaying
	ScreenLevelComplete
	ScreenComplete
)

// String returns the wire name of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenLevelComplete:
		return "levelComplete"
	case ScreenComplete:
		return "complete"
	default:
		return "unknown"
	}
}

func (s Screen) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Mode selects the ruleset a run is played with.
type Mode int

const (
	ModeClassic Mode = iota
	ModeTimed
	// ModeEndless never costs lives and never runs a clock.
	ModeEndless
	modeInvalid
)

func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeTimed:
		return "timed"
	case ModeEndless:
		return "endless"
	default:
		return "unknown"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m Mode) valid() bool { return m >= ModeClassic && m < modeInvalid }

// ParseMode maps a wire name to a Mode. Unknown names report false.
func ParseMode(s string) (Mode, bool) {
	for m := ModeClassic; m < modeInvalid; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return modeInvalid, false
}

// FeedbackKind styles the toast shown after an action.
type FeedbackKind int

const (
	FeedbackNone FeedbackKind = iota
	FeedbackSuccess
	FeedbackError
	FeedbackHint
)

func (k FeedbackKind) String() string {
	switch k {
	case FeedbackNone:
		return "none"
	case FeedbackSuccess:
		return "success"
	case FeedbackError:
		return "error"
	case FeedbackHint:
		return "hint"
	default:
		return "unknown"
	}
}

func (k FeedbackKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Feedback is the transient toast. Visible implies a non-empty Message.
type Feedback struct {
	Kind    FeedbackKind `json:"kind"`
	Message string       `json:"message"`
	Visible bool         `json:"visible"`
}

// PowerUp names a limited-use modifier.
type PowerUp int

const (
	PowerUpNone PowerUp = iota
	PowerUpFreeze
	PowerUpHint
	PowerUpDoublePoints
)

func (p PowerUp) String() string {
	switch p {
	case PowerUpNone:
		return "none"
	case PowerUpFreeze:
		return "freeze"
	case PowerUpHint:
		return "hint"
	case PowerUpDoublePoints:
		return "doublePoints"
	default:
		return "unknown"
	}
}

func (p PowerUp) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Label is the Arabic name shown when the power-up is used.
func (p PowerUp) Label() string {
	switch p {
	case PowerUpFreeze:
		return "تجميد الوقت"
	case PowerUpHint:
		return "تلميح"
	case PowerUpDoublePoints:
		return "نقاط مضاعفة"
	default:
		return ""
	}
}

// ParsePowerUp maps a wire name to a PowerUp. Unknown names report false.
func ParsePowerUp(s string) (PowerUp, bool) {
	for _, p := range []PowerUp{PowerUpFreeze, PowerUpHint, PowerUpDoublePoints} {
		if p.String() == s {
			return p, true
		}
	}
	return PowerUpNone, false
}

// PowerUps holds the remaining uses of each power-up.
type PowerUps struct {
	Freeze       int `json:"freeze"`
	Hint         int `json:"hint"`
	DoublePoints int `json:"doublePoints"`
}

// Count returns the remaining uses of p.
func (pu PowerUps) Count(p PowerUp) int {
	switch p {
	case PowerUpFreeze:
		return pu.Freeze
	case PowerUpHint:
		return pu.Hint
	case PowerUpDoublePoints:
		return pu.DoublePoints
	default:
		return 0
	}
}

func (pu PowerUps) spend(p PowerUp) PowerUps {
	switch p {
	case PowerUpFreeze:
		pu.Freeze--
	case PowerUpHint:
		pu.Hint--
	case PowerUpDoublePoints:
		pu.DoublePoints--
	}
	return pu
}

// Card is an item dealt into a level. Target is false for distractors.
type Card struct {
	catalog.Item
	Target bool `json:"target"`
}

// State is one immutable snapshot of a run. The reducer never mutates a
// State it was given; slices are replaced, not appended in place.
type State struct {
	Screen      Screen   `json:"screen"`
	Mode        Mode     `json:"mode"`
	Category    string   `json:"category"`
	Level       int      `json:"level"`
	Score       int      `json:"score"`
	Streak      int      `json:"streak"`
	Lives       int      `json:"lives"`
	CorrectIDs  []string `json:"correctIds"`
	Items       []Card   `json:"items"`
	Quota       int      `json:"quota"`
	TimeLeft    int      `json:"timeLeft"`
	Feedback    Feedback `json:"feedback"`
	PowerUps    PowerUps `json:"powerUps"`
	FreezeTicks int      `json:"freezeTicks"`
	DoubleNext  bool     `json:"doubleNext"`
}

// Initial returns the state a fresh machine starts in.
func Initial(r Rules) State {
	return State{
		Screen:   ScreenStart,
		Mode:     ModeClassic,
		Category: r.DefaultCategory,
		Level:    1,
		Lives:    r.StartingLives,
		PowerUps: r.StartingPowerUps,
	}
}

// Resolved reports whether id was already placed correctly this level.
func (s State) Resolved(id string) bool {
	return slices.Contains(s.CorrectIDs, id)
}

// Card looks up a dealt card by item id.
func (s State) Card(id string) (Card, bool) {
	i := slices.IndexFunc(s.Items, func(c Card) bool { return c.ID == id })
	if i < 0 {
		return Card{}, false
	}
	return s.Items[i], true
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	s.CorrectIDs = slices.Clone(s.CorrectIDs)
	items := make([]Card, len(s.Items))
	for i, c := range s.Items {
		c.Choices = slices.Clone(c.Choices)
		items[i] = c
	}
	if s.Items == nil {
		items = nil
	}
	s.Items = items
	return s
}
