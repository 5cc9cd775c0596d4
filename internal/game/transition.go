package game

// Cue tags the outcome of a transition so the host can pick a sound.
type Cue int

const (
	CueNone Cue = iota
	CueSuccess
	CueError
	CueLevelUp
	CueComplete
	CueHint
)

func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueSuccess:
		return "success"
	case CueError:
		return "error"
	case CueLevelUp:
		return "levelUp"
	case CueComplete:
		return "complete"
	case CueHint:
		return "hint"
	default:
		return "unknown"
	}
}

func (c Cue) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Transition is the result of reducing one action.
type Transition struct {
	State State
	Cue   Cue

	// Changed is false when the action was ignored.
	Changed bool
	// FeedbackShown is set when this action put a new toast up.
	FeedbackShown bool

	Points   int
	Effect   PowerUp
	RevealID string
}

func unchanged(s State) Transition {
	return Transition{State: s}
}
