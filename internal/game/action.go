package game

// Action is a player or timer event fed to the reducer. The set is closed:
// only the types in this file implement it.
type Action interface {
	Name() string
	isAction()
}

// StartGame begins a run. An empty Category keeps the selected one.
type StartGame struct {
	Mode     Mode
	Category string
}

// SelectCategory picks the category for the next StartGame.
type SelectCategory struct {
	Category string
}

// SubmitCorrect records a target item dropped on its zone.
type SubmitCorrect struct {
	ItemID string
}

// SubmitWrong records a miss.
type SubmitWrong struct{}

// ContinueAfterLevel leaves the level-complete screen.
type ContinueAfterLevel struct{}

// UsePowerUp spends one use of Kind.
type UsePowerUp struct {
	Kind PowerUp
}

// TickTimer is one second of the timed-mode clock.
type TickTimer struct{}

// HideFeedback dismisses the toast.
type HideFeedback struct{}

// ShowFeedback displays a host-supplied toast.
type ShowFeedback struct {
	Kind    FeedbackKind
	Message string
}

// ResetGame returns to the initial state.
type ResetGame struct{}

func (StartGame) Name() string          { return "start_game" }
func (SelectCategory) Name() string     { return "select_category" }
func (SubmitCorrect) Name() string      { return "submit_correct" }
func (SubmitWrong) Name() string        { return "submit_wrong" }
func (ContinueAfterLevel) Name() string { return "continue_after_level" }
func (UsePowerUp) Name() string         { return "use_power_up" }
func (TickTimer) Name() string          { return "tick_timer" }
func (HideFeedback) Name() string       { return "hide_feedback" }
func (ShowFeedback) Name() string       { return "show_feedback" }
func (ResetGame) Name() string          { return "reset_game" }

func (StartGame) isAction()          {}
func (SelectCategory) isAction()     {}
func (SubmitCorrect) isAction()      {}
func (SubmitWrong) isAction()        {}
func (ContinueAfterLevel) isAction() {}
func (UsePowerUp) isAction()         {}
func (TickTimer) isAction()          {}
func (HideFeedback) isAction()       {}
func (ShowFeedback) isAction()       {}
func (ResetGame) isAction()          {}
