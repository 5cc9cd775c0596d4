package game

// Observer is told about every transition a Machine applies.
type Observer func(Transition)

// Machine owns the current state of one run and applies actions to it.
// It is not safe for concurrent use; callers serialize Dispatch.
type Machine struct {
	engine    *Engine
	state     State
	observers []Observer
}

// NewMachine returns a machine in the engine's initial state.
func NewMachine(engine *Engine, observers ...Observer) *Machine {
	if engine == nil {
		panic("game: NewMachine called with nil engine")
	}
	return &Machine{
		engine:    engine,
		state:     engine.Initial(),
		observers: observers,
	}
}

// Observe registers o for all later transitions.
func (m *Machine) Observe(o Observer) {
	m.mustBeWired("Observe")
	m.observers = append(m.observers, o)
}

// Dispatch reduces a against the current state, stores the result and
// notifies observers.
func (m *Machine) Dispatch(a Action) Transition {
	m.mustBeWired("Dispatch")
	t := m.engine.Reduce(m.state, a)
	m.state = t.State
	for _, o := range m.observers {
		o(t)
	}
	return t
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mustBeWired("State")
	return m.state.Clone()
}

// A nil or zero Machine is a wiring bug; fail at the call site.
func (m *Machine) mustBeWired(op string) {
	if m == nil || m.engine == nil {
		panic("game: " + op + " on a Machine not built with NewMachine")
	}
}
