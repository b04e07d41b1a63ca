// Package validity holds the per-run validation report. A Validity is
// created for every validation pass and handed to event handlers by
// reference; IsValid always rescans the current states.
package validity

import "strings"

// Labels returned by ValidState.
const (
	StateValid   = "valid"
	StateInvalid = "invalid"
)

// State is the outcome of one rule check.
type State struct {
	state   bool
	message string
}

// NewState builds a rule outcome.
func NewState(state bool, message string) *State {
	return &State{state: state, message: message}
}

// State reports whether the check passed.
func (s *State) State() bool {
	return s != nil && s.state
}

func (s *State) SetState(state bool) {
	if s != nil {
		s.state = state
	}
}

func (s *State) Message() string {
	if s == nil {
		return ""
	}
	return s.message
}

func (s *State) SetMessage(message string) {
	if s != nil {
		s.message = message
	}
}

// Validity is an ordered collection of named states.
type Validity struct {
	names  []string
	states map[string]*State

	customValidState string
	customMessage    string
}

// New creates an empty report.
func New() *Validity {
	return &Validity{states: make(map[string]*State)}
}

// AddState records state under name. A repeated name replaces the earlier
// state but keeps its original position. Nil states are recorded as
// failing with no message.
func (v *Validity) AddState(name string, state *State) {
	if state == nil {
		state = NewState(false, "")
	}
	if v.states == nil {
		v.states = make(map[string]*State)
	}
	if _, exists := v.states[name]; !exists {
		v.names = append(v.names, name)
	}
	v.states[name] = state
}

// GetState returns the state recorded under name.
func (v *Validity) GetState(name string) (*State, bool) {
	state, ok := v.states[name]
	return state, ok
}

// GetStates returns the recorded states in insertion order.
func (v *Validity) GetStates() []*State {
	out := make([]*State, 0, len(v.names))
	for _, name := range v.names {
		out = append(out, v.states[name])
	}
	return out
}

// Names returns the recorded rule names in insertion order.
func (v *Validity) Names() []string {
	return append([]string(nil), v.names...)
}

// Len reports the number of recorded states.
func (v *Validity) Len() int {
	return len(v.names)
}

// IsValid scans every recorded state. The result is never cached.
func (v *Validity) IsValid() bool {
	for _, name := range v.names {
		if !v.states[name].State() {
			return false
		}
	}
	return true
}

// Messages returns the messages of failing states in order, skipping blanks.
func (v *Validity) Messages() []string {
	var out []string
	for _, name := range v.names {
		state := v.states[name]
		if state.State() {
			continue
		}
		if msg := strings.TrimSpace(state.Message()); msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// SetCustomValidState overrides the label returned by ValidState. Pass an
// empty string to go back to the computed label.
func (v *Validity) SetCustomValidState(state string) {
	v.customValidState = strings.TrimSpace(state)
}

// ValidState returns the custom state label when set, otherwise "valid" or
// "invalid" from a fresh scan.
func (v *Validity) ValidState() string {
	if v.customValidState != "" {
		return v.customValidState
	}
	if v.IsValid() {
		return StateValid
	}
	return StateInvalid
}

func (v *Validity) SetCustomMessage(message string) {
	v.customMessage = message
}

func (v *Validity) CustomMessage() string {
	return v.customMessage
}
