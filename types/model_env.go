package types

import (
	"fmt"
	"strconv"

	"github.com/zeu5/mdp-dp-rl/mdp"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ModelEnvironment simulates episodes of a finite MDP by sampling
// successors from its transition rows
type ModelEnvironment struct {
	model   *mdp.Model
	start   int
	states  []*ModelState
	actions []Action
	cur     *ModelState
	src     rand.Source
}

var _ Environment = &ModelEnvironment{}

// NewModelEnvironment creates an environment whose episodes begin in the
// start state. Action names are optional and default to the action index.
func NewModelEnvironment(m *mdp.Model, start int, seed uint64, actionNames ...string) (*ModelEnvironment, error) {
	if m == nil {
		return nil, &mdp.ValidationError{Field: "model", Reason: "is nil"}
	}
	if start < 0 || start >= m.NumStates() {
		return nil, &mdp.ValidationError{Field: "start", Reason: fmt.Sprintf("state %d out of range", start)}
	}
	if len(actionNames) != 0 && len(actionNames) != m.NumActions() {
		return nil, &mdp.ValidationError{Field: "actions", Reason: fmt.Sprintf("%d names for %d actions", len(actionNames), m.NumActions())}
	}

	actions := make([]Action, m.NumActions())
	for a := range actions {
		name := strconv.Itoa(a)
		if len(actionNames) != 0 {
			name = actionNames[a]
		}
		if name == "" {
			return nil, &mdp.ValidationError{Field: "actions", Reason: fmt.Sprintf("action %d has an empty name", a)}
		}
		actions[a] = &ModelAction{index: a, name: name}
	}

	states := make([]*ModelState, m.NumStates())
	for s := range states {
		states[s] = &ModelState{
			index:    s,
			actions:  actions,
			terminal: isAbsorbing(m, s),
		}
	}

	e := &ModelEnvironment{
		model:   m,
		start:   start,
		states:  states,
		actions: actions,
		src:     rand.NewSource(seed),
	}
	e.cur = states[start]
	return e, nil
}

// a state absorbs when every action loops on it with zero reward
func isAbsorbing(m *mdp.Model, s int) bool {
	for a := 0; a < m.NumActions(); a++ {
		if m.Transition(a, s, s) != 1 || m.Reward(a, s) != 0 {
			return false
		}
	}
	return true
}

func (e *ModelEnvironment) Reset() State {
	e.cur = e.states[e.start]
	return e.cur
}

func (e *ModelEnvironment) Step(a Action) (State, float64) {
	action := a.(*ModelAction)
	s := e.cur.index
	reward := e.model.Reward(action.index, s)

	next, ok := sampleuv.NewWeighted(e.model.TransitionRow(action.index, s), e.src).Take()
	if !ok {
		next = s
	}
	e.cur = e.states[next]
	return e.cur, reward
}

// States of the model in index order
func (e *ModelEnvironment) States() []State {
	states := make([]State, len(e.states))
	for i, s := range e.states {
		states[i] = s
	}
	return states
}

type ModelState struct {
	index    int
	actions  []Action
	terminal bool
}

var _ State = &ModelState{}
var _ Indexed = &ModelState{}

func (s *ModelState) Hash() string {
	return strconv.Itoa(s.index)
}

func (s *ModelState) Actions() []Action {
	return s.actions
}

func (s *ModelState) Terminal() bool {
	return s.terminal
}

func (s *ModelState) Index() int {
	return s.index
}

type ModelAction struct {
	index int
	name  string
}

var _ Action = &ModelAction{}
var _ Indexed = &ModelAction{}

func (a *ModelAction) Hash() string {
	return a.name
}

func (a *ModelAction) Index() int {
	return a.index
}
