package types

import (
	"encoding/json"
	"math"
)

// Trace of an episode as (state, action, reward, nextState) steps
type Trace struct {
	states     []State
	actions    []Action
	rewards    []float64
	nextStates []State
}

func NewTrace() *Trace {
	return &Trace{
		states:     make([]State, 0),
		actions:    make([]Action, 0),
		rewards:    make([]float64, 0),
		nextStates: make([]State, 0),
	}
}

func (t *Trace) Append(step int, state State, action Action, reward float64, nextState State) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.rewards = append(t.rewards, reward)
	t.nextStates = append(t.nextStates, nextState)
}

func (t *Trace) Len() int {
	return len(t.states)
}

func (t *Trace) Get(i int) (State, Action, float64, State, bool) {
	if i < 0 || i >= len(t.states) {
		return nil, nil, 0, nil, false
	}
	return t.states[i], t.actions[i], t.rewards[i], t.nextStates[i], true
}

func (t *Trace) Last() (State, Action, float64, State, bool) {
	return t.Get(len(t.states) - 1)
}

// Return is the discounted sum of the rewards collected in the trace
func (t *Trace) Return(discount float64) float64 {
	total := 0.0
	for i, r := range t.rewards {
		total += math.Pow(discount, float64(i)) * r
	}
	return total
}

type traceStep struct {
	State     string  `json:"state"`
	Action    string  `json:"action"`
	Reward    float64 `json:"reward"`
	NextState string  `json:"next_state"`
}

func (t *Trace) MarshalJSON() ([]byte, error) {
	steps := make([]traceStep, t.Len())
	for i := range steps {
		steps[i] = traceStep{
			State:     t.states[i].Hash(),
			Action:    t.actions[i].Hash(),
			Reward:    t.rewards[i],
			NextState: t.nextStates[i].Hash(),
		}
	}
	return json.Marshal(steps)
}
