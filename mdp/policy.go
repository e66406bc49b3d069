package mdp

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Policy maps every state to an action index
type Policy []int

// ExtractPolicy returns the greedy policy for values. Among actions with
// the same Bellman value the lowest index is chosen.
func ExtractPolicy(m *Model, values []float64) (Policy, error) {
	if m == nil {
		return nil, invalid("model", "is nil")
	}
	q, err := m.QValues(values)
	if err != nil {
		return nil, err
	}
	policy := make(Policy, m.numStates)
	actionValues := make([]float64, m.numActions)
	for s := range policy {
		for a := range q {
			actionValues[a] = q[a][s]
		}
		policy[s] = floats.MaxIdx(actionValues)
	}
	return policy, nil
}

// Transition returns the state to state matrix obtained by following
// the policy in m
func (p Policy) Transition(m *Model) (*mat.Dense, error) {
	if m == nil {
		return nil, invalid("model", "is nil")
	}
	if err := p.check(m); err != nil {
		return nil, err
	}
	t := mat.NewDense(m.numStates, m.numStates, nil)
	for s, a := range p {
		t.SetRow(s, m.transition[a].RawRowView(s))
	}
	return t, nil
}

func (p Policy) check(m *Model) error {
	if len(p) != m.numStates {
		return invalid("policy", "has length %d, expected %d states", len(p), m.numStates)
	}
	for s, a := range p {
		if a < 0 || a >= m.numActions {
			return invalid("policy", "action %d at state %d is out of range", a, s)
		}
	}
	return nil
}
