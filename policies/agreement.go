package policies

import (
	"fmt"

	"github.com/zeu5/mdp-dp-rl/mdp"
)

// PolicyAgreement is the fraction of states on which both policies pick
// the same action. When states are given only those are compared.
func PolicyAgreement(a, b mdp.Policy, states ...int) (float64, error) {
	if len(a) != len(b) {
		return 0, &mdp.ValidationError{Field: "policy", Reason: fmt.Sprintf("lengths %d and %d differ", len(a), len(b))}
	}
	if len(states) == 0 {
		states = make([]int, len(a))
		for s := range states {
			states[s] = s
		}
	}
	if len(states) == 0 {
		return 1, nil
	}
	same := 0
	for _, s := range states {
		if s < 0 || s >= len(a) {
			return 0, &mdp.ValidationError{Field: "states", Reason: fmt.Sprintf("state %d out of range", s)}
		}
		if a[s] == b[s] {
			same++
		}
	}
	return float64(same) / float64(len(states)), nil
}

// DecisiveStates lists the states whose best action under values beats
// every other action by more than gap. States where actions tie are left
// out since any of them is optimal there.
func DecisiveStates(m *mdp.Model, values []float64, gap float64) ([]int, error) {
	q, err := m.QValues(values)
	if err != nil {
		return nil, err
	}
	states := make([]int, 0, m.NumStates())
	for s := 0; s < m.NumStates(); s++ {
		best, second := 0, -1
		for a := 1; a < m.NumActions(); a++ {
			switch {
			case q[a][s] > q[best][s]:
				best, second = a, best
			case second < 0 || q[a][s] > q[second][s]:
				second = a
			}
		}
		if second < 0 || q[best][s]-q[second][s] > gap {
			states = append(states, s)
		}
	}
	return states, nil
}
