// Package mdp holds a finite Markov Decision Process and the dynamic
// programming routines over it: value iteration and greedy policy
// extraction.
package mdp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowTolerance is how far a transition row may sum away from 1
const RowTolerance = 1e-5

// Model is an immutable finite MDP. Transitions are indexed
// [action][state][nextState] and rewards [action][state].
// Instances are only obtained through NewModel.
type Model struct {
	numActions int
	numStates  int

	// one numStates x numStates matrix per action
	transition []*mat.Dense

	// numActions x numStates
	reward *mat.Dense

	discount float64
}

// NewModel validates the tensors and copies them into the model.
// The number of actions and states is derived from the transition shape
// and the reward shape must agree with it.
func NewModel(transition [][][]float64, reward [][]float64, discount float64) (*Model, error) {
	numActions := len(transition)
	if numActions == 0 {
		return nil, invalid("transition", "rank 3 tensor expected, got no actions")
	}
	numStates := len(transition[0])
	if numStates == 0 {
		return nil, invalid("transition", "rank 3 tensor expected, got no states")
	}

	m := &Model{
		numActions: numActions,
		numStates:  numStates,
		transition: make([]*mat.Dense, numActions),
		discount:   discount,
	}

	for a, rows := range transition {
		if len(rows) != numStates {
			return nil, invalid("transition", "action %d has %d rows, expected %d", a, len(rows), numStates)
		}
		dense := mat.NewDense(numStates, numStates, nil)
		for s, row := range rows {
			if len(row) != numStates {
				return nil, invalid("transition", "row (%d, %d) has length %d, expected %d", a, s, len(row), numStates)
			}
			for next, p := range row {
				if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
					return nil, invalid("transition", "entry (%d, %d, %d) = %v is not a probability", a, s, next, p)
				}
			}
			if sum := floats.Sum(row); math.Abs(sum-1) > RowTolerance {
				return nil, invalid("transition", "row (%d, %d) sums to %v, expected 1", a, s, sum)
			}
			dense.SetRow(s, row)
		}
		m.transition[a] = dense
	}

	if len(reward) != numActions {
		return nil, invalid("reward", "has %d rows, expected %d actions", len(reward), numActions)
	}
	m.reward = mat.NewDense(numActions, numStates, nil)
	for a, row := range reward {
		if len(row) != numStates {
			return nil, invalid("reward", "row %d has length %d, expected %d states", a, len(row), numStates)
		}
		for s, r := range row {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return nil, invalid("reward", "entry (%d, %d) = %v is not finite", a, s, r)
			}
		}
		m.reward.SetRow(a, row)
	}

	if math.IsNaN(discount) || discount < 0 || discount >= 1 {
		return nil, invalid("discount", "%v is outside [0, 1)", discount)
	}
	return m, nil
}

func (m *Model) NumActions() int { return m.numActions }

func (m *Model) NumStates() int { return m.numStates }

func (m *Model) Discount() float64 { return m.discount }

// Transition returns the probability of reaching next from s under a
func (m *Model) Transition(a, s, next int) float64 {
	return m.transition[a].At(s, next)
}

// TransitionRow returns a copy of the successor distribution of (a, s)
func (m *Model) TransitionRow(a, s int) []float64 {
	return mat.Row(nil, s, m.transition[a])
}

func (m *Model) Reward(a, s int) float64 {
	return m.reward.At(a, s)
}

// QValues evaluates the Bellman right hand side
// R[a,s] + discount * sum_s' T[a,s,s'] V[s'] for every action and state
func (m *Model) QValues(values []float64) ([][]float64, error) {
	if err := m.checkValues(values); err != nil {
		return nil, err
	}
	return m.qValues(values), nil
}

func (m *Model) qValues(values []float64) [][]float64 {
	v := mat.NewVecDense(m.numStates, values)
	expected := mat.NewVecDense(m.numStates, nil)
	q := make([][]float64, m.numActions)
	for a := 0; a < m.numActions; a++ {
		expected.MulVec(m.transition[a], v)
		q[a] = make([]float64, m.numStates)
		floats.AddScaledTo(q[a], m.reward.RawRowView(a), m.discount, expected.RawVector().Data)
	}
	return q
}

func (m *Model) checkValues(values []float64) error {
	if len(values) != m.numStates {
		return invalid("value function", "has length %d, expected %d states", len(values), m.numStates)
	}
	for s, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalid("value function", "entry %d = %v is not finite", s, v)
		}
	}
	return nil
}
