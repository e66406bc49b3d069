package policies

import (
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/types"
	"golang.org/x/exp/rand"
)

// QLearningPolicy is epsilon greedy tabular Q-learning
type QLearningPolicy struct {
	qTable  *QTable
	alpha   float64
	gamma   float64
	epsilon float64
	rand    *rand.Rand
}

var _ types.Policy = &QLearningPolicy{}

func NewQLearningPolicy(alpha, gamma, epsilon float64, seed uint64) *QLearningPolicy {
	return &QLearningPolicy{
		qTable:  NewQTable(),
		alpha:   alpha,
		gamma:   gamma,
		epsilon: epsilon,
		rand:    rand.New(rand.NewSource(seed)),
	}
}

func (q *QLearningPolicy) QTable() *QTable {
	return q.qTable
}

func (q *QLearningPolicy) Reset() {
	q.qTable = NewQTable()
}

func (q *QLearningPolicy) UpdateIteration(_ int, _ *types.Trace) {}

func (q *QLearningPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	if q.rand.Float64() < q.epsilon {
		return actions[q.rand.Intn(len(actions))], true
	}

	actionsMap := make(map[string]types.Action)
	availableActions := make([]string, len(actions))
	for i, a := range actions {
		aHash := a.Hash()
		actionsMap[aHash] = a
		availableActions[i] = aHash
	}
	maxAction, _ := q.qTable.MaxAmong(state.Hash(), availableActions, 0)
	return actionsMap[maxAction], true
}

// Update moves Q(s, a) towards r + gamma * max Q(s'), terminal states
// having no future value
func (q *QLearningPolicy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	stateHash := state.Hash()
	actionHash := action.Hash()

	nextVal := 0.0
	if !nextState.Terminal() {
		nextActions := make([]string, 0)
		for _, a := range nextState.Actions() {
			nextActions = append(nextActions, a.Hash())
		}
		_, nextVal = q.qTable.MaxAmong(nextState.Hash(), nextActions, 0)
	}
	curVal := q.qTable.Get(stateHash, actionHash, 0)
	q.qTable.Set(stateHash, actionHash, (1-q.alpha)*curVal+q.alpha*(reward+q.gamma*nextVal))
}

// Greedy policy of the learned table over the given states
func (q *QLearningPolicy) Greedy(states []types.State) mdp.Policy {
	return q.qTable.Greedy(states)
}
