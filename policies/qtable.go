package policies

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/types"
	"github.com/zeu5/mdp-dp-rl/util"
)

// QTable maps state and action hashes to values
type QTable struct {
	table map[string]map[string]float64
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
	}
}

// Get returns the value of (state, action), initialising it to def
func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) HasState(state string) bool {
	_, ok := q.table[state]
	return ok
}

// Max returns the best recorded action of state. Ties go to the
// lexicographically smallest action. ok is false for unseen states.
func (q *QTable) Max(state string) (action string, val float64, ok bool) {
	values, ok := q.table[state]
	if !ok || len(values) == 0 {
		return "", 0, false
	}
	actions := maps.Keys(values)
	slices.Sort(actions)
	action, val = q.MaxAmong(state, actions, 0)
	return action, val, true
}

// MaxAmong returns the best of the given actions, unseen actions count
// as def. The first action listed wins ties.
func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if len(actions) == 0 {
		return "", def
	}
	maxAction := ""
	maxVal := math.Inf(-1)
	for i, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		val := q.table[state][a]
		if i == 0 || val > maxVal {
			maxAction = a
			maxVal = val
		}
	}
	return maxAction, maxVal
}

// Greedy returns the action index with the highest value for every
// state, in the order of states
func (q *QTable) Greedy(states []types.State) mdp.Policy {
	policy := make(mdp.Policy, len(states))
	for i, s := range states {
		actions := s.Actions()
		hashes := make([]string, len(actions))
		for j, a := range actions {
			hashes[j] = a.Hash()
		}
		best, _ := q.MaxAmong(s.Hash(), hashes, 0)
		for j, h := range hashes {
			if h == best {
				policy[i] = j
				break
			}
		}
	}
	return policy
}

// Record writes the table as json to path
func (q *QTable) Record(path string) error {
	return util.WriteJSON(path, q.table)
}
