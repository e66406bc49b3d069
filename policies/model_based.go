package policies

import (
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/types"
	"golang.org/x/exp/rand"
)

// ModelBasedPolicy estimates the transition and reward tensors from the
// observed steps and re-plans with value iteration after every episode.
// States and actions must implement types.Indexed.
type ModelBasedPolicy struct {
	numStates  int
	numActions int
	gamma      float64
	epsilon    float64
	planning   []mdp.Option

	// counts[a][s][s'] of observed transitions
	counts     [][][]float64
	rewardSums [][]float64
	visits     [][]float64

	values []float64
	policy mdp.Policy
	err    error

	rand *rand.Rand
}

var _ types.Policy = &ModelBasedPolicy{}

// NewModelBasedPolicy creates the learner, planning options are passed
// on to every value iteration run
func NewModelBasedPolicy(numStates, numActions int, gamma, epsilon float64, seed uint64, planning ...mdp.Option) *ModelBasedPolicy {
	p := &ModelBasedPolicy{
		numStates:  numStates,
		numActions: numActions,
		gamma:      gamma,
		epsilon:    epsilon,
		planning:   planning,
		rand:       rand.New(rand.NewSource(seed)),
	}
	p.Reset()
	return p
}

func (p *ModelBasedPolicy) Reset() {
	p.counts = make([][][]float64, p.numActions)
	p.rewardSums = make([][]float64, p.numActions)
	p.visits = make([][]float64, p.numActions)
	for a := 0; a < p.numActions; a++ {
		p.counts[a] = make([][]float64, p.numStates)
		for s := range p.counts[a] {
			p.counts[a][s] = make([]float64, p.numStates)
		}
		p.rewardSums[a] = make([]float64, p.numStates)
		p.visits[a] = make([]float64, p.numStates)
	}
	p.values = make([]float64, p.numStates)
	p.policy = nil
	p.err = nil
}

func (p *ModelBasedPolicy) NextAction(step int, state types.State, actions []types.Action) (types.Action, bool) {
	if len(actions) == 0 {
		return nil, false
	}
	if p.policy == nil || p.rand.Float64() < p.epsilon {
		return actions[p.rand.Intn(len(actions))], true
	}
	greedy := p.policy[state.(types.Indexed).Index()]
	for _, a := range actions {
		if a.(types.Indexed).Index() == greedy {
			return a, true
		}
	}
	return actions[p.rand.Intn(len(actions))], true
}

func (p *ModelBasedPolicy) Update(step int, state types.State, action types.Action, reward float64, nextState types.State) {
	s := state.(types.Indexed).Index()
	a := action.(types.Indexed).Index()
	next := nextState.(types.Indexed).Index()
	p.counts[a][s][next] += 1
	p.rewardSums[a][s] += reward
	p.visits[a][s] += 1
}

// UpdateIteration re-plans on the current estimate. Value iteration is
// warm started from the previous value function.
func (p *ModelBasedPolicy) UpdateIteration(_ int, _ *types.Trace) {
	model, err := p.Estimate()
	if err != nil {
		p.err = err
		return
	}
	result, err := mdp.ValueIteration(model, p.values, p.planning...)
	if err != nil {
		p.err = err
		return
	}
	policy, err := mdp.ExtractPolicy(model, result.Values)
	if err != nil {
		p.err = err
		return
	}
	p.values = result.Values
	p.policy = policy
}

// Estimate builds the maximum likelihood model of the observed steps.
// Pairs never tried are modelled as a zero reward self loop.
func (p *ModelBasedPolicy) Estimate() (*mdp.Model, error) {
	transition := make([][][]float64, p.numActions)
	reward := make([][]float64, p.numActions)
	for a := 0; a < p.numActions; a++ {
		transition[a] = make([][]float64, p.numStates)
		reward[a] = make([]float64, p.numStates)
		for s := 0; s < p.numStates; s++ {
			row := make([]float64, p.numStates)
			n := p.visits[a][s]
			if n == 0 {
				row[s] = 1
			} else {
				for next, c := range p.counts[a][s] {
					row[next] = c / n
				}
				reward[a][s] = p.rewardSums[a][s] / n
			}
			transition[a][s] = row
		}
	}
	return mdp.NewModel(transition, reward, p.gamma)
}

// Policy is the greedy policy of the last plan, nil before the first episode
func (p *ModelBasedPolicy) Policy() mdp.Policy {
	return p.policy
}

// Values is the value function of the last plan
func (p *ModelBasedPolicy) Values() []float64 {
	return p.values
}

// Err reports the last planning failure
func (p *ModelBasedPolicy) Err() error {
	return p.err
}
