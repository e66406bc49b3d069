package types

type AgentConfig struct {
	Episodes    int
	Horizon     int
	Policy      Policy
	Environment Environment
}

// RL Agent configured with the corresponding
// policy and environment
type Agent struct {
	config *AgentConfig
	// collects the traces of the run
	// Only populated if the Run function is invoked
	traces      []*Trace
	policy      Policy
	environment Environment
}

// Instantiates a new Agent
func NewAgent(config *AgentConfig) *Agent {
	return &Agent{
		config:      config,
		traces:      make([]*Trace, config.Episodes),
		policy:      config.Policy,
		environment: config.Environment,
	}
}

// Run the agent for the specified number of episodes and horizon
func (a *Agent) Run() {
	for i := 0; i < a.config.Episodes; i++ {
		a.traces[i] = a.RunEpisode(i)
	}
}

func (a *Agent) Traces() []*Trace {
	return a.traces
}

// RunEpisode runs a single episode and returns the resulting trace.
// The episode stops at the horizon, at a terminal state, or when the
// policy has no action to offer.
func (a *Agent) RunEpisode(episode int) *Trace {
	state := a.environment.Reset()
	trace := NewTrace()

	for i := 0; i < a.config.Horizon; i++ {
		actions := state.Actions()
		if state.Terminal() || len(actions) == 0 {
			break
		}
		nextAction, ok := a.policy.NextAction(i, state, actions)
		if !ok {
			break
		}
		nextState, reward := a.environment.Step(nextAction)
		a.policy.Update(i, state, nextAction, reward, nextState)

		trace.Append(i, state, nextAction, reward, nextState)
		state = nextState
	}
	a.policy.UpdateIteration(episode, trace)

	return trace
}
