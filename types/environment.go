package types

// Environment that an agent interacts with episode by episode
type Environment interface {
	// Reset called at the start of each episode
	Reset() State
	// Step takes the action in the current state and returns the
	// next state along with the reward collected
	Step(Action) (State, float64)
}

// State of the system that RL policies observe
type State interface {
	// Indexed by the Hash
	// Should be deterministic
	Hash() string
	// Actions possible from the state
	Actions() []Action
	// Terminal states end the episode
	Terminal() bool
}

// And Action that RL policy can take
type Action interface {
	// Index of the action
	// Should be deterministic
	Hash() string
}

// Indexed states and actions expose their position in a finite model
type Indexed interface {
	Index() int
}
