package mdp

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the convergence threshold used when none is given
const DefaultTolerance = 0.01

// Result of a value iteration run
type Result struct {
	// Value function after the last sweep
	Values []float64

	// 0-based index of the sweep that stopped the loop
	Iterations int

	// L1 distance between the last two value functions
	Epsilon float64

	// true when Epsilon dropped to the tolerance, false when the cap was hit
	Converged bool

	// Epsilon of every sweep, in order
	History []float64
}

type viConfig struct {
	maxIterations int
	tolerance     float64
	verbose       io.Writer
}

// Option configures ValueIteration
type Option func(*viConfig)

// WithMaxIterations caps the number of sweeps. n <= 0 leaves it unbounded.
func WithMaxIterations(n int) Option {
	return func(c *viConfig) {
		c.maxIterations = n
	}
}

func WithTolerance(tolerance float64) Option {
	return func(c *viConfig) {
		c.tolerance = tolerance
	}
}

// WithVerbose writes the value function and epsilon of every sweep to w
func WithVerbose(w io.Writer) Option {
	return func(c *viConfig) {
		c.verbose = w
	}
}

// ValueIteration applies synchronous Bellman optimality backups starting
// from initial until the L1 norm of the update is at most the tolerance
// or the iteration cap is reached. Every sweep reads only the previous
// value function and initial is never modified.
//
// With a zero tolerance and no cap the loop only stops once the values
// stop changing in floating point.
func ValueIteration(m *Model, initial []float64, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, invalid("model", "is nil")
	}
	if err := m.checkValues(initial); err != nil {
		return nil, err
	}
	cfg := &viConfig{tolerance: DefaultTolerance}
	for _, o := range opts {
		o(cfg)
	}
	if math.IsNaN(cfg.tolerance) || cfg.tolerance < 0 {
		return nil, invalid("tolerance", "%v is negative", cfg.tolerance)
	}

	values := make([]float64, len(initial))
	copy(values, initial)
	result := &Result{
		History: make([]float64, 0),
	}

	for n := 0; cfg.maxIterations <= 0 || n < cfg.maxIterations; n++ {
		next := m.backup(values)
		epsilon := floats.Distance(next, values, 1)

		result.Iterations = n
		result.Epsilon = epsilon
		result.History = append(result.History, epsilon)
		if cfg.verbose != nil {
			fmt.Fprintf(cfg.verbose, "Iteration: %d, V: %v, epsilon: %v\n", n, next, epsilon)
		}

		values = next
		if epsilon <= cfg.tolerance {
			result.Converged = true
			break
		}
	}
	result.Values = values
	return result, nil
}

// backup returns max_a of the Bellman right hand side for every state
func (m *Model) backup(values []float64) []float64 {
	q := m.qValues(values)
	next := q[0]
	for a := 1; a < m.numActions; a++ {
		for s, v := range q[a] {
			if v > next[s] {
				next[s] = v
			}
		}
	}
	return next
}
