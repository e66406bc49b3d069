package grid

import (
	"fmt"
	"math"

	"github.com/zeu5/mdp-dp-rl/mdp"
)

// MazeConfig describes a slippery grid maze. Cells are numbered row-major
// starting at the top left, and one extra absorbing state with index
// Rows*Cols follows the goal.
type MazeConfig struct {
	Rows int
	Cols int

	// Probability of moving in the chosen direction
	Intended float64

	// Probability of slipping to each side of the chosen direction
	Slip float64

	Goal          int
	GoalReward    float64
	Penalty       int
	PenaltyReward float64
	StepReward    float64

	Discount float64
}

// DefaultMazeConfig is the 4x4 maze with the goal in the bottom row and a
// penalty cell right above it
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Rows:          4,
		Cols:          4,
		Intended:      0.7,
		Slip:          0.15,
		Goal:          14,
		GoalReward:    100,
		Penalty:       9,
		PenaltyReward: -70,
		StepReward:    -1,
		Discount:      0.95,
	}
}

// NumStates including the absorbing state
func (c MazeConfig) NumStates() int {
	return c.Rows*c.Cols + 1
}

// Terminal is the index of the absorbing state
func (c MazeConfig) Terminal() int {
	return c.Rows * c.Cols
}

func (c MazeConfig) State(p Position) int {
	return p.I*c.Cols + p.J
}

func (c MazeConfig) Position(s int) Position {
	return Position{I: s / c.Cols, J: s % c.Cols}
}

// Move returns the cell reached from s when moving in direction m.
// Moving off the board leaves the agent in place.
func (c MazeConfig) Move(s int, m *Movement) int {
	p := c.Position(s)
	switch m {
	case MovementUp:
		p.I = max(0, p.I-1)
	case MovementDown:
		p.I = min(c.Rows-1, p.I+1)
	case MovementLeft:
		p.J = max(0, p.J-1)
	case MovementRight:
		p.J = min(c.Cols-1, p.J+1)
	}
	return c.State(p)
}

func (c MazeConfig) validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return &mdp.ValidationError{Field: "maze", Reason: fmt.Sprintf("%dx%d board", c.Rows, c.Cols)}
	}
	cells := c.Rows * c.Cols
	if c.Goal < 0 || c.Goal >= cells {
		return &mdp.ValidationError{Field: "maze", Reason: fmt.Sprintf("goal %d is off the board", c.Goal)}
	}
	if c.Penalty < 0 || c.Penalty >= cells || c.Penalty == c.Goal {
		return &mdp.ValidationError{Field: "maze", Reason: fmt.Sprintf("penalty %d is off the board or on the goal", c.Penalty)}
	}
	if math.Abs(c.Intended+2*c.Slip-1) > mdp.RowTolerance {
		return &mdp.ValidationError{Field: "maze", Reason: fmt.Sprintf("intended %v and slip %v do not sum to 1", c.Intended, c.Slip)}
	}
	return nil
}

// Transitions of the maze indexed [action][state][nextState]
func (c MazeConfig) Transitions() [][][]float64 {
	n := c.NumStates()
	terminal := c.Terminal()
	t := make([][][]float64, len(AllMovements))
	for a, m := range AllMovements {
		t[a] = make([][]float64, n)
		for s := 0; s < n; s++ {
			row := make([]float64, n)
			t[a][s] = row
			if s == terminal || s == c.Goal {
				row[terminal] = 1
				continue
			}
			row[c.Move(s, m)] += c.Intended
			for _, side := range m.Sides() {
				row[c.Move(s, side)] += c.Slip
			}
		}
	}
	return t
}

// Rewards of the maze indexed [action][state]. The reward of a cell does
// not depend on the action taken there.
func (c MazeConfig) Rewards() [][]float64 {
	n := c.NumStates()
	r := make([][]float64, len(AllMovements))
	for a := range r {
		r[a] = make([]float64, n)
		for s := 0; s < n; s++ {
			switch s {
			case c.Terminal():
				r[a][s] = 0
			case c.Goal:
				r[a][s] = c.GoalReward
			case c.Penalty:
				r[a][s] = c.PenaltyReward
			default:
				r[a][s] = c.StepReward
			}
		}
	}
	return r
}

// NewMaze builds the MDP described by the configuration
func NewMaze(c MazeConfig) (*mdp.Model, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return mdp.NewModel(c.Transitions(), c.Rewards(), c.Discount)
}

type Position struct {
	I int
	J int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

type Movement struct {
	Direction string
	Index     int
}

// Sides returns the two directions perpendicular to m
func (m *Movement) Sides() []*Movement {
	switch m {
	case MovementUp, MovementDown:
		return []*Movement{MovementLeft, MovementRight}
	default:
		return []*Movement{MovementUp, MovementDown}
	}
}

var (
	MovementUp    = &Movement{"Up", 0}
	MovementDown  = &Movement{"Down", 1}
	MovementLeft  = &Movement{"Left", 2}
	MovementRight = &Movement{"Right", 3}
)

// AllMovements in action index order
var AllMovements = []*Movement{
	MovementUp,
	MovementDown,
	MovementLeft,
	MovementRight,
}
