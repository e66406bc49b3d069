package grid

import (
	"fmt"
	"strings"

	"github.com/zeu5/mdp-dp-rl/mdp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ValueGrid lays the cell values of a maze out on the board so that
// they can be drawn as a heat map. The absorbing state is not drawn.
type ValueGrid struct {
	Values []float64
	Rows   int
	Cols   int
}

var _ plotter.GridXYZ = &ValueGrid{}

// NewValueGrid needs one value per state of the maze, terminal included
func NewValueGrid(c MazeConfig, values []float64) (*ValueGrid, error) {
	if len(values) != c.NumStates() {
		return nil, &mdp.ValidationError{Field: "value function", Reason: fmt.Sprintf("has length %d, expected %d states", len(values), c.NumStates())}
	}
	return &ValueGrid{
		Values: values,
		Rows:   c.Rows,
		Cols:   c.Cols,
	}, nil
}

func (g *ValueGrid) Dims() (int, int) {
	return g.Cols, g.Rows
}

// Z flips the rows so that row 0 of the maze ends up on top
func (g *ValueGrid) Z(c, r int) float64 {
	return g.Values[(g.Rows-1-r)*g.Cols+c]
}

func (g *ValueGrid) X(c int) float64 {
	return float64(c)
}

func (g *ValueGrid) Y(r int) float64 {
	return float64(r)
}

func (g *ValueGrid) Min() float64 {
	min := g.Values[0]
	for _, v := range g.Values[:g.Rows*g.Cols] {
		if v < min {
			min = v
		}
	}
	return min
}

func (g *ValueGrid) Max() float64 {
	max := g.Values[0]
	for _, v := range g.Values[:g.Rows*g.Cols] {
		if v > max {
			max = v
		}
	}
	return max
}

// SaveValueHeatMap draws the value function of the maze to figPath
func SaveValueHeatMap(c MazeConfig, values []float64, figPath string) error {
	g, err := NewValueGrid(c, values)
	if err != nil {
		return err
	}
	p := plot.New()
	p.Title.Text = "State values"
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"
	p.Add(plotter.NewHeatMap(g, palette.Heat(12, 1)))
	return p.Save(4*vg.Inch, 4*vg.Inch, figPath)
}

var arrows = map[*Movement]string{
	MovementUp:    "^",
	MovementDown:  "v",
	MovementLeft:  "<",
	MovementRight: ">",
}

// RenderPolicy draws the board with the action of every cell, G marks
// the goal and X the penalty cell
func RenderPolicy(c MazeConfig, policy mdp.Policy) string {
	var b strings.Builder
	for i := 0; i < c.Rows; i++ {
		for j := 0; j < c.Cols; j++ {
			s := c.State(Position{I: i, J: j})
			cell := "?"
			if s < len(policy) && policy[s] >= 0 && policy[s] < len(AllMovements) {
				cell = arrows[AllMovements[policy[s]]]
			}
			switch s {
			case c.Goal:
				cell = "G"
			case c.Penalty:
				cell = "X" + cell
			}
			fmt.Fprintf(&b, "%-3s", cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
