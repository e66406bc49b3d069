package types

import (
	"fmt"
	"path"
	"strconv"

	"github.com/zeu5/mdp-dp-rl/util"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ReturnAnalyzer records the discounted return of every episode
type ReturnAnalyzer struct {
	discount float64
	returns  []float64
}

var _ Analyzer = &ReturnAnalyzer{}

func NewReturnAnalyzer(discount float64) *ReturnAnalyzer {
	return &ReturnAnalyzer{
		discount: discount,
		returns:  make([]float64, 0),
	}
}

func (r *ReturnAnalyzer) Analyze(_ int, _ int, _ string, trace *Trace) {
	r.returns = append(r.returns, trace.Return(r.discount))
}

func (r *ReturnAnalyzer) DataSet() DataSet {
	returns := make([]float64, len(r.returns))
	copy(returns, r.returns)
	return returns
}

func (r *ReturnAnalyzer) Reset() {
	r.returns = make([]float64, 0)
}

// ReturnComparator plots the returns of every experiment smoothed over
// window episodes and records the raw returns as json
func ReturnComparator(plotPath string, window int) Comparator {
	return func(run int, names []string, ds []DataSet) error {
		raw := make(map[string][]float64)
		series := make([][]float64, len(names))
		for i, name := range names {
			returns, ok := ds[i].([]float64)
			if !ok {
				return fmt.Errorf("dataset of %s is %T, not returns", name, ds[i])
			}
			raw[name] = returns
			series[i] = MovingAverage(returns, window)
		}
		if err := util.WriteJSON(path.Join(plotPath, strconv.Itoa(run)+"_returns.json"), raw); err != nil {
			return err
		}
		return SaveLinePlot(path.Join(plotPath, strconv.Itoa(run)+"_returns.png"), "Comparison", "Episode", "Return", names, series)
	}
}

// MovingAverage of values over the trailing window, shorter at the start
func MovingAverage(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}
	averages := make([]float64, len(values))
	for i := range values {
		from := max(0, i-window+1)
		averages[i] = floats.Sum(values[from:i+1]) / float64(i+1-from)
	}
	return averages
}

// SaveLinePlot draws one line per series, x being the index in the series
func SaveLinePlot(figPath, title, xLabel, yLabel string, names []string, series [][]float64) error {
	if len(names) != len(series) {
		return fmt.Errorf("%d names for %d series", len(names), len(series))
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	for i, values := range series {
		points := make(plotter.XYs, len(values))
		for j, v := range values {
			points[j] = plotter.XY{
				X: float64(j),
				Y: v,
			}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", names[i], err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(names[i], line)
	}
	return p.Save(8*vg.Inch, 8*vg.Inch, figPath)
}
