package mdp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeu5/mdp-dp-rl/mdp"
	"github.com/zeu5/mdp-dp-rl/toy"
)

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mdp.ErrValidation))
	var vErr *mdp.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, field, vErr.Field)
}

func TestNewModelToy(t *testing.T) {
	m, err := toy.NewModel()
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumActions())
	assert.Equal(t, 4, m.NumStates())
	assert.Equal(t, 0.9, m.Discount())
	assert.Equal(t, 0.5, m.Transition(1, 1, 3))
	assert.Equal(t, 10.0, m.Reward(0, 2))
	assert.Equal(t, []float64{0.5, 0, 0.5, 0}, m.TransitionRow(1, 2))
}

func TestNewModelRejectsNonStochasticRow(t *testing.T) {
	transition := toy.Transitions()
	transition[1][2] = []float64{0.4, 0, 0.5, 0}

	_, err := mdp.NewModel(transition, toy.Rewards(), 0.9)
	requireValidationError(t, err, "transition")
}

func TestNewModelAcceptsRowWithinTolerance(t *testing.T) {
	transition := toy.Transitions()
	transition[0][0] = []float64{0.5, 0.500004, 0, 0}

	_, err := mdp.NewModel(transition, toy.Rewards(), 0.9)
	assert.NoError(t, err)
}

func TestNewModelRejectsNegativeProbability(t *testing.T) {
	transition := toy.Transitions()
	transition[0][1] = []float64{-0.5, 1.5, 0, 0}

	_, err := mdp.NewModel(transition, toy.Rewards(), 0.9)
	requireValidationError(t, err, "transition")
}

func TestNewModelDiscount(t *testing.T) {
	for _, discount := range []float64{-0.1, 1.0, 1.5} {
		_, err := mdp.NewModel(toy.Transitions(), toy.Rewards(), discount)
		requireValidationError(t, err, "discount")
	}
	for _, discount := range []float64{0, 0.5, 0.99} {
		_, err := mdp.NewModel(toy.Transitions(), toy.Rewards(), discount)
		assert.NoError(t, err, "discount %v", discount)
	}
}

func TestNewModelShapes(t *testing.T) {
	cases := []struct {
		name       string
		transition [][][]float64
		reward     [][]float64
		field      string
	}{
		{
			name:       "no actions",
			transition: [][][]float64{},
			reward:     toy.Rewards(),
			field:      "transition",
		},
		{
			name:       "no states",
			transition: [][][]float64{{}},
			reward:     [][]float64{{}},
			field:      "transition",
		},
		{
			name:       "missing row",
			transition: [][][]float64{{{1, 0}, {0, 1}}, {{1, 0}}},
			reward:     [][]float64{{0, 0}, {0, 0}},
			field:      "transition",
		},
		{
			name:       "ragged row",
			transition: [][][]float64{{{1, 0}, {1}}},
			reward:     [][]float64{{0, 0}},
			field:      "transition",
		},
		{
			name:       "reward actions",
			transition: toy.Transitions(),
			reward:     [][]float64{{0, 0, 10, 10}},
			field:      "reward",
		},
		{
			name:       "reward states",
			transition: toy.Transitions(),
			reward:     [][]float64{{0, 0, 10}, {0, 0, 10}},
			field:      "reward",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := mdp.NewModel(c.transition, c.reward, 0.9)
			requireValidationError(t, err, c.field)
		})
	}
}

func TestModelDoesNotAliasInputs(t *testing.T) {
	transition := toy.Transitions()
	reward := toy.Rewards()
	m, err := mdp.NewModel(transition, reward, 0.9)
	require.NoError(t, err)

	transition[0][0][0] = 0.25
	reward[1][3] = -5
	row := m.TransitionRow(0, 0)
	row[1] = 7

	assert.Equal(t, 0.5, m.Transition(0, 0, 0))
	assert.Equal(t, 0.5, m.Transition(0, 0, 1))
	assert.Equal(t, 10.0, m.Reward(1, 3))
}

func TestQValues(t *testing.T) {
	m, err := toy.NewModel()
	require.NoError(t, err)

	q, err := m.QValues([]float64{0, 0, 10, 10})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{
		{0, 0, 10, 10},
		{0, 4.5, 14.5, 19},
	}, q)

	_, err = m.QValues([]float64{0, 0})
	requireValidationError(t, err, "value function")
}
