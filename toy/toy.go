// Package toy contains the four state, two action example MDP
package toy

import "github.com/zeu5/mdp-dp-rl/mdp"

// Discount of the toy MDP
const Discount = 0.9

// Transitions indexed [action][state][nextState]
func Transitions() [][][]float64 {
	return [][][]float64{
		{
			{0.5, 0.5, 0, 0},
			{0, 1, 0, 0},
			{0.5, 0.5, 0, 0},
			{0, 1, 0, 0},
		},
		{
			{1, 0, 0, 0},
			{0.5, 0, 0, 0.5},
			{0.5, 0, 0.5, 0},
			{0, 0, 0.5, 0.5},
		},
	}
}

// Rewards indexed [action][state]
func Rewards() [][]float64 {
	return [][]float64{
		{0, 0, 10, 10},
		{0, 0, 10, 10},
	}
}

// NewModel builds the toy MDP with the default discount
func NewModel() (*mdp.Model, error) {
	return mdp.NewModel(Transitions(), Rewards(), Discount)
}
