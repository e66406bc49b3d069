package toy

import "testing"

func TestNewModel(t *testing.T) {
	m, err := NewModel()
	if err != nil {
		t.Fatalf("toy model rejected: %s", err)
	}
	if m.NumStates() != 4 || m.NumActions() != 2 {
		t.Errorf("unexpected shape %dx%d", m.NumActions(), m.NumStates())
	}
	if m.Discount() != Discount {
		t.Errorf("discount %v, expected %v", m.Discount(), Discount)
	}
}

func TestTensorsAreFresh(t *testing.T) {
	Transitions()[0][0][0] = 7
	Rewards()[0][0] = 7
	if Transitions()[0][0][0] != 0.5 || Rewards()[0][0] != 0 {
		t.Errorf("tensors share storage between calls")
	}
}
