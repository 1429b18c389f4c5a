package sysdyn

import "testing"

func double(source, destination float64) float64 { return 2 * source }

func TestFlowRateDisconnected(t *testing.T) {
	s := NewStock("s", 10)

	tests := []struct {
		name string
		flow *Flow
	}{
		{"no endpoints", NewFlow("f", EquationFunc(double), nil, nil)},
		{"no destination", NewFlow("f", EquationFunc(double), s, nil)},
		{"no source", NewFlow("f", EquationFunc(double), nil, s)},
		{"no equation", NewFlow("f", nil, s, s)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flow.Rate(); got != 0 {
				t.Errorf("expected zero rate, got %v", got)
			}
		})
	}
}

func TestFlowRebind(t *testing.T) {
	a := NewStock("a", 3)
	b := NewStock("b", 7)
	f := NewFlow("f", EquationFunc(double), nil, nil)

	if f.Connected() {
		t.Fatal("flow without endpoints reported connected")
	}

	f.SetSource(a)
	f.SetDestination(b)
	if !f.Connected() {
		t.Fatal("flow with endpoints reported disconnected")
	}
	if f.Source() != a || f.Destination() != b {
		t.Error("endpoints not rebound")
	}
	if got := f.Rate(); got != 6 {
		t.Errorf("expected rate 6, got %v", got)
	}

	f.SetSource(b)
	if got := f.Rate(); got != 14 {
		t.Errorf("expected rate 14 after rebind, got %v", got)
	}
}

func TestFlowRateDoesNotMutate(t *testing.T) {
	a := NewStock("a", 3)
	b := NewStock("b", 7)
	f := NewFlow("f", EquationFunc(double), a, b)

	for i := 0; i < 3; i++ {
		f.Rate()
	}
	if a.Value() != 3 || b.Value() != 7 {
		t.Errorf("rate mutated stocks: a=%v b=%v", a.Value(), b.Value())
	}
}
