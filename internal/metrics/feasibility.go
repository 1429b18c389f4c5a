package metrics

import "github.com/san-kum/stockflow/internal/sysdyn"

// Feasibility is the fraction of observed states in which every stock is
// finite and non-negative.
type Feasibility struct {
	name       string
	violations int
	samples    int
}

func NewFeasibility() *Feasibility {
	return &Feasibility{name: "feasibility"}
}

func (f *Feasibility) Name() string {
	return f.name
}

func (f *Feasibility) OnStart(t float64, values sysdyn.State) {
	f.Reset()
	f.OnStep(t, values)
}

func (f *Feasibility) OnStep(t float64, values sysdyn.State) {
	f.samples++
	if !values.IsValid() {
		f.violations++
		return
	}
	for _, v := range values {
		if v < 0 {
			f.violations++
			return
		}
	}
}

func (f *Feasibility) OnFinish(t float64, values sysdyn.State) {}

func (f *Feasibility) Value() float64 {
	if f.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(f.violations)/float64(f.samples)
}

func (f *Feasibility) Reset() {
	f.violations = 0
	f.samples = 0
}
