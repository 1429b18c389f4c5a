package metrics

import (
	"math"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

// Equilibrium reports the largest single-stock change of the most recent
// step. Values near zero mean the model has settled.
type Equilibrium struct {
	name     string
	prev     sysdyn.State
	residual float64
}

func NewEquilibrium() *Equilibrium {
	return &Equilibrium{name: "equilibrium_residual"}
}

func (e *Equilibrium) Name() string {
	return e.name
}

func (e *Equilibrium) OnStart(t float64, values sysdyn.State) {
	e.Reset()
	e.prev = values.Clone()
}

func (e *Equilibrium) OnStep(t float64, values sysdyn.State) {
	e.residual = 0
	for i, v := range values {
		if i >= len(e.prev) {
			break
		}
		if d := math.Abs(v - e.prev[i]); d > e.residual {
			e.residual = d
		}
	}
	e.prev = values.Clone()
}

func (e *Equilibrium) OnFinish(t float64, values sysdyn.State) {}

func (e *Equilibrium) Value() float64 {
	return e.residual
}

func (e *Equilibrium) Reset() {
	e.prev = nil
	e.residual = 0
}
