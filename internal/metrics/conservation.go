package metrics

import (
	"math"

	"github.com/san-kum/stockflow/internal/sysdyn"
)

// Conservation tracks the largest deviation of the total stock quantity from
// its value at the start of the run. Flows only move quantity, so anything
// above rounding noise points at a broken equation.
type Conservation struct {
	name     string
	initial  float64
	maxDrift float64
}

func NewConservation() *Conservation {
	return &Conservation{name: "conservation_drift"}
}

func (c *Conservation) Name() string {
	return c.name
}

func (c *Conservation) OnStart(t float64, values sysdyn.State) {
	c.Reset()
	c.initial = values.Sum()
}

func (c *Conservation) OnStep(t float64, values sysdyn.State) {
	drift := math.Abs(values.Sum() - c.initial)
	if drift > c.maxDrift || math.IsNaN(drift) {
		c.maxDrift = drift
	}
}

func (c *Conservation) OnFinish(t float64, values sysdyn.State) {}

func (c *Conservation) Value() float64 {
	return c.maxDrift
}

func (c *Conservation) Reset() {
	c.initial = 0
	c.maxDrift = 0
}
