// Package metrics provides run observers that summarise a simulation.
package metrics

import "github.com/san-kum/stockflow/internal/sysdyn"

type Metric interface {
	sysdyn.RunObserver
	Name() string
	Value() float64
	Reset()
}

// Default returns a fresh set of the standard run metrics.
func Default() []Metric {
	return []Metric{
		NewConservation(),
		NewEquilibrium(),
		NewFeasibility(),
	}
}
