// Package equations provides the reference flow equations.
package equations

import "github.com/san-kum/stockflow/internal/sysdyn"

const (
	KindExponential = "exponential"
	KindLogistic    = "logistic"
	KindConstant    = "constant"
)

const (
	DefaultRate     = 0.01
	DefaultCapacity = 70.0
)

// Parametric is implemented by equations that can report their parameters.
type Parametric interface {
	sysdyn.Equation
	Kind() string
	Params() map[string]float64
}

var (
	_ Parametric = Exponential{}
	_ Parametric = Logistic{}
	_ Parametric = Constant{}
)
