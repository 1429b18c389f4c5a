package experiment

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/san-kum/stockflow/internal/equations"
	"github.com/san-kum/stockflow/internal/sysdyn"
)

// EquationFactory builds an equation from named parameters. Missing
// parameters take the equation's defaults.
type EquationFactory func(params map[string]float64) (sysdyn.Equation, error)

type Registry struct {
	equations map[string]EquationFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		equations: make(map[string]EquationFactory),
	}

	r.equations[equations.KindExponential] = func(params map[string]float64) (sysdyn.Equation, error) {
		if err := checkParams(equations.KindExponential, params, "k"); err != nil {
			return nil, err
		}
		eq := equations.NewExponential()
		if k, ok := params["k"]; ok {
			eq.K = k
		}
		return eq, nil
	}
	r.equations[equations.KindLogistic] = func(params map[string]float64) (sysdyn.Equation, error) {
		if err := checkParams(equations.KindLogistic, params, "k", "capacity"); err != nil {
			return nil, err
		}
		eq := equations.NewLogistic()
		if k, ok := params["k"]; ok {
			eq.K = k
		}
		if c, ok := params["capacity"]; ok {
			eq.Capacity = c
		}
		return eq, nil
	}
	r.equations[equations.KindConstant] = func(params map[string]float64) (sysdyn.Equation, error) {
		if err := checkParams(equations.KindConstant, params, "rate"); err != nil {
			return nil, err
		}
		rate, ok := params["rate"]
		if !ok {
			return nil, fmt.Errorf("constant equation requires a rate parameter")
		}
		return equations.Constant{Value: rate}, nil
	}

	return r
}

// checkParams rejects parameter names the equation kind does not read.
func checkParams(kind string, params map[string]float64, known ...string) error {
	for name := range params {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%s equation has no parameter %q (known: %s)", kind, name, strings.Join(known, ", "))
		}
	}
	return nil
}

// Register adds or replaces an equation kind.
func (r *Registry) Register(kind string, fn EquationFactory) {
	r.equations[kind] = fn
}

func (r *Registry) GetEquation(kind string, params map[string]float64) (sysdyn.Equation, error) {
	fn, ok := r.equations[kind]
	if !ok {
		return nil, fmt.Errorf("unknown equation: %s", kind)
	}
	return fn(params)
}

func (r *Registry) ListKinds() []string {
	names := make([]string, 0, len(r.equations))
	for name := range r.equations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
