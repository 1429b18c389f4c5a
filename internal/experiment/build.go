package experiment

import (
	"fmt"

	"github.com/san-kum/stockflow/internal/config"
	"github.com/san-kum/stockflow/internal/sysdyn"
)

// Build turns a definition into a model. Flow endpoints are resolved by
// stock name; an empty name leaves that side disconnected.
func Build(def *config.Definition, reg *Registry, opts ...sysdyn.Option) (*sysdyn.Model, error) {
	m := sysdyn.New(def.Name, opts...)

	byName := make(map[string]*sysdyn.Stock, len(def.Stocks))
	for _, sc := range def.Stocks {
		byName[sc.Name] = m.CreateStock(sc.Name, sc.Value)
	}

	resolve := func(flow, name string) (*sysdyn.Stock, error) {
		if name == "" {
			return nil, nil
		}
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("building %s: %w", def.Name, &sysdyn.UnknownStockError{Flow: flow, Stock: name})
		}
		return s, nil
	}

	for _, fc := range def.Flows {
		eq, err := reg.GetEquation(fc.Kind, fc.Params)
		if err != nil {
			return nil, fmt.Errorf("building flow %s: %w", fc.Name, err)
		}
		src, err := resolve(fc.Name, fc.Source)
		if err != nil {
			return nil, err
		}
		dst, err := resolve(fc.Name, fc.Destination)
		if err != nil {
			return nil, err
		}
		m.CreateFlow(fc.Name, eq, src, dst)
	}

	return m, nil
}
