package config

import "sort"

var Presets = map[string]*Definition{
	"exponential": {
		Name: "exponential",
		Run:  RunConfig{Start: 0, End: 100, Step: 1},
		Stocks: []StockConfig{
			{Name: "pop1", Value: 100},
			{Name: "pop2", Value: 0},
		},
		Flows: []FlowConfig{
			{Name: "exponential", Kind: "exponential", Source: "pop1", Destination: "pop2"},
		},
	},
	"logistic": {
		Name: "logistic",
		Run:  RunConfig{Start: 0, End: 100, Step: 1},
		Stocks: []StockConfig{
			{Name: "p1", Value: 100},
			{Name: "p2", Value: 10},
		},
		Flows: []FlowConfig{
			{Name: "logistic", Kind: "logistic", Source: "p1", Destination: "p2"},
		},
	},
	"complex": {
		Name: "complex",
		Run:  RunConfig{Start: 0, End: 100, Step: 1},
		Stocks: []StockConfig{
			{Name: "Q1", Value: 100},
			{Name: "Q2", Value: 0},
			{Name: "Q3", Value: 100},
			{Name: "Q4", Value: 0},
			{Name: "Q5", Value: 0},
		},
		Flows: []FlowConfig{
			{Name: "f", Kind: "exponential", Source: "Q1", Destination: "Q2"},
			{Name: "g", Kind: "exponential", Source: "Q1", Destination: "Q3"},
			{Name: "r", Kind: "exponential", Source: "Q2", Destination: "Q5"},
			{Name: "t", Kind: "exponential", Source: "Q2", Destination: "Q3"},
			{Name: "u", Kind: "exponential", Source: "Q3", Destination: "Q4"},
			{Name: "v", Kind: "exponential", Source: "Q4", Destination: "Q1"},
		},
	},
	"disconnected": {
		Name: "disconnected",
		Run:  RunConfig{Start: 0, End: 100, Step: 1},
		Stocks: []StockConfig{
			{Name: "a", Value: 100},
			{Name: "b", Value: 0},
		},
		Flows: []FlowConfig{
			{Name: "loose", Kind: "exponential"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Definition {
	def, ok := Presets[name]
	if !ok {
		return nil
	}
	return def.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
