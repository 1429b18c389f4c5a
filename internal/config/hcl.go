package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/san-kum/stockflow/internal/equations"
)

type hclFile struct {
	Name   string     `hcl:"name,optional"`
	Run    *hclRun    `hcl:"run,block"`
	Stocks []hclStock `hcl:"stock,block"`
	Flows  []hclFlow  `hcl:"flow,block"`
}

type hclRun struct {
	Start *float64 `hcl:"start,optional"`
	End   *float64 `hcl:"end,optional"`
	Step  *float64 `hcl:"step,optional"`
}

type hclStock struct {
	Name  string  `hcl:"name,label"`
	Value float64 `hcl:"value,optional"`
}

type hclFlow struct {
	Name        string             `hcl:"name,label"`
	Kind        string             `hcl:"kind"`
	Source      string             `hcl:"source,optional"`
	Destination string             `hcl:"destination,optional"`
	Params      map[string]float64 `hcl:"params,optional"`
}

// evalContext exposes the reference equation constants as defaults.k and
// defaults.capacity.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"k":        cty.NumberFloatVal(equations.DefaultRate),
				"capacity": cty.NumberFloatVal(equations.DefaultCapacity),
			}),
		},
	}
}

// ParseHCL decodes an HCL definition. filename is used in diagnostics only.
func ParseHCL(src []byte, filename string) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode HCL file %s: %w", filename, diags)
	}

	def := &Definition{Name: parsed.Name, Run: DefaultRun()}
	if r := parsed.Run; r != nil {
		if r.Start != nil {
			def.Run.Start = *r.Start
		}
		if r.End != nil {
			def.Run.End = *r.End
		}
		if r.Step != nil {
			def.Run.Step = *r.Step
		}
	}
	for _, s := range parsed.Stocks {
		def.Stocks = append(def.Stocks, StockConfig{Name: s.Name, Value: s.Value})
	}
	for _, f := range parsed.Flows {
		def.Flows = append(def.Flows, FlowConfig{
			Name:        f.Name,
			Kind:        f.Kind,
			Source:      f.Source,
			Destination: f.Destination,
			Params:      f.Params,
		})
	}
	return def, nil
}
