package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// Validate checks the shape of d against the CUE schema, then checks that
// every flow endpoint names a declared stock and that names are unique.
func Validate(d *Definition) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config: compiling schema: %w", err)
	}

	doc := *d
	if doc.Stocks == nil {
		doc.Stocks = []StockConfig{}
	}
	if doc.Flows == nil {
		doc.Flows = []FlowConfig{}
	}

	value := schema.LookupPath(cue.ParsePath("#Definition")).Unify(ctx.Encode(doc))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	if d.Run.End < d.Run.Start {
		return fmt.Errorf("%w: run end %v before start %v", ErrInvalidDefinition, d.Run.End, d.Run.Start)
	}

	stocks := make(map[string]bool, len(d.Stocks))
	for _, s := range d.Stocks {
		if stocks[s.Name] {
			return fmt.Errorf("%w: duplicate stock %q", ErrInvalidDefinition, s.Name)
		}
		stocks[s.Name] = true
	}

	flows := make(map[string]bool, len(d.Flows))
	for _, f := range d.Flows {
		if flows[f.Name] {
			return fmt.Errorf("%w: duplicate flow %q", ErrInvalidDefinition, f.Name)
		}
		flows[f.Name] = true
		for _, endpoint := range []string{f.Source, f.Destination} {
			if endpoint != "" && !stocks[endpoint] {
				return fmt.Errorf("%w: flow %q references unknown stock %q", ErrInvalidDefinition, f.Name, endpoint)
			}
		}
	}
	return nil
}
