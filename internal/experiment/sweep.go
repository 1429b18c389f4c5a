package experiment

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/stockflow/internal/config"
)

// SweepPoint is one run of a parameter sweep.
type SweepPoint struct {
	Value  float64
	Result *Result
}

// Sweep runs def once per value, setting param on the named flow each time.
// Runs use independent models and execute on up to workers goroutines;
// points are returned in the order of values.
func Sweep(ctx context.Context, def *config.Definition, reg *Registry, flow, param string, values []float64, workers int, opts ...Option) ([]SweepPoint, error) {
	idx := def.FlowIndex(flow)
	if idx < 0 {
		return nil, fmt.Errorf("unknown flow: %s", flow)
	}
	if workers < 1 {
		workers = 1
	}
	if len(values) > 0 {
		fc := def.Flows[idx]
		params := make(map[string]float64, len(fc.Params)+1)
		for k, v := range fc.Params {
			params[k] = v
		}
		params[param] = values[0]
		if _, err := reg.GetEquation(fc.Kind, params); err != nil {
			return nil, fmt.Errorf("sweeping %s.%s: %w", flow, param, err)
		}
	}

	points := make([]SweepPoint, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, v := range values {
		variant := def.Clone()
		if variant.Flows[idx].Params == nil {
			variant.Flows[idx].Params = make(map[string]float64)
		}
		variant.Flows[idx].Params[param] = v
		variant.Name = fmt.Sprintf("%s[%s.%s=%g]", def.Name, flow, param, v)

		g.Go(func() error {
			res, err := New(variant, reg, opts...).Run(ctx)
			if err != nil {
				return err
			}
			points[i] = SweepPoint{Value: v, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// Best returns the point with the smallest value of the named metric.
// Points whose metric is missing or NaN never win.
func Best(points []SweepPoint, metric string) (SweepPoint, bool) {
	best := math.Inf(1)
	var bestPoint SweepPoint
	found := false
	for _, p := range points {
		if p.Result == nil {
			continue
		}
		val, ok := p.Result.Metrics[metric]
		if !ok || math.IsNaN(val) {
			continue
		}
		if !found || val < best {
			best = val
			bestPoint = p
			found = true
		}
	}
	return bestPoint, found
}
