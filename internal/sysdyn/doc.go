// Package sysdyn provides the stock-and-flow simulation core.
//
// A [Model] owns a set of [Stock] values and a set of [Flow] edges between
// them. Each flow carries an [Equation] that computes a transfer rate from the
// current values of its source and destination.
//
//   - [Stock]: named scalar quantity
//   - [Flow]: directed transfer between two stocks
//   - [Equation]: pure rate function
//   - [Model]: registry and explicit Euler stepper
//
// # Stepping
//
// Every step evaluates all connected flows against the values the stocks had
// at the start of the step, accumulates per-stock deltas, and only then
// commits them. No flow ever observes a value written during the same step.
//
// # Example
//
//	m := sysdyn.New("decay")
//	pop1 := m.CreateStock("pop1", 100)
//	pop2 := m.CreateStock("pop2", 0)
//	m.CreateFlow("exp", equations.NewExponential(), pop1, pop2)
//	err := m.Execute(ctx, 0, 100, 1)
//
// # Thread Safety
//
// Model instances are NOT thread-safe. WithWorkers parallelizes the evaluate
// phase of a single step internally; independent runs need independent models.
package sysdyn
