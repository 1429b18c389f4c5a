package sysdyn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimeStep indicates a non-positive, NaN or infinite time step.
	ErrInvalidTimeStep = errors.New("sysdyn: time step must be positive and finite")

	// ErrInvalidTimeRange indicates an end time before the start time.
	ErrInvalidTimeRange = errors.New("sysdyn: end time before start time")

	// ErrUnknownStock indicates a flow endpoint that is not registered with the model.
	ErrUnknownStock = errors.New("sysdyn: unknown stock")

	// ErrCanceled indicates the run was interrupted through its context.
	ErrCanceled = errors.New("sysdyn: simulation canceled by context")
)

// UnknownStockError reports which flow references an unregistered stock.
type UnknownStockError struct {
	Flow  string
	Stock string
}

func (e *UnknownStockError) Error() string {
	return fmt.Sprintf("sysdyn: flow %q references unknown stock %q", e.Flow, e.Stock)
}

func (e *UnknownStockError) Unwrap() error {
	return ErrUnknownStock
}

// StepError wraps an error with the step it interrupted.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("sysdyn: step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
