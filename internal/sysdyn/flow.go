package sysdyn

// Equation computes the instantaneous transfer rate of a flow from the
// current values of its endpoints. Implementations must be pure.
type Equation interface {
	Rate(source, destination float64) float64
}

// EquationFunc adapts an ordinary function to the Equation interface.
type EquationFunc func(source, destination float64) float64

func (f EquationFunc) Rate(source, destination float64) float64 {
	return f(source, destination)
}

// Flow is a directed transfer from a source stock to a destination stock.
// A flow does not own its endpoints and either of them may be nil.
type Flow struct {
	name        string
	source      *Stock
	destination *Stock
	eq          Equation
}

func NewFlow(name string, eq Equation, source, destination *Stock) *Flow {
	return &Flow{name: name, eq: eq, source: source, destination: destination}
}

func (f *Flow) Name() string        { return f.name }
func (f *Flow) SetName(name string) { f.name = name }

func (f *Flow) Source() *Stock          { return f.source }
func (f *Flow) SetSource(s *Stock)      { f.source = s }
func (f *Flow) Destination() *Stock     { return f.destination }
func (f *Flow) SetDestination(d *Stock) { f.destination = d }

func (f *Flow) Equation() Equation      { return f.eq }
func (f *Flow) SetEquation(eq Equation) { f.eq = eq }

// Connected reports whether both endpoints are set.
func (f *Flow) Connected() bool {
	return f.source != nil && f.destination != nil
}

// Rate evaluates the flow equation against the current endpoint values.
// A disconnected flow, or one without an equation, transfers nothing.
func (f *Flow) Rate() float64 {
	if !f.Connected() || f.eq == nil {
		return 0
	}
	return f.eq.Rate(f.source.value, f.destination.value)
}
