package sysdyn

// Stock is a named scalar quantity. The zero value is a valid, unnamed stock
// holding 0. Stocks are identified by pointer, names need not be unique.
type Stock struct {
	name  string
	value float64
}

func NewStock(name string, value float64) *Stock {
	return &Stock{name: name, value: value}
}

func (s *Stock) Name() string        { return s.name }
func (s *Stock) SetName(name string) { s.name = name }
func (s *Stock) Value() float64      { return s.value }

// SetValue replaces the current value. There is no bounds checking; any
// saturation belongs in the flow equations.
func (s *Stock) SetValue(v float64) { s.value = v }
