package equations

// Exponential drains the source in proportion to its value:
// rate = K * source.
type Exponential struct {
	K float64
}

func NewExponential() Exponential {
	return Exponential{K: DefaultRate}
}

func (e Exponential) Rate(source, destination float64) float64 {
	return e.K * source
}

func (e Exponential) Kind() string { return KindExponential }

func (e Exponential) Params() map[string]float64 {
	return map[string]float64{"k": e.K}
}
