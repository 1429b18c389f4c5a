package equations

// Logistic grows the destination towards a carrying capacity:
// rate = K * dst * (1 - dst/Capacity).
type Logistic struct {
	K        float64
	Capacity float64
}

func NewLogistic() Logistic {
	return Logistic{K: DefaultRate, Capacity: DefaultCapacity}
}

func (l Logistic) Rate(source, destination float64) float64 {
	return l.K * destination * (1 - destination/l.Capacity)
}

func (l Logistic) Kind() string { return KindLogistic }

func (l Logistic) Params() map[string]float64 {
	return map[string]float64{"k": l.K, "capacity": l.Capacity}
}
