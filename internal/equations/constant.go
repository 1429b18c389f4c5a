package equations

// Constant transfers a fixed amount per step regardless of stock values.
type Constant struct {
	Value float64
}

func (c Constant) Rate(source, destination float64) float64 {
	return c.Value
}

func (c Constant) Kind() string { return KindConstant }

func (c Constant) Params() map[string]float64 {
	return map[string]float64{"rate": c.Value}
}
