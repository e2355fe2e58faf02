package cost

// ZeroCost implements the Model interface with no transaction cost.
type ZeroCost struct{}

// NewZeroCost creates a new zero cost model.
func NewZeroCost() Model {
	return &ZeroCost{}
}

// Calculate returns 0 for any quantity.
func (c *ZeroCost) Calculate(quantity float64) float64 {
	return 0.0
}
