package cost

// FixedCost implements the Model interface with a flat amount charged
// per exit regardless of position size.
type FixedCost struct {
	amount float64
}

// NewFixedCost creates a new fixed cost model with the given amount.
func NewFixedCost(amount float64) Model {
	return &FixedCost{amount: amount}
}

// Calculate returns the configured flat amount for any quantity.
func (c *FixedCost) Calculate(quantity float64) float64 {
	return c.amount
}
