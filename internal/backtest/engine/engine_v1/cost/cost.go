// Package cost models per-trade transaction costs charged on exits.
package cost

// Model calculates the flat cost charged when a position is closed.
type Model interface {
	// Calculate returns the cost in account currency for closing a
	// position of the given size.
	Calculate(quantity float64) float64
}

// Scheme selects a cost model.
type Scheme string

const (
	SchemeZero  Scheme = "zero"
	SchemeFixed Scheme = "fixed"
)

// AllSchemes lists the valid schemes, typed loosely for schema enums.
var AllSchemes = []any{
	SchemeZero,
	SchemeFixed,
}

// GetModel returns the cost model for the given scheme. Unknown
// schemes fall back to zero cost.
func GetModel(scheme Scheme, amount float64) Model {
	switch scheme {
	case SchemeFixed:
		return NewFixedCost(amount)
	case SchemeZero:
		return NewZeroCost()
	default:
		return NewZeroCost()
	}
}
