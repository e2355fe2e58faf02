package indicator

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// MACD implements the moving average convergence/divergence line,
// the difference between a fast EMA and a slow EMA. The signal line
// (an EMA of the MACD line) can be computed externally if needed.
type MACD struct {
	fastPeriod int
	slowPeriod int
}

// NewMACD creates a new MACD indicator with the given fast and slow periods.
func NewMACD(fastPeriod, slowPeriod int) *MACD {
	return &MACD{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// FastPeriod returns the fast EMA period.
func (m *MACD) FastPeriod() int {
	return m.fastPeriod
}

// SlowPeriod returns the slow EMA period.
func (m *MACD) SlowPeriod() int {
	return m.slowPeriod
}

// Compute returns EMA(fast) - EMA(slow) wherever both are defined and
// an undefined entry wherever either underlying EMA is undefined.
func (m *MACD) Compute(prices []float64) []float64 {
	fast := NewEMA(m.fastPeriod).Compute(prices)
	slow := NewEMA(m.slowPeriod).Compute(prices)

	out := undefinedSeries(len(prices))

	for i := range prices {
		if IsDefined(fast[i]) && IsDefined(slow[i]) {
			out[i] = fast[i] - slow[i]
		}
	}

	return out
}
