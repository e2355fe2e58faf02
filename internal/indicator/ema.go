package indicator

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// EMA implements the exponential moving average.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with the given period.
func NewEMA(period int) *EMA {
	return &EMA{period: period}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Period returns the configured smoothing span.
func (e *EMA) Period() int {
	return e.period
}

// Compute returns the exponential moving average with smoothing factor
// alpha = 2/(period+1). The series is seeded with the first price, so
// every index is defined once the period is positive and the input is
// non-empty; there is no structural warm-up region. A non-positive
// period or empty input yields an all-undefined series.
func (e *EMA) Compute(prices []float64) []float64 {
	out := undefinedSeries(len(prices))

	if e.period <= 0 || len(prices) == 0 {
		return out
	}

	alpha := 2.0 / float64(e.period+1)

	prev := prices[0]
	out[0] = prev

	for i := 1; i < len(prices); i++ {
		prev = alpha*prices[i] + (1-alpha)*prev
		out[i] = prev
	}

	return out
}
