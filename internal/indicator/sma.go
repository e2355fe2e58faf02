package indicator

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// SMA implements the simple moving average.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator with the given period.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Name returns the name of the indicator.
func (s *SMA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Period returns the configured window length.
func (s *SMA) Period() int {
	return s.period
}

// Compute returns a series where out[i] is the mean of the trailing
// window of `period` prices ending at i. Entries with insufficient
// history are undefined. A non-positive period yields an
// all-undefined series.
func (s *SMA) Compute(prices []float64) []float64 {
	out := undefinedSeries(len(prices))

	if s.period <= 0 {
		return out
	}

	sum := 0.0

	for i, price := range prices {
		sum += price

		// Drop the value leaving the window once it is full.
		if i >= s.period {
			sum -= prices[i-s.period]
		}

		if i+1 >= s.period {
			out[i] = sum / float64(s.period)
		}
	}

	return out
}
