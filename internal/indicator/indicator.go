// Package indicator implements technical indicators over aligned price
// series. Every indicator maps a price series to a derived series of
// identical length; entries that cannot be computed yet (warm-up) are
// marked undefined rather than omitted, so downstream consumers never
// have to shift indexes to stay aligned with the bar series.
package indicator

import (
	"math"

	"github.com/quantlab-oss/tradekit/internal/types"
)

// Indicator is the contract shared by all indicator variants.
// Compute has no side effects; instances hold only immutable
// configuration and are safe to evaluate concurrently as long as each
// call supplies its own input slice.
type Indicator interface {
	// Name returns the name of the indicator.
	Name() types.IndicatorType
	// Compute maps a price series to a derived series of equal length.
	// Entries without enough history are set to Undefined().
	Compute(prices []float64) []float64
}

// Undefined returns the sentinel marking an indicator value that
// cannot be computed yet.
func Undefined() float64 {
	return math.NaN()
}

// IsDefined reports whether an indicator value is defined.
func IsDefined(v float64) bool {
	return !math.IsNaN(v)
}

// undefinedSeries allocates an output series of the given length with
// every entry undefined.
func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = Undefined()
	}

	return out
}
