package indicator

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// rsiEpsilon substitutes for a zero average loss so a perfect uptrend
// resolves to an RSI near 100 instead of dividing by zero.
const rsiEpsilon = 1e-12

// RSI implements the Relative Strength Index with Wilder smoothing.
type RSI struct {
	period int
}

// NewRSI creates a new RSI indicator with the given period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Period returns the configured smoothing period.
func (r *RSI) Period() int {
	return r.period
}

// Compute returns the RSI series. The first defined output is at index
// `period`, seeded from the average gain/loss over indices 1..period;
// subsequent values use Wilder's recursive smoothing. Defined values
// lie in [0,100]. Requires a positive period and at least two prices,
// otherwise the whole series is undefined.
func (r *RSI) Compute(prices []float64) []float64 {
	out := undefinedSeries(len(prices))

	if r.period <= 0 || len(prices) < 2 {
		return out
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))

	for i := 1; i < len(prices); i++ {
		diff := prices[i] - prices[i-1]
		gains[i] = max(0.0, diff)
		losses[i] = max(0.0, -diff)
	}

	// Seed the averages over the first `period` changes.
	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= r.period && i < len(gains); i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(r.period)
	avgLoss /= float64(r.period)

	if r.period < len(gains) {
		out[r.period] = 100.0 - 100.0/(1.0+avgGain/nonZeroLoss(avgLoss))
	}

	// Wilder smoothing for the remaining indexes.
	for i := r.period + 1; i < len(prices); i++ {
		avgGain = (avgGain*float64(r.period-1) + gains[i]) / float64(r.period)
		avgLoss = (avgLoss*float64(r.period-1) + losses[i]) / float64(r.period)
		rs := avgGain / nonZeroLoss(avgLoss)
		out[i] = 100.0 - 100.0/(1.0+rs)
	}

	return out
}

func nonZeroLoss(avgLoss float64) float64 {
	if avgLoss == 0 {
		return rsiEpsilon
	}

	return avgLoss
}
