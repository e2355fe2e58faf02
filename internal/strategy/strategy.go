// Package strategy turns bar series into position-signal series.
// Signals are integers aligned index-for-index with the input bars:
// 1 means desired long exposure at that bar, 0 means flat. How a
// signal becomes an order is the backtest engine's concern.
package strategy

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// Strategy is the contract for signal generators.
type Strategy interface {
	// Name returns a human-readable name for the signal rule.
	Name() string
	// GenerateSignals produces one signal per input bar. Empty input
	// produces empty output.
	GenerateSignals(bars []types.Bar) []int
}
