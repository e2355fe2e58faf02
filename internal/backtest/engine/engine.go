package engine

import (
	"context"

	"github.com/quantlab-oss/tradekit/internal/types"
)

// Engine simulates the execution of a signal series against a price
// series and exposes the resulting equity curve and trade ledger.
//
// An Engine instance owns mutable run state and must not be shared
// between concurrent callers; independent instances are fully
// parallelizable.
type Engine interface {
	// Run consumes the bar series and the aligned signal series and
	// produces a complete equity curve and trade ledger. Each call
	// starts from clean state; nothing carries over between runs.
	// The context can be used to cancel a long simulation.
	Run(ctx context.Context, bars []types.Bar, signals []int) error
	// EquityCurve returns the per-bar portfolio value of the last run,
	// index-aligned with the input bars and normalized to a 1.0
	// starting capital.
	EquityCurve() []float64
	// Trades returns the trade ledger of the last run in chronological
	// exit order.
	Trades() []types.Trade
}
