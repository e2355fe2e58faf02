// Package metrics summarizes a completed backtest run.
package metrics

import (
	"github.com/quantlab-oss/tradekit/internal/types"
)

// Summary holds the headline performance figures for one run.
type Summary struct {
	FinalEquity float64 `yaml:"final_equity" json:"final_equity"`
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	TotalTrades int     `yaml:"total_trades" json:"total_trades"`
	WinTrades   int     `yaml:"win_trades" json:"win_trades"`
	WinRate     float64 `yaml:"win_rate" json:"win_rate"`
}

// Compute derives a Summary from an equity curve and trade ledger.
// Final equity falls back to 1.0 (the starting capital) when the curve
// is empty or ends on an uninitialized zero slot.
func Compute(equity []float64, trades []types.Trade) Summary {
	summary := Summary{
		FinalEquity: 1.0,
		TotalTrades: len(trades),
	}

	if len(equity) > 0 && equity[len(equity)-1] != 0.0 {
		summary.FinalEquity = equity[len(equity)-1]
	}

	summary.MaxDrawdown = MaxDrawdown(equity)

	for _, trade := range trades {
		if trade.IsWin() {
			summary.WinTrades++
		}
	}

	if summary.TotalTrades > 0 {
		summary.WinRate = float64(summary.WinTrades) / float64(summary.TotalTrades)
	}

	return summary
}

// MaxDrawdown returns the largest peak-to-trough decline of the
// equity curve as a fraction of the running peak. Non-positive
// entries mark uninitialized slots and are skipped entirely.
func MaxDrawdown(equity []float64) float64 {
	maxDrawdown := 0.0
	peak := 0.0

	for _, value := range equity {
		if value <= 0.0 {
			continue
		}

		if value > peak {
			peak = value
		}

		drawdown := (peak - value) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return maxDrawdown
}
