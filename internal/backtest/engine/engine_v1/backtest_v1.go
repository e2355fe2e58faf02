package engine

import (
	"context"

	"github.com/google/uuid"
	baseengine "github.com/quantlab-oss/tradekit/internal/backtest/engine"
	"github.com/quantlab-oss/tradekit/internal/backtest/engine/engine_v1/cost"
	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"go.uber.org/zap"
)

// BacktestEngineV1 is a single-asset, long-only execution state
// machine. It consumes a bar series and an aligned signal series and
// produces a per-bar equity curve plus a trade ledger.
//
// Execution model: the signal observed at bar i-1 governs the order
// executed at bar i's open ("decide after close, trade at next open").
// Sizing is all-in: entries commit the entire cash balance. If a
// position is still open after the last bar it is force-closed at the
// final close so every run ends fully reconciled.
type BacktestEngineV1 struct {
	config BacktestEngineV1Config
	log    *logger.Logger
	cost   cost.Model

	runID  string
	equity []float64
	trades []types.Trade
}

var _ baseengine.Engine = (*BacktestEngineV1)(nil)

// NewBacktestEngineV1 creates an engine with the given configuration.
func NewBacktestEngineV1(config BacktestEngineV1Config, log *logger.Logger) *BacktestEngineV1 {
	return &BacktestEngineV1{
		config: config,
		log:    log,
		cost:   config.CostModel(),
		runID:  "",
		equity: nil,
		trades: nil,
	}
}

// RunID returns the unique identifier of the last run.
func (b *BacktestEngineV1) RunID() string {
	return b.runID
}

// EquityCurve implements engine.Engine.
func (b *BacktestEngineV1) EquityCurve() []float64 {
	return b.equity
}

// Trades implements engine.Engine.
func (b *BacktestEngineV1) Trades() []types.Trade {
	return b.trades
}

// Run implements engine.Engine. Bars and signals must be positionally
// aligned and of equal length; a mismatch is rejected before any state
// is touched.
func (b *BacktestEngineV1) Run(ctx context.Context, bars []types.Bar, signals []int) error {
	if len(bars) != len(signals) {
		return errors.Newf(errors.ErrCodeInvalidLength,
			"bars and signals must be the same length, got %d bars and %d signals", len(bars), len(signals))
	}

	n := len(bars)

	// Fresh state per run.
	b.runID = uuid.New().String()
	b.equity = make([]float64, n)
	b.trades = []types.Trade{}

	// Initial portfolio state: 1.0 unit of normalized cash, flat.
	cash := 1.0
	position := 0.0
	entryInvested := 0.0
	entryPrice := 0.0
	entryDate := ""

	b.log.Debug("Backtest run started",
		zap.String("run_id", b.runID),
		zap.Int("bars", n),
		zap.Float64("slippage", b.config.Slippage),
	)

	// Bars are processed from index 1: bar 0 only establishes the
	// starting equity, and orders execute one bar after their signal.
	for i := 1; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		// ENTRY: previous signal was 1 and we are flat.
		if signals[i-1] == 1 && position == 0.0 {
			entryPrice = bars[i].Open * (1.0 + b.config.Slippage)
			position = cash / entryPrice
			entryInvested = cash
			cash = 0.0
			entryDate = bars[i].Date

			b.log.Debug("Entered position",
				zap.String("date", entryDate),
				zap.Float64("price", entryPrice),
				zap.Float64("size", position),
			)
		}

		// EXIT: previous signal was 0 and we hold a position.
		if signals[i-1] == 0 && position > 0.0 {
			exitPrice := bars[i].Open * (1.0 - b.config.Slippage)
			proceeds := position*exitPrice - b.cost.Calculate(position)
			pnl := proceeds - entryInvested

			b.trades = append(b.trades, types.Trade{
				EntryDate:  entryDate,
				ExitDate:   bars[i].Date,
				EntryPrice: entryPrice,
				ExitPrice:  exitPrice,
				Size:       int(position),
				PnL:        pnl,
			})

			b.log.Debug("Exited position",
				zap.String("date", bars[i].Date),
				zap.Float64("price", exitPrice),
				zap.Float64("pnl", pnl),
			)

			cash = proceeds
			position = 0.0
			entryInvested = 0.0
		}

		// Mark equity: cash plus market value of any open position.
		b.equity[i] = cash + position*bars[i].Close
	}

	// Baseline and forward-fill for bars before any activity.
	if n > 0 {
		b.equity[0] = 1.0
	}

	for i := 1; i < n; i++ {
		if b.equity[i] == 0.0 {
			b.equity[i] = b.equity[i-1]
		}
	}

	// Force-close any position still open at the end of the series so
	// the ledger accounts for every unit of exposure.
	if position > 0.0 {
		exitPrice := bars[n-1].Close * (1.0 - b.config.Slippage)
		proceeds := position*exitPrice - b.cost.Calculate(position)
		pnl := proceeds - entryInvested

		b.trades = append(b.trades, types.Trade{
			EntryDate:  entryDate,
			ExitDate:   bars[n-1].Date,
			EntryPrice: entryPrice,
			ExitPrice:  exitPrice,
			Size:       int(position),
			PnL:        pnl,
		})

		cash = proceeds
		position = 0.0
		b.equity[n-1] = cash

		b.log.Debug("Forced liquidation at end of data",
			zap.String("date", bars[n-1].Date),
			zap.Float64("price", exitPrice),
			zap.Float64("pnl", pnl),
		)
	}

	b.log.Debug("Backtest run finished",
		zap.String("run_id", b.runID),
		zap.Int("trades", len(b.trades)),
	)

	return nil
}

// FilterBars returns the subsequence of bars within the configured
// date bounds. Dates are compared lexically, which is correct for the
// ISO-style date labels the loaders produce.
func (c BacktestEngineV1Config) FilterBars(bars []types.Bar) []types.Bar {
	if c.StartDate.IsNone() && c.EndDate.IsNone() {
		return bars
	}

	filtered := make([]types.Bar, 0, len(bars))

	for _, bar := range bars {
		if c.StartDate.IsSome() && bar.Date < c.StartDate.Unwrap() {
			continue
		}

		if c.EndDate.IsSome() && bar.Date > c.EndDate.Unwrap() {
			continue
		}

		filtered = append(filtered, bar)
	}

	return filtered
}
