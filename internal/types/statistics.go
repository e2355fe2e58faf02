package types

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type TradeResult struct {
	// Count of all trades.
	NumberOfTrades int `yaml:"number_of_trades"`
	// Count of winning trades that have positive pnl.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades"`
	// Count of losing trades that have negative pnl.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades"`
	// Win rate.
	WinRate float64 `yaml:"win_rate"`
	// Maximum drawdown of the equity curve.
	MaxDrawdown float64 `yaml:"max_drawdown"`
}

type TradePnl struct {
	// Realized PnL. By adding all the closed trades' pnl.
	RealizedPnL float64 `yaml:"realized_pnl"`
	// Maximum loss. Find all realized pnl's minimum value.
	MaximumLoss float64 `yaml:"maximum_loss"`
	// Maximum profit. Find all realized pnl's maximum value.
	MaximumProfit float64 `yaml:"maximum_profit"`
}

// BacktestStats is the yaml report written at the end of a backtest run.
type BacktestStats struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp time.Time `yaml:"timestamp"`
	// EngineVersion is the toolkit version that produced this report.
	EngineVersion string `yaml:"engine_version"`
	// DataPath is the path to the price data file used for this run.
	DataPath string `yaml:"data_path"`
	// StrategyName is the human-readable name of the signal rule.
	StrategyName string `yaml:"strategy_name"`
	// FinalEquity is the last non-zero equity entry, normalized to a
	// 1.0 starting capital.
	FinalEquity float64 `yaml:"final_equity"`
	// TradeResult of all trades.
	TradeResult TradeResult `yaml:"trade_result"`
	// TradePnl of all trades.
	TradePnl TradePnl `yaml:"trade_pnl"`
	// Trades is the full ledger in chronological exit order.
	Trades []Trade `yaml:"trades"`
}

// AggregateTradePnl sums the per-trade pnl and extracts the extreme
// values. Summation goes through decimal so a long ledger of tiny pnl
// values does not accumulate float error in the report.
func AggregateTradePnl(trades []Trade) TradePnl {
	var pnl TradePnl

	if len(trades) == 0 {
		return pnl
	}

	realized := decimal.Zero
	pnl.MaximumLoss = trades[0].PnL
	pnl.MaximumProfit = trades[0].PnL

	for _, t := range trades {
		realized = realized.Add(decimal.NewFromFloat(t.PnL))

		if t.PnL < pnl.MaximumLoss {
			pnl.MaximumLoss = t.PnL
		}

		if t.PnL > pnl.MaximumProfit {
			pnl.MaximumProfit = t.PnL
		}
	}

	pnl.RealizedPnL, _ = realized.Float64()

	return pnl
}

// WriteBacktestStats writes the stats report to the given path as YAML.
func WriteBacktestStats(path string, stats BacktestStats) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal backtest stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backtest stats to file: %w", err)
	}

	return nil
}

// ReadBacktestStats reads a stats report previously written with
// WriteBacktestStats. Version compatibility is checked by the caller.
func ReadBacktestStats(path string) (BacktestStats, error) {
	var stats BacktestStats

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("failed to read backtest stats file: %w", err)
	}

	if err := yaml.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("failed to unmarshal backtest stats: %w", err)
	}

	return stats, nil
}
