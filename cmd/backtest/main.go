// Command backtest runs a crossover strategy over a daily bar file and
// writes a yaml stats report.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	engine "github.com/quantlab-oss/tradekit/internal/backtest/engine/engine_v1"
	"github.com/quantlab-oss/tradekit/internal/datasource"
	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/internal/metrics"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/internal/version"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func newCommandLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("verbose") {
		return logger.NewVerboseLogger()
	}

	return logger.NewLogger()
}

func newDataSource(config AppConfig, log *logger.Logger) (datasource.DataSource, error) {
	switch config.Data.Source {
	case SourceDuckDB:
		source, err := datasource.NewDuckDBSource(config.Data.Path, log)
		if err != nil {
			return nil, err
		}

		return source.WithDateRange(config.Engine.StartDate, config.Engine.EndDate), nil
	case SourceCSV:
		return datasource.NewCSVSource(config.Data.Path, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown data source: %s", config.Data.Source)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newCommandLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	config, err := LoadAppConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		config.Output = output
	}

	source, err := newDataSource(config, log)
	if err != nil {
		return err
	}
	defer source.Close()

	bars, err := source.Load(ctx)
	if err != nil {
		return err
	}

	// The CSV source loads everything; date bounds still apply.
	if config.Data.Source == SourceCSV {
		bars = config.Engine.FilterBars(bars)
	}

	if len(bars) == 0 {
		return errors.Newf(errors.ErrCodeBacktestNoData, "no bars loaded from %s", config.Data.Path)
	}

	crossover, err := config.Strategy.Build()
	if err != nil {
		return err
	}

	signals := crossover.GenerateSignals(bars)

	backtest := engine.NewBacktestEngineV1(config.Engine, log)
	if err := backtest.Run(ctx, bars, signals); err != nil {
		return err
	}

	equity := backtest.EquityCurve()
	trades := backtest.Trades()
	summary := metrics.Compute(equity, trades)

	log.Info("Backtest finished",
		zap.String("run_id", backtest.RunID()),
		zap.String("strategy", crossover.Name()),
		zap.Int("bars", len(bars)),
		zap.Float64("final_equity", summary.FinalEquity),
		zap.Float64("max_drawdown", summary.MaxDrawdown),
		zap.Int("trades", summary.TotalTrades),
		zap.Float64("win_rate", summary.WinRate),
	)

	if config.Output == "" {
		return nil
	}

	stats := types.BacktestStats{
		ID:            backtest.RunID(),
		Timestamp:     time.Now(),
		EngineVersion: version.GetVersion(),
		DataPath:      config.Data.Path,
		StrategyName:  crossover.Name(),
		FinalEquity:   summary.FinalEquity,
		TradeResult: types.TradeResult{
			NumberOfTrades:        summary.TotalTrades,
			NumberOfWinningTrades: summary.WinTrades,
			NumberOfLosingTrades:  summary.TotalTrades - summary.WinTrades,
			WinRate:               summary.WinRate,
			MaxDrawdown:           summary.MaxDrawdown,
		},
		TradePnl: types.AggregateTradePnl(trades),
		Trades:   trades,
	}

	if err := types.WriteBacktestStats(config.Output, stats); err != nil {
		return err
	}

	log.Info("Stats report written", zap.String("path", config.Output))

	return nil
}

func reportAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	stats, err := types.ReadBacktestStats(cmd.String("stats"))
	if err != nil {
		return err
	}

	if err := version.CheckVersionCompatibility(version.GetVersion(), stats.EngineVersion); err != nil {
		return errors.Wrap(errors.ErrCodeVersionMismatch, "stats file is not compatible with this toolkit version", err)
	}

	log.Info("Backtest report",
		zap.String("run_id", stats.ID),
		zap.Time("timestamp", stats.Timestamp),
		zap.String("engine_version", stats.EngineVersion),
		zap.String("strategy", stats.StrategyName),
		zap.String("data_path", stats.DataPath),
		zap.Float64("final_equity", stats.FinalEquity),
		zap.Float64("max_drawdown", stats.TradeResult.MaxDrawdown),
		zap.Int("trades", stats.TradeResult.NumberOfTrades),
		zap.Float64("win_rate", stats.TradeResult.WinRate),
		zap.Float64("realized_pnl", stats.TradePnl.RealizedPnL),
	)

	return nil
}

func schemaAction(ctx context.Context, cmd *cli.Command) error {
	config := engine.EmptyConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schemaJSON)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Run a crossover strategy backtest over daily bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest described by a yaml config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the yaml config file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the yaml stats report, overrides the config file",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Enable debug logging, including per-fill records",
					},
				},
				Action: runAction,
			},
			{
				Name:  "report",
				Usage: "Summarize a previously written stats report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "stats",
						Aliases:  []string{"s"},
						Usage:    "Path to the yaml stats report",
						Required: true,
					},
				},
				Action: reportAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema for the engine config section",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
