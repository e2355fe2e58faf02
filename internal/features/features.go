// Package features transforms OHLCV bars into feature matrices and
// target vectors for price prediction models.
package features

import (
	"fmt"
	"math"

	"github.com/quantlab-oss/tradekit/internal/indicator"
	"github.com/quantlab-oss/tradekit/internal/types"
)

// minHistory is the number of extra bars required beyond the lag and
// prediction horizon before any feature rows are produced. It also
// bounds the earliest row, so every indicator is warmed up by then.
const minHistory = 50

// Config selects which feature groups to generate and the lookback
// parameters for each.
type Config struct {
	UseReturns      bool `yaml:"use_returns" json:"use_returns"`
	UseLaggedPrices bool `yaml:"use_lagged_prices" json:"use_lagged_prices"`
	UseSMA          bool `yaml:"use_sma" json:"use_sma"`
	UseEMA          bool `yaml:"use_ema" json:"use_ema"`
	UseRSI          bool `yaml:"use_rsi" json:"use_rsi"`
	UseVolume       bool `yaml:"use_volume" json:"use_volume"`

	LagDays   int `yaml:"lag_days" json:"lag_days"`
	SMAPeriod int `yaml:"sma_period" json:"sma_period"`
	EMAPeriod int `yaml:"ema_period" json:"ema_period"`
	RSIPeriod int `yaml:"rsi_period" json:"rsi_period"`
}

// DefaultConfig returns a Config with every feature group enabled.
func DefaultConfig() Config {
	return Config{
		UseReturns:      true,
		UseLaggedPrices: true,
		UseSMA:          true,
		UseEMA:          true,
		UseRSI:          true,
		UseVolume:       true,
		LagDays:         5,
		SMAPeriod:       20,
		EMAPeriod:       12,
		RSIPeriod:       14,
	}
}

// Engineer builds feature matrices from bar history. The indicators
// backing the enabled feature groups live in a registry keyed by kind.
type Engineer struct {
	config   Config
	registry indicator.Registry
}

// NewEngineer creates an Engineer with the given configuration. The
// enabled indicators are registered once up front; each engineer holds
// at most one instance per kind, so registration cannot collide.
func NewEngineer(config Config) *Engineer {
	registry := indicator.NewRegistry()

	if config.UseSMA {
		_ = registry.RegisterIndicator(indicator.NewSMA(config.SMAPeriod))
	}

	if config.UseEMA {
		_ = registry.RegisterIndicator(indicator.NewEMA(config.EMAPeriod))
	}

	if config.UseRSI {
		_ = registry.RegisterIndicator(indicator.NewRSI(config.RSIPeriod))
	}

	return &Engineer{config: config, registry: registry}
}

// IndicatorKinds lists the registered indicator kinds.
func (e *Engineer) IndicatorKinds() []types.IndicatorType {
	return e.registry.ListIndicators()
}

// compute runs the registered indicator of the given kind over the
// close series.
func (e *Engineer) compute(kind types.IndicatorType, closes []float64) []float64 {
	ind, err := e.registry.GetIndicator(kind)
	if err != nil {
		return nil
	}

	return ind.Compute(closes)
}

// CreateFeatures builds one feature row per eligible bar and the
// matching target: the close price horizon bars ahead. Rows that would
// contain an undefined value are skipped, so features[i] always pairs
// with targets[i]. Too little history yields empty slices.
func (e *Engineer) CreateFeatures(bars []types.Bar, horizon int) ([][]float64, []float64) {
	if len(bars) < e.config.LagDays+horizon+minHistory {
		return [][]float64{}, []float64{}
	}

	closes := types.ClosePrices(bars)

	var smaValues, emaValues, rsiValues []float64
	if e.config.UseSMA {
		smaValues = e.compute(types.IndicatorTypeSMA, closes)
	}
	if e.config.UseEMA {
		emaValues = e.compute(types.IndicatorTypeEMA, closes)
	}
	if e.config.UseRSI {
		rsiValues = e.compute(types.IndicatorTypeRSI, closes)
	}

	startIdx := max(e.config.LagDays, minHistory)
	endIdx := len(bars) - horizon

	features := [][]float64{}
	targets := []float64{}

	for i := startIdx; i < endIdx; i++ {
		row := make([]float64, 0, e.FeatureCount())

		if e.config.UseReturns {
			for lag := 1; lag <= e.config.LagDays; lag++ {
				row = append(row, (bars[i].Close-bars[i-lag].Close)/bars[i-lag].Close)
			}
		}

		if e.config.UseLaggedPrices {
			for lag := 1; lag <= e.config.LagDays; lag++ {
				row = append(row, bars[i-lag].Close/bars[i].Close)
			}
		}

		// Indicators enter as ratios to the current close so the model
		// sees scale-free inputs.
		if e.config.UseSMA && indicator.IsDefined(smaValues[i]) {
			row = append(row, smaValues[i]/bars[i].Close)
		}
		if e.config.UseEMA && indicator.IsDefined(emaValues[i]) {
			row = append(row, emaValues[i]/bars[i].Close)
		}
		if e.config.UseRSI && indicator.IsDefined(rsiValues[i]) {
			row = append(row, rsiValues[i]/100.0)
		}

		if e.config.UseVolume {
			row = append(row, volumeChange(bars, i))
			row = append(row, volumeRatio(bars, i))
		}

		row = append(row, recentVolatility(bars, i))

		target := bars[i+horizon].Close

		if !hasUndefined(row) {
			features = append(features, row)
			targets = append(targets, target)
		}
	}

	return features, targets
}

// TrainTestSplit splits chronologically: the first trainRatio fraction
// of rows becomes the training set, the remainder the test set.
func TrainTestSplit(features [][]float64, targets []float64, trainRatio float64) ([][]float64, []float64, [][]float64, []float64) {
	trainSize := int(float64(len(features)) * trainRatio)

	return features[:trainSize], targets[:trainSize],
		features[trainSize:], targets[trainSize:]
}

// FeatureCount returns the width of the rows CreateFeatures produces.
func (e *Engineer) FeatureCount() int {
	count := 0

	if e.config.UseReturns {
		count += e.config.LagDays
	}
	if e.config.UseLaggedPrices {
		count += e.config.LagDays
	}
	if e.config.UseSMA {
		count++
	}
	if e.config.UseEMA {
		count++
	}
	if e.config.UseRSI {
		count++
	}
	if e.config.UseVolume {
		count += 2
	}

	// volatility is always present
	return count + 1
}

// FeatureNames returns one name per column, in row order.
func (e *Engineer) FeatureNames() []string {
	names := make([]string, 0, e.FeatureCount())

	if e.config.UseReturns {
		for i := 1; i <= e.config.LagDays; i++ {
			names = append(names, fmt.Sprintf("return_lag_%d", i))
		}
	}

	if e.config.UseLaggedPrices {
		for i := 1; i <= e.config.LagDays; i++ {
			names = append(names, fmt.Sprintf("price_lag_%d_norm", i))
		}
	}

	if e.config.UseSMA {
		names = append(names, fmt.Sprintf("sma_%d_norm", e.config.SMAPeriod))
	}
	if e.config.UseEMA {
		names = append(names, fmt.Sprintf("ema_%d_norm", e.config.EMAPeriod))
	}
	if e.config.UseRSI {
		names = append(names, fmt.Sprintf("rsi_%d_norm", e.config.RSIPeriod))
	}

	if e.config.UseVolume {
		names = append(names, "volume_change", "volume_ratio_5d")
	}

	return append(names, "volatility_5d")
}

func volumeChange(bars []types.Bar, i int) float64 {
	if i > 0 && bars[i-1].Volume > 0 {
		return (bars[i].Volume - bars[i-1].Volume) / bars[i-1].Volume
	}

	return 0.0
}

func volumeRatio(bars []types.Bar, i int) float64 {
	avgVol := 0.0
	for lag := 1; lag <= 5 && i >= lag; lag++ {
		avgVol += bars[i-lag].Volume
	}
	avgVol /= 5.0

	if avgVol > 0 {
		return bars[i].Volume / avgVol
	}

	return 1.0
}

// recentVolatility is the population standard deviation of the last
// five daily returns ending at bar i.
func recentVolatility(bars []types.Bar, i int) float64 {
	returns := []float64{}
	for lag := 1; lag <= 5 && i >= lag; lag++ {
		returns = append(returns, (bars[i-lag+1].Close-bars[i-lag].Close)/bars[i-lag].Close)
	}

	if len(returns) == 0 {
		return 0.0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance)
}

func hasUndefined(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
