package strategy

import (
	"testing"

	"github.com/quantlab-oss/tradekit/internal/indicator"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/stretchr/testify/suite"
)

type CrossoverTestSuite struct {
	suite.Suite
}

func TestCrossoverSuite(t *testing.T) {
	suite.Run(t, new(CrossoverTestSuite))
}

func barsFromCloses(closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Date:   "day",
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *CrossoverTestSuite) TestEmptyInput() {
	strat := NewCrossover(indicator.NewEMA(3), indicator.NewSMA(5))
	suite.Empty(strat.GenerateSignals(nil))
}

func (suite *CrossoverTestSuite) TestAlignment() {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	strat := NewCrossover(indicator.NewEMA(3), indicator.NewSMA(5))

	signals := strat.GenerateSignals(bars)
	suite.Len(signals, len(bars))
}

func (suite *CrossoverTestSuite) TestWarmupResolvesToZero() {
	// The SMA(5) leg is undefined for the first four bars, so the
	// signal must be 0 there no matter what the EMA does.
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	strat := NewCrossover(indicator.NewEMA(3), indicator.NewSMA(5))

	signals := strat.GenerateSignals(bars)

	for i := 0; i < 4; i++ {
		suite.Equal(0, signals[i], "bar %d is inside the slow warm-up", i)
	}
}

func (suite *CrossoverTestSuite) TestFastAboveSlowEmitsLong() {
	// Steadily rising closes: once the SMA is defined, the EMA reacts
	// faster and sits above it, so the rule goes long.
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	strat := NewCrossover(indicator.NewEMA(3), indicator.NewSMA(5))

	signals := strat.GenerateSignals(bars)

	for i := 4; i < len(signals); i++ {
		suite.Equal(1, signals[i], "bar %d should be long", i)
	}
}

func (suite *CrossoverTestSuite) TestSignalValuesAreBinary() {
	bars := barsFromCloses([]float64{5, 3, 8, 2, 9, 1, 7, 4, 6, 5})
	strat := NewCrossover(indicator.NewEMA(2), indicator.NewSMA(3))

	for _, s := range strat.GenerateSignals(bars) {
		suite.Contains([]int{0, 1}, s)
	}
}

func (suite *CrossoverTestSuite) TestStateless() {
	bars := barsFromCloses([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	strat := NewCrossover(indicator.NewEMA(3), indicator.NewSMA(5))

	first := strat.GenerateSignals(bars)
	second := strat.GenerateSignals(bars)
	suite.Equal(first, second)
}

type CrossoverConfigTestSuite struct {
	suite.Suite
}

func TestCrossoverConfigSuite(t *testing.T) {
	suite.Run(t, new(CrossoverConfigTestSuite))
}

func (suite *CrossoverConfigTestSuite) TestBuild() {
	cfg := CrossoverConfig{
		Fast: IndicatorSpec{Kind: types.IndicatorTypeEMA, Period: 20},
		Slow: IndicatorSpec{Kind: types.IndicatorTypeSMA, Period: 50},
	}

	suite.NoError(cfg.Validate())

	strat, err := cfg.Build()
	suite.NoError(err)
	suite.Equal("crossover(ema>sma)", strat.Name())
}

func (suite *CrossoverConfigTestSuite) TestBuildUnknownKind() {
	cfg := CrossoverConfig{
		Fast: IndicatorSpec{Kind: types.IndicatorType("atr"), Period: 20},
		Slow: IndicatorSpec{Kind: types.IndicatorTypeSMA, Period: 50},
	}

	_, err := cfg.Build()
	suite.Error(err)
}

func (suite *CrossoverConfigTestSuite) TestValidateMissingKind() {
	cfg := CrossoverConfig{
		Fast: IndicatorSpec{Period: 20},
		Slow: IndicatorSpec{Kind: types.IndicatorTypeSMA, Period: 50},
	}

	suite.Error(cfg.Validate())
}
