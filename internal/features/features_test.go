package features

import (
	"fmt"
	"math"
	"testing"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/stretchr/testify/suite"
)

type FeaturesTestSuite struct {
	suite.Suite
}

func TestFeaturesSuite(t *testing.T) {
	suite.Run(t, new(FeaturesTestSuite))
}

// syntheticBars produces a smooth upward drift with a mild oscillation
// so every indicator and return is well defined.
func syntheticBars(n int) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		price := 100.0 + 0.5*float64(i) + 2.0*math.Sin(float64(i)/7.0)
		bars[i] = types.Bar{
			Date:   fmt.Sprintf("2024-%03d", i),
			Open:   price,
			High:   price + 1,
			Low:    price - 1,
			Close:  price,
			Volume: 1000 + 10*float64(i%13),
		}
	}

	return bars
}

func (suite *FeaturesTestSuite) TestCreateFeaturesShape() {
	engineer := NewEngineer(DefaultConfig())
	bars := syntheticBars(120)

	features, targets := engineer.CreateFeatures(bars, 1)
	suite.Require().NotEmpty(features)
	suite.Len(targets, len(features))

	// start index 50, end index len-1
	suite.Len(features, 120-1-50)

	for _, row := range features {
		suite.Len(row, engineer.FeatureCount())
	}
}

func (suite *FeaturesTestSuite) TestTargetsAreFutureCloses() {
	engineer := NewEngineer(DefaultConfig())
	bars := syntheticBars(120)

	_, targets := engineer.CreateFeatures(bars, 1)
	suite.Require().NotEmpty(targets)
	suite.InDelta(bars[51].Close, targets[0], 1e-12)

	_, targets = engineer.CreateFeatures(bars, 5)
	suite.Require().NotEmpty(targets)
	suite.InDelta(bars[55].Close, targets[0], 1e-12)
}

func (suite *FeaturesTestSuite) TestInsufficientHistory() {
	engineer := NewEngineer(DefaultConfig())
	bars := syntheticBars(40)

	features, targets := engineer.CreateFeatures(bars, 1)
	suite.Empty(features)
	suite.Empty(targets)
}

func (suite *FeaturesTestSuite) TestFeatureCountMatchesNames() {
	config := DefaultConfig()
	engineer := NewEngineer(config)
	suite.Len(engineer.FeatureNames(), engineer.FeatureCount())

	// lag 5 twice + 3 indicators + 2 volume + volatility
	suite.Equal(16, engineer.FeatureCount())

	config.UseVolume = false
	config.UseRSI = false
	engineer = NewEngineer(config)
	suite.Len(engineer.FeatureNames(), engineer.FeatureCount())
	suite.Equal(13, engineer.FeatureCount())
}

func (suite *FeaturesTestSuite) TestIndicatorKindsFollowConfig() {
	engineer := NewEngineer(DefaultConfig())
	suite.ElementsMatch(
		[]types.IndicatorType{types.IndicatorTypeSMA, types.IndicatorTypeEMA, types.IndicatorTypeRSI},
		engineer.IndicatorKinds(),
	)

	config := DefaultConfig()
	config.UseSMA = false
	config.UseEMA = false
	engineer = NewEngineer(config)
	suite.ElementsMatch([]types.IndicatorType{types.IndicatorTypeRSI}, engineer.IndicatorKinds())
}

func (suite *FeaturesTestSuite) TestFeatureNames() {
	engineer := NewEngineer(DefaultConfig())
	names := engineer.FeatureNames()

	suite.Equal("return_lag_1", names[0])
	suite.Contains(names, "price_lag_5_norm")
	suite.Contains(names, "sma_20_norm")
	suite.Contains(names, "ema_12_norm")
	suite.Contains(names, "rsi_14_norm")
	suite.Contains(names, "volume_change")
	suite.Equal("volatility_5d", names[len(names)-1])
}

func (suite *FeaturesTestSuite) TestRSIFeatureIsNormalized() {
	config := Config{UseRSI: true, LagDays: 5, RSIPeriod: 14}
	engineer := NewEngineer(config)
	bars := syntheticBars(120)

	features, _ := engineer.CreateFeatures(bars, 1)
	suite.Require().NotEmpty(features)

	for _, row := range features {
		// rsi_norm then volatility
		suite.Require().Len(row, 2)
		suite.GreaterOrEqual(row[0], 0.0)
		suite.LessOrEqual(row[0], 1.0)
	}
}

func (suite *FeaturesTestSuite) TestTrainTestSplit() {
	features := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}}
	targets := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	trainX, trainY, testX, testY := TrainTestSplit(features, targets, 0.8)
	suite.Len(trainX, 8)
	suite.Len(trainY, 8)
	suite.Len(testX, 2)
	suite.Len(testY, 2)

	// chronological: test rows come strictly after train rows
	suite.Equal(9.0, testY[0])
	suite.Equal(10.0, testY[1])
}
