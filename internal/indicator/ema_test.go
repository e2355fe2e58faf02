package indicator

import (
	"testing"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/stretchr/testify/suite"
)

type EMAUnitTestSuite struct {
	suite.Suite
}

func TestEMAUnitSuite(t *testing.T) {
	suite.Run(t, new(EMAUnitTestSuite))
}

func (suite *EMAUnitTestSuite) TestName() {
	ema := NewEMA(12)
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
	suite.Equal(12, ema.Period())
}

func (suite *EMAUnitTestSuite) TestComputeSeededFromFirstPrice() {
	prices := []float64{42.5, 43.0, 41.0}
	out := NewEMA(3).Compute(prices)

	suite.Len(out, len(prices))
	suite.InDelta(prices[0], out[0], 1e-12)
}

func (suite *EMAUnitTestSuite) TestComputeRecursion() {
	// alpha = 2/(3+1) = 0.5
	prices := []float64{1, 2, 3}
	out := NewEMA(3).Compute(prices)

	suite.InDelta(1.0, out[0], 1e-9)
	suite.InDelta(1.5, out[1], 1e-9)
	suite.InDelta(2.25, out[2], 1e-9)
}

func (suite *EMAUnitTestSuite) TestComputeNoWarmupRegion() {
	prices := []float64{5, 6, 7, 8, 9, 10}
	out := NewEMA(4).Compute(prices)

	for i := range out {
		suite.True(IsDefined(out[i]), "index %d should be defined", i)
	}
}

func (suite *EMAUnitTestSuite) TestComputeInvalidPeriod() {
	prices := []float64{1, 2, 3}

	for _, period := range []int{0, -2} {
		out := NewEMA(period).Compute(prices)
		suite.Len(out, len(prices))

		for i := range out {
			suite.False(IsDefined(out[i]))
		}
	}
}

func (suite *EMAUnitTestSuite) TestComputeEmptyInput() {
	out := NewEMA(3).Compute(nil)
	suite.Empty(out)
}
