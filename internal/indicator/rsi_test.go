package indicator

import (
	"testing"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/stretchr/testify/suite"
)

type RSIUnitTestSuite struct {
	suite.Suite
}

func TestRSIUnitSuite(t *testing.T) {
	suite.Run(t, new(RSIUnitTestSuite))
}

func (suite *RSIUnitTestSuite) TestName() {
	rsi := NewRSI(14)
	suite.Equal(types.IndicatorTypeRSI, rsi.Name())
	suite.Equal(14, rsi.Period())
}

func (suite *RSIUnitTestSuite) TestComputeFirstDefinedIndex() {
	prices := []float64{1, 2, 1, 3, 2, 4, 3, 5, 4, 6}
	period := 5
	out := NewRSI(period).Compute(prices)

	suite.Len(out, len(prices))

	for i := 0; i < period; i++ {
		suite.False(IsDefined(out[i]), "index %d should be undefined during warm-up", i)
	}

	for i := period; i < len(out); i++ {
		suite.True(IsDefined(out[i]), "index %d should be defined", i)
	}
}

func (suite *RSIUnitTestSuite) TestComputeBounds() {
	prices := []float64{10, 12, 11, 13, 9, 14, 8, 15, 7, 16, 6, 17}
	out := NewRSI(5).Compute(prices)

	for i, v := range out {
		if IsDefined(v) {
			suite.GreaterOrEqual(v, 0.0, "index %d", i)
			suite.LessOrEqual(v, 100.0, "index %d", i)
		}
	}
}

func (suite *RSIUnitTestSuite) TestComputePerfectUptrend() {
	// No losses at all: the epsilon substitution should push RSI to
	// essentially 100 rather than dividing by zero.
	prices := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := NewRSI(5).Compute(prices)

	for i := 5; i < len(out); i++ {
		suite.InDelta(100.0, out[i], 1e-6)
	}
}

func (suite *RSIUnitTestSuite) TestComputePerfectDowntrend() {
	prices := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	out := NewRSI(5).Compute(prices)

	for i := 5; i < len(out); i++ {
		suite.InDelta(0.0, out[i], 1e-6)
	}
}

func (suite *RSIUnitTestSuite) TestComputeInvalidInputs() {
	// Non-positive period.
	out := NewRSI(0).Compute([]float64{1, 2, 3})
	for i := range out {
		suite.False(IsDefined(out[i]))
	}

	// Fewer than two prices.
	out = NewRSI(5).Compute([]float64{1})
	suite.Len(out, 1)
	suite.False(IsDefined(out[0]))

	// Period longer than the available changes.
	out = NewRSI(14).Compute([]float64{1, 2, 3, 4, 5})
	for i := range out {
		suite.False(IsDefined(out[i]))
	}
}
