package metrics

import (
	"testing"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/stretchr/testify/suite"
)

type MetricsTestSuite struct {
	suite.Suite
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (suite *MetricsTestSuite) TestMaxDrawdown() {
	equity := []float64{1.0, 1.2, 0.9, 1.1}
	suite.InDelta(0.25, MaxDrawdown(equity), 1e-12)
}

func (suite *MetricsTestSuite) TestMaxDrawdownMonotonicCurve() {
	equity := []float64{1.0, 1.1, 1.2, 1.3}
	suite.InDelta(0.0, MaxDrawdown(equity), 1e-12)
}

func (suite *MetricsTestSuite) TestMaxDrawdownIgnoresNonPositivePeaks() {
	suite.InDelta(0.0, MaxDrawdown([]float64{0.0, -1.0, 0.0}), 1e-12)
	suite.InDelta(0.0, MaxDrawdown(nil), 1e-12)
}

func (suite *MetricsTestSuite) TestComputeSummary() {
	equity := []float64{1.0, 1.2, 0.9, 1.1}
	trades := []types.Trade{
		{EntryDate: "2024-01-02", ExitDate: "2024-01-03", PnL: 0.2},
		{EntryDate: "2024-01-04", ExitDate: "2024-01-05", PnL: -0.1},
	}

	summary := Compute(equity, trades)
	suite.InDelta(1.1, summary.FinalEquity, 1e-12)
	suite.InDelta(0.25, summary.MaxDrawdown, 1e-12)
	suite.Equal(2, summary.TotalTrades)
	suite.Equal(1, summary.WinTrades)
	suite.InDelta(0.5, summary.WinRate, 1e-12)
}

func (suite *MetricsTestSuite) TestComputeEmptyRun() {
	summary := Compute(nil, nil)
	suite.InDelta(1.0, summary.FinalEquity, 1e-12)
	suite.Zero(summary.MaxDrawdown)
	suite.Zero(summary.TotalTrades)
	suite.Zero(summary.WinRate)
}

func (suite *MetricsTestSuite) TestComputeZeroFinalSlot() {
	summary := Compute([]float64{1.0, 1.1, 0.0}, nil)
	suite.InDelta(1.0, summary.FinalEquity, 1e-12)
}
