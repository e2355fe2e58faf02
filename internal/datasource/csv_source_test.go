package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantlab-oss/tradekit/internal/logger"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const sampleCSV = `Date,Open,High,Low,Close,Volume
2024-01-01,100.0,102.0,99.0,101.0,10000
2024-01-02,101.0,103.0,100.5,102.5,12000

2024-01-03,102.5,104.0,101.0,103.0,9000
`

type CSVSourceTestSuite struct {
	suite.Suite
	logger *logger.Logger
}

func TestCSVSourceSuite(t *testing.T) {
	suite.Run(t, new(CSVSourceTestSuite))
}

func (suite *CSVSourceTestSuite) SetupSuite() {
	log, err := logger.NewLogger()
	suite.Require().NoError(err)
	suite.logger = log
}

func (suite *CSVSourceTestSuite) writeFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *CSVSourceTestSuite) TestLoad() {
	source := NewCSVSource(suite.writeFile(sampleCSV), suite.logger)
	defer source.Close()

	bars, err := source.Load(context.Background())
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	suite.Equal("2024-01-01", bars[0].Date)
	suite.InDelta(100.0, bars[0].Open, 1e-12)
	suite.InDelta(101.0, bars[0].Close, 1e-12)
	suite.InDelta(10000.0, bars[0].Volume, 1e-12)

	// Blank lines are skipped, order is preserved.
	suite.Equal("2024-01-03", bars[2].Date)
}

func (suite *CSVSourceTestSuite) TestCount() {
	source := NewCSVSource(suite.writeFile(sampleCSV), suite.logger)

	count, err := source.Count(context.Background())
	suite.Require().NoError(err)
	suite.Equal(3, count)
}

func (suite *CSVSourceTestSuite) TestMissingFile() {
	source := NewCSVSource(filepath.Join(suite.T().TempDir(), "nope.csv"), suite.logger)

	_, err := source.Load(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeFileOpen))
}

func (suite *CSVSourceTestSuite) TestHeaderWithoutDate() {
	source := NewCSVSource(suite.writeFile("Time,Open\n2024-01-01,1\n"), suite.logger)

	_, err := source.Load(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataMalformed))
}

func (suite *CSVSourceTestSuite) TestMalformedNumberIsFatal() {
	content := "Date,Open,High,Low,Close,Volume\n2024-01-01,abc,1,1,1,1\n"
	source := NewCSVSource(suite.writeFile(content), suite.logger)

	_, err := source.Load(context.Background())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataMalformed))
}

func (suite *CSVSourceTestSuite) TestEmptyFile() {
	source := NewCSVSource(suite.writeFile(""), suite.logger)

	bars, err := source.Load(context.Background())
	suite.Require().NoError(err)
	suite.Empty(bars)
}
