package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SentinelTestSuite struct {
	suite.Suite
}

func TestSentinelSuite(t *testing.T) {
	suite.Run(t, new(SentinelTestSuite))
}

func (suite *SentinelTestSuite) TestUndefinedSentinel() {
	suite.False(IsDefined(Undefined()))
	suite.True(IsDefined(0.0))
	suite.True(IsDefined(-1.5))
}

func (suite *SentinelTestSuite) TestUndefinedSeries() {
	series := undefinedSeries(3)
	suite.Len(series, 3)

	for _, v := range series {
		suite.False(IsDefined(v))
	}
}
