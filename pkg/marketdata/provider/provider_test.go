package provider

import (
	"testing"

	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (suite *ProviderTestSuite) TestNewProviderPolygon() {
	provider, err := NewProvider(TypePolygon, "test-key")
	suite.Require().NoError(err)
	suite.NotNil(provider)
}

func (suite *ProviderTestSuite) TestNewProviderPolygonRequiresKey() {
	_, err := NewProvider(TypePolygon, "")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *ProviderTestSuite) TestNewProviderBinance() {
	provider, err := NewProvider(TypeBinance, "")
	suite.Require().NoError(err)
	suite.NotNil(provider)
}

func (suite *ProviderTestSuite) TestNewProviderUnknown() {
	_, err := NewProvider(Type("alpaca"), "")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidProvider))
}
