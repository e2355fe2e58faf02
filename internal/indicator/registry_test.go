package indicator

import (
	"testing"

	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = NewRegistry()
}

func (suite *RegistryTestSuite) TestRegisterAndGet() {
	err := suite.registry.RegisterIndicator(NewSMA(20))
	suite.NoError(err)

	got, err := suite.registry.GetIndicator(types.IndicatorTypeSMA)
	suite.NoError(err)
	suite.Equal(types.IndicatorTypeSMA, got.Name())
}

func (suite *RegistryTestSuite) TestRegisterDuplicate() {
	suite.NoError(suite.registry.RegisterIndicator(NewEMA(12)))

	err := suite.registry.RegisterIndicator(NewEMA(26))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorAlreadyExists))
}

func (suite *RegistryTestSuite) TestGetMissing() {
	_, err := suite.registry.GetIndicator(types.IndicatorTypeRSI)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *RegistryTestSuite) TestListAndRemove() {
	suite.NoError(suite.registry.RegisterIndicator(NewSMA(50)))
	suite.NoError(suite.registry.RegisterIndicator(NewRSI(14)))

	names := suite.registry.ListIndicators()
	suite.Len(names, 2)

	suite.NoError(suite.registry.RemoveIndicator(types.IndicatorTypeSMA))
	suite.Len(suite.registry.ListIndicators(), 1)

	err := suite.registry.RemoveIndicator(types.IndicatorTypeSMA)
	suite.Error(err)
}

type FactoryTestSuite struct {
	suite.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (suite *FactoryTestSuite) TestNewKnownKinds() {
	cases := []struct {
		kind   types.IndicatorType
		params Params
	}{
		{types.IndicatorTypeSMA, Params{Period: 50}},
		{types.IndicatorTypeEMA, Params{Period: 20}},
		{types.IndicatorTypeRSI, Params{Period: 14}},
		{types.IndicatorTypeMACD, Params{FastPeriod: 12, SlowPeriod: 26}},
	}

	for _, tc := range cases {
		ind, err := New(tc.kind, tc.params)
		suite.NoError(err)
		suite.Equal(tc.kind, ind.Name())
	}
}

func (suite *FactoryTestSuite) TestNewUnknownKind() {
	_, err := New(types.IndicatorType("vwap"), Params{Period: 10})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}
