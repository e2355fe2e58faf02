package indicator

import (
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// Params holds the configuration used to construct an indicator.
// Period applies to sma/ema/rsi; FastPeriod and SlowPeriod apply to macd.
type Params struct {
	Period     int `yaml:"period" json:"period"`
	FastPeriod int `yaml:"fast_period" json:"fast_period"`
	SlowPeriod int `yaml:"slow_period" json:"slow_period"`
}

// New constructs an indicator of the given kind. Period validity is
// not checked here: a non-positive period is a configuration error
// that Compute reports by returning an all-undefined series, per the
// indicator contract.
func New(kind types.IndicatorType, params Params) (Indicator, error) {
	switch kind {
	case types.IndicatorTypeSMA:
		return NewSMA(params.Period), nil
	case types.IndicatorTypeEMA:
		return NewEMA(params.Period), nil
	case types.IndicatorTypeRSI:
		return NewRSI(params.Period), nil
	case types.IndicatorTypeMACD:
		return NewMACD(params.FastPeriod, params.SlowPeriod), nil
	default:
		return nil, errors.Newf(errors.ErrCodeIndicatorNotFound, "unknown indicator kind: %s", kind)
	}
}
