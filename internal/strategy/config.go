package strategy

import (
	"github.com/go-playground/validator/v10"
	"github.com/quantlab-oss/tradekit/internal/indicator"
	"github.com/quantlab-oss/tradekit/internal/types"
	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// IndicatorSpec selects and configures one indicator instance.
type IndicatorSpec struct {
	Kind       types.IndicatorType `yaml:"kind" json:"kind" jsonschema:"title=Kind,description=Indicator kind (sma/ema/rsi/macd)" validate:"required"`
	Period     int                 `yaml:"period" json:"period" jsonschema:"title=Period,description=Indicator period for sma/ema/rsi"`
	FastPeriod int                 `yaml:"fast_period" json:"fast_period" jsonschema:"title=Fast Period,description=Fast EMA period for macd"`
	SlowPeriod int                 `yaml:"slow_period" json:"slow_period" jsonschema:"title=Slow Period,description=Slow EMA period for macd"`
}

// Build constructs the configured indicator.
func (s IndicatorSpec) Build() (indicator.Indicator, error) {
	return indicator.New(s.Kind, indicator.Params{
		Period:     s.Period,
		FastPeriod: s.FastPeriod,
		SlowPeriod: s.SlowPeriod,
	})
}

// CrossoverConfig pairs the two indicator instances of a crossover rule.
type CrossoverConfig struct {
	Fast IndicatorSpec `yaml:"fast" json:"fast" validate:"required"`
	Slow IndicatorSpec `yaml:"slow" json:"slow" validate:"required"`
}

// Validate validates the CrossoverConfig struct.
func (c *CrossoverConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid crossover config", err)
	}

	return nil
}

// Build constructs the crossover strategy from the config.
func (c *CrossoverConfig) Build() (*Crossover, error) {
	fast, err := c.Fast.Build()
	if err != nil {
		return nil, err
	}

	slow, err := c.Slow.Build()
	if err != nil {
		return nil, err
	}

	return NewCrossover(fast, slow), nil
}
