package engine

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/quantlab-oss/tradekit/internal/backtest/engine/engine_v1/cost"
	"github.com/quantlab-oss/tradekit/pkg/errors"
)

// BacktestEngineV1Config is the execution configuration consumed by
// the engine. Slippage worsens both entry and exit fills
// multiplicatively; the fixed cost is subtracted from exit proceeds
// only.
type BacktestEngineV1Config struct {
	Slippage   float64                 `yaml:"slippage" json:"slippage" jsonschema:"title=Slippage,description=Fractional adverse price adjustment applied to entry and exit fills,minimum=0" validate:"gte=0"`
	FixedCost  float64                 `yaml:"fixed_cost" json:"fixed_cost" jsonschema:"title=Fixed Cost,description=Flat amount subtracted from exit proceeds,minimum=0" validate:"gte=0"`
	CostScheme cost.Scheme             `yaml:"cost_scheme" json:"cost_scheme" jsonschema:"title=Cost Scheme,description=The cost model to charge on exits"`
	StartDate  optional.Option[string] `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,description=Optional first bar date to include"`
	EndDate    optional.Option[string] `yaml:"end_date" json:"end_date" jsonschema:"title=End Date,description=Optional last bar date to include"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		Slippage   float64     `yaml:"slippage"`
		FixedCost  float64     `yaml:"fixed_cost"`
		CostScheme cost.Scheme `yaml:"cost_scheme"`
		StartDate  *string     `yaml:"start_date"`
		EndDate    *string     `yaml:"end_date"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.Slippage = config.Slippage
	c.FixedCost = config.FixedCost
	c.CostScheme = config.CostScheme

	// A config that names a fixed cost but no scheme means fixed.
	if c.CostScheme == "" {
		if c.FixedCost > 0 {
			c.CostScheme = cost.SchemeFixed
		} else {
			c.CostScheme = cost.SchemeZero
		}
	}

	if config.StartDate != nil {
		c.StartDate = optional.Some(*config.StartDate)
	}

	if config.EndDate != nil {
		c.EndDate = optional.Some(*config.EndDate)
	}

	return nil
}

// Validate validates the BacktestEngineV1Config struct.
func (c *BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest engine config", err)
	}

	return nil
}

// CostModel resolves the cost model for this config. An unset scheme
// defaults to fixed whenever a fixed cost is configured.
func (c BacktestEngineV1Config) CostModel() cost.Model {
	if c.CostScheme == "" && c.FixedCost > 0 {
		return cost.GetModel(cost.SchemeFixed, c.FixedCost)
	}

	return cost.GetModel(c.CostScheme, c.FixedCost)
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[string]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date",
				}
			}
			if strings.Contains(t.String(), "cost.Scheme") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: cost.AllSchemes,
				}
			}
			return nil
		},
	}

	schema := reflector.Reflect(c)

	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values.
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Slippage:   0,
		FixedCost:  0,
		CostScheme: cost.SchemeZero,
		StartDate:  optional.None[string](),
		EndDate:    optional.None[string](),
	}
}
