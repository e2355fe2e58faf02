package main

import (
	"os"

	"github.com/go-playground/validator/v10"
	engine "github.com/quantlab-oss/tradekit/internal/backtest/engine/engine_v1"
	"github.com/quantlab-oss/tradekit/internal/strategy"
	"github.com/quantlab-oss/tradekit/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SourceType selects how the price file is loaded.
type SourceType string

const (
	SourceCSV    SourceType = "csv"
	SourceDuckDB SourceType = "duckdb"
)

// DataConfig locates the price data for a run.
type DataConfig struct {
	Path   string     `yaml:"path" json:"path" validate:"required"`
	Source SourceType `yaml:"source" json:"source" validate:"oneof=csv duckdb"`
}

// AppConfig is the full configuration for one backtest run.
type AppConfig struct {
	Data     DataConfig                    `yaml:"data" json:"data" validate:"required"`
	Strategy strategy.CrossoverConfig      `yaml:"strategy" json:"strategy" validate:"required"`
	Engine   engine.BacktestEngineV1Config `yaml:"engine" json:"engine"`
	Output   string                        `yaml:"output" json:"output"`
}

// Validate validates the AppConfig and its nested sections. The
// strategy and engine sections are validated by their own Validate
// methods so violations carry the section's error code.
func (c *AppConfig) Validate() error {
	validate := validator.New()
	if err := validate.StructExcept(c, "Strategy", "Engine"); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid backtest config", err)
	}

	if err := c.Strategy.Validate(); err != nil {
		return err
	}

	return c.Engine.Validate()
}

// LoadAppConfig reads and validates a yaml config file.
func LoadAppConfig(path string) (AppConfig, error) {
	config := AppConfig{
		Data:   DataConfig{Path: "", Source: SourceCSV},
		Engine: engine.EmptyConfig(),
		Output: "",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(errors.ErrCodeFileOpen, err, "failed to read config file: %s", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file: %s", path)
	}

	if config.Data.Source == "" {
		config.Data.Source = SourceCSV
	}

	if err := config.Validate(); err != nil {
		return config, err
	}

	return config, nil
}
