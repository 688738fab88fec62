// Package config loads the declarative pipeline settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tabprep/pkg/pipeline"
)

// Estimator mirrors the downstream estimator's configuration surface. The
// values are validated here and handed through unmodified.
type Estimator struct {
	Dropout       float64 `yaml:"dropout"`
	HiddenUnits   []int   `yaml:"hidden_units"`
	TrainingSteps int     `yaml:"training_steps"`
}

// Impute selects the imputation strategies per column family.
type Impute struct {
	// Categorical is "fill-constant" or "most-frequent".
	Categorical string `yaml:"categorical"`
	// Numeric is "", "mean", "median" or "mode"; empty disables numeric
	// imputation.
	Numeric string `yaml:"numeric"`
}

// Config is the full pipeline configuration.
type Config struct {
	// Features lists the columns projected into the pipeline, in order.
	Features []string `yaml:"features"`
	// Categorical lists the object columns coerced to categorical.
	Categorical []string `yaml:"categorical"`
	Impute      Impute   `yaml:"impute"`
	// Scaler is "standard", "minmax" or "robust".
	Scaler    string    `yaml:"scaler"`
	Estimator Estimator `yaml:"estimator"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks strategy names and estimator bounds.
func (c *Config) Validate() error {
	if len(c.Features) == 0 {
		return &pipeline.ConfigError{Op: "Config", Msg: "features list is empty"}
	}
	switch c.Impute.Categorical {
	case "fill-constant", "most-frequent":
	default:
		return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("unknown categorical impute strategy %q", c.Impute.Categorical)}
	}
	switch c.Impute.Numeric {
	case "", "mean", "median", "mode":
	default:
		return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("unknown numeric impute strategy %q", c.Impute.Numeric)}
	}
	switch c.Scaler {
	case "standard", "minmax", "robust":
	default:
		return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("unknown scaler %q", c.Scaler)}
	}
	if c.Estimator.Dropout < 0 || c.Estimator.Dropout >= 1 {
		return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("estimator dropout %v outside [0, 1)", c.Estimator.Dropout)}
	}
	for _, w := range c.Estimator.HiddenUnits {
		if w <= 0 {
			return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("estimator hidden unit width %d is not positive", w)}
		}
	}
	if c.Estimator.TrainingSteps <= 0 {
		return &pipeline.ConfigError{Op: "Config", Msg: fmt.Sprintf("estimator training steps %d is not positive", c.Estimator.TrainingSteps)}
	}
	return nil
}
