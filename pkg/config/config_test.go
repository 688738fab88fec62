package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/pkg/config"
	"tabprep/pkg/pipeline"
)

const sampleYAML = `
features: [age, workclass, hours-per-week]
categorical: [workclass]
impute:
  categorical: fill-constant
  numeric: median
scaler: standard
estimator:
  dropout: 0.3
  hidden_units: [128, 48, 12]
  training_steps: 900
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "workclass", "hours-per-week"}, cfg.Features)
	assert.Equal(t, "fill-constant", cfg.Impute.Categorical)
	assert.Equal(t, "median", cfg.Impute.Numeric)
	assert.Equal(t, 0.3, cfg.Estimator.Dropout)
	assert.Equal(t, []int{128, 48, 12}, cfg.Estimator.HiddenUnits)
	assert.Equal(t, 900, cfg.Estimator.TrainingSteps)
}

func TestLoadRejectsUnknownScaler(t *testing.T) {
	bad := `
features: [age]
impute:
  categorical: fill-constant
scaler: quantile
estimator: {dropout: 0.1, training_steps: 10}
`
	_, err := config.Load(writeConfig(t, bad))
	var ce *pipeline.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "quantile")
}

func TestValidateBounds(t *testing.T) {
	base := func() config.Config {
		return config.Config{
			Features:  []string{"age"},
			Impute:    config.Impute{Categorical: "most-frequent"},
			Scaler:    "minmax",
			Estimator: config.Estimator{Dropout: 0.2, TrainingSteps: 5},
		}
	}

	good := base()
	require.NoError(t, good.Validate())

	noFeatures := base()
	noFeatures.Features = nil
	require.Error(t, noFeatures.Validate())

	badDropout := base()
	badDropout.Estimator.Dropout = 1
	require.Error(t, badDropout.Validate())

	badSteps := base()
	badSteps.Estimator.TrainingSteps = 0
	require.Error(t, badSteps.Validate())

	badImpute := base()
	badImpute.Impute.Numeric = "zero"
	require.Error(t, badImpute.Validate())
}
