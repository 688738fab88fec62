// Package model defines the estimator surface that terminates a
// preprocessing pipeline, plus a logistic-regression demo estimator and the
// classification metrics used to evaluate it.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/pipeline"
)

// Model is a generic supervised learning interface over feature matrices.
type Model interface {
	Fit(X mat.Matrix, y []float64) error
	Predict(X mat.Matrix) ([]float64, error)
}

// Classifier additionally exposes probabilities.
type Classifier interface {
	Model
	PredictProba(X mat.Matrix) ([]float64, error)
}

// Config is the downstream estimator's configuration surface. The pipeline
// core validates it and passes it through unmodified; interpretation is the
// estimator's business.
type Config struct {
	Dropout       float64
	HiddenUnits   []int
	TrainingSteps int
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.Dropout < 0 || c.Dropout >= 1 {
		return &pipeline.ConfigError{Op: "Estimator", Msg: fmt.Sprintf("dropout %v outside [0, 1)", c.Dropout)}
	}
	for _, w := range c.HiddenUnits {
		if w <= 0 {
			return &pipeline.ConfigError{Op: "Estimator", Msg: fmt.Sprintf("hidden unit width %d is not positive", w)}
		}
	}
	if c.TrainingSteps <= 0 {
		return &pipeline.ConfigError{Op: "Estimator", Msg: fmt.Sprintf("training steps %d is not positive", c.TrainingSteps)}
	}
	return nil
}
