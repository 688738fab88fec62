package model

import (
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/sparse"
	"tabprep/pkg/table"
)

// Predictor terminates a preprocessing pipeline with a classifier: Fit runs
// the pipeline's fit-transform chain and trains the estimator on the
// resulting feature matrix; Predict re-applies the fitted pipeline.
type Predictor struct {
	Pre *pipeline.Pipeline
	Est Classifier

	fitted bool
}

// NewPredictor wires a preprocessing pipeline to a downstream classifier.
func NewPredictor(pre *pipeline.Pipeline, est Classifier) *Predictor {
	return &Predictor{Pre: pre, Est: est}
}

// Fit fits the pipeline on the training table and trains the estimator on
// its output.
func (p *Predictor) Fit(t *table.Table, y []float64) error {
	v, err := p.Pre.FitTransform(pipeline.TableValue(t), y)
	if err != nil {
		return err
	}
	X, err := featureMatrix(v)
	if err != nil {
		return err
	}
	if err := p.Est.Fit(X, y); err != nil {
		return err
	}
	p.fitted = true
	return nil
}

// Predict applies the fitted pipeline and returns the estimator's labels.
func (p *Predictor) Predict(t *table.Table) ([]float64, error) {
	X, err := p.features(t)
	if err != nil {
		return nil, err
	}
	return p.Est.Predict(X)
}

// PredictProba applies the fitted pipeline and returns probabilities.
func (p *Predictor) PredictProba(t *table.Table) ([]float64, error) {
	X, err := p.features(t)
	if err != nil {
		return nil, err
	}
	return p.Est.PredictProba(X)
}

func (p *Predictor) features(t *table.Table) (mat.Matrix, error) {
	if !p.fitted {
		return nil, &pipeline.NotFittedError{Op: "Predictor"}
	}
	v, err := p.Pre.Transform(pipeline.TableValue(t))
	if err != nil {
		return nil, err
	}
	return featureMatrix(v)
}

// featureMatrix densifies whatever the pipeline produced.
func featureMatrix(v pipeline.Value) (mat.Matrix, error) {
	if v.Table != nil {
		return v.Table.ToMatrix()
	}
	if c, ok := v.Matrix.(*sparse.CSR); ok {
		return c.ToDense(), nil
	}
	return v.Matrix, nil
}
