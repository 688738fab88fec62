package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/optim"
)

// LogisticRegression is a binary classifier with a sigmoid output. It stands
// in for whatever estimator terminates the pipeline in the examples; the
// pipeline core only sees the Classifier interface.
type LogisticRegression struct {
	W      []float64
	B      float64
	Lr     float64
	Epochs int

	fitted bool
}

// NewLogisticRegression sets the training hyperparameters. Weights are
// zero-initialized at Fit (the loss is convex, no symmetry to break).
func NewLogisticRegression(lr float64, epochs int) *LogisticRegression {
	return &LogisticRegression{Lr: lr, Epochs: epochs}
}

// Fit trains with full-batch gradient descent.
func (m *LogisticRegression) Fit(X mat.Matrix, y []float64) error {
	r, c := X.Dims()
	if r != len(y) {
		return errors.New("logistic: feature rows and label count differ")
	}
	if r == 0 {
		return errors.New("logistic: empty training set")
	}
	m.W = make([]float64, c)
	m.B = 0
	opt := optim.NewSGD(m.Lr)
	for ep := 0; ep < m.Epochs; ep++ {
		p := m.proba(X)
		_, dy := BCE(y, p)
		gW := make([]float64, c)
		gb := 0.0
		for i := 0; i < r; i++ {
			d := dy[i]
			for j := 0; j < c; j++ {
				gW[j] += d * X.At(i, j)
			}
			gb += d
		}
		opt.Step(m.W, gW)
		m.B -= m.Lr * gb
	}
	m.fitted = true
	return nil
}

// PredictProba returns p(y=1) per row.
func (m *LogisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("logistic: predict before fit")
	}
	_, c := X.Dims()
	if c != len(m.W) {
		return nil, errors.New("logistic: feature count mismatch between model and input")
	}
	return m.proba(X), nil
}

// Predict returns class labels by a 0.5 probability threshold.
func (m *LogisticRegression) Predict(X mat.Matrix) ([]float64, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}

func (m *LogisticRegression) proba(X mat.Matrix) []float64 {
	r, c := X.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		sum := m.B
		for j := 0; j < c; j++ {
			sum += m.W[j] * X.At(i, j)
		}
		out[i] = Sigmoid(sum)
	}
	return out
}
