// Package pipeline implements the composable transform abstraction: stateful
// units with a fit phase and an apply phase, chained sequentially by Pipeline
// and fanned out/in by FeatureUnion.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/table"
)

// Value is the unit passed between pipeline stages: exactly one of Table or
// Matrix is set.
type Value struct {
	Table  *table.Table
	Matrix mat.Matrix
}

// TableValue wraps a table.
func TableValue(t *table.Table) Value { return Value{Table: t} }

// MatrixValue wraps a matrix.
func MatrixValue(m mat.Matrix) Value { return Value{Matrix: m} }

// Rows returns the row count of whichever representation is set.
func (v Value) Rows() int {
	if v.Table != nil {
		return v.Table.Rows()
	}
	if v.Matrix != nil {
		r, _ := v.Matrix.Dims()
		return r
	}
	return 0
}

// Transformer is a stateful transform unit. Fit learns parameters from
// training data; Transform applies them without altering learned state, so
// repeated Transform calls after a single Fit are independent and
// side-effect-free. Transforms never mutate their input.
type Transformer interface {
	Fit(v Value, y []float64) error
	Transform(v Value) (Value, error)
}

// fitTransformer is implemented by composite stages that can fit and apply
// in one pass, avoiding a redundant second apply during Pipeline.Fit.
type fitTransformer interface {
	FitTransform(v Value, y []float64) (Value, error)
}

// Step is a named stage in a Pipeline.
type Step struct {
	Name        string
	Transformer Transformer
}

// Pipeline chains transforms: fitting runs each stage's fit-then-apply in
// sequence, threading the output forward; a later Transform applies every
// stage's learned parameters in the same order without re-fitting.
type Pipeline struct {
	steps  []Step
	fitted bool
	log    zerolog.Logger
}

// New returns a pipeline over the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps, log: zerolog.Nop()}
}

// WithLogger enables per-step fit timing logs.
func (p *Pipeline) WithLogger(log zerolog.Logger) *Pipeline {
	p.log = log
	return p
}

// Steps returns the configured steps.
func (p *Pipeline) Steps() []Step { return p.steps }

// Fit fits every stage in order against the running output and marks the
// pipeline fitted. The final stage's output is discarded; use FitTransform
// to keep it.
func (p *Pipeline) Fit(v Value, y []float64) error {
	_, err := p.FitTransform(v, y)
	return err
}

// FitTransform fits the pipeline and returns the final stage's output.
func (p *Pipeline) FitTransform(v Value, y []float64) (Value, error) {
	for _, s := range p.steps {
		start := time.Now()
		out, err := fitTransformStep(s.Transformer, v, y)
		if err != nil {
			return Value{}, fmt.Errorf("step %q: %w", s.Name, err)
		}
		p.log.Debug().Str("step", s.Name).Dur("took", time.Since(start)).Int("rows", out.Rows()).Msg("fitted")
		v = out
	}
	p.fitted = true
	return v, nil
}

// Transform applies every fitted stage in order.
func (p *Pipeline) Transform(v Value) (Value, error) {
	if !p.fitted {
		return Value{}, &NotFittedError{Op: "Pipeline"}
	}
	for _, s := range p.steps {
		out, err := s.Transformer.Transform(v)
		if err != nil {
			return Value{}, fmt.Errorf("step %q: %w", s.Name, err)
		}
		v = out
	}
	return v, nil
}

func fitTransformStep(t Transformer, v Value, y []float64) (Value, error) {
	if ft, ok := t.(fitTransformer); ok {
		return ft.FitTransform(v, y)
	}
	if err := t.Fit(v, y); err != nil {
		return Value{}, err
	}
	return t.Transform(v)
}
