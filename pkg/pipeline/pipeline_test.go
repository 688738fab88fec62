package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/table"
)

// addConst shifts every numeric cell by a learned offset: fit records the
// first cell of the first column, transform adds it. Used to verify that
// fit state learned on training data is what later transforms apply.
type addConst struct {
	offset float64
	fits   int
}

func (a *addConst) Fit(v pipeline.Value, y []float64) error {
	a.fits++
	a.offset = v.Table.ColAt(0).Floats[0]
	return nil
}

func (a *addConst) Transform(v pipeline.Value) (pipeline.Value, error) {
	out := table.New(v.Table.Rows())
	for j := 0; j < v.Table.NumCols(); j++ {
		c := v.Table.ColAt(j).Clone()
		for i := range c.Floats {
			c.Floats[i] += a.offset
		}
		_ = out.Append(c)
	}
	return pipeline.TableValue(out), nil
}

type failing struct{ err error }

func (f *failing) Fit(v pipeline.Value, y []float64) error { return f.err }

func (f *failing) Transform(v pipeline.Value) (pipeline.Value, error) {
	return pipeline.Value{}, f.err
}

func numTable(vals ...float64) *table.Table {
	return table.MustFromColumns(table.FloatCol("x", vals))
}

func TestTransformBeforeFitIsNotFitted(t *testing.T) {
	p := pipeline.New(pipeline.Step{Name: "shift", Transformer: &addConst{}})
	_, err := p.Transform(pipeline.TableValue(numTable(1)))
	var nf *pipeline.NotFittedError
	require.ErrorAs(t, err, &nf)
}

func TestFitThreadsOutputForward(t *testing.T) {
	first := &addConst{}
	second := &addConst{}
	p := pipeline.New(
		pipeline.Step{Name: "a", Transformer: first},
		pipeline.Step{Name: "b", Transformer: second},
	)
	out, err := p.FitTransform(pipeline.TableValue(numTable(1, 2)), nil)
	require.NoError(t, err)
	// Stage a learns offset 1 and emits [2,3]; stage b fits on that output,
	// learns 2, and emits [4,5].
	assert.Equal(t, 1.0, first.offset)
	assert.Equal(t, 2.0, second.offset)
	assert.Equal(t, []float64{4, 5}, out.Table.ColAt(0).Floats)
}

func TestTransformUsesLearnedStateWithoutRefitting(t *testing.T) {
	step := &addConst{}
	p := pipeline.New(pipeline.Step{Name: "shift", Transformer: step})
	require.NoError(t, p.Fit(pipeline.TableValue(numTable(10)), nil))
	require.Equal(t, 1, step.fits)

	out, err := p.Transform(pipeline.TableValue(numTable(0, 1)))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 11}, out.Table.ColAt(0).Floats)
	assert.Equal(t, 1, step.fits, "transform must not refit")
}

func TestStepErrorsArePropagatedWithStepName(t *testing.T) {
	sentinel := errors.New("boom")
	p := pipeline.New(pipeline.Step{Name: "bad", Transformer: &failing{err: sentinel}})
	err := p.Fit(pipeline.TableValue(numTable(1)), nil)
	require.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestValueRows(t *testing.T) {
	assert.Equal(t, 2, pipeline.TableValue(numTable(1, 2)).Rows())
	assert.Equal(t, 0, pipeline.Value{}.Rows())
}
