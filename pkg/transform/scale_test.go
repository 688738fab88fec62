package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/stats"
	"tabprep/pkg/table"
	"tabprep/pkg/transform"
)

func TestStandardScalerZeroMeanUnitStd(t *testing.T) {
	tbl := table.MustFromColumns(table.FloatCol("x", []float64{2, 4, 6, 8}))
	s := transform.NewStandardScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(tbl), nil))
	out, err := s.Transform(pipeline.TableValue(tbl))
	require.NoError(t, err)

	got := out.Table.ColAt(0).Floats
	assert.InDelta(t, 0, stats.Mean(got), 1e-9)
	assert.InDelta(t, 1, stats.Std(got), 1e-9)
}

func TestStandardScalerConstantColumnIsAllZeros(t *testing.T) {
	tbl := table.MustFromColumns(table.FloatCol("x", []float64{5, 5, 5}))
	s := transform.NewStandardScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(tbl), nil))
	out, err := s.Transform(pipeline.TableValue(tbl))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, out.Table.ColAt(0).Floats)
}

func TestStandardScalerAppliesTrainingStatistics(t *testing.T) {
	train := table.MustFromColumns(table.FloatCol("x", []float64{0, 10}))
	s := transform.NewStandardScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(train), nil))

	apply := table.MustFromColumns(table.FloatCol("x", []float64{5}))
	out, err := s.Transform(pipeline.TableValue(apply))
	require.NoError(t, err)
	// Training mean 5, std 5: the value 5 lands exactly on the mean.
	assert.InDelta(t, 0, out.Table.ColAt(0).Floats[0], 1e-12)
}

func TestStandardScalerNotFitted(t *testing.T) {
	s := transform.NewStandardScaler()
	_, err := s.Transform(pipeline.TableValue(table.New(0)))
	var nf *pipeline.NotFittedError
	require.ErrorAs(t, err, &nf)
}

func TestStandardScalerUnseenColumn(t *testing.T) {
	s := transform.NewStandardScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(table.MustFromColumns(table.FloatCol("a", []float64{1}))), nil))
	_, err := s.Transform(pipeline.TableValue(table.MustFromColumns(table.FloatCol("b", []float64{1}))))
	var se *pipeline.SchemaError
	require.ErrorAs(t, err, &se)
}

func TestStandardScalerProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ints := rapid.SliceOfN(rapid.IntRange(-1000, 1000), 2, 64).Draw(rt, "vals")
		vals := make([]float64, len(ints))
		for i, v := range ints {
			vals[i] = float64(v)
		}
		tbl := table.MustFromColumns(table.FloatCol("x", vals))
		s := transform.NewStandardScaler()
		if err := s.Fit(pipeline.TableValue(tbl), nil); err != nil {
			rt.Fatalf("fit: %v", err)
		}
		out, err := s.Transform(pipeline.TableValue(tbl))
		if err != nil {
			rt.Fatalf("transform: %v", err)
		}
		got := out.Table.ColAt(0).Floats
		if m := stats.Mean(got); m < -1e-6 || m > 1e-6 {
			rt.Fatalf("mean %v not ~0", m)
		}
	})
}

func TestMinMaxScaler(t *testing.T) {
	tbl := table.MustFromColumns(table.FloatCol("x", []float64{10, 20, 30}))
	s := transform.NewMinMaxScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(tbl), nil))
	out, err := s.Transform(pipeline.TableValue(tbl))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, out.Table.ColAt(0).Floats)
}

func TestRobustScaler(t *testing.T) {
	tbl := table.MustFromColumns(table.FloatCol("x", []float64{1, 2, 3, 4, 5}))
	s := transform.NewRobustScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(tbl), nil))
	out, err := s.Transform(pipeline.TableValue(tbl))
	require.NoError(t, err)
	// Median 3, IQR 2: the median maps to 0.
	assert.InDelta(t, 0, out.Table.ColAt(0).Floats[2], 1e-12)
	assert.InDelta(t, 1, out.Table.ColAt(0).Floats[4], 1e-12)
}

func TestScalersPassNonNumericThrough(t *testing.T) {
	tbl := table.MustFromColumns(
		table.FloatCol("x", []float64{1, 2}),
		table.StrCol("s", []string{"a", "b"}, nil),
	)
	s := transform.NewStandardScaler()
	require.NoError(t, s.Fit(pipeline.TableValue(tbl), nil))
	out, err := s.Transform(pipeline.TableValue(tbl))
	require.NoError(t, err)
	col, ok := out.Table.Col("s")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, col.Strings)
}
