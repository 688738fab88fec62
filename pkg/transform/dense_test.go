package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/sparse"
	"tabprep/pkg/table"
	"tabprep/pkg/transform"
)

func TestSparseToTableNamesColumnsByIndex(t *testing.T) {
	b := sparse.NewBuilder(2, 3)
	b.Add(0, 0, 1)
	b.Add(1, 2, 4)

	s := transform.NewSparseToTable()
	out, err := s.Transform(pipeline.MatrixValue(b.Build()))
	require.NoError(t, err)

	tbl := out.Table
	assert.Equal(t, []string{"0", "1", "2"}, tbl.Names())
	assert.Equal(t, table.Float, tbl.ColAt(0).Kind)
	assert.Equal(t, []float64{1, 0}, tbl.ColAt(0).Floats)
	assert.Equal(t, []float64{0, 4}, tbl.ColAt(2).Floats)
}

func TestSparseToTableAcceptsDense(t *testing.T) {
	d := mat.NewDense(1, 2, []float64{7, 8})
	s := transform.NewSparseToTable()
	out, err := s.Transform(pipeline.MatrixValue(d))
	require.NoError(t, err)
	assert.Equal(t, []float64{8}, out.Table.ColAt(1).Floats)
}

func TestSparseToTableRequiresMatrix(t *testing.T) {
	s := transform.NewSparseToTable()
	_, err := s.Transform(pipeline.TableValue(table.New(1)))
	var se *pipeline.SchemaError
	require.ErrorAs(t, err, &se)
}
