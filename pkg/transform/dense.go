package transform

import (
	"strconv"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/sparse"
	"tabprep/pkg/table"
)

// SparseToTable materializes a matrix back into a dense table, naming each
// column by its positional index ("0", "1", ...). Stateless.
type SparseToTable struct{}

// NewSparseToTable returns the matrix-to-table materializer.
func NewSparseToTable() *SparseToTable { return &SparseToTable{} }

func (s *SparseToTable) Fit(v pipeline.Value, y []float64) error { return nil }

func (s *SparseToTable) Transform(v pipeline.Value) (pipeline.Value, error) {
	if v.Matrix == nil {
		return pipeline.Value{}, &pipeline.SchemaError{Op: "SparseToTable", Msg: "expects a matrix input"}
	}
	rows, cols := v.Matrix.Dims()
	vals := make([][]float64, cols)
	for j := range vals {
		vals[j] = make([]float64, rows)
	}
	if c, ok := v.Matrix.(*sparse.CSR); ok {
		// One pass over the stored entries beats rows*cols At calls.
		for i := 0; i < rows; i++ {
			c.NonZeroRow(i, func(j int, x float64) { vals[j][i] = x })
		}
	} else {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				vals[j][i] = v.Matrix.At(i, j)
			}
		}
	}
	out := table.New(rows)
	for j := range vals {
		_ = out.Append(table.FloatCol(strconv.Itoa(j), vals[j]))
	}
	return pipeline.TableValue(out), nil
}
