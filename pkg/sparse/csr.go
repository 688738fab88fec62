// Package sparse implements a compressed sparse row matrix for the one-hot
// encoded output of the categorical branch. CSR satisfies gonum's mat.Matrix
// so callers can mix it with dense matrices.
package sparse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

var _ mat.Matrix = (*CSR)(nil)

// CSR is a read-only compressed sparse row matrix. Data is kept in one flat
// slice, indexed per row through rowPtr.
type CSR struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	data       []float64
}

// Dims returns the matrix dimensions.
func (m *CSR) Dims() (int, int) { return m.rows, m.cols }

// At returns element (i, j). Out-of-range indices panic, matching gonum.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic("sparse: index out of range")
	}
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	seg := m.colIdx[lo:hi]
	k := sort.SearchInts(seg, j)
	if k < len(seg) && seg[k] == j {
		return m.data[lo+k]
	}
	return 0
}

// T returns the transpose, implemented as a gonum view.
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// NonZeroRow calls fn for every stored entry of row i, in column order.
func (m *CSR) NonZeroRow(i int, fn func(j int, v float64)) {
	for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
		fn(m.colIdx[k], m.data[k])
	}
}

// ToDense materializes the matrix. Zero-sized matrices return an empty Dense.
func (m *CSR) ToDense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		m.NonZeroRow(i, func(j int, v float64) { d.Set(i, j, v) })
	}
	return d
}

// Builder accumulates entries in row-major order and produces a CSR.
type Builder struct {
	rows, cols int
	lastRow    int
	lastCol    int
	rowPtr     []int
	colIdx     []int
	data       []float64
}

// NewBuilder returns a builder for a rows x cols matrix.
func NewBuilder(rows, cols int) *Builder {
	return &Builder{rows: rows, cols: cols, lastRow: -1, rowPtr: make([]int, 0, rows+1)}
}

// Add appends entry (i, j) = v. Entries must arrive with non-decreasing row
// index and strictly increasing column index within a row.
func (b *Builder) Add(i, j int, v float64) {
	if i < 0 || i >= b.rows || j < 0 || j >= b.cols {
		panic("sparse: entry out of range")
	}
	if i < b.lastRow || (i == b.lastRow && j <= b.lastCol) {
		panic("sparse: entries must be added in row-major order")
	}
	// rowPtr holds the start index for every row up to lastRow.
	for r := b.lastRow + 1; r <= i; r++ {
		b.rowPtr = append(b.rowPtr, len(b.data))
	}
	b.lastRow, b.lastCol = i, j
	b.colIdx = append(b.colIdx, j)
	b.data = append(b.data, v)
}

// Build finalizes the matrix. The builder must not be reused afterwards.
func (b *Builder) Build() *CSR {
	for r := b.lastRow + 1; r <= b.rows; r++ {
		b.rowPtr = append(b.rowPtr, len(b.data))
	}
	return &CSR{rows: b.rows, cols: b.cols, rowPtr: b.rowPtr, colIdx: b.colIdx, data: b.data}
}

// FromDense converts any gonum matrix into a CSR, skipping exact zeros.
func FromDense(m mat.Matrix) *CSR {
	r, c := m.Dims()
	b := NewBuilder(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := m.At(i, j); v != 0 {
				b.Add(i, j, v)
			}
		}
	}
	return b.Build()
}

// HStack concatenates matrices column-wise, left to right. All inputs must
// share the same row count.
func HStack(ms ...*CSR) (*CSR, error) {
	if len(ms) == 0 {
		return NewBuilder(0, 0).Build(), nil
	}
	rows := ms[0].rows
	cols := 0
	for _, m := range ms {
		if m.rows != rows {
			return nil, fmt.Errorf("row count mismatch: %d vs %d", rows, m.rows)
		}
		cols += m.cols
	}
	b := NewBuilder(rows, cols)
	for i := 0; i < rows; i++ {
		off := 0
		for _, m := range ms {
			m.NonZeroRow(i, func(j int, v float64) { b.Add(i, off+j, v) })
			off += m.cols
		}
	}
	return b.Build(), nil
}
