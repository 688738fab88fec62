package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"tabprep/pkg/sparse"
)

func build(t *testing.T) *sparse.CSR {
	t.Helper()
	b := sparse.NewBuilder(3, 4)
	b.Add(0, 1, 1)
	b.Add(0, 3, 2)
	b.Add(2, 0, 5)
	return b.Build()
}

func TestBuilderAndAt(t *testing.T) {
	m := build(t)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 1.0, m.At(0, 1))
	assert.Equal(t, 2.0, m.At(0, 3))
	assert.Equal(t, 5.0, m.At(2, 0))
	assert.Equal(t, 0.0, m.At(1, 2))
	assert.Equal(t, 3, m.NNZ())
}

func TestBuilderRejectsOutOfOrder(t *testing.T) {
	b := sparse.NewBuilder(2, 2)
	b.Add(1, 0, 1)
	assert.Panics(t, func() { b.Add(0, 1, 1) })
}

func TestToDense(t *testing.T) {
	d := build(t).ToDense()
	r, c := d.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, 2.0, d.At(0, 3))
	assert.Equal(t, 0.0, d.At(1, 1))
}

func TestFromDenseRoundTrip(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{0, 3, 4, 0})
	m := sparse.FromDense(d)
	assert.Equal(t, 2, m.NNZ())
	assert.Equal(t, 3.0, m.At(0, 1))
	assert.Equal(t, 4.0, m.At(1, 0))
}

func TestHStackConcatenatesInOrder(t *testing.T) {
	left := build(t) // 3x4
	b := sparse.NewBuilder(3, 2)
	b.Add(1, 1, 7)
	right := b.Build()

	out, err := sparse.HStack(left, right)
	require.NoError(t, err)
	r, c := out.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 6, c)
	assert.Equal(t, 1.0, out.At(0, 1))
	assert.Equal(t, 7.0, out.At(1, 5))
}

func TestHStackRejectsRowMismatch(t *testing.T) {
	a := sparse.NewBuilder(2, 1).Build()
	b := sparse.NewBuilder(3, 1).Build()
	_, err := sparse.HStack(a, b)
	require.Error(t, err)
}

func TestZeroSized(t *testing.T) {
	m := sparse.NewBuilder(4, 0).Build()
	r, c := m.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 0, c)
	d := m.ToDense()
	dr, dc := d.Dims()
	assert.Equal(t, 0, dr)
	assert.Equal(t, 0, dc)
}
