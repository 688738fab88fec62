package pipeline

import (
	"fmt"

	"tabprep/pkg/sparse"
)

// Branch is a named sub-pipeline within a FeatureUnion.
type Branch struct {
	Name        string
	Transformer Transformer
}

// FeatureUnion applies every branch to the same input and concatenates the
// branch outputs column-wise, in declared branch order, into one sparse
// matrix. Branches are independent; execution is sequential but output
// order never depends on it.
type FeatureUnion struct {
	branches []Branch
	fitted   bool
}

// NewUnion returns a feature union over the given branches.
func NewUnion(branches ...Branch) *FeatureUnion {
	return &FeatureUnion{branches: branches}
}

// Fit fits every branch against the same input.
func (u *FeatureUnion) Fit(v Value, y []float64) error {
	_, err := u.FitTransform(v, y)
	return err
}

// FitTransform fits every branch and returns the concatenated output.
func (u *FeatureUnion) FitTransform(v Value, y []float64) (Value, error) {
	outs := make([]*sparse.CSR, len(u.branches))
	for i, b := range u.branches {
		out, err := fitTransformStep(b.Transformer, v, y)
		if err != nil {
			return Value{}, fmt.Errorf("branch %q: %w", b.Name, err)
		}
		m, err := branchMatrix(b.Name, out)
		if err != nil {
			return Value{}, err
		}
		outs[i] = m
	}
	u.fitted = true
	return u.concat(v.Rows(), outs)
}

// Transform applies every fitted branch and concatenates the outputs.
func (u *FeatureUnion) Transform(v Value) (Value, error) {
	if !u.fitted {
		return Value{}, &NotFittedError{Op: "FeatureUnion"}
	}
	outs := make([]*sparse.CSR, len(u.branches))
	for i, b := range u.branches {
		out, err := b.Transformer.Transform(v)
		if err != nil {
			return Value{}, fmt.Errorf("branch %q: %w", b.Name, err)
		}
		m, err := branchMatrix(b.Name, out)
		if err != nil {
			return Value{}, err
		}
		outs[i] = m
	}
	return u.concat(v.Rows(), outs)
}

func (u *FeatureUnion) concat(rows int, outs []*sparse.CSR) (Value, error) {
	for i, m := range outs {
		if r, _ := m.Dims(); r != rows {
			return Value{}, &ShapeError{
				Op:  "FeatureUnion",
				Msg: fmt.Sprintf("branch %q produced %d rows, input has %d", u.branches[i].Name, r, rows),
			}
		}
	}
	m, err := sparse.HStack(outs...)
	if err != nil {
		return Value{}, &ShapeError{Op: "FeatureUnion", Msg: err.Error()}
	}
	return MatrixValue(m), nil
}

// branchMatrix converts a branch output to CSR. Table outputs must be fully
// numeric by the time they leave a branch.
func branchMatrix(name string, v Value) (*sparse.CSR, error) {
	if v.Matrix != nil {
		if m, ok := v.Matrix.(*sparse.CSR); ok {
			return m, nil
		}
		return sparse.FromDense(v.Matrix), nil
	}
	if v.Table == nil {
		return nil, &SchemaError{Op: "FeatureUnion", Msg: fmt.Sprintf("branch %q produced no output", name)}
	}
	t := v.Table
	b := sparse.NewBuilder(t.Rows(), t.NumCols())
	for j := 0; j < t.NumCols(); j++ {
		c := t.ColAt(j)
		if !c.Kind.Numeric() {
			return nil, &SchemaError{
				Op:  "FeatureUnion",
				Msg: fmt.Sprintf("branch %q output column %q is %s, want numeric", name, c.Name, c.Kind),
			}
		}
	}
	for i := 0; i < t.Rows(); i++ {
		for j := 0; j < t.NumCols(); j++ {
			if x := t.ColAt(j).Floats[i]; x != 0 {
				b.Add(i, j, x)
			}
		}
	}
	return b.Build(), nil
}
