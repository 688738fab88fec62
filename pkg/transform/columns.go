// Package transform implements the concrete column transforms that the
// pipeline composes: selection, type coercion, imputation, encoding and
// scaling. Every transform returns a fresh table; inputs are never written.
package transform

import (
	"tabprep/pkg/pipeline"
	"tabprep/pkg/table"
)

// tableInput unwraps a table value or reports a schema error for op.
func tableInput(op string, v pipeline.Value) (*table.Table, error) {
	if v.Table == nil {
		return nil, &pipeline.SchemaError{Op: op, Msg: "expects a table input"}
	}
	return v.Table, nil
}

// ColumnSelector projects a fixed set of named columns, in the requested
// order. Stateless: Fit is a no-op.
type ColumnSelector struct {
	Columns []string
}

// NewColumnSelector selects the named columns.
func NewColumnSelector(columns ...string) *ColumnSelector {
	return &ColumnSelector{Columns: columns}
}

func (s *ColumnSelector) Fit(v pipeline.Value, y []float64) error { return nil }

// Transform returns exactly the requested columns in the requested order.
// Every absent column is reported, not just the first miss.
func (s *ColumnSelector) Transform(v pipeline.Value) (pipeline.Value, error) {
	t, err := tableInput("ColumnSelector", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	out, missing := t.Select(s.Columns)
	if missing != nil {
		return pipeline.Value{}, &pipeline.SchemaError{Op: "ColumnSelector", Missing: missing}
	}
	return pipeline.TableValue(out), nil
}

// TypeSelector projects the columns whose declared kind is in Kinds,
// preserving the original relative order. Zero matches are not an error:
// the output is a zero-column table with the input's row count.
type TypeSelector struct {
	Kinds []table.Kind
}

// NewTypeSelector selects columns by semantic type.
func NewTypeSelector(kinds ...table.Kind) *TypeSelector {
	return &TypeSelector{Kinds: kinds}
}

func (s *TypeSelector) Fit(v pipeline.Value, y []float64) error { return nil }

func (s *TypeSelector) Transform(v pipeline.Value) (pipeline.Value, error) {
	t, err := tableInput("TypeSelector", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	return pipeline.TableValue(t.SelectKinds(s.Kinds...)), nil
}

// TypeCoercer reclassifies named object columns as categorical. The
// vocabulary becomes the ascending sort of the distinct present values, so
// coercing the same data repeatedly yields the same category order.
type TypeCoercer struct {
	Columns []string
}

// NewTypeCoercer coerces the named columns to categorical.
func NewTypeCoercer(columns ...string) *TypeCoercer {
	return &TypeCoercer{Columns: columns}
}

func (c *TypeCoercer) Fit(v pipeline.Value, y []float64) error { return nil }

func (c *TypeCoercer) Transform(v pipeline.Value) (pipeline.Value, error) {
	t, err := tableInput("TypeCoercer", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	if _, missing := t.Select(c.Columns); missing != nil {
		return pipeline.Value{}, &pipeline.SchemaError{Op: "TypeCoercer", Missing: missing}
	}
	coerce := make(map[string]struct{}, len(c.Columns))
	for _, n := range c.Columns {
		coerce[n] = struct{}{}
	}
	out := table.New(t.Rows())
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if _, ok := coerce[col.Name]; ok && !col.Kind.Numeric() {
			_ = out.Append(col.AsCategorical())
			continue
		}
		_ = out.Append(col.Clone())
	}
	return pipeline.TableValue(out), nil
}
