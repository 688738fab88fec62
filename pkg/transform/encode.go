package transform

import (
	"math"
	"sort"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/sparse"
	"tabprep/pkg/table"
)

// LabelEncoder replaces each categorical column's labels with integer codes
// in [0, k-1], assigned by ascending sort of the labels learned at fit time.
// The vocabulary is frozen at Fit: a label unseen during fitting maps to the
// reserved unknown code k, so downstream one-hot width cannot silently
// change between calls. Non-categorical columns pass through untouched.
type LabelEncoder struct {
	codes  map[string]map[string]int
	fitted bool
}

// NewLabelEncoder returns an unfitted per-column label encoder.
func NewLabelEncoder() *LabelEncoder { return &LabelEncoder{} }

// Fit learns one code table per categorical column. The vocabulary is the
// column's declared category set when present, otherwise the distinct
// present values.
func (e *LabelEncoder) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("LabelEncoder", v)
	if err != nil {
		return err
	}
	e.codes = make(map[string]map[string]int)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if col.Kind != table.Categorical {
			continue
		}
		labels := append([]string(nil), col.Categories...)
		if len(labels) == 0 {
			seen := make(map[string]struct{})
			for i, s := range col.Strings {
				if col.Missing(i) {
					continue
				}
				if _, ok := seen[s]; !ok {
					seen[s] = struct{}{}
					labels = append(labels, s)
				}
			}
		}
		sort.Strings(labels)
		codes := make(map[string]int, len(labels))
		for c, l := range labels {
			codes[l] = c
		}
		e.codes[col.Name] = codes
	}
	e.fitted = true
	return nil
}

// Transform rewrites every fitted categorical column as an integer-coded
// numeric column. Unseen labels and missing cells get the unknown code.
func (e *LabelEncoder) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !e.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "LabelEncoder"}
	}
	t, err := tableInput("LabelEncoder", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	var absent []string
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if col.Kind == table.Categorical {
			if _, ok := e.codes[col.Name]; !ok {
				absent = append(absent, col.Name)
			}
		}
	}
	if len(absent) > 0 {
		sort.Strings(absent)
		return pipeline.Value{}, &pipeline.SchemaError{Op: "LabelEncoder", Missing: absent}
	}
	out := table.New(t.Rows())
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		codes, ok := e.codes[col.Name]
		if !ok {
			_ = out.Append(col.Clone())
			continue
		}
		unknown := len(codes)
		vals := make([]float64, t.Rows())
		for i := range col.Strings {
			if col.Missing(i) {
				vals[i] = float64(unknown)
				continue
			}
			c, seen := codes[col.Strings[i]]
			if !seen {
				c = unknown
			}
			vals[i] = float64(c)
		}
		_ = out.Append(table.IntCol(col.Name, vals))
	}
	return pipeline.TableValue(out), nil
}

// OneHotEncoder turns integer-coded columns into indicator columns, one per
// code learned at fit time plus one reserved unknown indicator per input
// column, concatenated in column-then-category order. The output width is
// fixed at Fit, so re-encoding data with a different distinct-value set
// cannot change the matrix shape. Output is a sparse matrix.
type OneHotEncoder struct {
	cols   []string
	width  map[string]int
	fitted bool
}

// NewOneHotEncoder returns an unfitted one-hot encoder.
func NewOneHotEncoder() *OneHotEncoder { return &OneHotEncoder{} }

// Fit records, per numeric column, the number of codes (max code + 1) plus
// the unknown slot.
func (e *OneHotEncoder) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("OneHotEncoder", v)
	if err != nil {
		return err
	}
	e.cols = nil
	e.width = make(map[string]int)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			return &pipeline.SchemaError{Op: "OneHotEncoder", Msg: "input column " + col.Name + " is not integer-coded"}
		}
		k := 0
		for _, x := range col.Floats {
			if math.IsNaN(x) {
				continue
			}
			if c := int(x); c+1 > k {
				k = c + 1
			}
		}
		e.cols = append(e.cols, col.Name)
		e.width[col.Name] = k + 1 // +1 for the unknown indicator
	}
	e.fitted = true
	return nil
}

// Transform produces the indicator matrix. Codes at or beyond the fit-time
// range, and missing cells, light the column's unknown indicator.
func (e *OneHotEncoder) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !e.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "OneHotEncoder"}
	}
	t, err := tableInput("OneHotEncoder", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	var missing []string
	for _, name := range e.cols {
		if _, ok := t.Col(name); !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return pipeline.Value{}, &pipeline.SchemaError{Op: "OneHotEncoder", Missing: missing}
	}
	total := 0
	for _, name := range e.cols {
		total += e.width[name]
	}
	b := sparse.NewBuilder(t.Rows(), total)
	for i := 0; i < t.Rows(); i++ {
		off := 0
		for _, name := range e.cols {
			col, _ := t.Col(name)
			w := e.width[name]
			slot := w - 1 // unknown indicator
			if x := col.Floats[i]; !math.IsNaN(x) {
				if c := int(x); c >= 0 && c < w-1 {
					slot = c
				}
			}
			b.Add(i, off+slot, 1)
			off += w
		}
	}
	return pipeline.MatrixValue(b.Build()), nil
}
