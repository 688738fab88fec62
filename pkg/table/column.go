package table

import (
	"math"
	"sort"
)

// Kind is the declared semantic type of a column, decided at schema
// definition time.
type Kind int

const (
	Int Kind = iota
	Float
	Categorical
	Object
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Categorical:
		return "category"
	case Object:
		return "object"
	}
	return "unknown"
}

// Numeric reports whether the kind is backed by float64 storage.
func (k Kind) Numeric() bool { return k == Int || k == Float }

// Column is a named sequence of values of one semantic type.
// Numeric columns store values in Floats with NaN marking a missing cell.
// String columns (Categorical, Object) store values in Strings with Valid
// marking present cells; a nil Valid means every cell is present.
// Categorical columns additionally carry Categories, the vocabulary of
// allowed labels, which may exceed the values currently present.
type Column struct {
	Name       string
	Kind       Kind
	Floats     []float64
	Strings    []string
	Valid      []bool
	Categories []string
}

// FloatCol builds a float column. NaN cells count as missing.
func FloatCol(name string, vals []float64) Column {
	return Column{Name: name, Kind: Float, Floats: vals}
}

// IntCol builds an integer-valued numeric column. Values are stored as
// float64 so that NaN can mark missing cells.
func IntCol(name string, vals []float64) Column {
	return Column{Name: name, Kind: Int, Floats: vals}
}

// StrCol builds an object column. valid may be nil when no cell is missing.
func StrCol(name string, vals []string, valid []bool) Column {
	return Column{Name: name, Kind: Object, Strings: vals, Valid: valid}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	if c.Kind.Numeric() {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing reports whether cell i holds no value.
func (c *Column) Missing(i int) bool {
	if c.Kind.Numeric() {
		return math.IsNaN(c.Floats[i])
	}
	return c.Valid != nil && !c.Valid[i]
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.Missing(i) {
			n++
		}
	}
	return n
}

// Clone deep-copies the column.
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Valid != nil {
		out.Valid = append([]bool(nil), c.Valid...)
	}
	if c.Categories != nil {
		out.Categories = append([]string(nil), c.Categories...)
	}
	return out
}

// AsCategorical returns a categorical copy of a string column. The
// vocabulary is the ascending sort of the distinct present values, so
// coercing the same data twice yields the same category order. A value
// receiver keeps it callable on constructor results.
func (c Column) AsCategorical() Column {
	out := c.Clone()
	out.Kind = Categorical
	seen := make(map[string]struct{})
	var cats []string
	for i, v := range c.Strings {
		if c.Missing(i) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			cats = append(cats, v)
		}
	}
	sort.Strings(cats)
	out.Categories = cats
	return out
}
