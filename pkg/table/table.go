// Package table implements the tabular data model shared by all pipeline
// transforms: ordered named columns with tagged semantic types, row-aligned,
// with explicit missing-cell markers.
package table

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Table is an ordered collection of named columns. The row count is carried
// explicitly so a table with zero columns still knows its length.
type Table struct {
	rows  int
	cols  []Column
	index map[string]int
}

// New returns an empty table with the given row count.
func New(rows int) *Table {
	return &Table{rows: rows, index: make(map[string]int)}
}

// FromColumns builds a table from columns of equal length.
func FromColumns(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return New(0), nil
	}
	t := New(cols[0].Len())
	for _, c := range cols {
		if err := t.Append(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustFromColumns is FromColumns that panics on length mismatch.
func MustFromColumns(cols ...Column) *Table {
	t, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i := range t.cols {
		out[i] = t.cols[i].Name
	}
	return out
}

// Col returns the named column, or false when absent.
func (t *Table) Col(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.cols[i], true
}

// ColAt returns the column at position i.
func (t *Table) ColAt(i int) *Column { return &t.cols[i] }

// Append adds a column. The column length must match the table's row count;
// a duplicate name is rejected.
func (t *Table) Append(c Column) error {
	if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if _, ok := t.index[c.Name]; ok {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	out := New(t.rows)
	for i := range t.cols {
		_ = out.Append(t.cols[i].Clone())
	}
	return out
}

// Select returns a new table holding the named columns in the requested
// order, plus the sorted set of requested names absent from the table.
func (t *Table) Select(names []string) (*Table, []string) {
	var missing []string
	for _, n := range names {
		if _, ok := t.index[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, missing
	}
	out := New(t.rows)
	for _, n := range names {
		c, _ := t.Col(n)
		_ = out.Append(c.Clone())
	}
	return out, nil
}

// SelectKinds returns the columns whose kind is in kinds, preserving the
// original relative order. Zero matches yield a zero-column table that
// still reports the input row count.
func (t *Table) SelectKinds(kinds ...Kind) *Table {
	want := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}
	out := New(t.rows)
	for i := range t.cols {
		if _, ok := want[t.cols[i].Kind]; ok {
			_ = out.Append(t.cols[i].Clone())
		}
	}
	return out
}

// TakeRows returns a new table holding the given rows, in index order.
func (t *Table) TakeRows(idx []int) *Table {
	out := New(len(idx))
	for _, c := range t.cols {
		nc := Column{Name: c.Name, Kind: c.Kind}
		if c.Categories != nil {
			nc.Categories = append([]string(nil), c.Categories...)
		}
		if c.Kind.Numeric() {
			nc.Floats = make([]float64, len(idx))
			for j, i := range idx {
				nc.Floats[j] = c.Floats[i]
			}
		} else {
			nc.Strings = make([]string, len(idx))
			for j, i := range idx {
				nc.Strings[j] = c.Strings[i]
			}
			if c.Valid != nil {
				nc.Valid = make([]bool, len(idx))
				for j, i := range idx {
					nc.Valid[j] = c.Valid[i]
				}
			}
		}
		_ = out.Append(nc)
	}
	return out
}

// ToMatrix converts a table of numeric columns into a dense matrix,
// rows x columns. Non-numeric columns are an error.
func (t *Table) ToMatrix() (*mat.Dense, error) {
	var bad []string
	for i := range t.cols {
		if !t.cols[i].Kind.Numeric() {
			bad = append(bad, t.cols[i].Name)
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("non-numeric columns: %v", bad)
	}
	if len(t.cols) == 0 || t.rows == 0 {
		return &mat.Dense{}, nil
	}
	m := mat.NewDense(t.rows, len(t.cols), nil)
	for j := range t.cols {
		for i := 0; i < t.rows; i++ {
			m.Set(i, j, t.cols[j].Floats[i])
		}
	}
	return m, nil
}
