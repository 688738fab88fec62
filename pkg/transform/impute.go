package transform

import (
	"fmt"
	"math"
	"sort"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/stats"
	"tabprep/pkg/table"
)

// Categorical imputation strategies.
const (
	FillConstant = "fill-constant"
	MostFrequent = "most-frequent"
)

// Unknown is the category literal substituted for missing cells under the
// fill-constant strategy.
const Unknown = "Unknown"

// CategoricalImputer fills missing cells in categorical columns.
//
// Known limitation, carried over from the original design: the most-frequent
// strategy recomputes value counts on every call from whatever data is
// passed, so applying a fitted pipeline to a table with a different value
// distribution fills with different values than were used at training time.
// Callers that need train-time fill statistics must not use most-frequent.
type CategoricalImputer struct {
	Strategy string
}

// NewCategoricalImputer fills missing categoricals with the given strategy.
func NewCategoricalImputer(strategy string) *CategoricalImputer {
	return &CategoricalImputer{Strategy: strategy}
}

// Fit validates the strategy; no state is learned.
func (m *CategoricalImputer) Fit(v pipeline.Value, y []float64) error {
	switch m.Strategy {
	case FillConstant, MostFrequent:
		return nil
	}
	return &pipeline.ConfigError{Op: "CategoricalImputer", Msg: fmt.Sprintf("unknown strategy %q", m.Strategy)}
}

func (m *CategoricalImputer) Transform(v pipeline.Value) (pipeline.Value, error) {
	t, err := tableInput("CategoricalImputer", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	out := table.New(t.Rows())
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j).Clone()
		if col.Kind == table.Categorical {
			if err := m.fill(&col); err != nil {
				return pipeline.Value{}, err
			}
		}
		_ = out.Append(col)
	}
	return pipeline.TableValue(out), nil
}

func (m *CategoricalImputer) fill(col *table.Column) error {
	var fill string
	switch m.Strategy {
	case FillConstant:
		fill = Unknown
	case MostFrequent:
		fill = mostFrequent(col)
	default:
		return &pipeline.ConfigError{Op: "CategoricalImputer", Msg: fmt.Sprintf("unknown strategy %q", m.Strategy)}
	}
	filled := false
	for i := range col.Strings {
		if col.Missing(i) {
			col.Strings[i] = fill
			filled = true
		}
	}
	col.Valid = nil
	if filled && !contains(col.Categories, fill) {
		col.Categories = append(col.Categories, fill)
	}
	return nil
}

// mostFrequent returns the column's single most frequent present value,
// breaking ties by vocabulary iteration order. A column with no present
// values falls back to the Unknown constant.
func mostFrequent(col *table.Column) string {
	counts := make(map[string]int)
	for i, v := range col.Strings {
		if !col.Missing(i) {
			counts[v]++
		}
	}
	if len(counts) == 0 {
		return Unknown
	}
	best, bestN := "", -1
	for _, cat := range col.Categories {
		if n := counts[cat]; n > bestN {
			best, bestN = cat, n
		}
	}
	if bestN <= 0 {
		// Values outside the declared vocabulary; fall back to raw counts.
		for i, v := range col.Strings {
			if !col.Missing(i) && counts[v] > bestN {
				best, bestN = v, counts[v]
			}
		}
	}
	return best
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}

// Numeric imputation strategies.
const (
	MeanFill   = "mean"
	MedianFill = "median"
	ModeFill   = "mode"
)

// NumericImputer fills NaN cells in numeric columns with a statistic
// learned at fit time from the training distribution, keyed by column name.
type NumericImputer struct {
	Strategy string

	fill   map[string]float64
	fitted bool
}

// NewNumericImputer fills missing numerics with the given strategy.
func NewNumericImputer(strategy string) *NumericImputer {
	return &NumericImputer{Strategy: strategy}
}

// Fit learns the per-column fill value from the present cells.
func (m *NumericImputer) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("NumericImputer", v)
	if err != nil {
		return err
	}
	m.fill = make(map[string]float64)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			continue
		}
		present := make([]float64, 0, len(col.Floats))
		for _, x := range col.Floats {
			if !math.IsNaN(x) {
				present = append(present, x)
			}
		}
		switch m.Strategy {
		case MeanFill:
			m.fill[col.Name] = stats.Mean(present)
		case MedianFill:
			m.fill[col.Name] = stats.Median(present)
		case ModeFill:
			m.fill[col.Name] = stats.Mode(present)
		default:
			return &pipeline.ConfigError{Op: "NumericImputer", Msg: fmt.Sprintf("unknown strategy %q", m.Strategy)}
		}
	}
	m.fitted = true
	return nil
}

func (m *NumericImputer) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !m.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "NumericImputer"}
	}
	t, err := tableInput("NumericImputer", v)
	if err != nil {
		return pipeline.Value{}, err
	}
	var missing []string
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if col.Kind.Numeric() {
			if _, ok := m.fill[col.Name]; !ok {
				missing = append(missing, col.Name)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return pipeline.Value{}, &pipeline.SchemaError{Op: "NumericImputer", Missing: missing}
	}
	out := table.New(t.Rows())
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j).Clone()
		if col.Kind.Numeric() {
			fill := m.fill[col.Name]
			for i, x := range col.Floats {
				if math.IsNaN(x) {
					col.Floats[i] = fill
				}
			}
		}
		_ = out.Append(col)
	}
	return pipeline.TableValue(out), nil
}
