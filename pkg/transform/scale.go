package transform

import (
	"math"
	"sort"

	"tabprep/pkg/pipeline"
	"tabprep/pkg/stats"
	"tabprep/pkg/table"
)

// StandardScaler standardizes each numeric column to the mean and
// population standard deviation learned at fit time. A zero-deviation
// column divides by a substituted 1, so a constant column maps to all
// zeros instead of raising a division error.
type StandardScaler struct {
	mean   map[string]float64
	std    map[string]float64
	fitted bool
}

// NewStandardScaler returns an unfitted standard scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fit learns per-column mean and population std.
func (s *StandardScaler) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("StandardScaler", v)
	if err != nil {
		return err
	}
	s.mean = make(map[string]float64)
	s.std = make(map[string]float64)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			continue
		}
		vals := presentVals(col)
		s.mean[col.Name] = stats.Mean(vals)
		sd := stats.Std(vals)
		if sd == 0 {
			sd = 1
		}
		s.std[col.Name] = sd
	}
	s.fitted = true
	return nil
}

func (s *StandardScaler) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !s.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "StandardScaler"}
	}
	return scaleColumns("StandardScaler", v, s.mean, func(name string, x float64) float64 {
		return (x - s.mean[name]) / s.std[name]
	})
}

// MinMaxScaler scales each numeric column to [0, 1] using the range learned
// at fit time. A constant column maps to all zeros.
type MinMaxScaler struct {
	min    map[string]float64
	span   map[string]float64
	fitted bool
}

// NewMinMaxScaler returns an unfitted min-max scaler.
func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

func (s *MinMaxScaler) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("MinMaxScaler", v)
	if err != nil {
		return err
	}
	s.min = make(map[string]float64)
	s.span = make(map[string]float64)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			continue
		}
		lo, hi := stats.MinMax(presentVals(col))
		span := hi - lo
		if span == 0 {
			span = 1
		}
		s.min[col.Name] = lo
		s.span[col.Name] = span
	}
	s.fitted = true
	return nil
}

func (s *MinMaxScaler) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !s.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "MinMaxScaler"}
	}
	return scaleColumns("MinMaxScaler", v, s.min, func(name string, x float64) float64 {
		return (x - s.min[name]) / s.span[name]
	})
}

// RobustScaler centers on the median and scales by the interquartile range
// learned at fit time. A zero-IQR column maps to all zeros.
type RobustScaler struct {
	median map[string]float64
	iqr    map[string]float64
	fitted bool
}

// NewRobustScaler returns an unfitted robust scaler.
func NewRobustScaler() *RobustScaler { return &RobustScaler{} }

func (s *RobustScaler) Fit(v pipeline.Value, y []float64) error {
	t, err := tableInput("RobustScaler", v)
	if err != nil {
		return err
	}
	s.median = make(map[string]float64)
	s.iqr = make(map[string]float64)
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			continue
		}
		vals := presentVals(col)
		s.median[col.Name] = stats.Median(vals)
		iqr := stats.Percentile(vals, 75) - stats.Percentile(vals, 25)
		if iqr == 0 {
			iqr = 1
		}
		s.iqr[col.Name] = iqr
	}
	s.fitted = true
	return nil
}

func (s *RobustScaler) Transform(v pipeline.Value) (pipeline.Value, error) {
	if !s.fitted {
		return pipeline.Value{}, &pipeline.NotFittedError{Op: "RobustScaler"}
	}
	return scaleColumns("RobustScaler", v, s.median, func(name string, x float64) float64 {
		return (x - s.median[name]) / s.iqr[name]
	})
}

// presentVals returns the column's non-NaN cells. Fit statistics come from
// present values only; transform leaves NaN cells as NaN.
func presentVals(col *table.Column) []float64 {
	out := make([]float64, 0, len(col.Floats))
	for _, x := range col.Floats {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// scaleColumns rebuilds every numeric column through fn, requiring each to
// have been seen at fit time (present in the fitted map). NaN cells stay
// NaN; imputation is a separate transform's job.
func scaleColumns(op string, v pipeline.Value, fitted map[string]float64, fn func(name string, x float64) float64) (pipeline.Value, error) {
	t, err := tableInput(op, v)
	if err != nil {
		return pipeline.Value{}, err
	}
	var unseen []string
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if col.Kind.Numeric() {
			if _, ok := fitted[col.Name]; !ok {
				unseen = append(unseen, col.Name)
			}
		}
	}
	if len(unseen) > 0 {
		sort.Strings(unseen)
		return pipeline.Value{}, &pipeline.SchemaError{Op: op, Missing: unseen}
	}
	out := table.New(t.Rows())
	for j := 0; j < t.NumCols(); j++ {
		col := t.ColAt(j)
		if !col.Kind.Numeric() {
			_ = out.Append(col.Clone())
			continue
		}
		vals := make([]float64, len(col.Floats))
		for i, x := range col.Floats {
			if math.IsNaN(x) {
				vals[i] = x
				continue
			}
			vals[i] = fn(col.Name, x)
		}
		_ = out.Append(table.FloatCol(col.Name, vals))
	}
	return pipeline.TableValue(out), nil
}
