package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabprep/pkg/stats"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, stats.Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, stats.Mean(nil))
}

func TestVarianceAndStd(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 4.0, stats.Variance(x), 1e-12)
	assert.InDelta(t, 2.0, stats.Std(x), 1e-12)
	assert.Equal(t, 0.0, stats.Variance([]float64{3, 3, 3}))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, stats.Median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, stats.Median([]float64{4, 1, 2, 3}))
	// Median must not reorder its input.
	x := []float64{3, 1, 2}
	stats.Median(x)
	assert.Equal(t, []float64{3, 1, 2}, x)
}

func TestMode(t *testing.T) {
	assert.Equal(t, 4.0, stats.Mode([]float64{1, 4, 4, 2}))
	// Tie breaks toward the first value seen.
	assert.Equal(t, 1.0, stats.Mode([]float64{1, 2}))
}

func TestMinMax(t *testing.T) {
	lo, hi := stats.MinMax([]float64{5, -1, 3})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestPercentile(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 3.0, stats.Percentile(x, 50))
	assert.Equal(t, 1.0, stats.Percentile(x, 0))
	assert.Equal(t, 5.0, stats.Percentile(x, 100))
	assert.InDelta(t, 2.0, stats.Percentile(x, 25), 1e-12)
}
