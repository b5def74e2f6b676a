package residuals

import (
	"bytes"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestHistogram_Counts(t *testing.T) {
	a := fromResidual(t, []float64{1, 0, -1, 0})

	dividers, counts, err := a.Histogram(2)
	require.NoError(t, err)

	require.Len(t, dividers, 3)
	assert.Equal(t, -1.0, dividers[0])
	assert.Equal(t, 0.0, dividers[1])
	assert.Greater(t, dividers[2], 1.0)
	assert.Equal(t, []float64{1, 3}, counts)
}

func TestHistogram_DegenerateRange(t *testing.T) {
	a := fromResidual(t, []float64{2, 2, 2})

	dividers, counts, err := a.Histogram(1)
	require.NoError(t, err)
	assert.Equal(t, 1.5, dividers[0])
	assert.Equal(t, []float64{3}, counts)
}

func TestHistogram_Empty(t *testing.T) {
	a, err := New(nil, nil)
	require.NoError(t, err)

	dividers, counts, err := a.Histogram(10)
	require.NoError(t, err)
	assert.Nil(t, dividers)
	assert.Nil(t, counts)
}

func TestHistogram_InvalidBins(t *testing.T) {
	a := fromResidual(t, []float64{1, 2})

	_, _, err := a.Histogram(0)
	require.Error(t, err)
}

func TestPrintHistogram_Bars(t *testing.T) {
	a := fromResidual(t, []float64{1, 0, -1, 0})

	var buf bytes.Buffer
	require.NoError(t, a.PrintHistogram(&buf, 2))

	out := buf.String()
	assert.Contains(t, out, "σ_NMAD=7.400e-01")
	assert.Contains(t, out, "|      3 | "+strings.Repeat("█", maxBarWidth))
	assert.Contains(t, out, "|      1 | "+strings.Repeat("█", 16)+"\n")
}

func TestPrintHistogram_ShadesBeyondThreshold(t *testing.T) {
	a := fromResidual(t, []float64{1, 0, -1, 0})

	var buf bytes.Buffer
	require.NoError(t, a.PrintHistogram(&buf, 2, WithOutlierSigmas(0)))

	assert.NotContains(t, buf.String(), "█")
	assert.Contains(t, buf.String(), "░")
}

func TestPrintHistogram_Empty(t *testing.T) {
	a, err := New(nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, a.PrintHistogram(&buf, 5))
	assert.Equal(t, "no finite residuals to plot\n", buf.String())
}

func TestPrintHistogram_InvalidEstimator(t *testing.T) {
	a := fromResidual(t, []float64{1, 2})

	err := a.PrintHistogram(&bytes.Buffer{}, 2, WithSpreadEstimator(SpreadEstimator(7)))
	require.ErrorIs(t, err, ErrInvalidEstimator)
}

func TestHistogram_RangeWiderThanMaxFloat(t *testing.T) {
	a := fromResidual(t, []float64{-1e308, 0, 1e308})

	var dividers, counts []float64
	require.NotPanics(t, func() {
		var err error
		dividers, counts, err = a.Histogram(4)
		require.NoError(t, err)
	})

	assert.True(t, sort.Float64sAreSorted(dividers))
	assert.Equal(t, 0.0, dividers[2])
	assert.Equal(t, []float64{1, 0, 1, 1}, counts)

	var buf bytes.Buffer
	require.NotPanics(t, func() {
		require.NoError(t, a.PrintHistogram(&buf, 4))
	})
	assert.Contains(t, buf.String(), "|      1 | ")
}

func TestHistogram_FullFloatRange(t *testing.T) {
	a := fromResidual(t, []float64{-math.MaxFloat64, math.MaxFloat64})

	for _, bins := range []int{1, 2, 3, 7} {
		dividers, counts, err := a.Histogram(bins)
		require.NoError(t, err)
		assert.True(t, sort.Float64sAreSorted(dividers), "bins=%d", bins)
		assert.Equal(t, 2.0, floats.Sum(counts), "bins=%d", bins)
	}
}
