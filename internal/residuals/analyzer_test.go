package residuals

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onePlus(truth []float64) []float64 {
	for i := range truth {
		truth[i] = 1 + truth[i]
	}
	return truth
}

func TestNew_UnscaledResidual(t *testing.T) {
	prediction := []float64{1.5, 2, -3, 10}
	truth := []float64{1, 2.5, -1, 4}

	a, err := New(prediction, truth)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, -0.5, -2, 6}, a.Residual())
	assert.False(t, a.Scaled())
	assert.Equal(t, 4, a.Len())
}

func TestNew_ScaledResidual(t *testing.T) {
	prediction := []float64{1.2, 0.4, 3}
	truth := []float64{1, 0.5, 2}

	a, err := New(prediction, truth, WithScaleFunc(onePlus))
	require.NoError(t, err)

	want := []float64{(1.2 - 1) / 2, (0.4 - 0.5) / 1.5, (3.0 - 2) / 3}
	assert.InDeltaSlice(t, want, a.Residual(), 1e-15)
	assert.True(t, a.Scaled())
}

func TestNew_ScaleFuncCannotMutateTruth(t *testing.T) {
	truth := []float64{1, 2, 3}

	a, err := New([]float64{1, 2, 3}, truth, WithScaleFunc(onePlus))
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, a.Truth())
	assert.Equal(t, []float64{1, 2, 3}, truth)
}

func TestNew_ShapeMismatch(t *testing.T) {
	_, err := New([]float64{1, 2, 3}, []float64{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNew_ScaleFuncShapeMismatch(t *testing.T) {
	short := func(truth []float64) []float64 { return truth[:1] }

	_, err := New([]float64{1, 2}, []float64{1, 2}, WithScaleFunc(short))
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNew_ZeroScaleGivesNonFiniteResidual(t *testing.T) {
	identity := func(truth []float64) []float64 { return truth }

	a, err := New([]float64{1, -1, 0, 2}, []float64{0, 0, 0, 1}, WithScaleFunc(identity))
	require.NoError(t, err, "zero scale values must not be reported as errors")

	r := a.Residual()
	assert.True(t, math.IsInf(r[0], 1))
	assert.True(t, math.IsInf(r[1], -1))
	assert.True(t, math.IsNaN(r[2]))
	assert.Equal(t, 1.0, r[3])
}

func TestNew_InputsAreCopied(t *testing.T) {
	prediction := []float64{1, 2}
	truth := []float64{0, 0}

	a, err := New(prediction, truth)
	require.NoError(t, err)

	prediction[0] = 100
	truth[1] = 100
	assert.Equal(t, []float64{1, 2}, a.Prediction())
	assert.Equal(t, []float64{0, 0}, a.Truth())

	r := a.Residual()
	r[0] = 42
	assert.Equal(t, []float64{1, 2}, a.Residual(), "accessors must return copies")
}

func TestNew_Empty(t *testing.T) {
	a, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Residual())
}

func randomPair(n int) (prediction, truth []float64) {
	prediction = make([]float64, n)
	truth = make([]float64, n)
	for i := range n {
		truth[i] = rand.Float64() * 3
		prediction[i] = truth[i] + (1+truth[i])*rand.NormFloat64()*0.03
	}
	return prediction, truth
}

func BenchmarkNew(b *testing.B) {
	prediction, truth := randomPair(100_000)

	b.ResetTimer()
	for b.Loop() {
		_, _ = New(prediction, truth, WithScaleFunc(onePlus))
	}
}

func BenchmarkOutlierFraction(b *testing.B) {
	for _, e := range []SpreadEstimator{NMAD, StdDev} {
		b.Run(fmt.Sprintf("Estimator_%s", e), func(b *testing.B) {
			prediction, truth := randomPair(100_000)
			a, err := New(prediction, truth, WithScaleFunc(onePlus))
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			for b.Loop() {
				_, _ = a.OutlierFraction(WithSpreadEstimator(e))
			}
		})
	}
}
