package residuals

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpreadStd returns the sample standard deviation of the residual (N-1 in the
// denominator). With fewer than two residuals the result is NaN.
func (a *Analyzer) SpreadStd() float64 {
	return stat.StdDev(a.residual, nil)
}

// SpreadNMAD returns the normalized median absolute deviation of the residual,
//
//	sigma_NMAD = 1.48 * median(|residual|)
//
// a robust estimate of the standard deviation for Gaussian residuals.
func (a *Analyzer) SpreadNMAD() float64 {
	return NMADScale * median(absolute(a.residual))
}

// Bias returns the mean residual.
func (a *Analyzer) Bias() float64 {
	return stat.Mean(a.residual, nil)
}

// median of an even-length sample is the midpoint of the two central values.
// Any NaN in the sample makes the median NaN.
func median(xs []float64) float64 {
	if floats.HasNaN(xs) {
		return math.NaN()
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	return stats.Sample{Xs: sorted, Sorted: true}.Quantile(0.5)
}

func absolute(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	return out
}
