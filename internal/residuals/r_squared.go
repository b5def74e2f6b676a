package residuals

import "gonum.org/v1/gonum/stat"

// RSquared returns the coefficient of determination of prediction against truth,
//
//	R^2 = 1 - sum((truth - prediction)^2) / sum((truth - mean(truth))^2)
//
// A constant truth makes the denominator zero and the result non-finite.
func (a *Analyzer) RSquared() float64 {
	return stat.RSquaredFrom(a.prediction, a.truth, nil)
}
