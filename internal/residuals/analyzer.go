// Package residuals measures how far regression predictions fall from their true values
package residuals

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// Analyzer computes bias, spread and outlier statistics of
//
//	residual = (prediction - truth) / f(truth)
//
// where f is an optional ScaleFunc. The residual is computed once in New and
// the Analyzer is read-only afterwards.
//
// A scale function that evaluates to zero for some truth value produces
// infinite or NaN residuals. These are not reported as errors and propagate
// into every statistic.
type Analyzer struct {
	prediction []float64
	truth      []float64
	residual   []float64
	scale      ScaleFunc
}

type AnalyzerOption func(*Analyzer)

// WithScaleFunc sets the function of truth over which the error scales.
func WithScaleFunc(f ScaleFunc) AnalyzerOption {
	return func(a *Analyzer) {
		a.scale = f
	}
}

func New(prediction, truth []float64, opts ...AnalyzerOption) (*Analyzer, error) {
	if len(prediction) != len(truth) {
		return nil, fmt.Errorf("got %d predictions and %d truths: %w", len(prediction), len(truth), ErrShapeMismatch)
	}

	a := &Analyzer{
		prediction: slices.Clone(prediction),
		truth:      slices.Clone(truth),
	}
	for _, opt := range opts {
		opt(a)
	}

	residual := make([]float64, len(a.prediction))
	floats.SubTo(residual, a.prediction, a.truth)

	if a.scale != nil {
		divisor := a.scale(slices.Clone(a.truth))
		if len(divisor) != len(residual) {
			return nil, fmt.Errorf("scale function returned %d values for %d truths: %w", len(divisor), len(a.truth), ErrShapeMismatch)
		}
		floats.Div(residual, divisor)
	}
	a.residual = residual

	log.Debug().Int("n", len(residual)).Bool("scaled", a.scale != nil).Msg("computed residuals")
	return a, nil
}

func (a *Analyzer) Len() int {
	return len(a.residual)
}

// Scaled reports whether the residual was divided by a scale function.
func (a *Analyzer) Scaled() bool {
	return a.scale != nil
}

func (a *Analyzer) Prediction() []float64 {
	return slices.Clone(a.prediction)
}

func (a *Analyzer) Truth() []float64 {
	return slices.Clone(a.truth)
}

func (a *Analyzer) Residual() []float64 {
	return slices.Clone(a.residual)
}
