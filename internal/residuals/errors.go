package residuals

import "errors"

var (
	// ErrShapeMismatch is returned when prediction and truth (or a scale
	// function's output) do not have the same length.
	ErrShapeMismatch = errors.New("prediction and truth must have same length")

	// ErrInvalidEstimator is returned for any spread estimator other than nmad or std.
	ErrInvalidEstimator = errors.New("invalid spread estimator, must be one of {nmad, std}")

	// ErrNothingToPlot is returned when rendering a chart that holds no finite points or lines.
	ErrNothingToPlot = errors.New("nothing to plot")
)
