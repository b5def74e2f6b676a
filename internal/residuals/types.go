package residuals

import "github.com/wcharczuk/go-chart/v2/drawing"

// ScaleFunc maps truth values elementwise onto the divisor the residual error
// scales with, e.g. f(z) = 1 + z for photometric redshifts. It must return a
// slice with the same length as its input, and f must be invertible.
type ScaleFunc func(truth []float64) []float64

// OutlierParams defines an outlier as |residual| > Sigmas * spread.
type OutlierParams struct {
	Sigmas    float64
	Estimator SpreadEstimator
}

type MarkerStyle struct {
	Size    float64 // dot width
	Opacity float64 // 0 (transparent) to 1 (opaque)
}

type LineStyle struct {
	Color  drawing.Color
	Dashed bool
}

// PlotConfig drives PlotResiduals. Use DefaultPlotConfig and PlotOption to build one.
type PlotConfig struct {
	OutlierParams

	TargetLabel string
	// DenominatorLabel formats the scale term of the residual label given the
	// truth label, e.g. func(t string) string { return "(1 + " + t + ")" }.
	DenominatorLabel func(truthLabel string) string

	InlierColor  drawing.Color
	OutlierColor drawing.Color

	Axes     Axes // nil creates a new ChartAxes
	FontSize float64

	// ResidualView plots the scaled residual against truth; otherwise the raw
	// prediction is plotted against truth.
	ResidualView bool

	Marker MarkerStyle
}

// Summary is a flat snapshot of the analyzer statistics for reporting.
type Summary struct {
	N               int
	Estimator       SpreadEstimator
	SpreadLabel     string
	Spread          float64
	NMAD            float64
	StdDev          float64
	Bias            float64
	OutlierSigmas   float64
	OutlierCount    int
	OutlierFraction float64
	RSquared        float64
}
