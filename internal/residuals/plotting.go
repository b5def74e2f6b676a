package residuals

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"
)

type PlotOption func(*PlotConfig)

func WithTargetLabel(label string) PlotOption {
	return func(c *PlotConfig) {
		c.TargetLabel = label
	}
}

// WithDenominatorLabel sets the function that formats the scale term of the
// residual axis label from the truth label.
func WithDenominatorLabel(f func(truthLabel string) string) PlotOption {
	return func(c *PlotConfig) {
		c.DenominatorLabel = f
	}
}

func WithPlotOutlierParams(opts ...OutlierOption) PlotOption {
	return func(c *PlotConfig) {
		for _, opt := range opts {
			opt(&c.OutlierParams)
		}
	}
}

func WithColors(inlier, outlier drawing.Color) PlotOption {
	return func(c *PlotConfig) {
		c.InlierColor = inlier
		c.OutlierColor = outlier
	}
}

func WithAxes(ax Axes) PlotOption {
	return func(c *PlotConfig) {
		c.Axes = ax
	}
}

func WithFontSize(size float64) PlotOption {
	return func(c *PlotConfig) {
		c.FontSize = size
	}
}

// WithPredictionView plots the raw prediction instead of the residual.
func WithPredictionView() PlotOption {
	return func(c *PlotConfig) {
		c.ResidualView = false
	}
}

func WithResidualView() PlotOption {
	return func(c *PlotConfig) {
		c.ResidualView = true
	}
}

func WithMarkerStyle(m MarkerStyle) PlotOption {
	return func(c *PlotConfig) {
		c.Marker = m
	}
}

// PlotResiduals scatters the residual (or the raw prediction) against truth,
// colouring outliers separately and marking the outlier thresholds with
// dashed lines. The title reports the spread, the outlier percentage and R^2.
//
// The plot is drawn on the configured Axes, or on a new ChartAxes when none is
// given. The surface drawn on is returned.
func (a *Analyzer) PlotResiduals(opts ...PlotOption) (Axes, error) {
	cfg := DefaultPlotConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	mask, spread, spreadLabel, err := a.outliers(cfg.OutlierParams)
	if err != nil {
		return nil, err
	}

	ax := cfg.Axes
	if ax == nil {
		ax = NewChartAxes(DefaultChartWidth, DefaultChartHeight)
	}

	y := a.residual
	if !cfg.ResidualView {
		y = a.prediction
	}

	inX, inY, outX, outY := partition(a.truth, y, mask)
	ax.Scatter(inX, inY, cfg.InlierColor, cfg.Marker)
	ax.Scatter(outX, outY, cfg.OutlierColor, cfg.Marker)

	threshold := cfg.Sigmas * spread
	dashed := LineStyle{Color: thresholdLineColor, Dashed: true}
	if cfg.ResidualView {
		ax.AxHLine(threshold, dashed)
		ax.AxHLine(-threshold, dashed)
	} else if len(a.truth) > 0 {
		x, upper, lower := a.thresholdLines(threshold)
		ax.Plot(x, upper, dashed)
		ax.Plot(x, lower, dashed)
		ax.SetYLim(ax.XLim())
	}

	labels := axisLabels(cfg, a.Scaled())
	ax.SetXLabel(labels.x, cfg.FontSize)
	ax.SetYLabel(labels.y, labels.yFontSize)
	ax.SetTitle(plotTitle(spreadLabel, spread, cfg.Sigmas, fraction(mask), a.RSquared()), cfg.FontSize)

	log.Debug().
		Bool("residual_view", cfg.ResidualView).
		Int("outliers", len(outX)).
		Int("inliers", len(inX)).
		Msg("plotted residuals")
	return ax, nil
}

// thresholdLines traces truth +/- threshold*f(truth) over evenly spaced truth values.
func (a *Analyzer) thresholdLines(threshold float64) (x, upper, lower []float64) {
	x = floats.Span(make([]float64, thresholdLineSamples), floats.Min(a.truth), floats.Max(a.truth))

	scaling := make([]float64, len(x))
	if a.scale != nil {
		copy(scaling, a.scale(slices.Clone(x)))
	} else {
		for i := range scaling {
			scaling[i] = 1
		}
	}

	upper = make([]float64, len(x))
	lower = make([]float64, len(x))
	for i := range x {
		upper[i] = x[i] + threshold*scaling[i]
		lower[i] = x[i] - threshold*scaling[i]
	}
	return x, upper, lower
}

func partition(x, y []float64, mask []bool) (inX, inY, outX, outY []float64) {
	for i, isOut := range mask {
		if isOut {
			outX = append(outX, x[i])
			outY = append(outY, y[i])
		} else {
			inX = append(inX, x[i])
			inY = append(inY, y[i])
		}
	}
	return inX, inY, outX, outY
}

type plotLabels struct {
	x, y      string
	yFontSize float64
}

func axisLabels(cfg PlotConfig, scaled bool) plotLabels {
	t := cfg.TargetLabel + "_truth"
	p := cfg.TargetLabel + "_predicted"
	labels := plotLabels{x: t, yFontSize: cfg.FontSize}

	switch {
	case !cfg.ResidualView:
		labels.y = p
	case cfg.DenominatorLabel != nil:
		labels.y = fmt.Sprintf("(%s - %s) / %s", p, t, cfg.DenominatorLabel(t))
		labels.yFontSize = fractionLabelScale * cfg.FontSize
	case !scaled:
		labels.y = fmt.Sprintf("%s - %s", p, t)
	default:
		labels.y = fmt.Sprintf("(%s - %s) / f(%s)", p, t, t)
		labels.yFontSize = fractionLabelScale * cfg.FontSize
	}
	return labels
}

func plotTitle(spreadLabel string, spread, sigmas, outlierFraction, r2 float64) string {
	return strings.Join([]string{
		fmt.Sprintf("%s=%.3e", spreadLabel, spread),
		fmt.Sprintf("%gσ outliers=%.3f%%", sigmas, outlierFraction*100),
		fmt.Sprintf("R²=%.4f", r2),
	}, "   ")
}
