package residuals

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Axes is the 2D drawing surface PlotResiduals draws on.
type Axes interface {
	Scatter(xs, ys []float64, color drawing.Color, marker MarkerStyle)
	// AxHLine draws a horizontal line across the full x range.
	AxHLine(y float64, style LineStyle)
	Plot(xs, ys []float64, style LineStyle)
	XLim() (lo, hi float64)
	SetYLim(lo, hi float64)
	SetXLabel(label string, fontSize float64)
	SetYLabel(label string, fontSize float64)
	SetTitle(title string, fontSize float64)
}

type Format int

const (
	PNG Format = iota
	SVG
)

const (
	DefaultChartWidth  = 1024
	DefaultChartHeight = 768

	// matplotlib-style padding added around the data limits
	axisMargin = 0.05
)

type hline struct {
	y     float64
	style LineStyle
}

type axisLabel struct {
	text     string
	fontSize float64
}

// ChartAxes is an Axes backed by go-chart. Series are collected as they are
// drawn and laid out when Render is called. It is not safe for concurrent use.
type ChartAxes struct {
	Width  int
	Height int

	series []chart.ContinuousSeries
	hlines []hline
	ylim   *chart.ContinuousRange

	title, xlabel, ylabel axisLabel
}

func NewChartAxes(width, height int) *ChartAxes {
	if width <= 0 {
		width = DefaultChartWidth
	}
	if height <= 0 {
		height = DefaultChartHeight
	}
	return &ChartAxes{Width: width, Height: height}
}

// Scatter draws dots without connecting lines. Non-finite points are skipped.
func (c *ChartAxes) Scatter(xs, ys []float64, color drawing.Color, marker MarkerStyle) {
	fx, fy := finitePoints(xs, ys)
	if len(fx) == 0 {
		return
	}
	c.series = append(c.series, chart.ContinuousSeries{
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    marker.Size,
			DotColor:    color.WithAlpha(opacityToAlpha(marker.Opacity)),
		},
		XValues: fx,
		YValues: fy,
	})
}

func (c *ChartAxes) AxHLine(y float64, style LineStyle) {
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return
	}
	c.hlines = append(c.hlines, hline{y: y, style: style})
}

func (c *ChartAxes) Plot(xs, ys []float64, style LineStyle) {
	fx, fy := finitePoints(xs, ys)
	if len(fx) == 0 {
		return
	}
	c.series = append(c.series, chart.ContinuousSeries{
		Style:   lineStyle(style),
		XValues: fx,
		YValues: fy,
	})
}

// XLim returns the x data limits padded by 5% on each side.
func (c *ChartAxes) XLim() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.series {
		for _, x := range s.XValues {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	return pad(lo, hi)
}

func (c *ChartAxes) yLim() (float64, float64) {
	if c.ylim != nil {
		return c.ylim.Min, c.ylim.Max
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.series {
		for _, y := range s.YValues {
			lo = math.Min(lo, y)
			hi = math.Max(hi, y)
		}
	}
	for _, h := range c.hlines {
		lo = math.Min(lo, h.y)
		hi = math.Max(hi, h.y)
	}
	return pad(lo, hi)
}

func (c *ChartAxes) SetYLim(lo, hi float64) {
	c.ylim = &chart.ContinuousRange{Min: lo, Max: hi}
}

func (c *ChartAxes) SetXLabel(label string, fontSize float64) {
	c.xlabel = axisLabel{text: label, fontSize: fontSize}
}

func (c *ChartAxes) SetYLabel(label string, fontSize float64) {
	c.ylabel = axisLabel{text: label, fontSize: fontSize}
}

func (c *ChartAxes) SetTitle(title string, fontSize float64) {
	c.title = axisLabel{text: title, fontSize: fontSize}
}

// Chart lays out everything drawn so far as a go-chart Chart.
func (c *ChartAxes) Chart() chart.Chart {
	xlo, xhi := c.XLim()
	ylo, yhi := c.yLim()

	series := make([]chart.Series, 0, len(c.series)+len(c.hlines))
	for _, s := range c.series {
		series = append(series, s)
	}
	for _, h := range c.hlines {
		series = append(series, chart.ContinuousSeries{
			Style:   lineStyle(h.style),
			XValues: []float64{xlo, xhi},
			YValues: []float64{h.y, h.y},
		})
	}

	return chart.Chart{
		Title:      c.title.text,
		TitleStyle: chart.Style{FontSize: c.title.fontSize},
		Width:      c.Width,
		Height:     c.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:      c.xlabel.text,
			NameStyle: chart.Style{FontSize: c.xlabel.fontSize},
			Range:     &chart.ContinuousRange{Min: xlo, Max: xhi},
		},
		YAxis: chart.YAxis{
			Name:      c.ylabel.text,
			NameStyle: chart.Style{FontSize: c.ylabel.fontSize},
			Range:     &chart.ContinuousRange{Min: ylo, Max: yhi},
		},
		Series: series,
	}
}

func (c *ChartAxes) Render(w io.Writer, format Format) error {
	var rp chart.RendererProvider
	switch format {
	case PNG:
		rp = chart.PNG
	case SVG:
		rp = chart.SVG
	default:
		return fmt.Errorf("unsupported chart format %d", format)
	}
	if len(c.series) == 0 && len(c.hlines) == 0 {
		return fmt.Errorf("render residual chart: %w", ErrNothingToPlot)
	}

	ch := c.Chart()
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render residual chart: %w", err)
	}
	return nil
}

func lineStyle(style LineStyle) chart.Style {
	s := chart.Style{
		StrokeWidth: 1,
		StrokeColor: style.Color,
	}
	if style.Dashed {
		s.StrokeDashArray = []float64{5, 5}
	}
	return s
}

func finitePoints(xs, ys []float64) ([]float64, []float64) {
	n := min(len(xs), len(ys))
	fx := make([]float64, 0, n)
	fy := make([]float64, 0, n)
	for i := range n {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
		}
	}
	return fx, fy
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// pad widens [lo, hi] by axisMargin. An empty or degenerate range is widened
// so go-chart never sees a zero-width axis.
func pad(lo, hi float64) (float64, float64) {
	if lo > hi {
		return 0, 1
	}
	if lo == hi {
		return lo - 0.5, hi + 0.5
	}
	margin := (hi - lo) * axisMargin
	return lo - margin, hi + margin
}

func opacityToAlpha(opacity float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, opacity)) * 255))
}
