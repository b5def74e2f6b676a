package residuals

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	// NMADScale converts a median absolute deviation into a sigma estimate for Gaussian residuals.
	NMADScale = 1.48

	DefaultOutlierSigmas = 3.0
	DefaultTargetLabel   = "x"
	DefaultFontSize      = 14.0

	// fractional y labels are drawn larger than the rest
	fractionLabelScale = 1.3

	// number of truth samples used to trace the threshold lines in prediction view
	thresholdLineSamples = 1000
)

var (
	DefaultInlierColor  = chart.ColorBlue
	DefaultOutlierColor = chart.ColorRed
	thresholdLineColor  = drawing.ColorBlack
)

func DefaultOutlierParams() OutlierParams {
	return OutlierParams{
		Sigmas:    DefaultOutlierSigmas,
		Estimator: NMAD,
	}
}

func DefaultMarkerStyle() MarkerStyle {
	return MarkerStyle{
		Size:    1,
		Opacity: 0.1,
	}
}

func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		OutlierParams: DefaultOutlierParams(),
		TargetLabel:   DefaultTargetLabel,
		InlierColor:   DefaultInlierColor,
		OutlierColor:  DefaultOutlierColor,
		FontSize:      DefaultFontSize,
		ResidualView:  true,
		Marker:        DefaultMarkerStyle(),
	}
}
