package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/residuals/internal/config"
	"github.com/tensorplex-labs/residuals/internal/residuals"
	"github.com/tensorplex-labs/residuals/internal/utils/logger"
)

const (
	maxRedshift       = 3.0
	photoZScatter     = 0.03
	catastrophicRate  = 0.02
	catastrophicScale = 0.5
)

func main() {
	logger.Init()

	cfg, err := config.LoadConfig(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load environment configuration")
	}
	logger.Configure(cfg.Environment)

	prediction, truth := synthesizePhotoZ(cfg.SampleSize, cfg.Seed)

	analyzer, err := residuals.New(prediction, truth, residuals.WithScaleFunc(onePlus))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build residual analyzer")
	}

	outlierOpts := []residuals.OutlierOption{
		residuals.WithOutlierSigmas(cfg.OutlierSigmas),
		residuals.WithSpreadEstimator(cfg.SpreadEstimator),
	}

	summary, err := analyzer.Summarize(outlierOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to summarize residuals")
	}
	log.Info().
		Int("n", summary.N).
		Float64("bias", summary.Bias).
		Float64("nmad", summary.NMAD).
		Float64("std", summary.StdDev).
		Float64("outlier_fraction", summary.OutlierFraction).
		Float64("r2", summary.RSquared).
		Msg("residual statistics")
	logger.Sugar().Infow("outlier definition",
		"estimator", summary.Estimator.String(),
		"sigmas", summary.OutlierSigmas,
		"spread", summary.Spread,
		"outliers", summary.OutlierCount,
	)

	report, err := summary.JSON()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to encode summary")
	}
	fmt.Println(string(report))

	if cfg.HistogramBins > 0 {
		if err := analyzer.PrintHistogram(os.Stderr, cfg.HistogramBins, outlierOpts...); err != nil {
			log.Error().Err(err).Msg("failed to print residual histogram")
		}
	}

	chartAxes := residuals.NewChartAxes(cfg.Width, cfg.Height)
	plotOpts := []residuals.PlotOption{
		residuals.WithAxes(chartAxes),
		residuals.WithTargetLabel(cfg.TargetLabel),
		residuals.WithDenominatorLabel(func(t string) string { return "(1 + " + t + ")" }),
		residuals.WithFontSize(cfg.FontSize),
		residuals.WithPlotOutlierParams(outlierOpts...),
	}
	if cfg.PredictionView {
		plotOpts = append(plotOpts, residuals.WithPredictionView())
	}

	if _, err := analyzer.PlotResiduals(plotOpts...); err != nil {
		log.Fatal().Err(err).Msg("failed to plot residuals")
	}

	if err := savePlot(chartAxes, &cfg.PlotEnvConfig); err != nil {
		log.Fatal().Err(err).Str("output", cfg.Output).Msg("failed to save plot")
	}
	log.Info().Str("output", cfg.Output).Msg("residual plot written")
}

// onePlus is the usual photo-z error scaling, f(z) = 1 + z.
func onePlus(z []float64) []float64 {
	for i := range z {
		z[i] = 1 + z[i]
	}
	return z
}

// synthesizePhotoZ draws redshifts uniformly in [0, maxRedshift) with
// Gaussian (1+z)-scaled errors and a small share of catastrophic failures.
func synthesizePhotoZ(n int, seed uint64) (prediction, truth []float64) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	prediction = make([]float64, n)
	truth = make([]float64, n)
	for i := range n {
		z := rng.Float64() * maxRedshift
		sigma := photoZScatter
		if rng.Float64() < catastrophicRate {
			sigma = catastrophicScale
		}
		truth[i] = z
		prediction[i] = max(0, z+(1+z)*sigma*rng.NormFloat64())
	}

	log.Debug().Int("n", n).Uint64("seed", seed).Msg("generated synthetic photo-z sample")
	return prediction, truth
}

func savePlot(ax *residuals.ChartAxes, cfg *config.PlotEnvConfig) (err error) {
	format, compression, err := cfg.PlotFormat()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create plot directory: %w", err)
		}
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot file: %w", cerr)
		}
	}()

	w, err := compressor(f, compression)
	if err != nil {
		return err
	}
	if err := ax.Render(w, format); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flush plot stream: %w", err)
	}
	return nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, c config.Compression) (io.WriteCloser, error) {
	switch c {
	case config.CompressGzip:
		return gzip.NewWriter(w), nil
	case config.CompressZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}
		return enc, nil
	default:
		return nopWriteCloser{w}, nil
	}
}
