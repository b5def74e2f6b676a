// Package config defines environment configuration structs and loaders.
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sethvargo/go-envconfig"

	"github.com/tensorplex-labs/residuals/internal/residuals"
)

type AppConfig struct {
	ResidualEnvConfig
	PlotEnvConfig
	Environment string `env:"ENVIRONMENT, default=prod"`
}

// ResidualEnvConfig holds the outlier definition and the synthetic sample used by the demo.
type ResidualEnvConfig struct {
	OutlierSigmas   float64                   `env:"RESIDUAL_OUTLIER_SIGMAS, default=3"`
	SpreadEstimator residuals.SpreadEstimator `env:"RESIDUAL_SPREAD_ESTIMATOR, default=nmad"`
	TargetLabel     string                    `env:"RESIDUAL_TARGET_LABEL, default=z"`
	SampleSize      int                       `env:"RESIDUAL_SAMPLE_SIZE, default=5000"`
	Seed            uint64                    `env:"RESIDUAL_SEED, default=42"`
}

// PlotEnvConfig configures the rendered residual plot.
type PlotEnvConfig struct {
	Output         string  `env:"PLOT_OUTPUT, default=residuals.png"`
	Width          int     `env:"PLOT_WIDTH, default=1024"`
	Height         int     `env:"PLOT_HEIGHT, default=768"`
	FontSize       float64 `env:"PLOT_FONT_SIZE, default=14"`
	PredictionView bool    `env:"PLOT_PREDICTION_VIEW, default=false"`
	HistogramBins  int     `env:"PLOT_TERMINAL_BINS, default=20"`
}

// Compression selects the stream wrapper applied to the rendered chart.
type Compression int

const (
	CompressNone Compression = iota
	CompressGzip
	CompressZstd
)

var compressionSuffixes = map[string]Compression{
	".gz":  CompressGzip,
	".zst": CompressZstd,
}

func LoadConfig(ctx context.Context) (*AppConfig, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

func LoadConfigFrom(ctx context.Context, lookuper envconfig.Lookuper) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.SampleSize < 2 {
		return fmt.Errorf("RESIDUAL_SAMPLE_SIZE must be at least 2, got %d", c.SampleSize)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("plot size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.HistogramBins < 0 {
		return fmt.Errorf("PLOT_TERMINAL_BINS must not be negative, got %d", c.HistogramBins)
	}
	if _, _, err := c.PlotFormat(); err != nil {
		return err
	}
	return nil
}

// PlotFormat derives the chart format from the output extension. A trailing
// .gz or .zst asks for the rendered chart to be compressed.
func (c *PlotEnvConfig) PlotFormat() (residuals.Format, Compression, error) {
	name := strings.ToLower(c.Output)
	compression := CompressNone
	if suffix, ok := compressionSuffixes[filepath.Ext(name)]; ok {
		compression = suffix
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	switch filepath.Ext(name) {
	case ".png":
		return residuals.PNG, compression, nil
	case ".svg":
		return residuals.SVG, compression, nil
	}
	return 0, CompressNone, fmt.Errorf("unsupported plot output %q, expected .png or .svg (optionally .gz or .zst)", c.Output)
}
