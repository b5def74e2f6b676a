package residuals

import (
	"math"

	"github.com/rs/zerolog/log"
)

type OutlierOption func(*OutlierParams)

// WithOutlierSigmas sets how many spreads a residual may deviate before it is
// an outlier. No minimum is enforced.
func WithOutlierSigmas(sigmas float64) OutlierOption {
	return func(p *OutlierParams) {
		p.Sigmas = sigmas
	}
}

func WithSpreadEstimator(e SpreadEstimator) OutlierOption {
	return func(p *OutlierParams) {
		p.Estimator = e
	}
}

func WithOutlierParams(params OutlierParams) OutlierOption {
	return func(p *OutlierParams) {
		*p = params
	}
}

func outlierParams(opts []OutlierOption) OutlierParams {
	p := DefaultOutlierParams()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// IsOutlier returns a mask that is true where |residual| > sigmas * spread.
// By default an outlier lies beyond 3 sigma_NMAD.
//
// A zero spread flags every nonzero residual. NaN residuals are never flagged.
func (a *Analyzer) IsOutlier(opts ...OutlierOption) ([]bool, error) {
	mask, _, _, err := a.outliers(outlierParams(opts))
	return mask, err
}

// OutlierFraction returns the fraction of residuals flagged by IsOutlier.
// It is NaN for an empty analyzer.
func (a *Analyzer) OutlierFraction(opts ...OutlierOption) (float64, error) {
	mask, _, _, err := a.outliers(outlierParams(opts))
	if err != nil {
		return 0, err
	}
	return fraction(mask), nil
}

func (a *Analyzer) outliers(p OutlierParams) (mask []bool, spread float64, label string, err error) {
	spread, label, err = a.Spread(p.Estimator)
	if err != nil {
		return nil, 0, "", err
	}

	threshold := p.Sigmas * spread
	mask = make([]bool, len(a.residual))
	for i, r := range a.residual {
		mask[i] = math.Abs(r) > threshold
	}

	log.Trace().
		Str("estimator", p.Estimator.String()).
		Float64("spread", spread).
		Float64("threshold", threshold).
		Int("outliers", count(mask)).
		Msg("flagged outliers")
	return mask, spread, label, nil
}

func count(mask []bool) int {
	n := 0
	for _, m := range mask {
		if m {
			n++
		}
	}
	return n
}

func fraction(mask []bool) float64 {
	return float64(count(mask)) / float64(len(mask))
}
