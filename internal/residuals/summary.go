package residuals

import (
	"math"

	"github.com/bytedance/sonic"
)

// Summarize collects every statistic of the analyzer, using the given outlier
// definition for the spread and outlier figures.
func (a *Analyzer) Summarize(opts ...OutlierOption) (Summary, error) {
	p := outlierParams(opts)
	mask, spread, label, err := a.outliers(p)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		N:               a.Len(),
		Estimator:       p.Estimator,
		SpreadLabel:     label,
		Spread:          spread,
		NMAD:            a.SpreadNMAD(),
		StdDev:          a.SpreadStd(),
		Bias:            a.Bias(),
		OutlierSigmas:   p.Sigmas,
		OutlierCount:    count(mask),
		OutlierFraction: fraction(mask),
		RSquared:        a.RSquared(),
	}, nil
}

type summaryJSON struct {
	N               int      `json:"n"`
	Estimator       string   `json:"spread_estimator"`
	SpreadLabel     string   `json:"spread_label"`
	Spread          *float64 `json:"spread"`
	NMAD            *float64 `json:"nmad"`
	StdDev          *float64 `json:"std"`
	Bias            *float64 `json:"bias"`
	OutlierSigmas   *float64 `json:"outlier_sigmas"`
	OutlierCount    int      `json:"outlier_count"`
	OutlierFraction *float64 `json:"outlier_fraction"`
	RSquared        *float64 `json:"r_squared"`
}

// JSON encodes the summary. Non-finite statistics are written as null.
func (s Summary) JSON() ([]byte, error) {
	return sonic.Marshal(summaryJSON{
		N:               s.N,
		Estimator:       s.Estimator.String(),
		SpreadLabel:     s.SpreadLabel,
		Spread:          finiteOrNil(s.Spread),
		NMAD:            finiteOrNil(s.NMAD),
		StdDev:          finiteOrNil(s.StdDev),
		Bias:            finiteOrNil(s.Bias),
		OutlierSigmas:   finiteOrNil(s.OutlierSigmas),
		OutlierCount:    s.OutlierCount,
		OutlierFraction: finiteOrNil(s.OutlierFraction),
		RSquared:        finiteOrNil(s.RSquared),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
