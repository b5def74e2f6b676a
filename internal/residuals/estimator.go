package residuals

import (
	"fmt"
	"strings"
)

// SpreadEstimator selects how the spread of the residual distribution is estimated.
type SpreadEstimator int

const (
	NMAD SpreadEstimator = iota
	StdDev
)

type estimatorSpec struct {
	name    string
	label   string
	compute func(*Analyzer) float64
}

var estimators = map[SpreadEstimator]estimatorSpec{
	NMAD:   {name: "nmad", label: "σ_NMAD", compute: (*Analyzer).SpreadNMAD},
	StdDev: {name: "std", label: "σ", compute: (*Analyzer).SpreadStd},
}

// ParseSpreadEstimator accepts "nmad" or "std", ignoring case.
func ParseSpreadEstimator(name string) (SpreadEstimator, error) {
	for e, spec := range estimators {
		if strings.EqualFold(name, spec.name) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrInvalidEstimator)
}

func (e SpreadEstimator) Valid() bool {
	_, ok := estimators[e]
	return ok
}

func (e SpreadEstimator) String() string {
	if spec, ok := estimators[e]; ok {
		return spec.name
	}
	return fmt.Sprintf("SpreadEstimator(%d)", int(e))
}

// Label is the symbol used for the estimator in plot titles. Unknown values
// fall back to String.
func (e SpreadEstimator) Label() string {
	if spec, ok := estimators[e]; ok {
		return spec.label
	}
	return e.String()
}

func (e *SpreadEstimator) UnmarshalText(text []byte) error {
	parsed, err := ParseSpreadEstimator(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

func (e SpreadEstimator) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%s: %w", e, ErrInvalidEstimator)
	}
	return []byte(e.String()), nil
}

// Spread evaluates the estimator over the residual and returns its value and display label.
func (a *Analyzer) Spread(e SpreadEstimator) (float64, string, error) {
	spec, ok := estimators[e]
	if !ok {
		return 0, "", fmt.Errorf("%s: %w", e, ErrInvalidEstimator)
	}
	return spec.compute(a), spec.label, nil
}

// SelectSpread is Spread keyed by estimator name.
func (a *Analyzer) SelectSpread(name string) (float64, string, error) {
	e, err := ParseSpreadEstimator(name)
	if err != nil {
		return 0, "", err
	}
	return a.Spread(e)
}
