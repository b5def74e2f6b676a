package residuals

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const maxBarWidth = 50

// Histogram bins the finite residuals into equal-width bins spanning their
// range. dividers has bins+1 entries; the last one sits just above the
// largest residual so every value lands in a bin. Ranges wider than
// MaxFloat64 are binned without overflowing.
func (a *Analyzer) Histogram(bins int) (dividers, counts []float64, err error) {
	if bins < 1 {
		return nil, nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}

	xs := make([]float64, 0, len(a.residual))
	for _, r := range a.residual {
		if isFinite(r) {
			xs = append(xs, r)
		}
	}
	if len(xs) == 0 {
		return nil, nil, nil
	}
	slices.Sort(xs)

	lo, hi := xs[0], xs[len(xs)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	// hi-lo overflows for residuals near ±MaxFloat64, so dividers are
	// interpolated between the bounds instead of stepped from lo.
	dividers = make([]float64, bins+1)
	dividers[0] = lo
	for i := 1; i < bins; i++ {
		t := float64(i) / float64(bins)
		dividers[i] = max(lo*(1-t)+hi*t, dividers[i-1])
	}
	dividers[bins] = math.Nextafter(max(hi, dividers[bins-1]), math.Inf(1))

	return dividers, stat.Histogram(nil, dividers, xs, nil), nil
}

// PrintHistogram writes a horizontal bar chart of the residual distribution.
// Bins whose centre falls beyond the outlier threshold are drawn shaded.
func (a *Analyzer) PrintHistogram(w io.Writer, bins int, opts ...OutlierOption) error {
	p := outlierParams(opts)
	_, spread, label, err := a.outliers(p)
	if err != nil {
		return err
	}
	threshold := p.Sigmas * spread

	dividers, counts, err := a.Histogram(bins)
	if err != nil {
		return err
	}
	if counts == nil {
		_, err := fmt.Fprintln(w, "no finite residuals to plot")
		return err
	}

	maxCount := floats.Max(counts)

	var b strings.Builder
	fmt.Fprintf(&b, "\nResidual distribution (%s=%.3e, %gσ threshold=%.3e):\n", label, spread, p.Sigmas, threshold)
	fmt.Fprintln(&b, "   bin start |     bin end |  count | bar")
	fmt.Fprintln(&b, "-------------|-------------|--------|"+strings.Repeat("-", maxBarWidth))

	for i, c := range counts {
		barWidth := int(c / maxCount * maxBarWidth)

		block := "█"
		centre := dividers[i]/2 + dividers[i+1]/2
		if math.Abs(centre) > threshold {
			block = "░"
		}

		bar := strings.Repeat(block, barWidth)
		if barWidth == 0 && c > 0 {
			bar = "▏"
		}

		fmt.Fprintf(&b, "%12.4e | %11.4e | %6d | %s\n", dividers[i], dividers[i+1], int(c), bar)
	}

	fmt.Fprintf(&b, "\nBar width represents bin count relative to the fullest bin (0 to %d chars)\n", maxBarWidth)

	_, err = io.WriteString(w, b.String())
	return err
}
