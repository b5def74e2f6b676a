package residuals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpreadEstimator(t *testing.T) {
	tests := []struct {
		name string
		want SpreadEstimator
	}{
		{"nmad", NMAD},
		{"NMAD", NMAD},
		{"NmAd", NMAD},
		{"std", StdDev},
		{"STD", StdDev},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpreadEstimator(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSpreadEstimator_Invalid(t *testing.T) {
	for _, name := range []string{"bogus", "", "mad", "stddev"} {
		_, err := ParseSpreadEstimator(name)
		assert.ErrorIs(t, err, ErrInvalidEstimator, "name %q", name)
	}
}

func TestSelectSpread(t *testing.T) {
	a := fromResidual(t, []float64{1, 2, 3})

	spread, label, err := a.SelectSpread("nmad")
	require.NoError(t, err)
	assert.Equal(t, "σ_NMAD", label)
	assert.Equal(t, a.SpreadNMAD(), spread)

	spread, label, err = a.SelectSpread("Std")
	require.NoError(t, err)
	assert.Equal(t, "σ", label)
	assert.Equal(t, a.SpreadStd(), spread)

	_, _, err = a.SelectSpread("bogus")
	require.ErrorIs(t, err, ErrInvalidEstimator)
}

func TestSpread_OutOfRangeEstimator(t *testing.T) {
	a := fromResidual(t, []float64{1, 2, 3})

	_, _, err := a.Spread(SpreadEstimator(42))
	require.ErrorIs(t, err, ErrInvalidEstimator)
}

func TestSpreadEstimator_Text(t *testing.T) {
	var e SpreadEstimator
	require.NoError(t, e.UnmarshalText([]byte("STD")))
	assert.Equal(t, StdDev, e)

	text, err := e.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "std", string(text))

	require.ErrorIs(t, e.UnmarshalText([]byte("bogus")), ErrInvalidEstimator)
	assert.Equal(t, StdDev, e, "failed decode must leave the value untouched")

	_, err = SpreadEstimator(9).MarshalText()
	require.ErrorIs(t, err, ErrInvalidEstimator)
	assert.Equal(t, "SpreadEstimator(9)", SpreadEstimator(9).String())
	assert.Equal(t, "SpreadEstimator(9)", SpreadEstimator(9).Label())
	assert.False(t, SpreadEstimator(9).Valid())
}
