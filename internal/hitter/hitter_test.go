package hitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRates_Basic(t *testing.T) {
	rates, err := DeriveRates(Counts{
		PA: 600, H: 143, Singles: 90, Doubles: 30, Triples: 3, HR: 20,
		BB: 60, HBP: 6, IBB: 2,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, rates.Sum(), 1.0+1e-6)
	assert.InDelta(t, 90.0/600.0, float64(rates.Singles), 1e-6)
	assert.InDelta(t, 20.0/600.0, float64(rates.HR), 1e-6)
}

func TestDeriveRates_RecomputesInconsistentSingles(t *testing.T) {
	// Singles count (999) disagrees with H-2B-3B-HR; the deriver must
	// recompute rather than trust the supplied value.
	rates, err := DeriveRates(Counts{
		PA: 600, H: 150, Singles: 999, Doubles: 30, Triples: 3, HR: 20,
	})
	require.NoError(t, err)
	assert.InDelta(t, 97.0/600.0, float64(rates.Singles), 1e-6)
}

func TestDeriveRates_ZeroSinglesIsRecomputed(t *testing.T) {
	rates, err := DeriveRates(Counts{PA: 100, H: 20, Doubles: 5, Triples: 1, HR: 2})
	require.NoError(t, err)
	assert.InDelta(t, 12.0/100.0, float64(rates.Singles), 1e-6)
}

func TestDeriveRates_InvalidPA(t *testing.T) {
	_, err := DeriveRates(Counts{PA: 0})
	require.ErrorIs(t, err, ErrInvalidStats)

	_, err = DeriveRates(Counts{PA: -10})
	require.ErrorIs(t, err, ErrInvalidStats)
}

func TestDeriveRates_NegativeCount(t *testing.T) {
	_, err := DeriveRates(Counts{PA: 100, HR: -1})
	require.ErrorIs(t, err, ErrInvalidStats)
}

func TestDeriveRates_RateOverflow(t *testing.T) {
	_, err := DeriveRates(Counts{
		PA: 10, H: 20, Singles: 5, Doubles: 5, Triples: 5, HR: 5, BB: 5,
	})
	require.ErrorIs(t, err, ErrRateOverflow)
}

func TestDeriveRates_NegativeDerivedSingles(t *testing.T) {
	// 2B+3B+HR exceeds H: the derived-singles identity goes negative.
	_, err := DeriveRates(Counts{PA: 100, H: 5, Doubles: 3, Triples: 2, HR: 2})
	require.ErrorIs(t, err, ErrInvalidStats)
}

func TestNewHitter(t *testing.T) {
	h, err := NewHitter("Ruth", Counts{PA: 600, H: 200, Doubles: 40, Triples: 10, HR: 50, BB: 100}, Left)
	require.NoError(t, err)
	assert.Equal(t, "Ruth", h.Name)
	assert.Equal(t, Left, h.Handedness)
	assert.LessOrEqual(t, h.Rates.Sum(), 1.0+1e-6)
}
