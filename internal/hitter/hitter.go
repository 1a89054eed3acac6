// Package hitter derives per-plate-appearance event rates from raw
// season counts. It is the rate deriver: a pure, side-effect-free
// conversion from box-score totals to the probabilities the BDNRP
// engine consumes.
package hitter

import "fmt"

// Handedness is the side a hitter bats from.
type Handedness string

const (
	Left   Handedness = "LEFT"
	Right  Handedness = "RIGHT"
	Switch Handedness = "SWITCH"
)

// Counts holds a hitter's raw season totals. Field tags follow the
// wire contract's slot-data keys (pa, h, 1b, 2b, 3b, hr, bb, hbp, ibb).
type Counts struct {
	PA      int `json:"pa"`
	H       int `json:"h"`
	Singles int `json:"1b"` // recomputed from H-2B-3B-HR when absent or inconsistent
	Doubles int `json:"2b"`
	Triples int `json:"3b"`
	HR      int `json:"hr"`
	BB      int `json:"bb"`
	HBP     int `json:"hbp"`
	IBB     int `json:"ibb"`
}

// Rates holds the seven derived per-PA event probabilities, in the
// fixed order (1B, 2B, 3B, HR, BB, HBP, IBB) the BDNRP engine relies
// on for its event-ordering contract. The implicit eighth probability,
// Out, is 1 minus the sum of the other seven and is not stored
// separately.
type Rates struct {
	Singles float32
	Doubles float32
	Triples float32
	HR      float32
	BB      float32
	HBP     float32
	IBB     float32
}

// Sum returns the total non-out probability mass.
func (r Rates) Sum() float64 {
	return float64(r.Singles) + float64(r.Doubles) + float64(r.Triples) +
		float64(r.HR) + float64(r.BB) + float64(r.HBP) + float64(r.IBB)
}

// Out returns the implicit out probability.
func (r Rates) Out() float64 {
	return 1 - r.Sum()
}

// Hitter is a named batter with cached, derived rates. Name is the
// stable label callers use to address the hitter; internal components
// address hitters by axis index only.
type Hitter struct {
	Name       string
	Handedness Handedness
	Counts     Counts
	Rates      Rates
}

const rateOverflowTolerance = 1e-6

// DeriveRates converts a hitter's raw season counts into the seven
// per-PA event probabilities. It is a pure function: the same Counts
// always produce the same Rates, and nothing outside the returned
// value is mutated.
//
// Singles are recomputed as H - 2B - 3B - HR whenever the supplied
// Singles count is zero or does not match that identity — this is the
// "recomputed when absent or inconsistent" rule from the rate deriver
// contract.
func DeriveRates(c Counts) (Rates, error) {
	if c.PA <= 0 {
		return Rates{}, fmt.Errorf("%w: PA must be positive, got %d", ErrInvalidStats, c.PA)
	}
	for _, n := range []int{c.H, c.Singles, c.Doubles, c.Triples, c.HR, c.BB, c.HBP, c.IBB} {
		if n < 0 {
			return Rates{}, fmt.Errorf("%w: counts must be non-negative", ErrInvalidStats)
		}
	}

	singles := c.Singles
	derivedSingles := c.H - c.Doubles - c.Triples - c.HR
	if singles == 0 || singles != derivedSingles {
		singles = derivedSingles
	}
	if singles < 0 {
		return Rates{}, fmt.Errorf("%w: derived singles count is negative (H=%d 2B=%d 3B=%d HR=%d)",
			ErrInvalidStats, c.H, c.Doubles, c.Triples, c.HR)
	}

	pa := float64(c.PA)
	// Accumulate in float64, store in float32 per the rate deriver's
	// numeric contract.
	rates := Rates{
		Singles: float32(float64(singles) / pa),
		Doubles: float32(float64(c.Doubles) / pa),
		Triples: float32(float64(c.Triples) / pa),
		HR:      float32(float64(c.HR) / pa),
		BB:      float32(float64(c.BB) / pa),
		HBP:     float32(float64(c.HBP) / pa),
		IBB:     float32(float64(c.IBB) / pa),
	}

	if rates.Sum() > 1+rateOverflowTolerance {
		return Rates{}, fmt.Errorf("%w: event rates sum to %.6f > 1.0", ErrRateOverflow, rates.Sum())
	}

	return rates, nil
}

// NewHitter derives rates for name/counts/handedness and returns the
// fully populated Hitter, or an error from DeriveRates.
func NewHitter(name string, counts Counts, handedness Handedness) (Hitter, error) {
	rates, err := DeriveRates(counts)
	if err != nil {
		return Hitter{}, err
	}
	return Hitter{
		Name:       name,
		Handedness: handedness,
		Counts:     counts,
		Rates:      rates,
	}, nil
}
