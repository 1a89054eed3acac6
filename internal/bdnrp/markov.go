package bdnrp

import "github.com/cartwright/bdnrp/internal/hitter"

// distribution is a probability mass function over the 25 half-inning
// states (24 active base/out combinations plus the absorbing "three
// outs" state).
type distribution [numStates]float64

func initialDistribution() distribution {
	var d distribution
	d[stateIndex(0, 0)] = 1
	return d
}

// eventRates returns the eight event probabilities for one hitter in
// the fixed order the BDNRP contract requires.
func eventRates(r hitter.Rates) [8]float64 {
	out := 1 - r.Sum()
	return [8]float64{
		float64(r.Singles),
		float64(r.Doubles),
		float64(r.Triples),
		float64(r.HR),
		float64(r.BB),
		float64(r.HBP),
		float64(r.IBB),
		out,
	}
}

// applyPlateAppearance advances a state distribution through one
// hitter's plate appearance and returns the resulting distribution,
// the expected runs scored on this plate appearance, and the number
// of negative-probability entries that were clamped to zero before
// renormalization (a proxy for floating-point drift).
func applyPlateAppearance(d distribution, rates hitter.Rates) (distribution, float64, int) {
	var next distribution
	expectedRuns := 0.0
	probs := eventRates(rates)

	for s := 0; s < numActiveStates; s++ {
		p := d[s]
		if p == 0 {
			continue
		}
		b, outs := splitState(s)
		for ev := event(0); ev < 8; ev++ {
			pr := p * probs[ev]
			if pr == 0 {
				continue
			}
			newB, newOuts, runs := transition(b, outs, ev)
			var target int
			if newOuts >= 3 {
				target = doneState
			} else {
				target = stateIndex(newB, newOuts)
			}
			next[target] += pr
			expectedRuns += pr * float64(runs)
		}
	}
	// Mass already in the absorbing state stays there; a completed
	// half-inning contributes nothing further.
	next[doneState] += d[doneState]

	clamped := clampAndRenormalize(&next)
	return next, expectedRuns, clamped
}

// clampAndRenormalize zeroes any negative entries (floating-point
// drift can produce them after repeated subtractive cancellation) and
// rescales the distribution back to unit mass. It reports how many
// entries needed clamping.
func clampAndRenormalize(d *distribution) int {
	clamped := 0
	sum := 0.0
	for i, v := range d {
		if v < 0 {
			d[i] = 0
			clamped++
			continue
		}
		sum += v
	}
	if clamped == 0 || sum == 0 {
		return clamped
	}
	for i := range d {
		d[i] /= sum
	}
	return clamped
}
