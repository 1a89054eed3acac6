// Package constraints translates high-level batting-order constraints
// (fixed slots, handedness caps) into a reduced search domain and a
// predicate the search engine can apply to a candidate lineup.
package constraints

import (
	"errors"
	"fmt"

	"github.com/cartwright/bdnrp/internal/hitter"
)

// LineupSize is the fixed number of batting slots.
const LineupSize = 9

var (
	// ErrMalformedConstraints covers structurally invalid constraint
	// input: out-of-range slots, duplicate slots, duplicate hitters.
	ErrMalformedConstraints = errors.New("malformed constraints")
	// ErrInfeasibleConstraints means the handedness-cap precheck found
	// no arrangement of this roster's handedness values into the free
	// slots, around the fixed slots, that satisfies the caps.
	ErrInfeasibleConstraints = errors.New("infeasible constraints")
)

// Set is the caller-facing constraint configuration: a partial
// fixed-slot assignment plus cyclic handedness caps. Zero caps mean
// "no cap".
type Set struct {
	// Fixed maps batting-slot index (0..8) to hitter index (0..8).
	Fixed              map[int]int
	MaxConsecutiveLeft  int
	MaxConsecutiveRight int
}

// Compiled is the output of Compile: the reduced search domain plus a
// predicate over complete lineups.
type Compiled struct {
	FreeSlots   []int
	FreeHitters []int
	Fixed       map[int]int

	maxLeft  int
	maxRight int
}

// Compile validates a Set against a roster's handedness and runs the
// feasibility pre-check. It returns ErrMalformedConstraints for
// structurally invalid input and ErrInfeasibleConstraints when no
// arrangement of the given roster can satisfy the caps.
func Compile(set Set, handedness [LineupSize]hitter.Handedness) (*Compiled, error) {
	fixed := make(map[int]int, len(set.Fixed))
	usedSlots := make(map[int]bool, len(set.Fixed))
	usedHitters := make(map[int]bool, len(set.Fixed))

	for slot, h := range set.Fixed {
		if slot < 0 || slot >= LineupSize {
			return nil, fmt.Errorf("%w: slot %d out of range 0..%d", ErrMalformedConstraints, slot, LineupSize-1)
		}
		if h < 0 || h >= LineupSize {
			return nil, fmt.Errorf("%w: hitter index %d out of range 0..%d", ErrMalformedConstraints, h, LineupSize-1)
		}
		if usedSlots[slot] {
			return nil, fmt.Errorf("%w: slot %d assigned more than once", ErrMalformedConstraints, slot)
		}
		if usedHitters[h] {
			return nil, fmt.Errorf("%w: hitter %d assigned to more than one slot", ErrMalformedConstraints, h)
		}
		usedSlots[slot] = true
		usedHitters[h] = true
		fixed[slot] = h
	}

	freeSlots := make([]int, 0, LineupSize-len(fixed))
	for slot := 0; slot < LineupSize; slot++ {
		if !usedSlots[slot] {
			freeSlots = append(freeSlots, slot)
		}
	}
	freeHitters := make([]int, 0, LineupSize-len(fixed))
	for h := 0; h < LineupSize; h++ {
		if !usedHitters[h] {
			freeHitters = append(freeHitters, h)
		}
	}

	if set.MaxConsecutiveLeft > 0 || set.MaxConsecutiveRight > 0 {
		if !feasible(fixed, freeHitters, handedness, set.MaxConsecutiveLeft, set.MaxConsecutiveRight) {
			return nil, ErrInfeasibleConstraints
		}
	}

	return &Compiled{
		FreeSlots:   freeSlots,
		FreeHitters: freeHitters,
		Fixed:       fixed,
		maxLeft:     set.MaxConsecutiveLeft,
		maxRight:    set.MaxConsecutiveRight,
	}, nil
}

// Accepts reports whether a complete lineup (hitter index per slot
// 0..8) satisfies the cyclic handedness caps. Fixed-slot membership is
// guaranteed by construction (the search engine only ever fills fixed
// slots from Compiled.Fixed), so Accepts only re-checks handedness.
func (c *Compiled) Accepts(lineup [LineupSize]int, handedness [LineupSize]hitter.Handedness) bool {
	if c.maxLeft == 0 && c.maxRight == 0 {
		return true
	}
	var seq [LineupSize]hitter.Handedness
	for slot, h := range lineup {
		seq[slot] = handedness[h]
	}
	return cyclicRunsValid(seq, c.maxLeft, c.maxRight)
}
