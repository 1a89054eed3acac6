package constraints

import "github.com/cartwright/bdnrp/internal/hitter"

// feasible runs a depth-first search over the handedness tokens of the
// free hitters to decide whether any arrangement of them into the free
// slots can satisfy the cyclic run-length caps, given the handedness
// already locked in by fixed slots. Branching is over the at-most-three
// distinct handedness values (left, right, switch) rather than over
// individual hitters, so the search space is bounded by 3^9 regardless
// of roster size.
func feasible(fixed map[int]int, freeHitters []int, handedness [LineupSize]hitter.Handedness, maxLeft, maxRight int) bool {
	var seq [LineupSize]hitter.Handedness
	slotIsFree := [LineupSize]bool{}
	for slot := 0; slot < LineupSize; slot++ {
		slotIsFree[slot] = true
	}
	for slot, h := range fixed {
		seq[slot] = handedness[h]
		slotIsFree[slot] = false
	}

	freeSlots := make([]int, 0, len(freeHitters))
	for slot := 0; slot < LineupSize; slot++ {
		if slotIsFree[slot] {
			freeSlots = append(freeSlots, slot)
		}
	}

	counts := map[hitter.Handedness]int{}
	for _, h := range freeHitters {
		counts[handedness[h]]++
	}

	return searchTokens(seq, freeSlots, 0, counts, maxLeft, maxRight)
}

func searchTokens(seq [LineupSize]hitter.Handedness, freeSlots []int, pos int, remaining map[hitter.Handedness]int, maxLeft, maxRight int) bool {
	if pos == len(freeSlots) {
		return cyclicRunsValid(seq, maxLeft, maxRight)
	}

	slot := freeSlots[pos]
	for token, n := range remaining {
		if n == 0 {
			continue
		}
		remaining[token]--
		seq[slot] = token
		if searchTokens(seq, freeSlots, pos+1, remaining, maxLeft, maxRight) {
			remaining[token]++
			return true
		}
		remaining[token]++
	}
	return false
}
