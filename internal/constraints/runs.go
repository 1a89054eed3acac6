package constraints

import "github.com/cartwright/bdnrp/internal/hitter"

// cyclicRunsValid checks the handedness caps against a complete batting
// order treated as a 9-slot cycle (slot 8 is adjacent to slot 0).
// hitter.Switch resets any in-progress run: switch hitters can bat
// either side of the plate, so they never contribute to a same-hand
// run and never get counted against either cap.
//
// The sequence is walked twice around the cycle. Violations are only
// recorded on the second lap, once the run state live at slot 0 has
// already been established by the first lap — this makes the check
// correct regardless of where a run happens to cross the slot-0/slot-8
// seam.
func cyclicRunsValid(seq [LineupSize]hitter.Handedness, maxLeft, maxRight int) bool {
	var color hitter.Handedness
	runLen := 0

	for lap := 0; lap < 2; lap++ {
		for i := 0; i < LineupSize; i++ {
			h := seq[i]
			switch h {
			case hitter.Switch:
				color = hitter.Switch
				runLen = 0
			case color:
				runLen++
			default:
				color = h
				runLen = 1
			}

			if lap == 1 {
				switch color {
				case hitter.Left:
					if maxLeft > 0 && runLen > maxLeft {
						return false
					}
				case hitter.Right:
					if maxRight > 0 && runLen > maxRight {
						return false
					}
				}
			}
		}
	}
	return true
}
