// Package bdnrp builds the Batting-order Dependent Net Run Production
// tensor: for every ordered quadruple of distinct hitters (i, j, k, l)
// it derives the expected runs hitter l contributes with i, j, k
// batting immediately before him, via a closed-form half-inning
// Markov model (see state.go and markov.go).
package bdnrp

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/cartwright/bdnrp/internal/hitter"
)

// LineupSize is the fixed number of batting slots the tensor and the
// rest of this engine operate on.
const LineupSize = 9

// ErrNumericInstability is returned when floating-point drift produces
// negative transition probabilities repeatedly enough within one
// tensor build that clamp-and-renormalize can no longer be trusted.
var ErrNumericInstability = errors.New("numeric instability")

// Tensor is the dense 9x9x9x9 BDNRP lookup table. T[i][j][k][l] is
// defined only when i, j, k, l are pairwise distinct; all other
// entries are zero by convention.
type Tensor struct {
	values [LineupSize][LineupSize][LineupSize][LineupSize]float32
}

// At returns T[i][j][k][l].
func (t *Tensor) At(i, j, k, l int) float32 {
	return t.values[i][j][k][l]
}

func (t *Tensor) set(i, j, k, l int, v float32) {
	t.values[i][j][k][l] = v
}

// instabilityTripThreshold is how many consecutive quadruples may
// require clamp-and-renormalize within one tensor build before the
// breaker opens; the next clamped quadruple then surfaces
// NumericInstability. Clamps separated by clean quadruples never trip it.
const instabilityTripThreshold = 5

// Build constructs the BDNRP tensor for exactly nine hitters. It
// enumerates the 9*8*7*6 = 3,024 distinct ordered quadruples; diagonal
// entries (any repeated index) are left at their zero value.
//
// Floating-point drift that produces a negative transition probability
// is clamped to zero and the distribution renormalized, matching the
// contract in the BDNRP engine's failure-mode table. A circuit breaker
// tracks how often that recovery is needed within this single build;
// if it trips, the build aborts with ErrNumericInstability rather than
// continuing to paper over an unstable computation.
func Build(hitters []hitter.Hitter, log *logrus.Entry) (*Tensor, error) {
	if len(hitters) != LineupSize {
		return nil, fmt.Errorf("bdnrp: Build requires exactly %d hitters, got %d", LineupSize, len(hitters))
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "bdnrp-instability",
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= instabilityTripThreshold
		},
	})

	tensor := &Tensor{}
	warned := false

	for i := 0; i < LineupSize; i++ {
		for j := 0; j < LineupSize; j++ {
			if j == i {
				continue
			}
			for k := 0; k < LineupSize; k++ {
				if k == i || k == j {
					continue
				}
				for l := 0; l < LineupSize; l++ {
					if l == i || l == j || l == k {
						continue
					}

					value, clamped, err := computeQuadruple(hitters, i, j, k, l, breaker)
					if err != nil {
						return nil, err
					}
					if clamped > 0 && !warned {
						warned = true
						if log != nil {
							log.Warn("bdnrp: clamped negative transition probability and renormalized")
						}
					}
					tensor.set(i, j, k, l, float32(value))
				}
			}
		}
	}

	return tensor, nil
}

func computeQuadruple(hitters []hitter.Hitter, i, j, k, l int, breaker *gobreaker.CircuitBreaker) (float64, int, error) {
	dist := initialDistribution()
	totalClamped := 0

	for _, idx := range [3]int{i, j, k} {
		var c int
		dist, _, c = applyPlateAppearance(dist, hitters[idx].Rates)
		totalClamped += c
	}

	dist, runs, c := applyPlateAppearance(dist, hitters[l].Rates)
	totalClamped += c

	if totalClamped > 0 {
		if _, err := breaker.Execute(func() (interface{}, error) {
			return nil, errClampOccurred
		}); err != nil && errors.Is(err, gobreaker.ErrOpenState) {
			return 0, totalClamped, fmt.Errorf("%w: repeated clamp-and-renormalize within one tensor build", ErrNumericInstability)
		}
	} else {
		// A clean quadruple resets the breaker's consecutive-failure streak.
		_, _ = breaker.Execute(func() (interface{}, error) { return nil, nil })
	}

	_ = dist // dist is consumed only for its runs increment at this depth
	return runs, totalClamped, nil
}

var errClampOccurred = errors.New("clamp occurred")
