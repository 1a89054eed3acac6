package bdnrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwright/bdnrp/internal/hitter"
)

func cloneHitters(t *testing.T, n int) []hitter.Hitter {
	t.Helper()
	h, err := hitter.NewHitter("clone", hitter.Counts{
		PA: 600, H: 150, Doubles: 30, Triples: 3, HR: 20, BB: 60, HBP: 6, IBB: 2,
	}, hitter.Right)
	require.NoError(t, err)

	out := make([]hitter.Hitter, n)
	for i := range out {
		hh := h
		hh.Name = h.Name
		out[i] = hh
	}
	return out
}

func TestBuild_DiagonalIsZero(t *testing.T) {
	hitters := cloneHitters(t, LineupSize)
	tensor, err := Build(hitters, nil)
	require.NoError(t, err)

	for i := 0; i < LineupSize; i++ {
		for j := 0; j < LineupSize; j++ {
			for k := 0; k < LineupSize; k++ {
				for l := 0; l < LineupSize; l++ {
					if i == j || i == k || i == l || j == k || j == l || k == l {
						assert.Zero(t, tensor.At(i, j, k, l), "expected zero for non-distinct quadruple (%d,%d,%d,%d)", i, j, k, l)
					}
				}
			}
		}
	}
}

func TestBuild_DistinctEntriesArePositive(t *testing.T) {
	hitters := cloneHitters(t, LineupSize)
	tensor, err := Build(hitters, nil)
	require.NoError(t, err)

	assert.Greater(t, tensor.At(0, 1, 2, 3), float32(0))
}

func TestBuild_WrongHitterCount(t *testing.T) {
	_, err := Build(cloneHitters(t, 8), nil)
	require.Error(t, err)
}

func TestBuild_IdenticalHittersAreSymmetricAcrossPermutationsOfPrefix(t *testing.T) {
	// With nine identical hitters, the value of any distinct quadruple
	// depends only on positions, not on which specific clone occupies
	// them, so every distinct-index entry must be equal.
	hitters := cloneHitters(t, LineupSize)
	tensor, err := Build(hitters, nil)
	require.NoError(t, err)

	ref := tensor.At(0, 1, 2, 3)
	assert.InDelta(t, float64(ref), float64(tensor.At(4, 5, 6, 7)), 1e-6)
	assert.InDelta(t, float64(ref), float64(tensor.At(8, 0, 1, 2)), 1e-6)
}

func TestApplyPlateAppearance_HomeRunScoresAllRunners(t *testing.T) {
	d := initialDistribution()
	d[stateIndex(onFirst|onSecond|onThird, 1)] = 1
	d[stateIndex(0, 0)] = 0

	rates := hitter.Rates{HR: 1} // certainty of a home run
	next, runs, clamped := applyPlateAppearance(d, rates)

	assert.Equal(t, 0, clamped)
	assert.InDelta(t, 4.0, runs, 1e-9)
	assert.InDelta(t, 1.0, next[stateIndex(0, 1)], 1e-9)
}

func TestApplyPlateAppearance_OutAdvancesOutsWithoutRunners(t *testing.T) {
	d := initialDistribution()
	d[stateIndex(onFirst, 2)] = 1
	d[stateIndex(0, 0)] = 0

	rates := hitter.Rates{} // all mass on the implicit Out
	next, runs, _ := applyPlateAppearance(d, rates)

	assert.Zero(t, runs)
	assert.InDelta(t, 1.0, next[doneState], 1e-9)
}

func TestForcedAdvance_BasesLoadedForcesARun(t *testing.T) {
	b, runs := forcedAdvance(onFirst | onSecond | onThird)
	assert.Equal(t, onFirst|onSecond|onThird, b)
	assert.Equal(t, 1, runs)
}

func TestForcedAdvance_EmptyBasesOnlyForcesBatter(t *testing.T) {
	b, runs := forcedAdvance(0)
	assert.Equal(t, onFirst, b)
	assert.Zero(t, runs)
}
