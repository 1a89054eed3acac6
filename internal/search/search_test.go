package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwright/bdnrp/internal/bdnrp"
	"github.com/cartwright/bdnrp/internal/constraints"
	"github.com/cartwright/bdnrp/internal/hitter"
)

func buildRoster(t *testing.T) []hitter.Hitter {
	t.Helper()
	out := make([]hitter.Hitter, bdnrp.LineupSize)
	for i := range out {
		h, err := hitter.NewHitter("h", hitter.Counts{
			PA: 600, H: 150 + i, Doubles: 30, Triples: 3, HR: 15 + i, BB: 50, HBP: 5, IBB: 1,
		}, hitter.Right)
		require.NoError(t, err)
		out[i] = h
	}
	return out
}

func TestRun_ReturnsTopNDescending(t *testing.T) {
	hitters := buildRoster(t)
	tensor, err := bdnrp.Build(hitters, nil)
	require.NoError(t, err)

	compiled, err := constraints.Compile(constraints.Set{}, allHandedness(hitters))
	require.NoError(t, err)

	results, err := Run(context.Background(), tensor, hitters, compiled, Options{TopN: 5})
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRun_RespectsFixedSlots(t *testing.T) {
	hitters := buildRoster(t)
	tensor, err := bdnrp.Build(hitters, nil)
	require.NoError(t, err)

	compiled, err := constraints.Compile(constraints.Set{Fixed: map[int]int{0: 3}}, allHandedness(hitters))
	require.NoError(t, err)

	results, err := Run(context.Background(), tensor, hitters, compiled, Options{TopN: 10})
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, 3, r.Lineup[0])
	}
}

func TestRun_CancelledContextSurfacesError(t *testing.T) {
	hitters := buildRoster(t)
	tensor, err := bdnrp.Build(hitters, nil)
	require.NoError(t, err)

	compiled, err := constraints.Compile(constraints.Set{}, allHandedness(hitters))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, tensor, hitters, compiled, Options{TopN: 5})
	require.Error(t, err)
}

func TestRun_DeadlineExceeded(t *testing.T) {
	hitters := buildRoster(t)
	tensor, err := bdnrp.Build(hitters, nil)
	require.NoError(t, err)

	compiled, err := constraints.Compile(constraints.Set{}, allHandedness(hitters))
	require.NoError(t, err)

	_, err = Run(context.Background(), tensor, hitters, compiled, Options{TopN: 5, Deadline: time.Nanosecond})
	require.Error(t, err)
}

func allHandedness(hitters []hitter.Hitter) [bdnrp.LineupSize]hitter.Handedness {
	var out [bdnrp.LineupSize]hitter.Handedness
	for i, h := range hitters {
		out[i] = h.Handedness
	}
	return out
}
