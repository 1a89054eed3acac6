package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartwright/bdnrp/internal/bdnrp"
	"github.com/cartwright/bdnrp/internal/hitter"
)

func sampleRequest(t *testing.T) Request {
	t.Helper()
	var req Request
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	for i, n := range names {
		req.Hitters[i] = HitterInput{
			Name:       n,
			Handedness: hitter.Right,
			Counts: hitter.Counts{
				PA: 600, H: 150 + i, Doubles: 30, Triples: 3, HR: 15 + i, BB: 50, HBP: 5, IBB: 1,
			},
		}
	}
	req.TopN = 3
	return req
}

func TestRun_HappyPath(t *testing.T) {
	req := sampleRequest(t)
	resp, err := Run(context.Background(), req, nil)
	require.NoError(t, err)
	require.Len(t, resp.Lineups, 3)
	assert.Len(t, resp.Lineups[0].Order, bdnrp.LineupSize)
}

func TestRun_DuplicateNameIsMalformed(t *testing.T) {
	req := sampleRequest(t)
	req.Hitters[1].Name = req.Hitters[0].Name
	_, err := Run(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrMalformedRequest)
}

func TestRun_InvalidStatsPropagates(t *testing.T) {
	req := sampleRequest(t)
	req.Hitters[0].Counts.PA = 0
	_, err := Run(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrInvalidStats)
}

func TestRun_InfeasibleConstraintsPropagates(t *testing.T) {
	req := sampleRequest(t)
	req.MaxConsecutiveRight = 1
	_, err := Run(context.Background(), req, nil)
	require.ErrorIs(t, err, ErrInfeasibleConstraints)
}

func TestRun_FixedSlotHonored(t *testing.T) {
	req := sampleRequest(t)
	req.FixedSlots = map[int]int{0: 2}
	resp, err := Run(context.Background(), req, nil)
	require.NoError(t, err)
	for _, l := range resp.Lineups {
		assert.Equal(t, "c", l.Order[0])
	}
}

func TestErrCode_MapsValidationErrors(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR", string(ErrCode(ErrMalformedRequest)))
	assert.Equal(t, "OPTIMIZATION_ERROR", string(ErrCode(ErrNoFeasibleLineup)))
	assert.Equal(t, "INTERNAL_ERROR", string(ErrCode(ErrNumericInstability)))
}
