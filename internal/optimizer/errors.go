package optimizer

import (
	"errors"

	"github.com/cartwright/bdnrp/internal/bdnrp"
	"github.com/cartwright/bdnrp/internal/constraints"
	"github.com/cartwright/bdnrp/internal/hitter"
	"github.com/cartwright/bdnrp/internal/search"
	"github.com/cartwright/bdnrp/pkg/utils"
)

// Sentinel errors Run can return. Every failure mode in the pipeline
// — rate derivation, tensor construction, constraint compilation,
// search — collapses to one of these so callers translate with
// errors.Is instead of inspecting strings.
var (
	ErrMalformedRequest     = errors.New("malformed request")
	ErrInvalidStats         = errors.New("invalid stats")
	ErrRateOverflow         = errors.New("rate overflow")
	ErrMalformedConstraints = errors.New("malformed constraints")
	ErrInfeasibleConstraints = errors.New("infeasible constraints")
	ErrNoFeasibleLineup     = errors.New("no feasible lineup")
	ErrCancelled            = errors.New("cancelled")
	ErrDeadlineExceeded     = errors.New("deadline exceeded")
	ErrNumericInstability   = errors.New("numeric instability")
)

func wrapInvalidStats(i int, err error) error {
	if errors.Is(err, hitter.ErrRateOverflow) {
		return errors.Join(ErrRateOverflow, err)
	}
	return errors.Join(ErrInvalidStats, err)
}

func wrapNumericInstability(err error) error {
	if errors.Is(err, bdnrp.ErrNumericInstability) {
		return errors.Join(ErrNumericInstability, err)
	}
	return err
}

func wrapConstraintsError(err error) error {
	switch {
	case errors.Is(err, constraints.ErrMalformedConstraints):
		return errors.Join(ErrMalformedConstraints, err)
	case errors.Is(err, constraints.ErrInfeasibleConstraints):
		return errors.Join(ErrInfeasibleConstraints, err)
	default:
		return err
	}
}

func wrapSearchError(err error) error {
	switch {
	case errors.Is(err, search.ErrNoFeasibleLineup):
		return errors.Join(ErrNoFeasibleLineup, err)
	case errors.Is(err, search.ErrCancelled):
		return errors.Join(ErrCancelled, err)
	case errors.Is(err, search.ErrDeadlineExceeded):
		return errors.Join(ErrDeadlineExceeded, err)
	default:
		return err
	}
}

// ErrCode maps a Run error to the wire-level code the HTTP layer sends
// back, defaulting to an internal error for anything unrecognized.
func ErrCode(err error) utils.ErrCode {
	switch {
	case errors.Is(err, ErrMalformedRequest), errors.Is(err, ErrMalformedConstraints), errors.Is(err, ErrInvalidStats), errors.Is(err, ErrRateOverflow):
		return utils.ErrCodeValidation
	case errors.Is(err, ErrInfeasibleConstraints), errors.Is(err, ErrNoFeasibleLineup):
		return utils.ErrCodeOptimization
	case errors.Is(err, ErrCancelled), errors.Is(err, ErrDeadlineExceeded):
		return utils.ErrCodeCancelled
	case errors.Is(err, ErrNumericInstability):
		return utils.ErrCodeInternal
	default:
		return utils.ErrCodeInternal
	}
}
