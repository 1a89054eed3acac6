// Package optimizer wires the rate deriver, BDNRP engine, constraint
// compiler, and search engine into a single request/response call,
// the way the original lineup optimizer wired salary-cap filtering,
// position-combination generation, and diversity constraints into
// OptimizeLineups.
package optimizer

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cartwright/bdnrp/internal/bdnrp"
	"github.com/cartwright/bdnrp/internal/constraints"
	"github.com/cartwright/bdnrp/internal/hitter"
	"github.com/cartwright/bdnrp/internal/search"
)

// HitterInput is the caller-facing description of one roster hitter.
type HitterInput struct {
	Name       string            `json:"name"`
	Handedness hitter.Handedness `json:"handedness"`
	Counts     hitter.Counts     `json:"counts"`
}

// Request is a full batting-order optimization request: exactly nine
// hitters, an optional partial fixed-slot assignment, optional
// handedness caps, and how many top lineups to return.
type Request struct {
	Hitters             [bdnrp.LineupSize]HitterInput `json:"hitters"`
	FixedSlots          map[int]int                  `json:"fixed_slots,omitempty"`
	MaxConsecutiveLeft  int                           `json:"max_consecutive_left,omitempty"`
	MaxConsecutiveRight int                           `json:"max_consecutive_right,omitempty"`
	TopN                int                           `json:"top_n,omitempty"`
	DeadlineMS          int                           `json:"deadline_ms,omitempty"`
}

// Lineup is one scored candidate in the response, by hitter name.
type Lineup struct {
	Order []string `json:"order"`
	Score float64  `json:"score"`
}

// Response is the result of a successful Run. ExpectedRuns always
// equals Lineups[0].Score, the winning lineup's expected runs.
type Response struct {
	ExpectedRuns       float64  `json:"expected_runs"`
	Lineups            []Lineup `json:"lineups"`
	ClampedTransitions bool     `json:"clamped_transitions"`
}

const defaultTopN = 5
const maxTopN = 100
const defaultDeadline = 30 * time.Second

// Run executes the full pipeline: derive hitter rates, build the
// BDNRP tensor, compile constraints, and search for the top lineups.
// Every stage's failure mode maps to one of the sentinel errors in
// errors.go so callers (HTTP handlers, the CLI) can translate it
// without inspecting strings.
func Run(ctx context.Context, req Request, log *logrus.Entry) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	names := make([]string, bdnrp.LineupSize)
	hitters := make([]hitter.Hitter, bdnrp.LineupSize)
	for i, in := range req.Hitters {
		h, err := hitter.NewHitter(in.Name, in.Counts, in.Handedness)
		if err != nil {
			return nil, wrapInvalidStats(i, err)
		}
		hitters[i] = h
		names[i] = h.Name
	}

	hook := &clampObserver{}
	tensor, err := bdnrp.Build(hitters, observedEntry(log, hook))
	if err != nil {
		return nil, wrapNumericInstability(err)
	}

	var handedness [bdnrp.LineupSize]hitter.Handedness
	for i, h := range hitters {
		handedness[i] = h.Handedness
	}

	compiled, err := constraints.Compile(constraints.Set{
		Fixed:               req.FixedSlots,
		MaxConsecutiveLeft:  req.MaxConsecutiveLeft,
		MaxConsecutiveRight: req.MaxConsecutiveRight,
	}, handedness)
	if err != nil {
		return nil, wrapConstraintsError(err)
	}

	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}
	deadline := defaultDeadline
	if req.DeadlineMS > 0 {
		deadline = time.Duration(req.DeadlineMS) * time.Millisecond
	}

	results, err := search.Run(ctx, tensor, hitters, compiled, search.Options{
		TopN:          topN,
		Deadline:      deadline,
		ProgressFn:    progressLogger(log),
		ProgressEvery: time.Second,
	})
	if err != nil {
		return nil, wrapSearchError(err)
	}

	lineups := make([]Lineup, len(results))
	for i, r := range results {
		order := make([]string, bdnrp.LineupSize)
		for slot, h := range r.Lineup {
			order[slot] = names[h]
		}
		lineups[i] = Lineup{Order: order, Score: r.Score}
	}

	return &Response{
		ExpectedRuns:       lineups[0].Score,
		Lineups:            lineups,
		ClampedTransitions: hook.fired,
	}, nil
}

func validateRequest(req Request) error {
	seenNames := make(map[string]bool, bdnrp.LineupSize)
	for _, h := range req.Hitters {
		if h.Name == "" {
			return ErrMalformedRequest
		}
		if seenNames[h.Name] {
			return ErrMalformedRequest
		}
		seenNames[h.Name] = true
	}
	return nil
}

// clampObserver is a logrus.Hook that records whether bdnrp.Build's
// one-time clamp-and-renormalize warning fired, so Run can surface it
// to the caller as Response.ClampedTransitions without bdnrp needing
// to know about that response shape.
type clampObserver struct{ fired bool }

func (o *clampObserver) Levels() []logrus.Level { return []logrus.Level{logrus.WarnLevel} }

func (o *clampObserver) Fire(*logrus.Entry) error {
	o.fired = true
	return nil
}

// progressLogger returns a search.Options.ProgressFn that logs one
// line per search.Engine progress tick (already throttled by the
// engine's own rate limiter), carrying the request's correlation ID.
// A nil caller logger means no progress line is ever worth emitting,
// so the search engine's limiter is left unarmed in that case.
func progressLogger(log *logrus.Entry) func(evaluated, accepted int64) {
	if log == nil {
		return nil
	}
	return func(evaluated, accepted int64) {
		log.WithFields(logrus.Fields{
			"evaluated": evaluated,
			"accepted":  accepted,
		}).Debug("search in progress")
	}
}

// observedEntry returns a logrus entry that both logs through the
// caller's logger (if any) and reports warnings to hook.
func observedEntry(log *logrus.Entry, hook *clampObserver) *logrus.Entry {
	logger := logrus.New()
	if log != nil {
		logger.SetOutput(log.Logger.Out)
		logger.SetFormatter(log.Logger.Formatter)
		logger.SetLevel(log.Logger.GetLevel())
	} else {
		logger.SetOutput(io.Discard)
	}
	logger.AddHook(hook)
	entry := logrus.NewEntry(logger)
	if log != nil {
		entry = entry.WithFields(log.Data)
	}
	return entry
}
