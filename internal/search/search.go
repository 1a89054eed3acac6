// Package search exhaustively enumerates constraint-feasible batting
// orders, scores each against a BDNRP tensor, and keeps the top N by a
// worker pool of bounded min-heaps merged at the end.
package search

import (
	"container/heap"
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/cartwright/bdnrp/internal/bdnrp"
	"github.com/cartwright/bdnrp/internal/constraints"
	"github.com/cartwright/bdnrp/internal/hitter"
)

// ErrNoFeasibleLineup is returned when every permutation generated was
// rejected by the handedness-cap predicate.
var ErrNoFeasibleLineup = errors.New("no feasible lineup")

// ErrCancelled means the caller's context was cancelled before the
// search produced any result.
var ErrCancelled = errors.New("search cancelled")

// ErrDeadlineExceeded means the search's own wall-clock budget elapsed
// before it produced any result.
var ErrDeadlineExceeded = errors.New("search deadline exceeded")

// Weights is the fixed positional-weight vector applied to a lineup's
// per-slot BDNRP contribution when scoring it. Index 0 is the
// leadoff slot.
type Weights [bdnrp.LineupSize]float64

// DefaultWeights favors the top of the order, tapering toward the
// bottom, matching the emphasis the BDNRP contract places on the
// leadoff-through-cleanup slots without zeroing out the bottom third.
var DefaultWeights = Weights{1.10, 1.08, 1.06, 1.05, 1.02, 1.00, 0.97, 0.94, 0.90}

// Result is one scored candidate lineup, hitter index per batting slot.
type Result struct {
	Lineup [bdnrp.LineupSize]int
	Score  float64
}

// Options controls a search run.
type Options struct {
	Weights     Weights
	TopN        int
	Workers     int          // 0 selects runtime.GOMAXPROCS(0)
	Deadline    time.Duration // 0 disables the wall-clock cap
	ProgressFn  func(evaluated, accepted int64)
	ProgressEvery time.Duration
}

// Run enumerates every permutation of the free hitters into the free
// slots, scores the ones the compiled constraints accept, and returns
// the top Options.TopN by score, descending. Candidates are generated
// by recursive backtracking over constraints.Compiled.FreeSlots and
// fed to a fixed worker pool; each worker keeps its own bounded
// min-heap, merged into the final result once all workers finish.
func Run(ctx context.Context, tensor *bdnrp.Tensor, hitters []hitter.Hitter, compiled *constraints.Compiled, opts Options) ([]Result, error) {
	if opts.TopN <= 0 {
		opts.TopN = 1
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	weights := opts.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights
	}

	var handedness [bdnrp.LineupSize]hitter.Handedness
	for i, h := range hitters {
		handedness[i] = h.Handedness
	}

	if opts.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Deadline)
		defer cancel()
	}

	jobs := make(chan [bdnrp.LineupSize]int, 1024)
	var wg sync.WaitGroup
	heaps := make([]resultHeap, workers)

	var evaluated, accepted int64
	var limiter *rate.Limiter
	if opts.ProgressFn != nil {
		every := opts.ProgressEvery
		if every <= 0 {
			every = time.Second
		}
		limiter = rate.NewLimiter(rate.Every(every), 1)
	}

	var cancelled atomic.Bool

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			h := &heaps[id]
			for lineup := range jobs {
				score := scoreLineup(tensor, lineup, weights)
				atomic.AddInt64(&evaluated, 1)
				atomic.AddInt64(&accepted, 1)
				pushBounded(h, Result{Lineup: lineup, Score: score}, opts.TopN)

				if limiter != nil && limiter.Allow() {
					opts.ProgressFn(atomic.LoadInt64(&evaluated), atomic.LoadInt64(&accepted))
				}
			}
		}(w)
	}

	generate(ctx, compiled, handedness, jobs, &cancelled)
	close(jobs)
	wg.Wait()

	if cancelled.Load() {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, ErrDeadlineExceeded
			}
			return nil, ErrCancelled
		default:
		}
	}

	merged := mergeHeaps(heaps, opts.TopN)
	if len(merged) == 0 {
		return nil, ErrNoFeasibleLineup
	}
	return merged, nil
}

// generate performs recursive backtracking over the free slots,
// assigning each a not-yet-used free hitter, and sends every complete
// lineup that the compiled constraints accept to jobs. It polls ctx
// roughly every 4096 candidates so cancellation is cheap to check
// without slowing the common case.
func generate(ctx context.Context, compiled *constraints.Compiled, handedness [bdnrp.LineupSize]hitter.Handedness, jobs chan<- [bdnrp.LineupSize]int, cancelled *atomic.Bool) {
	var lineup [bdnrp.LineupSize]int
	for slot, h := range compiled.Fixed {
		lineup[slot] = h
	}
	used := make(map[int]bool, len(compiled.FreeHitters))

	var checked int64
	var backtrack func(pos int) bool
	backtrack = func(pos int) bool {
		checked++
		if checked%4096 == 0 {
			select {
			case <-ctx.Done():
				cancelled.Store(true)
				return false
			default:
			}
		}

		if pos == len(compiled.FreeSlots) {
			if compiled.Accepts(lineup, handedness) {
				jobs <- lineup
			}
			return true
		}

		slot := compiled.FreeSlots[pos]
		for _, h := range compiled.FreeHitters {
			if used[h] {
				continue
			}
			used[h] = true
			lineup[slot] = h
			if !backtrack(pos + 1) {
				used[h] = false
				return false
			}
			used[h] = false
		}
		return true
	}

	backtrack(0)
}

// scoreLineup sums each slot's BDNRP contribution (using the three
// hitters batting immediately before it, wrapping cyclically through
// the lineup) weighted by its positional weight.
func scoreLineup(tensor *bdnrp.Tensor, lineup [bdnrp.LineupSize]int, weights Weights) float64 {
	var total float64
	n := bdnrp.LineupSize
	for slot := 0; slot < n; slot++ {
		i := lineup[(slot-3+n)%n]
		j := lineup[(slot-2+n)%n]
		k := lineup[(slot-1+n)%n]
		l := lineup[slot]
		total += weights[slot] * float64(tensor.At(i, j, k, l))
	}
	return total
}

// rankLess reports whether a ranks strictly worse than b: lower score,
// or equal score and lexicographically greater lineup. This is the
// single ordering used both to decide which candidate a bounded heap
// evicts and to order the final result, so top-N selection and output
// order are deterministic regardless of which worker saw a candidate
// first or in what order goroutines were scheduled.
func rankLess(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	for i := 0; i < bdnrp.LineupSize; i++ {
		if a.Lineup[i] != b.Lineup[i] {
			return a.Lineup[i] > b.Lineup[i]
		}
	}
	return false
}

// resultHeap is a min-heap by rankLess, used to keep only the best N
// candidates a single worker (or the final merge) has seen.
type resultHeap []Result

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return rankLess(h[i], h[j]) }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(Result)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func pushBounded(h *resultHeap, r Result, topN int) {
	if h.Len() < topN {
		heap.Push(h, r)
		return
	}
	if rankLess((*h)[0], r) {
		heap.Pop(h)
		heap.Push(h, r)
	}
}

func mergeHeaps(heaps []resultHeap, topN int) []Result {
	var merged resultHeap
	for _, h := range heaps {
		for _, r := range h {
			pushBounded(&merged, r, topN)
		}
	}
	out := make([]Result, len(merged))
	copy(out, merged)
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if rankLess(out[i], out[j]) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out
}
