package pvsearch

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/nullmove/pvsearch/pvsearch/eval"
	"github.com/nullmove/pvsearch/pvsearch/history"
	"github.com/nullmove/pvsearch/pvsearch/plygen"
	"github.com/nullmove/pvsearch/pvsearch/stats"
	"github.com/nullmove/pvsearch/pvsearch/ttable"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Search runs iterative-deepening principal variation search over a game
// tree rooted at some State. Grounded on the Rust zero_sum PvSearch (the
// outer depth loop, branching-factor time estimate, and transposition-table
// aging) fused with macondo's endgame/negamax/solver.go Solver, including
// its errgroup-reported nodes-per-second progress logging run alongside the
// search goroutine for each depth.
type Search[S State[S, P, R], P Ply, R Resolution] struct {
	maxDepth        uint8 // 0 means unbounded (limited only by the goal deadline or a terminal PV)
	goal            time.Duration
	branchingFactor float64
	evaluator       Evaluator[S]
	history         *history.Table[P]
	tt              *ttable.Table[S, P]
	logger          zerolog.Logger
}

// New creates a Search with sane defaults: no time budget, a branching
// factor of 1 (the next depth is estimated to take as long as the last one
// until WithBranchingFactor is set), and a fresh history table and
// transposition table.
func New[S State[S, P, R], P Ply, R Resolution](evaluator Evaluator[S]) *Search[S, P, R] {
	return &Search[S, P, R]{
		branchingFactor: 1,
		evaluator:       evaluator,
		history:         history.New[P](),
		tt:              ttable.New[S, P](),
		logger:          zerolog.Nop(),
	}
}

// WithDepth caps the number of plies iterative deepening will search to. A
// depth of 0 leaves the search unbounded (stopped only by its goal deadline
// or by discovering a terminal principal variation).
func (s *Search[S, P, R]) WithDepth(depth uint8) *Search[S, P, R] {
	s.maxDepth = depth
	return s
}

// WithGoal sets a wall-clock time budget for Run. A zero duration (the
// default) means no budget: Run searches to WithDepth or until a terminal PV
// is found.
func (s *Search[S, P, R]) WithGoal(d time.Duration) *Search[S, P, R] {
	s.goal = d
	return s
}

// WithBranchingFactor sets the factor used to estimate whether there is time
// for one more iterative-deepening depth before the goal deadline. Per
// spec.md, a non-positive, NaN, or infinite factor is clamped to 1 (i.e. the
// next depth is estimated to take as long as the previous one).
func (s *Search[S, P, R]) WithBranchingFactor(bf float64) *Search[S, P, R] {
	if bf <= 0 || math.IsNaN(bf) || math.IsInf(bf, 0) {
		bf = 1
	}
	s.branchingFactor = bf
	return s
}

// WithTranspositionTable swaps in a pre-sized transposition table, e.g. one
// built with ttable.WithMemoryFraction.
func (s *Search[S, P, R]) WithTranspositionTable(tt *ttable.Table[S, P]) *Search[S, P, R] {
	s.tt = tt
	return s
}

// WithLogger attaches a zerolog logger; one debug event is emitted per
// completed iterative-deepening depth, plus a nodes-per-second debug event
// every 250ms while a depth is being searched.
func (s *Search[S, P, R]) WithLogger(logger zerolog.Logger) *Search[S, P, R] {
	s.logger = logger
	return s
}

// Analysis is the result of a completed (or interrupted-but-partial) Run: the
// deepest fully-completed depth, its score from the perspective of the
// player to move in the root state, the principal variation leading to that
// score, and the accumulated search statistics.
type Analysis[S State[S, P, R], P Ply, R Resolution] struct {
	Depth uint8
	Score eval.Score
	PV    []P
	Stats *stats.Statistics
}

// String renders the analysis as "Depth N: <score> [ply ply ply]", matching
// the layout of the Rust Display impl. eval.Score already embeds a "(Win)"/
// "(Lose)" suffix for terminal scores, so it is not repeated here.
func (a Analysis[S, P, R]) String() string {
	plies := make([]string, len(a.PV))
	for i, p := range a.PV {
		plies[i] = p.String()
	}
	return fmt.Sprintf("Depth %d: %s [%s]", a.Depth, a.Score, strings.Join(plies, " "))
}

// Run performs iterative deepening from state: depth 1, 2, 3, ... up to
// WithDepth (or unbounded), stopping when the goal deadline would be missed
// by the next depth, when a terminal principal variation is found, or when
// the caller's context is cancelled. It always returns the deepest
// completed iteration's Analysis, never a partially-searched one.
//
// Per spec.md §4.6 step 2, Run first probes the transposition table for an
// Exact hit on the root itself: a prior Run (or an insert left over from a
// related search sharing the same table) may have already solved this state
// to some depth, in which case that depth's search is skipped entirely and
// iterative deepening resumes one depth past it. Skipped depths get an
// empty (all-zero) statistics row each, matching the placeholder rows the
// Rust implementation records for them.
func (s *Search[S, P, R]) Run(ctx context.Context, state S) Analysis[S, P, R] {
	s.history.Clear()

	statistics := stats.New()
	var pv []P
	var score eval.Score
	var depth uint8
	var lastElapsed time.Duration

	var precalculatedDepth uint8
	if entry, ok := s.tt.Get(state); ok && entry.Bound == ttable.Exact {
		pv = append([]P(nil), entry.PVHead...)
		score = entry.Value
		depth = entry.Depth
		precalculatedDepth = entry.Depth

		for pd := uint8(1); pd <= precalculatedDepth; pd++ {
			statistics.PushDepth(make([]stats.Level, pd))
		}
	}

	s.tt.AgeAndEvict()

	effectiveMax := s.maxDepth
	if effectiveMax == 0 {
		effectiveMax = math.MaxUint8 - 1
	}

	var deadline time.Time
	if s.goal > 0 {
		deadline = time.Now().Add(s.goal)
	}

	for d := 1; uint8(d)+precalculatedDepth <= effectiveMax; d++ {
		if !deadline.IsZero() {
			estimate := time.Duration(float64(lastElapsed) * s.branchingFactor)
			if estimate > 0 && time.Now().Add(estimate).After(deadline) {
				break
			}
		}

		iterCtx := ctx
		var cancel context.CancelFunc
		if !deadline.IsZero() {
			iterCtx, cancel = context.WithDeadline(ctx, deadline)
		}

		searchDepth := uint8(d) + precalculatedDepth
		levels := make([]stats.Level, searchDepth)
		var iterPV []P
		var iterScore eval.Score
		var visited atomic.Uint64
		start := time.Now()

		done := make(chan struct{})
		var g errgroup.Group
		g.Go(func() error {
			defer close(done)
			iterScore = s.negamax(iterCtx, state, 0, searchDepth, eval.Min(), eval.Max(), &iterPV, levels, &visited)
			return nil
		})
		g.Go(func() error {
			s.reportProgress(iterCtx, done, int(searchDepth), &visited)
			return nil
		})
		_ = g.Wait()

		levels[0].Elapsed = time.Since(start)
		if cancel != nil {
			cancel()
		}

		interrupted := false
		select {
		case <-iterCtx.Done():
			interrupted = true
		default:
		}

		if !interrupted {
			pv = iterPV
			score = iterScore
			depth = searchDepth
			lastElapsed = levels[0].Elapsed
			statistics.PushDepth(levels)

			s.logger.Debug().
				Uint8("depth", searchDepth).
				Str("score", score.String()).
				Dur("elapsed", levels[0].Elapsed).
				Uint64("visited", visited.Load()).
				Msg("completed depth")
		}

		select {
		case <-ctx.Done():
			return Analysis[S, P, R]{Depth: depth, Score: score, PV: pv, Stats: statistics}
		default:
		}

		if interrupted || score.IsEnd() {
			break
		}
		if end, err := ExecutePlies[S, P, R](state, pv); err == nil {
			if _, terminal := end.CheckResolution(); terminal {
				break
			}
		}
	}

	return Analysis[S, P, R]{Depth: depth, Score: score, PV: pv, Stats: statistics}
}

// reportProgress logs nodes-per-second at a fixed interval until done is
// closed or ctx is cancelled, mirroring the ticker goroutine in macondo's
// Solver.Solve.
func (s *Search[S, P, R]) reportProgress(ctx context.Context, done <-chan struct{}, depth int, visited *atomic.Uint64) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	last := uint64(0)
	lastTime := time.Now()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			cur := visited.Load()
			elapsed := now.Sub(lastTime).Seconds()
			if elapsed > 0 {
				s.logger.Debug().
					Int("depth", depth).
					Float64("nodes_per_second", float64(cur-last)/elapsed).
					Msg("search progress")
			}
			last, lastTime = cur, now
		}
	}
}

// negamax is the recursive fail-soft alpha-beta search with principal
// variation search (PVS) scout windows and transposition-table probing.
// Grounded on the Rust zero_sum minimax function and on macondo's
// endgame/negamax/solver.go negamax method for the concrete Go shape of the
// TT-probe/store bookkeeping.
//
// plyDepth is the distance from the root of this iteration (0 at the root
// call); levels has one entry per ply depth the iteration will reach, so
// levels[plyDepth] is always the counters for the node currently being
// visited. Per spec.md §4.5 step 1, a leaf (depth == 0) and a terminal
// state (state.CheckResolution() reports a result) are both resolved by deferring
// to the Evaluator -- it alone knows how to shift a terminal score by ply
// count per §4.8 -- and both count as "evaluated" against the previous
// ply's level, since a leaf or terminal node does not get its own slot in
// levels.
func (s *Search[S, P, R]) negamax(ctx context.Context, state S, plyDepth int, depth uint8, alpha, beta eval.Score, pv *[]P, levels []stats.Level, visited *atomic.Uint64) eval.Score {
	visited.Add(1)

	select {
	case <-ctx.Done():
		*pv = nil
		return alpha
	default:
	}

	if _, terminal := state.CheckResolution(); depth == 0 || terminal {
		if plyDepth > 0 {
			levels[plyDepth-1].Evaluated++
		}
		*pv = nil
		return s.evaluator.Evaluate(state)
	}

	levels[plyDepth].Visited++

	alphaOrig := alpha
	var ttMove *P

	if entry, ok := s.tt.Get(state); ok {
		levels[plyDepth].TTHits++
		if entry.Usable(depth, alpha, beta) {
			levels[plyDepth].TTSaves++
			*pv = append([]P(nil), entry.PVHead...)
			return entry.Value
		}
		if len(entry.PVHead) > 0 {
			ttMove = &entry.PVHead[0]
		}
	}

	plies := state.Extrapolate()
	if len(plies) == 0 {
		levels[plyDepth].Evaluated++
		*pv = nil
		return s.evaluator.Evaluate(state)
	}

	ordered := plygen.Order(plies, ttMove, s.history)

	best := eval.Min()
	var bestPly P
	var bestLine []P
	haveBest := false

	for i, ply := range ordered {
		child, err := state.ExecutePly(&ply)
		if err != nil {
			continue
		}

		var childPV []P
		var value eval.Score

		if i == 0 {
			value = s.negamax(ctx, child, plyDepth+1, depth-1, beta.Neg(), alpha.Neg(), &childPV, levels, visited).Neg()
		} else {
			value = s.negamax(ctx, child, plyDepth+1, depth-1, alpha.Neg().Sub(eval.Epsilon), alpha.Neg(), &childPV, levels, visited).Neg()
			if value > alpha && value < beta {
				value = s.negamax(ctx, child, plyDepth+1, depth-1, beta.Neg(), alpha.Neg(), &childPV, levels, visited).Neg()
			}
		}

		if !haveBest || value > best {
			best = value
			bestPly = ply
			bestLine = childPV
			haveBest = true
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			s.history.Add(ply, uint32(1)<<depth)
			break
		}
	}

	bound := ttable.Exact
	switch {
	case best <= alphaOrig:
		bound = ttable.Upper
	case best >= beta:
		bound = ttable.Lower
	}

	head := append([]P{bestPly}, bestLine...)
	s.tt.Insert(state, ttable.Entry[P]{
		Depth:  depth,
		Value:  best,
		Bound:  bound,
		PVHead: head,
	})
	levels[plyDepth].TTStores++

	*pv = head
	return best
}
