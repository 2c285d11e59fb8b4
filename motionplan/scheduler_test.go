package motionplan

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestSchedulerSolvesSingleLevelOpenSpace(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	goal := statespace.NewStateGoal(lvl.Space, statespace.RealVectorState{0.5, 0.5}, 0.3)
	lvl.SetGoal(goal)

	sched, err := NewScheduler([]*BundleLevel{lvl}, []LevelPlanner{GrowQRRT}, NewDefaultSchedulerOptions(0), lvl.logger)
	test.That(t, err, test.ShouldBeNil)

	status, warnErr := sched.Solve(context.Background(), statespace.IterationPTC(5000))
	test.That(t, warnErr, test.ShouldBeNil)
	test.That(t, status, test.ShouldEqual, StatusExactSolution)
}

func TestSchedulerRejectsMismatchedLevelsAndGrowFuncs(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{1, 1}, nil)
	_, err := NewScheduler([]*BundleLevel{lvl}, []LevelPlanner{}, nil, lvl.logger)
	test.That(t, err, test.ShouldNotBeNil)
}

// TestSchedulerPopulatesPathStackOnSolution covers the C8->C9 wiring of
// spec §4.7 step 2.d: once the bottom level declares a solution, the
// scheduler must enumerate its path classes into pathStack rather than
// leaving EnumeratePathClasses unreachable from Solve.
func TestSchedulerPopulatesPathStackOnSolution(t *testing.T) {
	below := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	_, err := below.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	below.SetGoal(statespace.NewStateGoal(below.Space, statespace.RealVectorState{0.5, 0.5}, 0.3))

	top := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	_, err = top.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	top.SetGoal(statespace.NewStateGoal(top.Space, statespace.RealVectorState{0.5, 0.5}, 0.3))

	sched, err := NewScheduler(
		[]*BundleLevel{below, top},
		[]LevelPlanner{GrowQRRT, GrowQRRT},
		NewDefaultSchedulerOptions(1),
		below.logger,
	)
	test.That(t, err, test.ShouldBeNil)

	status, _ := sched.Solve(context.Background(), statespace.IterationPTC(5000))
	test.That(t, status, test.ShouldEqual, StatusExactSolution)
	test.That(t, len(below.pathStack) > 0, test.ShouldBeTrue)
}

// TestSchedulerApproximateSolutionWithoutExactGoal covers a goal the tree
// can never exactly satisfy (it lies far outside the space's bounds): the
// scheduler must still report the closest configuration the tree reached
// as an approximate solution rather than bare StatusTimeout: in open space
// the tree grows from its start, and every new configuration updates the
// closest-so-far approximate path.
func TestSchedulerApproximateSolutionWithoutExactGoal(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{1, 1}, nil)
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	goal := statespace.NewStateGoal(lvl.Space, statespace.RealVectorState{100, 100}, 0.01)
	lvl.SetGoal(goal)

	sched, err := NewScheduler([]*BundleLevel{lvl}, []LevelPlanner{GrowQRRT}, NewDefaultSchedulerOptions(0), lvl.logger)
	test.That(t, err, test.ShouldBeNil)

	status, _ := sched.Solve(context.Background(), statespace.IterationPTC(50))
	test.That(t, status, test.ShouldEqual, StatusApproximateSolution)
	test.That(t, len(lvl.bestPath) > 0, test.ShouldBeTrue)
}

// TestSchedulerTimeoutOnInvalidStartEveryExtension covers the genuine
// StatusTimeout case: every extension is rejected by validity checking, so
// the tree never grows past its start and updateApproximateSolution never
// fires.
func TestSchedulerTimeoutOnInvalidStartEveryExtension(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{1, 1}, rejectAllValidity{})
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	goal := statespace.NewStateGoal(lvl.Space, statespace.RealVectorState{1, 1}, 0.01)
	lvl.SetGoal(goal)

	sched, err := NewScheduler([]*BundleLevel{lvl}, []LevelPlanner{GrowQRRT}, NewDefaultSchedulerOptions(0), lvl.logger)
	test.That(t, err, test.ShouldBeNil)

	status, _ := sched.Solve(context.Background(), statespace.IterationPTC(50))
	test.That(t, status, test.ShouldEqual, StatusTimeout)
}

// rejectAllValidity rejects every state except a start placed at the
// space's own minimum corner (AddStart validates against it once, then
// every subsequent extension target is rejected).
type rejectAllValidity struct{}

func (rejectAllValidity) IsValid(s statespace.State) bool {
	v := s.(statespace.RealVectorState)
	return v[0] == 0 && v[1] == 0
}
