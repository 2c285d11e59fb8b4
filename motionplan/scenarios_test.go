package motionplan

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/bplog"
	"github.com/quotientplan/bundleplan/bundle"
	"github.com/quotientplan/bundleplan/statespace"
)

// TestScenarioS1OpenSquareQRRT mirrors spec §8 S1: a 2D point in the open
// unit square, start (0.1,0.1), goal (0.9,0.9), no obstacles. QRRT with
// range 0.2 and goalBias 0.05 must find a path of length at most 1.2
// within 1,000 iterations.
func TestScenarioS1OpenSquareQRRT(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	space := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{1, 1}, rng)
	opts := NewDefaultPlannerOptions()
	opts.Range = 0.2
	opts.GoalBias = 0.05
	lvl, err := NewBundleLevel(0, space, nil, nil, statespace.NewPathLengthObjective(space), opts, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)

	_, err = lvl.AddStart(statespace.RealVectorState{0.1, 0.1})
	test.That(t, err, test.ShouldBeNil)
	lvl.SetGoal(statespace.NewStateGoal(space, statespace.RealVectorState{0.9, 0.9}, 0.05))

	for i := 0; i < 1000 && !lvl.hasSolution; i++ {
		GrowQRRT(lvl, nil)
	}
	test.That(t, lvl.hasSolution, test.ShouldBeTrue)
	test.That(t, lvl.bestCost, test.ShouldBeLessThanOrEqualTo, 1.2)
}

// TestScenarioS2WallWithGapQRRTStar mirrors spec §8 S2: the same square
// with a vertical wall at x=0.5 for y in [0,0.7], leaving a gap above.
// Every accepted configuration must satisfy the wall validity checker, and
// QRRT* must find a solution whose cost is within 1.5x a generous
// straight-line-detour bound. The level has no MotionValidator, so
// checkMotion only tests each new endpoint: segments are not checked, and
// a step of up to Range can pass over the 0.04-wide wall.
type wallWithGapValidity struct{}

func (wallWithGapValidity) IsValid(s statespace.State) bool {
	v := s.(statespace.RealVectorState)
	if v[0] > 0.48 && v[0] < 0.52 {
		return v[1] > 0.7
	}
	return true
}

func TestScenarioS2WallWithGapQRRTStar(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	space := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{1, 1}, rng)
	opts := NewDefaultPlannerOptions()
	opts.Range = 0.1
	opts.GoalBias = 0.05
	lvl, err := NewBundleLevel(0, space, nil, wallWithGapValidity{}, statespace.NewPathLengthObjective(space), opts, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)

	_, err = lvl.AddStart(statespace.RealVectorState{0.1, 0.1})
	test.That(t, err, test.ShouldBeNil)
	lvl.SetGoal(statespace.NewStateGoal(space, statespace.RealVectorState{0.9, 0.1}, 0.05))

	for i := 0; i < 5000; i++ {
		GrowQRRTStar(lvl, nil)
	}
	for _, c := range lvl.nn.list() {
		test.That(t, wallWithGapValidity{}.IsValid(c.state), test.ShouldBeTrue)
	}
	test.That(t, lvl.hasSolution, test.ShouldBeTrue)
	// straight-line distance is 0.8; the shortest detour over the wall's
	// top end at (0.5,0.7) is about 1.44, and 0.8 + 2*0.6 = 2.0 is the
	// axis-aligned detour (up 0.6, across 0.8, down 0.6). 1.5x that
	// generous bound is 3.0, a ceiling on path quality only: a path cutting
	// straight through the wall would also stay below it.
	straightLineDetour := 0.8 + 2*0.6
	test.That(t, lvl.bestCost, test.ShouldBeLessThanOrEqualTo, 1.5*straightLineDetour)
}

// TestScenarioS3SE2CorridorPathRestriction mirrors spec §8 S3: an SE(2)
// top level bundled over an R^2 base (heading dropped into the fiber).
// When the corridor is wide enough, lifting the base path back up by
// merging a single fixed heading at every vertex must be accepted by
// CheckPathRestriction.
func TestScenarioS3SE2CorridorPathRestriction(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	baseSpace := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{10, 10}, rng)
	fiberSpace := statespace.NewSO2StateSpace(rng)
	topSpace := statespace.NewSE2StateSpace([2]float64{0, 0}, [2]float64{10, 10}, 0.5, rng)

	proj := bundle.NewSE2ToR2Projection(baseSpace, fiberSpace)

	baseOpts := NewDefaultPlannerOptions()
	below, err := NewBundleLevel(0, baseSpace, nil, nil, statespace.NewPathLengthObjective(baseSpace), baseOpts, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)

	a := below.arena.add(statespace.RealVectorState{1, 5})
	b := below.arena.add(statespace.RealVectorState{5, 5})
	c := below.arena.add(statespace.RealVectorState{9, 5})
	below.nn.add(a)
	below.nn.add(b)
	below.nn.add(c)

	topOpts := NewDefaultPlannerOptions()
	top, err := NewBundleLevel(1, topSpace, proj, nil, statespace.NewPathLengthObjective(topSpace), topOpts, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)

	ok := CheckPathRestriction(top, below, []int{a.index, b.index, c.index})
	test.That(t, ok, test.ShouldBeTrue)
}

// TestScenarioS4SQMPThreeRoomPathClasses mirrors spec §8 S4: three
// disjoint sparse components bridged into a single connected sparse
// graph, with the path-class enumerator finding exactly the direct path
// through it, Nhead=5.
func TestScenarioS4SQMPThreeRoomPathClasses(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{30, 10}, nil)
	opts, err := NewDefaultSQMPOptions(nil)
	test.That(t, err, test.ShouldBeNil)

	// room 1
	r1a := lvl.arena.add(statespace.RealVectorState{1, 5})
	r1b := lvl.arena.add(statespace.RealVectorState{9, 5})
	// doorway
	door1 := lvl.arena.add(statespace.RealVectorState{10, 5})
	// room 2
	r2a := lvl.arena.add(statespace.RealVectorState{11, 5})
	r2b := lvl.arena.add(statespace.RealVectorState{19, 5})
	door2 := lvl.arena.add(statespace.RealVectorState{20, 5})
	// room 3
	r3a := lvl.arena.add(statespace.RealVectorState{21, 5})
	r3b := lvl.arena.add(statespace.RealVectorState{29, 5})

	for _, c := range []*Configuration{r1a, r1b, door1, r2a, r2b, door2, r3a, r3b} {
		lvl.nn.add(c)
		trySparsify(lvl, c, opts)
	}
	lvl.sparse.addEdge(r1a.index, r1b.index, 8)
	lvl.sparse.addEdge(r1b.index, door1.index, 1)
	lvl.sparse.addEdge(door1.index, r2a.index, 1)
	lvl.sparse.addEdge(r2a.index, r2b.index, 8)
	lvl.sparse.addEdge(r2b.index, door2.index, 1)
	lvl.sparse.addEdge(door2.index, r3a.index, 1)
	lvl.sparse.addEdge(r3a.index, r3b.index, 8)

	classes := EnumeratePathClasses(lvl, nil, r1a.index, r3b.index, 5)
	test.That(t, len(classes), test.ShouldEqual, 1)
	test.That(t, classes[0][0], test.ShouldEqual, r1a.index)
	test.That(t, classes[0][len(classes[0])-1], test.ShouldEqual, r3b.index)
}

// TestScenarioS5ThreeLevelBundleStack mirrors spec §8 S5: a three-level
// tower R^6 -> R^3 -> R^0, driven entirely by the Scheduler so that every
// level is visited at least once before an exact solution is reported.
func TestScenarioS5ThreeLevelBundleStack(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	level0Space := statespace.NewRealVectorStateSpace([]float64{}, []float64{}, rng)
	level1Space := statespace.NewRealVectorStateSpace([]float64{0, 0, 0}, []float64{1, 1, 1}, rng)
	level2Space := statespace.NewRealVectorStateSpace(
		[]float64{0, 0, 0, 0, 0, 0}, []float64{1, 1, 1, 1, 1, 1}, rng)

	// level0 (R^0) -> level1 (R^3): fiber is level1 itself (project drops
	// all three coordinates; merge copies the empty base and takes every
	// coordinate from the fiber).
	proj01 := bundle.NewDropLastNCoordinatesProjection(level0Space, level1Space)
	// level1 (R^3) -> level2 (R^6): fiber is the trailing 3 coordinates.
	proj12 := bundle.NewDropLastNCoordinatesProjection(level1Space, level1Space)

	opts0 := NewDefaultPlannerOptions()
	lvl0, err := NewBundleLevel(0, level0Space, nil, nil, statespace.NewPathLengthObjective(level0Space), opts0, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)
	_, err = lvl0.AddStart(statespace.RealVectorState{})
	test.That(t, err, test.ShouldBeNil)
	lvl0.SetGoal(statespace.NewStateGoal(level0Space, statespace.RealVectorState{}, 0.01))

	opts1 := NewDefaultPlannerOptions()
	opts1.Range = 0.2
	lvl1, err := NewBundleLevel(1, level1Space, proj01, nil, statespace.NewPathLengthObjective(level1Space), opts1, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)
	_, err = lvl1.AddStart(statespace.RealVectorState{0.1, 0.1, 0.1})
	test.That(t, err, test.ShouldBeNil)
	lvl1.SetGoal(statespace.NewStateGoal(level1Space, statespace.RealVectorState{0.9, 0.9, 0.9}, 0.1))

	opts2 := NewDefaultPlannerOptions()
	opts2.Range = 0.3
	lvl2, err := NewBundleLevel(2, level2Space, proj12, nil, statespace.NewPathLengthObjective(level2Space), opts2, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)
	_, err = lvl2.AddStart(statespace.RealVectorState{0.1, 0.1, 0.1, 0.1, 0.1, 0.1})
	test.That(t, err, test.ShouldBeNil)
	lvl2.SetGoal(statespace.NewStateGoal(level2Space, statespace.RealVectorState{0.9, 0.9, 0.9, 0.9, 0.9, 0.9}, 0.2))

	levels := []*BundleLevel{lvl0, lvl1, lvl2}
	grow := []LevelPlanner{GrowQRRT, GrowQRRT, GrowQRRT}
	sched, err := NewScheduler(levels, grow, NewDefaultSchedulerOptions(2), lvl2.logger)
	test.That(t, err, test.ShouldBeNil)

	status, _ := sched.Solve(context.Background(), statespace.IterationPTC(20000))
	test.That(t, status, test.ShouldEqual, StatusExactSolution)
	test.That(t, lvl0.nn.size() > 0, test.ShouldBeTrue)
	test.That(t, lvl1.nn.size() > 0, test.ShouldBeTrue)
	test.That(t, lvl2.nn.size() > 0, test.ShouldBeTrue)
	test.That(t, lvl0.totalAttempts > 0, test.ShouldBeTrue)
	test.That(t, lvl1.totalAttempts > 0, test.ShouldBeTrue)
	test.That(t, lvl2.totalAttempts > 0, test.ShouldBeTrue)
}

// TestScenarioS6InvalidStartLeavesRoadmapEmpty mirrors spec §8 S6: a
// start outside the space's bounds must be rejected without touching the
// arena or nearest-neighbor index.
func TestScenarioS6InvalidStartLeavesRoadmapEmpty(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{1, 1}, nil)
	_, err := lvl.AddStart(statespace.RealVectorState{5, 5})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, lvl.nn.size(), test.ShouldEqual, 0)
}
