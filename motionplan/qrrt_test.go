package motionplan

import (
	"context"
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/bplog"
	"github.com/quotientplan/bundleplan/statespace"
)

// wallValidity rejects any state whose X coordinate falls in (4,6) unless
// Y is above 8, modeling a wall with a single gap, mirroring spec §8
// scenario S2.
type wallValidity struct{}

func (wallValidity) IsValid(s statespace.State) bool {
	v := s.(statespace.RealVectorState)
	if v[0] > 4 && v[0] < 6 {
		return v[1] > 8
	}
	return true
}

func newTestLevel(t *testing.T, low, high []float64, validity statespace.ValidityChecker) *BundleLevel {
	rng := rand.New(rand.NewSource(42))
	space := statespace.NewRealVectorStateSpace(low, high, rng)
	opts := NewDefaultPlannerOptions()
	opts.Range = 1.0
	opts.GoalBias = 0.1
	lvl, err := NewBundleLevel(0, space, nil, validity, statespace.NewPathLengthObjective(space), opts, rng, bplog.NewNop())
	test.That(t, err, test.ShouldBeNil)
	return lvl
}

func TestGrowQRRTOpenSpaceReachesGoal(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	goal := statespace.NewStateGoal(lvl.Space, statespace.RealVectorState{1, 1}, 0.5)
	lvl.SetGoal(goal)

	found := false
	for i := 0; i < 2000 && !found; i++ {
		GrowQRRT(lvl, nil)
		found = lvl.hasSolution
	}
	test.That(t, found, test.ShouldBeTrue)
}

func TestGrowQRRTRejectsInvalidExtension(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, wallValidity{})
	start, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	_ = start

	for i := 0; i < 500; i++ {
		GrowQRRT(lvl, nil)
	}
	// every configuration added must satisfy the wall validity checker
	for _, c := range lvl.nn.list() {
		test.That(t, wallValidity{}.IsValid(c.state), test.ShouldBeTrue)
	}
}

func TestAddStartRejectsInvalidStart(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, wallValidity{})
	_, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)
	_, err = lvl.AddStart(statespace.RealVectorState{5, 1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRecordSolutionKeepsCheapestPath(t *testing.T) {
	lvl := newTestLevel(t, []float64{0, 0}, []float64{10, 10}, nil)
	start, err := lvl.AddStart(statespace.RealVectorState{0, 0})
	test.That(t, err, test.ShouldBeNil)

	a := lvl.arena.add(statespace.RealVectorState{1, 0})
	lvl.arena.attachToParent(a, start)
	a.cost = 5.0
	lvl.recordSolution(a)
	test.That(t, lvl.bestCost, test.ShouldAlmostEqual, 5.0)

	b := lvl.arena.add(statespace.RealVectorState{1, 1})
	lvl.arena.attachToParent(b, start)
	b.cost = 2.0
	lvl.recordSolution(b)
	test.That(t, lvl.bestCost, test.ShouldAlmostEqual, 2.0)
}

func TestContextPTCStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ptc := statespace.ContextPTC()
	test.That(t, ptc.ShouldStop(ctx), test.ShouldBeFalse)
	cancel()
	test.That(t, ptc.ShouldStop(ctx), test.ShouldBeTrue)
}
