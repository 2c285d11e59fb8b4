package bundle

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestDropLastNCoordinatesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := statespace.NewRealVectorStateSpace([]float64{0, 0, 0}, []float64{1, 1, 1}, rng)
	fiber := statespace.NewRealVectorStateSpace([]float64{0, 0, 0}, []float64{1, 1, 1}, rng)
	proj := NewDropLastNCoordinatesProjection(base, fiber)

	bundleState := statespace.RealVectorState{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	baseOut := base.AllocState()
	proj.Project(bundleState, baseOut)
	test.That(t, baseOut.(statespace.RealVectorState)[0], test.ShouldAlmostEqual, 0.1)
	test.That(t, baseOut.(statespace.RealVectorState)[2], test.ShouldAlmostEqual, 0.3)

	fiberState := statespace.RealVectorState{0.4, 0.5, 0.6}
	merged := proj.BaseSpace().AllocState() // unused; bundleOut below is sized for the 6-D bundle state
	_ = merged
	bundleOut := statespace.RealVectorState(make([]float64, 6))
	proj.Merge(baseOut, fiberState, bundleOut)

	reProjected := base.AllocState()
	proj.Project(bundleOut, reProjected)
	test.That(t, reProjected.(statespace.RealVectorState)[0], test.ShouldAlmostEqual, baseOut.(statespace.RealVectorState)[0])
	test.That(t, reProjected.(statespace.RealVectorState)[1], test.ShouldAlmostEqual, baseOut.(statespace.RealVectorState)[1])
	test.That(t, reProjected.(statespace.RealVectorState)[2], test.ShouldAlmostEqual, baseOut.(statespace.RealVectorState)[2])
}

func TestSE2ToR2RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	base := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{1, 1}, rng)
	fiber := statespace.NewSO2StateSpace(rng)
	proj := NewSE2ToR2Projection(base, fiber)

	bundleState := &statespace.SE2State{X: 0.3, Y: 0.7, Theta: 1.0}
	baseOut := base.AllocState()
	proj.Project(bundleState, baseOut)

	fiberState := &statespace.SO2State{Theta: 1.0}
	bundleOut := &statespace.SE2State{}
	proj.Merge(baseOut, fiberState, bundleOut)

	reProjected := base.AllocState()
	proj.Project(bundleOut, reProjected)
	test.That(t, reProjected.(statespace.RealVectorState)[0], test.ShouldAlmostEqual, 0.3)
	test.That(t, reProjected.(statespace.RealVectorState)[1], test.ShouldAlmostEqual, 0.7)
}

func TestIdentityProjectionIsNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	space := statespace.NewRealVectorStateSpace([]float64{0}, []float64{1}, rng)
	proj := NewIdentityProjection(space)
	test.That(t, proj.FiberDimension(), test.ShouldEqual, 0)

	in := statespace.RealVectorState{0.42}
	out := space.AllocState()
	proj.Project(in, out)
	test.That(t, out.(statespace.RealVectorState)[0], test.ShouldAlmostEqual, 0.42)
}
