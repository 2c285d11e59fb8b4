package motionplan

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestNNIndexNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	space := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{10, 10}, rng)
	arena := newConfigurationArena()
	n := newNNIndex(space)

	near := arena.add(statespace.RealVectorState{1, 1})
	far := arena.add(statespace.RealVectorState{9, 9})
	n.add(near)
	n.add(far)

	best := n.nearest(statespace.RealVectorState{0, 0})
	test.That(t, best.index, test.ShouldEqual, near.index)
}

func TestNNIndexNearestKOrdersByDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	space := statespace.NewRealVectorStateSpace([]float64{0}, []float64{10}, rng)
	arena := newConfigurationArena()
	n := newNNIndex(space)

	c3 := arena.add(statespace.RealVectorState{3})
	c1 := arena.add(statespace.RealVectorState{1})
	c5 := arena.add(statespace.RealVectorState{5})
	n.add(c3)
	n.add(c1)
	n.add(c5)

	top2 := n.nearestK(statespace.RealVectorState{0}, 2)
	test.That(t, len(top2), test.ShouldEqual, 2)
	test.That(t, top2[0].index, test.ShouldEqual, c1.index)
	test.That(t, top2[1].index, test.ShouldEqual, c3.index)
}

func TestNNIndexNearestRFiltersByRadius(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	space := statespace.NewRealVectorStateSpace([]float64{0}, []float64{10}, rng)
	arena := newConfigurationArena()
	n := newNNIndex(space)

	nearC := arena.add(statespace.RealVectorState{1})
	far := arena.add(statespace.RealVectorState{9})
	n.add(nearC)
	n.add(far)

	within := n.nearestR(statespace.RealVectorState{0}, 2)
	test.That(t, len(within), test.ShouldEqual, 1)
	test.That(t, within[0].index, test.ShouldEqual, nearC.index)
}

func TestNNIndexRemove(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	space := statespace.NewRealVectorStateSpace([]float64{0}, []float64{10}, rng)
	arena := newConfigurationArena()
	n := newNNIndex(space)

	c := arena.add(statespace.RealVectorState{1})
	n.add(c)
	test.That(t, n.size(), test.ShouldEqual, 1)
	n.remove(c)
	test.That(t, n.size(), test.ShouldEqual, 0)
}
