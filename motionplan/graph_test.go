package motionplan

import (
	"math/rand"
	"testing"

	"go.viam.com/test"

	"github.com/quotientplan/bundleplan/statespace"
)

func TestRoadmapGraphUnionFind(t *testing.T) {
	g := newRoadmapGraph()
	g.ensure(4)
	test.That(t, g.connected(0, 1), test.ShouldBeFalse)

	g.addEdge(0, 1, 1.0)
	g.addEdge(1, 2, 1.0)
	test.That(t, g.connected(0, 2), test.ShouldBeTrue)
	test.That(t, g.connected(0, 3), test.ShouldBeFalse)
}

func TestRoadmapGraphShortestPath(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	space := statespace.NewRealVectorStateSpace([]float64{0, 0}, []float64{10, 10}, rng)
	arena := newConfigurationArena()

	a := arena.add(statespace.RealVectorState{0, 0})
	b := arena.add(statespace.RealVectorState{1, 0})
	c := arena.add(statespace.RealVectorState{2, 0})
	d := arena.add(statespace.RealVectorState{5, 5})

	g := newRoadmapGraph()
	g.addEdge(a.index, b.index, 1.0)
	g.addEdge(b.index, c.index, 1.0)
	g.addEdge(a.index, d.index, 10.0)
	g.addEdge(d.index, c.index, 10.0)

	path := shortestPath(g, arena, statespace.NewPathLengthObjective(space), a.index, c.index)
	test.That(t, path, test.ShouldResemble, []int{a.index, b.index, c.index})
}

func TestRoadmapGraphUnreachableReturnsNil(t *testing.T) {
	g := newRoadmapGraph()
	g.ensure(3)
	g.addEdge(0, 1, 1.0)
	arena := newConfigurationArena()
	rng := rand.New(rand.NewSource(1))
	space := statespace.NewRealVectorStateSpace([]float64{0}, []float64{1}, rng)
	arena.add(statespace.RealVectorState{0})
	arena.add(statespace.RealVectorState{0})
	arena.add(statespace.RealVectorState{0})

	path := shortestPath(g, arena, statespace.NewPathLengthObjective(space), 0, 2)
	test.That(t, path, test.ShouldBeNil)
}
