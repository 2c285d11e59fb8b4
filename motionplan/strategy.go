package motionplan

import (
	"math"
	"math/rand"

	"github.com/quotientplan/bundleplan/statespace"
)

// metricFunc computes the planning distance between two states, selected
// by name (spec §4.4, C5). It takes the owning level rather than a bare
// StateSpace because shortestpath needs the level's current roadmap and
// arena to run a graph query, not just the space's own metric.
type metricFunc func(lvl *BundleLevel, a, b statespace.State) float64

func geodesicMetric(lvl *BundleLevel, a, b statespace.State) float64 {
	return lvl.Space.Distance(a, b)
}

// shortestPathMetric computes graph distance via A* over the level's
// current roadmap (spec §4.4): it locates the roadmap vertices nearest a
// and b, runs shortestPath between them, and adds the small geodesic
// legs from a/b out to those vertices. Falls back to plain geodesic
// distance when the roadmap has no vertex to anchor a query or when the
// two anchor vertices are not connected.
func shortestPathMetric(lvl *BundleLevel, a, b statespace.State) float64 {
	na, nb := lvl.nn.nearest(a), lvl.nn.nearest(b)
	if na == nil || nb == nil {
		return lvl.Space.Distance(a, b)
	}
	path := shortestPath(lvl.graph, lvl.arena, lvl.Objective, na.index, nb.index)
	if path == nil {
		return lvl.Space.Distance(a, b)
	}
	total := lvl.Space.Distance(a, na.state) + lvl.Space.Distance(nb.state, b)
	for i := 1; i < len(path); i++ {
		total += lvl.Space.Distance(lvl.arena.get(path[i-1]).state, lvl.arena.get(path[i]).state)
	}
	return total
}

// newMetric constructs a metricFunc by name, mirroring the teacher's
// tagged-variant construction in plannerOptions (PlannerConstructor
// selected by name/profile rather than by reflection).
func newMetric(name string) (metricFunc, error) {
	switch name {
	case MetricGeodesic, "":
		return geodesicMetric, nil
	case MetricShortestPath:
		return shortestPathMetric, nil
	default:
		return nil, NewConfigurationError("unknown metric strategy: " + name)
	}
}

// importanceFunc scores how worthwhile it is to keep sampling a given
// bundle level right now (spec §4.7, C8). Higher is more important.
type importanceFunc func(level *bundleLevelStats) float64

// bundleLevelStats is the subset of a BundleLevel's bookkeeping the
// importance strategies need, kept separate from BundleLevel itself so
// strategy.go has no import cycle with level.go.
type bundleLevelStats struct {
	numVertices      int
	numSuccessful    int
	numAttempts      int
	bestCost         float64
	hasSolution      bool
	levelIndexFromTop int
}

func uniformImportance(*bundleLevelStats) float64 { return 1.0 }

// greedyImportance is 1/(|V(Gk)|+1) (spec §4.4): importance decreases as
// a level's roadmap/tree grows, so a sparsely-explored level keeps
// winning the scheduler's priority queue over one that has already
// absorbed most of the sampling budget.
func greedyImportance(s *bundleLevelStats) float64 {
	return 1.0 / float64(s.numVertices+1)
}

// exponentialImportance is 1/((|V|+1)*2^k) (spec §4.4): on top of the
// same |V|-decreasing term as greedy, it additionally discounts levels
// further from the top of the tower by a power of two per level, so a
// wide tower still drains its sampling budget mostly near the top.
func exponentialImportance(s *bundleLevelStats) float64 {
	return 1.0 / (float64(s.numVertices+1) * math.Pow(2, float64(s.levelIndexFromTop)))
}

func newImportance(name string) (importanceFunc, error) {
	switch name {
	case ImportanceUniform, "":
		return uniformImportance, nil
	case ImportanceGreedy:
		return greedyImportance, nil
	case ImportanceExponential:
		return exponentialImportance, nil
	default:
		return nil, NewConfigurationError("unknown importance strategy: " + name)
	}
}

// graphSamplerFunc draws a configuration index from a level below's
// roadmap/tree to seed quotient-space sampling (spec §4.8, C5).
type graphSamplerFunc func(rng *rand.Rand, arena *configurationArena, nn *nnIndex) *Configuration

func randomVertexSampler(rng *rand.Rand, arena *configurationArena, nn *nnIndex) *Configuration {
	members := nn.list()
	if len(members) == 0 {
		return nil
	}
	return members[rng.Intn(len(members))]
}

// randomEdgeSampler picks a uniformly random tree edge (a member that has
// a parent, together with that parent) and returns one of its two
// endpoints with equal probability. Edges are not weighted by length and
// no point along the edge is interpolated. Only parent links count as
// edges, so for levels without them (QMP/SQMP roadmaps), and whenever no
// member has a parent, it returns a uniformly random vertex.
func randomEdgeSampler(rng *rand.Rand, arena *configurationArena, nn *nnIndex) *Configuration {
	members := nn.list()
	if len(members) == 0 {
		return nil
	}
	withParent := make([]*Configuration, 0, len(members))
	for _, m := range members {
		if m.parent != sentinelIndex {
			withParent = append(withParent, m)
		}
	}
	if len(withParent) == 0 {
		return members[rng.Intn(len(members))]
	}
	c := withParent[rng.Intn(len(withParent))]
	if rng.Intn(2) == 0 {
		return c
	}
	return arena.get(c.parent)
}

func newGraphSampler(name string) (graphSamplerFunc, error) {
	switch name {
	case GraphSamplerRandomVertex, "":
		return randomVertexSampler, nil
	case GraphSamplerRandomEdge:
		return randomEdgeSampler, nil
	default:
		return nil, NewConfigurationError("unknown graph sampler strategy: " + name)
	}
}

// propagatorFunc advances from "from" toward "to" by at most range,
// writing the result into out and reporting how far it actually got
// (spec §4.4, C5). geometric interpolates directly; dynamic additionally
// clamps to the space's symmetric-interpolate assumption and is kept
// distinct so a future kinodynamic state space can override it without
// touching callers.
type propagatorFunc func(space statespace.StateSpace, from, to statespace.State, maxRange float64, out statespace.State) float64

func geometricPropagate(space statespace.StateSpace, from, to statespace.State, maxRange float64, out statespace.State) float64 {
	dist := space.Distance(from, to)
	if dist <= maxRange {
		space.CopyState(out, to)
		return dist
	}
	t := maxRange / dist
	space.Interpolate(from, to, t, out)
	return maxRange
}

// dynamicPropagate is the control-space steer of spec §4.4. A geometric
// interpolation is only trustworthy as a stand-in for a controller
// trajectory when the space's Interpolate is time-reversible; for a
// space that lacks that symmetry (the only signal available without an
// actual control-space model), it refuses to extend rather than pretend
// a straight-line shortcut is drivable, reporting zero progress so the
// caller treats this exactly like a failed steer.
func dynamicPropagate(space statespace.StateSpace, from, to statespace.State, maxRange float64, out statespace.State) float64 {
	if !space.HasSymmetricInterpolate() {
		space.CopyState(out, from)
		return 0
	}
	return geometricPropagate(space, from, to, maxRange, out)
}

func newPropagator(name string) (propagatorFunc, error) {
	switch name {
	case PropagatorGeometric, "":
		return geometricPropagate, nil
	case PropagatorDynamic:
		return dynamicPropagate, nil
	default:
		return nil, NewConfigurationError("unknown propagator strategy: " + name)
	}
}
