package motionplan

import (
	"math"
	"math/rand"

	"github.com/quotientplan/bundleplan/bplog"
	"github.com/quotientplan/bundleplan/bundle"
	"github.com/quotientplan/bundleplan/statespace"
)

// BundleLevel is one Xk in the bundle-space tower (spec §3): a state
// space, its projection down to Xk-1, the configuration store and
// roadmap/tree for this level, and the strategy functions selected for
// it. A BundleLevel owns its own *rand.Rand and never shares mutable
// state with any other level outside of explicit project/merge calls,
// matching the single-threaded cooperative engine of spec §5.
type BundleLevel struct {
	Index int
	Space statespace.StateSpace

	// ProjectionToBelow is nil at level 0 (the bottom of the tower); every
	// other level projects down to Index-1.
	ProjectionToBelow bundle.Projection

	Validity        statespace.ValidityChecker
	MotionValidator statespace.MotionValidator
	Objective       statespace.OptimizationObjective

	arena *configurationArena
	nn    *nnIndex
	graph *roadmapGraph

	// sparse holds the SPARS spanner graph and its own NN index, used only
	// by SQMP (spec §4.6); nil for QRRT/QRRT*/QMP levels.
	sparse     *roadmapGraph
	sparseNN   *nnIndex
	interfaces map[[2]int][]int

	goal        statespace.Goal
	startIdx    []int
	goalIdx     []int
	bestPath    []int
	bestCost    float64
	hasSolution bool

	// approxPath/approxCost track the tree configuration that has come
	// closest to the goal so far (spec §6 StatusApproximateSolution),
	// updated by updateApproximateSolution as QRRT/QRRT* extend their
	// tree. Grounded on the teacher's cBiRRT returning "the closest
	// solution to the target that it reaches" when no exact goal is ever
	// satisfied.
	approxPath []int
	approxCost float64

	metric       metricFunc
	importance   importanceFunc
	graphSampler graphSamplerFunc
	propagator   propagatorFunc

	options *PlannerOptions

	// pathStack holds confirmed path-classes discovered by the C9
	// enumerator at this level (spec §4.8), consulted by levels above when
	// quotient-sampling with a path bias.
	pathStack [][]int

	rng    *rand.Rand
	logger bplog.Logger

	totalAttempts   int
	successAttempts int

	scratch statespace.State
}

// NewBundleLevel constructs a BundleLevel ready for grow() calls. proj may
// be nil for level 0.
func NewBundleLevel(
	index int,
	space statespace.StateSpace,
	proj bundle.Projection,
	validity statespace.ValidityChecker,
	objective statespace.OptimizationObjective,
	opts *PlannerOptions,
	rng *rand.Rand,
	logger bplog.Logger,
) (*BundleLevel, error) {
	if opts == nil {
		opts = NewDefaultPlannerOptions()
	}
	metric, err := newMetric(opts.MetricName)
	if err != nil {
		return nil, err
	}
	importance, err := newImportance(opts.ImportanceName)
	if err != nil {
		return nil, err
	}
	sampler, err := newGraphSampler(opts.GraphSamplerName)
	if err != nil {
		return nil, err
	}
	propagator, err := newPropagator(opts.PropagatorName)
	if err != nil {
		return nil, err
	}
	if proj == nil {
		proj = bundle.NewIdentityProjection(space)
	}
	return &BundleLevel{
		Index:              index,
		Space:               space,
		ProjectionToBelow:  proj,
		Validity:           validity,
		Objective:          objective,
		arena:              newConfigurationArena(),
		nn:                 newNNIndex(space),
		graph:              newRoadmapGraph(),
		metric:             metric,
		importance:         importance,
		graphSampler:       sampler,
		propagator:         propagator,
		options:            opts,
		rng:                rng,
		logger:             logger,
		scratch:            space.AllocState(),
		approxCost:         math.Inf(1),
	}, nil
}

// Clear resets all planning state (spec §3 Lifecycles), used when a new
// problem is seeded on an already-constructed level.
func (lvl *BundleLevel) Clear() {
	lvl.arena.clear()
	lvl.nn = newNNIndex(lvl.Space)
	lvl.graph.clear()
	lvl.sparse = nil
	lvl.sparseNN = nil
	lvl.interfaces = nil
	lvl.startIdx = nil
	lvl.goalIdx = nil
	lvl.bestPath = nil
	lvl.bestCost = lvl.Objective.InfiniteCost().(float64)
	lvl.hasSolution = false
	lvl.pathStack = nil
	lvl.approxPath = nil
	lvl.approxCost = math.Inf(1)
	lvl.totalAttempts = 0
	lvl.successAttempts = 0
}

// AddStart inserts a start state, grounded on the teacher's
// initRRTSolutions seeding of startMap with the seed configuration.
func (lvl *BundleLevel) AddStart(state statespace.State) (*Configuration, error) {
	if !lvl.Space.SatisfiesBounds(state) || (lvl.Validity != nil && !lvl.Validity.IsValid(state)) {
		return nil, NewInvalidProblemError("start state is out of bounds or invalid")
	}
	c := lvl.arena.add(state)
	c.isStart = true
	c.cost = 0
	lvl.nn.add(c)
	lvl.graph.ensure(c.index)
	lvl.startIdx = append(lvl.startIdx, c.index)
	return c, nil
}

// AddGoal inserts a goal-region sample as a seed configuration, used by
// QRRT*/QMP when the goal is directly sampleable (spec §6
// GoalSampleableRegion).
func (lvl *BundleLevel) AddGoal(state statespace.State) (*Configuration, error) {
	if !lvl.Space.SatisfiesBounds(state) || (lvl.Validity != nil && !lvl.Validity.IsValid(state)) {
		return nil, NewInvalidProblemError("goal state is out of bounds or invalid")
	}
	c := lvl.arena.add(state)
	c.isGoal = true
	lvl.nn.add(c)
	lvl.graph.ensure(c.index)
	lvl.goalIdx = append(lvl.goalIdx, c.index)
	return c, nil
}

// SetGoal installs the membership test used to recognize a newly-grown
// configuration as a solution (spec §4.5.1).
func (lvl *BundleLevel) SetGoal(goal statespace.Goal) {
	lvl.goal = goal
}

// checkMotion validates the straight motion between two states, using the
// caller-supplied MotionValidator if present, otherwise falling back to
// endpoint-only validity (spec §6).
func (lvl *BundleLevel) checkMotion(a, b statespace.State) bool {
	if lvl.MotionValidator != nil {
		return lvl.MotionValidator.CheckMotion(lvl.Space, a, b)
	}
	if lvl.Validity == nil {
		return true
	}
	return lvl.Validity.IsValid(b)
}

// sampleFree draws a uniformly random valid state into lvl.scratch and
// returns it; retries a bounded number of times against invalid samples,
// mirroring the teacher's retry-on-invalid IK sampling loop.
func (lvl *BundleLevel) sampleFree() statespace.State {
	const maxAttempts = 100
	for i := 0; i < maxAttempts; i++ {
		lvl.Space.SampleUniform(lvl.scratch)
		if lvl.Validity == nil || lvl.Validity.IsValid(lvl.scratch) {
			return lvl.scratch
		}
	}
	return lvl.scratch
}

// sampleFromBelow draws a fiber sample and merges it with a base
// configuration chosen from the level below, implementing quotient-space
// sampling (spec §4.8). If below is nil (level 0), it draws a single
// uniform sample into out; unlike sampleFree it neither checks validity
// nor retries. Once below has confirmed path classes on its
// pathStack, sampling is biased toward them (SampleFromPathStack) rather
// than drawn from the raw roadmap/tree via the level's graph sampler.
func (lvl *BundleLevel) sampleFromBelow(below *BundleLevel, out statespace.State) {
	if below == nil {
		lvl.Space.SampleUniform(out)
		return
	}
	if len(below.pathStack) > 0 && SampleFromPathStack(lvl, below, lvl.rng, out) {
		return
	}
	baseConfig := lvl.graphSampler(lvl.rng, below.arena, below.nn)
	if baseConfig == nil {
		lvl.Space.SampleUniform(out)
		return
	}
	fiberSpace := lvl.ProjectionToBelow.FiberSpace()
	if fiberSpace == nil {
		lvl.ProjectionToBelow.Merge(baseConfig.state, nil, out)
		return
	}
	fiberSample := fiberSpace.AllocState()
	fiberSpace.SampleUniform(fiberSample)
	lvl.ProjectionToBelow.Merge(baseConfig.state, fiberSample, out)
}

// sampleExtensionTarget draws the next tree-extension target for a
// goal-biased single-tree grow step: with probability GoalBias it samples
// directly from a GoalSampleableRegion if the level has one, otherwise it
// falls back to quotient-space sampling via sampleFromBelow. This is the
// sampling half of the tree-growth scaffold GrowQRRT and GrowQRRTStar both
// build on; the steer/validate/attach half differs between them (QRRT
// attaches unconditionally to the nearest neighbor, QRRT* re-examines a
// whole neighbor set), so it stays inlined in each grow function rather
// than being folded in here too.
func (lvl *BundleLevel) sampleExtensionTarget(below *BundleLevel, out statespace.State) {
	if lvl.goal != nil && lvl.rng.Float64() < lvl.options.GoalBias {
		if sampleable, ok := lvl.goal.(statespace.GoalSampleableRegion); ok && sampleable.SampleGoal(out) {
			return
		}
	}
	lvl.sampleFromBelow(below, out)
}

// insertDenseRoadmapNode samples a quotient-space configuration, checks
// bounds/validity, and connects it into the dense roadmap against its k
// nearest neighbors, returning the new Configuration (or nil if the
// sample itself was rejected). This is the shared roadmap-growth
// scaffold QMP and SQMP both build on; SQMP additionally feeds the
// result through trySparsify after this returns.
func (lvl *BundleLevel) insertDenseRoadmapNode(below *BundleLevel, k int) *Configuration {
	target := lvl.Space.AllocState()
	lvl.sampleFromBelow(below, target)

	if !lvl.Space.SatisfiesBounds(target) {
		return nil
	}
	if lvl.Validity != nil && !lvl.Validity.IsValid(target) {
		return nil
	}

	lvl.totalAttempts++

	state := lvl.Space.CloneState(target)
	c := lvl.arena.add(state)
	lvl.graph.ensure(c.index)

	neighbors := lvl.nn.nearestK(state, k)
	connected := 0
	for _, nb := range neighbors {
		if lvl.checkMotion(nb.state, state) {
			lvl.graph.addEdge(nb.index, c.index, lvl.metric(lvl, nb.state, state))
			connected++
		}
	}
	lvl.nn.add(c)
	if connected > 0 {
		lvl.successAttempts++
	}
	return c
}

// stats snapshots the bookkeeping the C8 importance strategies read.
func (lvl *BundleLevel) stats(levelIndexFromTop int) *bundleLevelStats {
	return &bundleLevelStats{
		numVertices:       lvl.nn.size(),
		numSuccessful:     lvl.successAttempts,
		numAttempts:       lvl.totalAttempts,
		bestCost:          lvl.bestCost,
		hasSolution:       lvl.hasSolution,
		levelIndexFromTop: levelIndexFromTop,
	}
}

// distanceToGoal returns c's distance to the goal, preferring the goal
// region's own IsSatisfied distance when one is registered (accurate even
// for goals with no sampled Configuration of their own) and otherwise
// falling back to the nearest registered goal sample. Returns +Inf if
// neither is present.
func (lvl *BundleLevel) distanceToGoal(c *Configuration) float64 {
	if lvl.goal != nil {
		_, d := lvl.goal.IsSatisfied(c.state)
		return d
	}
	best := math.Inf(1)
	for _, gi := range lvl.goalIdx {
		d := lvl.Space.Distance(c.state, lvl.arena.get(gi).state)
		if d < best {
			best = d
		}
	}
	return best
}

// updateApproximateSolution records c's tree ancestry as the level's
// approximate solution if c is closer to the goal than anything seen
// before, so a timed-out tree planner can still report the best-effort
// path StatusApproximateSolution promises (spec §6) instead of only ever
// having an exact-or-nothing bestPath.
func (lvl *BundleLevel) updateApproximateSolution(c *Configuration) {
	if lvl.goal == nil && len(lvl.goalIdx) == 0 {
		return
	}
	d := lvl.distanceToGoal(c)
	if d >= lvl.approxCost {
		return
	}
	lvl.approxCost = d
	path := []int{c.index}
	cur := c
	for cur.parent != sentinelIndex {
		cur = lvl.arena.get(cur.parent)
		path = append(path, cur.index)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	lvl.approxPath = path
}
