// Package statespace defines the external capability interfaces the
// bundle-space planning core consumes from a state-space library (spec §6),
// plus a set of concrete state spaces sufficient to exercise every bundle
// example in the test scenarios: real vector spaces, SO(2)/SO(3) rotation
// spaces, SE(2)/SE(3) rigid-body spaces, and arbitrary products of the
// above. State-space arithmetic beyond these concrete spaces is explicitly
// out of scope; callers with richer spaces (robot arms, deformable bodies)
// provide their own StateSpace implementation.
package statespace

import (
	"context"
	"time"
)

// State is an opaque point in a state space. Concrete state spaces define
// their own underlying representation and type-assert back to it; callers
// never construct or inspect State values directly except through the
// owning StateSpace.
type State interface{}

// StateSpace is the adapter a bundle level holds over its configuration
// space (spec §6, C1). Implementations must be safe to call repeatedly
// without hidden mutable global state, since every BundleLevel owns its
// own RNG and runs strictly sequentially (spec §5).
type StateSpace interface {
	// AllocState returns a newly allocated, zero-valued state.
	AllocState() State
	// CopyState overwrites dst with src's value.
	CopyState(dst, src State)
	// CloneState returns a fresh state equal to src.
	CloneState(src State) State

	// Distance returns the state-space distance between a and b. Need not
	// be symmetric unless HasSymmetricInterpolate is true.
	Distance(a, b State) float64
	// Interpolate writes into out the state a fraction t of the way from
	// a to b, t in [0,1].
	Interpolate(a, b State, t float64, out State)
	// HasSymmetricInterpolate reports whether Interpolate(a,b,t) ==
	// Interpolate(b,a,1-t) for all inputs; SE(2)/SE(3)/R^n are symmetric,
	// some dynamic/control spaces are not.
	HasSymmetricInterpolate() bool

	// SampleUniform draws a uniformly random state within bounds into out.
	SampleUniform(out State)
	// SampleUniformNear draws a state within radius of center into out.
	SampleUniformNear(out State, center State, radius float64)

	// SatisfiesBounds reports whether s lies within this space's bounds.
	SatisfiesBounds(s State) bool

	// GetMaximumExtent returns an upper bound on the diameter of the space.
	GetMaximumExtent() float64
	// GetSpaceMeasure returns the Lebesgue measure (volume) of the space;
	// the concrete spaces here return the measure of the whole bounded
	// space, with no obstacles subtracted. QRRT*'s r-RRT* radius formula
	// uses it as the free-space measure.
	GetSpaceMeasure() float64
	// GetStateDimension returns the manifold dimension d, used by both the
	// kRRT*/rRRT* formulas and the unit-d-ball measure.
	GetStateDimension() int
}

// ValidityChecker reports whether a single state is admissible (spec §6).
// Collision checking itself is out of scope; this interface is the seam a
// caller's collision/obstacle model plugs into.
type ValidityChecker interface {
	IsValid(s State) bool
}

// MotionValidator checks whether the straight (space-local) motion between
// two states is admissible, typically by discretized sampling along the
// interpolation (spec §6).
type MotionValidator interface {
	CheckMotion(space StateSpace, a, b State) bool
}

// OptimizationObjective supplies the cost algebra used by cost-aware
// planners (QRRT*) and by A* search over the roadmap graph (spec §6).
type OptimizationObjective interface {
	MotionCost(a, b State) Cost
	MotionCostHeuristic(a, b State) Cost
	CombineCosts(a, b Cost) Cost
	IsCostBetterThan(a, b Cost) bool
	IdentityCost() Cost
	InfiniteCost() Cost
}

// Cost is an opaque, totally ordered (via OptimizationObjective) planning
// cost. The default objective represents it as a float64 but the
// interface does not require that.
type Cost interface{}

// Goal reports whether a state satisfies the planning goal, and if so how
// far it was from exact satisfaction (spec §6).
type Goal interface {
	IsSatisfied(s State) (ok bool, distance float64)
}

// GoalSampleableRegion is an optional extension of Goal for goals that can
// generate candidate goal states directly (IK-style goal sets), rather
// than only testing membership.
type GoalSampleableRegion interface {
	Goal
	SampleGoal(out State) bool
}

// ProblemDefinition bundles a start set, a goal, and an optimization
// objective — the external, caller-supplied description of one planning
// problem on one bundle level (spec §6).
type ProblemDefinition struct {
	Starts    []State
	Goal      Goal
	Objective OptimizationObjective
}

// PlannerTerminationCondition is the polled boolean stopping condition
// checked between grow() calls (spec §5, §6). It is intentionally not
// tied to context.Context alone: iteration-count and exact-solution PTCs
// need no context to poll.
type PlannerTerminationCondition interface {
	// ShouldStop reports whether the planner should stop before starting
	// another grow() call.
	ShouldStop(ctx context.Context) bool
}

type ptcFunc func(ctx context.Context) bool

func (f ptcFunc) ShouldStop(ctx context.Context) bool { return f(ctx) }

// ContextPTC stops when ctx is done.
func ContextPTC() PlannerTerminationCondition {
	return ptcFunc(func(ctx context.Context) bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	})
}

// IterationPTC stops after maxIter calls to ShouldStop have returned false,
// i.e. it permits exactly maxIter grow() calls.
func IterationPTC(maxIter int) PlannerTerminationCondition {
	count := 0
	return ptcFunc(func(ctx context.Context) bool {
		if count >= maxIter {
			return true
		}
		count++
		return false
	})
}

// TimeoutPTC stops once d has elapsed since the PTC was first polled.
func TimeoutPTC(d time.Duration) PlannerTerminationCondition {
	var deadline time.Time
	return ptcFunc(func(ctx context.Context) bool {
		if deadline.IsZero() {
			deadline = time.Now().Add(d)
		}
		return time.Now().After(deadline)
	})
}

// ExactSolutionPTC stops as soon as hasExactSolution reports true, letting
// a scheduler or planner hand the stopping decision to its own solution
// bookkeeping instead of a fixed iteration or time budget.
func ExactSolutionPTC(hasExactSolution func() bool) PlannerTerminationCondition {
	return ptcFunc(func(ctx context.Context) bool {
		return hasExactSolution()
	})
}

// Or stops as soon as any child PTC would stop.
func Or(conds ...PlannerTerminationCondition) PlannerTerminationCondition {
	return ptcFunc(func(ctx context.Context) bool {
		for _, c := range conds {
			if c.ShouldStop(ctx) {
				return true
			}
		}
		return false
	})
}

// And stops only once every child PTC would stop.
func And(conds ...PlannerTerminationCondition) PlannerTerminationCondition {
	return ptcFunc(func(ctx context.Context) bool {
		for _, c := range conds {
			if !c.ShouldStop(ctx) {
				return false
			}
		}
		return true
	})
}
