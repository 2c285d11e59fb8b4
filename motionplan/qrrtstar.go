package motionplan

import (
	"math"

	"github.com/quotientplan/bundleplan/statespace"
)

// kRRTStarConstant and rRRTStarConstant are the universal constants from
// the RRT* neighbor-set formulas (spec §4.5.2): kRRT = 2^(d+1)*e*(1+1/d),
// rRRT = (2*(1+1/d)*mu(Xfree)/zeta_d)^(1/d).
func kRRTStarConstant(d int) float64 {
	return math.Pow(2, float64(d+1)) * math.E * (1 + 1/float64(d))
}

func rRRTStarConstant(d int, freeMeasure float64) float64 {
	zetaD := statespace.UnitBallMeasure(d)
	return math.Pow(2*(1+1/float64(d))*freeMeasure/zetaD, 1/float64(d))
}

// neighborSetSize returns k for the k-nearest variant of the QRRT*
// neighbor set (spec §4.5.2): k = ceil(kRRT * ln(|V|+1)).
func neighborSetSize(d, numVertices int) int {
	k := int(math.Ceil(kRRTStarConstant(d) * math.Log(float64(numVertices+1))))
	if k < 1 {
		k = 1
	}
	return k
}

// neighborSetRadius returns r for the radius variant of the QRRT*
// neighbor set (spec §4.5.2): r = min(maxDistance, rRRT*(ln(|V|+1)/(|V|+1))^(1/d)).
func neighborSetRadius(d int, numVertices int, freeMeasure, maxDistance float64) float64 {
	if numVertices == 0 {
		return maxDistance
	}
	r := rRRTStarConstant(d, freeMeasure) * math.Pow(math.Log(float64(numVertices+1))/float64(numVertices+1), 1/float64(d))
	if r > maxDistance {
		return maxDistance
	}
	return r
}

// GrowQRRTStar performs one RRT* extension step on lvl: sample, steer
// from nearest by at most Range, then choose-parent and rewire over the
// neighbor set defined by spec §4.5.2's kRRT*/rRRT* formulas.
//
// Grounded on the teacher's rrtStarConnectMotionPlanner shape (extend,
// then re-examine a neighborhood for a cheaper parent) but collapsed from
// its two-tree start/goal-map connect strategy to a single growing tree
// with goal-region membership testing, matching GrowQRRT's simplification
// and spec §4.5.2's single-tree description.
func GrowQRRTStar(lvl *BundleLevel, below *BundleLevel) *Configuration {
	target := lvl.Space.AllocState()
	lvl.sampleExtensionTarget(below, target)

	nearest := lvl.nn.nearest(target)
	if nearest == nil {
		return nil
	}
	lvl.totalAttempts++

	newState := lvl.Space.AllocState()
	progress := lvl.propagator(lvl.Space, nearest.state, target, lvl.options.Range, newState)
	if progress <= 0 {
		return nil
	}

	if !lvl.Space.SatisfiesBounds(newState) {
		return nil
	}
	if lvl.Validity != nil && !lvl.Validity.IsValid(newState) {
		return nil
	}

	d := lvl.Space.GetStateDimension()
	numVertices := lvl.nn.size()

	var neighbors []*Configuration
	if lvl.options.UseKNearest {
		k := neighborSetSize(d, numVertices)
		neighbors = lvl.nn.nearestK(newState, k)
	} else {
		r := neighborSetRadius(d, numVertices, lvl.Space.GetSpaceMeasure(), lvl.options.Range)
		neighbors = lvl.nn.nearestR(newState, r)
	}
	if len(neighbors) == 0 {
		neighbors = []*Configuration{nearest}
	}

	// choose-parent: among the neighbor set, pick the neighbor minimizing
	// combineCosts(q.cost, motionCost(q.state, x_new.state)), requiring a
	// valid motion to newState (spec §4.5.2).
	var bestParent *Configuration
	bestCost := lvl.Objective.InfiniteCost().(float64)
	var bestLineCost float64
	for _, cand := range neighbors {
		if !lvl.checkMotion(cand.state, newState) {
			continue
		}
		lineCost := lvl.Objective.MotionCost(cand.state, newState).(float64)
		total := lvl.Objective.CombineCosts(cand.cost, lineCost).(float64)
		if lvl.Objective.IsCostBetterThan(total, bestCost) {
			bestCost = total
			bestParent = cand
			bestLineCost = lineCost
		}
	}
	if bestParent == nil {
		return nil
	}

	child := lvl.arena.add(newState)
	lvl.nn.add(child)
	lvl.graph.ensure(child.index)
	lvl.arena.attachToParent(child, bestParent)
	lvl.graph.addEdge(bestParent.index, child.index, lvl.metric(lvl, bestParent.state, newState))
	child.lineCost = bestLineCost
	child.cost = bestCost
	lvl.successAttempts++

	// rewire: for each other neighbor, check whether routing it through
	// child is now cheaper.
	for _, cand := range neighbors {
		if cand.index == bestParent.index || cand.index == child.index {
			continue
		}
		lineCost := lvl.Objective.MotionCost(child.state, cand.state).(float64)
		total := lvl.Objective.CombineCosts(child.cost, lineCost).(float64)
		if lvl.Objective.IsCostBetterThan(total, cand.cost) && lvl.checkMotion(child.state, cand.state) {
			lvl.arena.detachFromParent(cand)
			lvl.arena.attachToParent(cand, child)
			cand.lineCost = lineCost
			cand.cost = total
			propagateCostToChildren(lvl, cand)
		}
	}

	if lvl.goal != nil {
		if ok, _ := lvl.goal.IsSatisfied(newState); ok {
			lvl.recordSolution(child)
		}
	}
	lvl.updateApproximateSolution(child)
	// rescan goal samples registered directly as configurations, since a
	// rewire may have lowered the cost of a path already reaching one.
	for _, gi := range lvl.goalIdx {
		g := lvl.arena.get(gi)
		if g.parent != sentinelIndex || g.isStart {
			lvl.recordSolution(g)
		}
	}
	return child
}

// propagateCostToChildren recomputes cost for c's subtree after a rewire
// changed c's own cost.
func propagateCostToChildren(lvl *BundleLevel, c *Configuration) {
	for _, childIdx := range c.children {
		child := lvl.arena.get(childIdx)
		child.cost = lvl.Objective.CombineCosts(c.cost, child.lineCost).(float64)
		propagateCostToChildren(lvl, child)
	}
}
