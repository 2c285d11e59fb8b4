package motionplan

// GrowQRRT performs one RRT extension step on lvl, sampling from the
// quotient space formed with below (nil for level 0), per spec §4.5.1.
// It mirrors the teacher's rrtConnectMotionPlanner grow step (nearest
// neighbor, steer by at most Range, checkPath) collapsed to a single
// tree instead of the teacher's bidirectional start/goal maps, since a
// bundle level only ever grows one tree here (the goal side is handled
// by goal-biased sampling, not a second tree).
//
// It returns the newly added Configuration, or nil if the extension was
// rejected by validity/motion checking.
func GrowQRRT(lvl *BundleLevel, below *BundleLevel) *Configuration {
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
	if !lvl.checkMotion(nearest.state, newState) {
		return nil
	}

	child := lvl.arena.add(newState)
	lvl.nn.add(child)
	lvl.graph.ensure(child.index)
	lvl.arena.attachToParent(child, nearest)
	lvl.graph.addEdge(nearest.index, child.index, lvl.metric(lvl, nearest.state, newState))
	child.lineCost = lvl.Objective.MotionCost(nearest.state, newState).(float64)
	child.cost = lvl.Objective.CombineCosts(nearest.cost, child.lineCost).(float64)
	lvl.successAttempts++

	if lvl.goal != nil {
		if ok, _ := lvl.goal.IsSatisfied(newState); ok {
			lvl.recordSolution(child)
		}
	}
	lvl.updateApproximateSolution(child)
	return child
}

// recordSolution walks child's tree ancestry back to its root to build the
// winning path, used by QRRT/QRRT* alike whenever a newly grown
// configuration satisfies the goal.
func (lvl *BundleLevel) recordSolution(child *Configuration) {
	path := []int{child.index}
	cur := child
	for cur.parent != sentinelIndex {
		cur = lvl.arena.get(cur.parent)
		path = append(path, cur.index)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	cost := child.cost
	if !lvl.hasSolution || lvl.Objective.IsCostBetterThan(cost, lvl.bestCost) {
		lvl.bestPath = path
		lvl.bestCost = cost
		lvl.hasSolution = true
	}
}
