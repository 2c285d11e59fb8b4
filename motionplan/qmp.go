package motionplan

// GrowQMP performs one PRM-style dense roadmap construction step on lvl
// (spec §4.5.3): sample a configuration, connect it to its computeK
// nearest neighbors whose motion is valid, then re-run the roadmap query
// from start to goal. Grounded on the teacher's nearestNeighbor.go
// brute-force scan (reused here via nnIndex.nearestK) and generalized
// from a tree grow-step to an undirected roadmap insertion, since QMP has
// no parent/child tree structure; only graph.go's disjoint-set tracks
// reachability.
func GrowQMP(lvl *BundleLevel, below *BundleLevel, opts *QMPOptions) *Configuration {
	k := defaultComputeK
	if opts != nil && opts.ComputeK != nil {
		k = opts.ComputeK(lvl.nn.size())
	}
	c := lvl.insertDenseRoadmapNode(below, k)
	if c == nil {
		return nil
	}
	lvl.queryRoadmapSolution()
	return c
}

// queryRoadmapSolution runs A* from every registered start to every
// registered goal over the dense roadmap and keeps the cheapest result
// (spec §4.5.3, §4.3).
func (lvl *BundleLevel) queryRoadmapSolution() {
	for _, s := range lvl.startIdx {
		for _, g := range lvl.goalIdx {
			path := shortestPath(lvl.graph, lvl.arena, lvl.Objective, s, g)
			if path == nil {
				continue
			}
			cost := pathCost(lvl, path)
			if !lvl.hasSolution || cost < lvl.bestCost {
				lvl.bestPath = path
				lvl.bestCost = cost
				lvl.hasSolution = true
			}
		}
	}
	if lvl.goal == nil {
		return
	}
	for _, s := range lvl.startIdx {
		for _, c := range lvl.nn.list() {
			if ok, _ := lvl.goal.IsSatisfied(c.state); !ok {
				continue
			}
			path := shortestPath(lvl.graph, lvl.arena, lvl.Objective, s, c.index)
			if path == nil {
				continue
			}
			cost := pathCost(lvl, path)
			if !lvl.hasSolution || cost < lvl.bestCost {
				lvl.bestPath = path
				lvl.bestCost = cost
				lvl.hasSolution = true
			}
		}
	}
}

// pathCost accumulates a path's cost through the level's optimization
// objective (spec §4.5.2, §6) rather than raw state-space distance, so a
// non-default objective actually changes which solution is kept.
func pathCost(lvl *BundleLevel, path []int) float64 {
	total := lvl.Objective.IdentityCost().(float64)
	for i := 1; i < len(path); i++ {
		a := lvl.arena.get(path[i-1])
		b := lvl.arena.get(path[i])
		total = lvl.Objective.CombineCosts(total, lvl.Objective.MotionCost(a.state, b.state)).(float64)
	}
	return total
}
