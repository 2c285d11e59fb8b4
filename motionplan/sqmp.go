package motionplan

// GrowSQMP performs one SQMP step (spec §4.6): grow the dense roadmap
// exactly as QMP does, then feed the newly inserted configuration through
// the SPARS add-tests so the sparse spanner tracks it incrementally.
// Path queries for SQMP run over the sparse graph, not the dense one, so
// the returned solution is always expressed in sparse-graph indices.
func GrowSQMP(lvl *BundleLevel, below *BundleLevel, opts *SQMPOptions) *Configuration {
	ensureSparseRepresentatives(lvl, opts)
	c := lvl.insertDenseRoadmapNode(below, defaultComputeK)
	if c == nil {
		return nil
	}
	trySparsify(lvl, c, opts)
	querySparseSolution(lvl)
	return c
}

// ensureSparseRepresentatives runs the SPARS add-tests against any start or
// goal configuration that has not yet been witnessed by the sparsifier, so
// querySparseSolution always has a sparse representative to anchor a query
// on (spec §4.6, S4) instead of relying on a dense roadmap query alone
// having already pulled start/goal into trySparsify's path.
func ensureSparseRepresentatives(lvl *BundleLevel, opts *SQMPOptions) {
	for _, idx := range lvl.startIdx {
		c := lvl.arena.get(idx)
		if c.representativeIndex == sentinelIndex {
			trySparsify(lvl, c, opts)
		}
	}
	for _, idx := range lvl.goalIdx {
		c := lvl.arena.get(idx)
		if c.representativeIndex == sentinelIndex {
			trySparsify(lvl, c, opts)
		}
	}
}

// querySparseSolution mirrors queryRoadmapSolution (qmp.go) but runs A*
// over the sparse spanner, used by SQMP's solution reporting (spec §4.6).
func querySparseSolution(lvl *BundleLevel) {
	if lvl.sparse == nil {
		return
	}
	startReps := representativesOf(lvl, lvl.startIdx)
	goalReps := representativesOf(lvl, lvl.goalIdx)
	for _, s := range startReps {
		for _, g := range goalReps {
			path := shortestPath(lvl.sparse, lvl.arena, lvl.Objective, s, g)
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

// representativesOf maps dense configuration indices to their sparse
// representative, skipping any that have not yet been witnessed by the
// sparsifier.
func representativesOf(lvl *BundleLevel, denseIdx []int) []int {
	reps := make([]int, 0, len(denseIdx))
	for _, idx := range denseIdx {
		c := lvl.arena.get(idx)
		if c.representativeIndex != sentinelIndex {
			reps = append(reps, c.representativeIndex)
		}
	}
	return reps
}
