package motionplan

import "github.com/quotientplan/bundleplan/statespace"

// PlannerDataVertex is one exported roadmap/tree vertex (spec §6),
// tagged with the level it belongs to and, once path-class enumeration
// has run, the path classes it participates in.
type PlannerDataVertex struct {
	Index      int
	State      statespace.State
	LevelIndex int
	PathClasses []int
}

// PlannerDataEdge is one exported roadmap/tree edge (spec §6).
type PlannerDataEdge struct {
	From, To   int
	LevelIndex int
	Cost       float64
}

// PlannerData is the introspection export of spec §6 GetPlannerData:
// every vertex and edge across the whole tower, annotated with level and
// path-class membership, intended for visualization and debugging rather
// than for feeding back into planning.
type PlannerData struct {
	Vertices []PlannerDataVertex
	Edges    []PlannerDataEdge
}

// GetPlannerData snapshots levels into a PlannerData. classesByLevel, if
// non-nil, supplies the confirmed path classes per level (as produced by
// EnumeratePathClasses) so vertices can be tagged with the classes they
// belong to; pass nil to skip tagging.
func GetPlannerData(levels []*BundleLevel, classesByLevel map[int][][]int) *PlannerData {
	data := &PlannerData{}
	for li, lvl := range levels {
		membership := make(map[int][]int)
		if classes, ok := classesByLevel[li]; ok {
			for classIdx, path := range classes {
				for _, vertexIdx := range path {
					membership[vertexIdx] = append(membership[vertexIdx], classIdx)
				}
			}
		}
		for _, c := range lvl.arena.configs {
			data.Vertices = append(data.Vertices, PlannerDataVertex{
				Index:       c.index,
				State:       c.state,
				LevelIndex:  li,
				PathClasses: membership[c.index],
			})
		}
		graph := lvl.graph
		seen := make(map[[2]int]bool)
		for u, edges := range graph.adjacency {
			for _, e := range edges {
				key := interfaceKey(u, e.to)
				if seen[key] {
					continue
				}
				seen[key] = true
				data.Edges = append(data.Edges, PlannerDataEdge{From: u, To: e.to, LevelIndex: li, Cost: e.cost})
			}
		}
	}
	return data
}
