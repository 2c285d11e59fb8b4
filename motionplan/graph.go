package motionplan

import (
	"container/heap"

	"github.com/quotientplan/bundleplan/statespace"
)

// graphEdge is one roadmap edge, stored once per direction for O(1)
// adjacency iteration (spec §4.3).
type graphEdge struct {
	to   int
	cost float64
}

// roadmapGraph is the undirected graph over a level's configurations
// (spec §4.3, C4): adjacency lists plus a disjoint-set over the same
// integer indices used by the configurationArena, so that connectivity
// queries never walk the adjacency lists.
//
// The union-find here is adapted from the teacher pack's Kruskal MST
// implementation (katalvlaran-lvlath/prim_kruskal/kruskal.go): same
// path-compression find and union-by-rank union, rekeyed from
// string vertex IDs to the dense int arena indices this package already
// uses, since an arena index is cheaper and just as unique as a string
// key. A* itself has no teacher analogue and is written fresh against
// statespace.OptimizationObjective's MotionCostHeuristic.
type roadmapGraph struct {
	adjacency [][]graphEdge
	parent    []int
	rank      []int
}

func newRoadmapGraph() *roadmapGraph {
	return &roadmapGraph{}
}

// ensure grows the graph's bookkeeping slices so that index is valid,
// called whenever the arena allocates a new Configuration.
func (g *roadmapGraph) ensure(index int) {
	for len(g.adjacency) <= index {
		g.adjacency = append(g.adjacency, nil)
		g.parent = append(g.parent, len(g.parent))
		g.rank = append(g.rank, 0)
	}
}

func (g *roadmapGraph) find(u int) int {
	for g.parent[u] != u {
		g.parent[u] = g.parent[g.parent[u]]
		u = g.parent[u]
	}
	return u
}

func (g *roadmapGraph) union(u, v int) {
	rootU, rootV := g.find(u), g.find(v)
	if rootU == rootV {
		return
	}
	if g.rank[rootU] < g.rank[rootV] {
		g.parent[rootU] = rootV
	} else {
		g.parent[rootV] = rootU
		if g.rank[rootU] == g.rank[rootV] {
			g.rank[rootU]++
		}
	}
}

// connected reports whether u and v belong to the same component.
func (g *roadmapGraph) connected(u, v int) bool {
	return g.find(u) == g.find(v)
}

// addEdge links u and v with the given cost and merges their components.
// Duplicate edges are not checked for; callers (the PRM-family planners)
// are expected to only call this once per unordered pair.
func (g *roadmapGraph) addEdge(u, v int, cost float64) {
	g.ensure(u)
	g.ensure(v)
	g.adjacency[u] = append(g.adjacency[u], graphEdge{to: v, cost: cost})
	g.adjacency[v] = append(g.adjacency[v], graphEdge{to: u, cost: cost})
	g.union(u, v)
}

func (g *roadmapGraph) neighbors(u int) []graphEdge {
	if u >= len(g.adjacency) {
		return nil
	}
	return g.adjacency[u]
}

func (g *roadmapGraph) clear() {
	g.adjacency = nil
	g.parent = nil
	g.rank = nil
}

// astarItem is one entry of the A* open set.
type astarItem struct {
	index    int
	priority float64
}

type astarQueue []astarItem

func (q astarQueue) Len() int            { return len(q) }
func (q astarQueue) Less(i, j int) bool  { return q[i].priority < q[j].priority }
func (q astarQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *astarQueue) Push(x interface{}) { *q = append(*q, x.(astarItem)) }
func (q *astarQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// shortestPath runs A* from start to goal over the graph, using arena to
// resolve index -> state for the heuristic (spec §4.3, §4.6 sparse
// spanner replanning). It returns the path as a slice of arena indices,
// or nil if goal is unreachable from start.
func shortestPath(g *roadmapGraph, arena *configurationArena, objective statespace.OptimizationObjective, start, goal int) []int {
	if start == goal {
		return []int{start}
	}
	if !g.connected(start, goal) {
		return nil
	}

	const inf = 1e300
	gScore := make(map[int]float64)
	cameFrom := make(map[int]int)
	gScore[start] = 0

	heuristic := func(u int) float64 {
		return objective.MotionCostHeuristic(arena.get(u).state, arena.get(goal).state).(float64)
	}

	open := &astarQueue{{index: start, priority: heuristic(start)}}
	heap.Init(open)
	visited := make(map[int]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(astarItem).index
		if cur == goal {
			return reconstructPath(cameFrom, start, goal)
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true

		curG := gScore[cur]
		for _, e := range g.neighbors(cur) {
			tentative := curG + e.cost
			existing, ok := gScore[e.to]
			if !ok {
				existing = inf
			}
			if tentative < existing {
				gScore[e.to] = tentative
				cameFrom[e.to] = cur
				heap.Push(open, astarItem{index: e.to, priority: tentative + heuristic(e.to)})
			}
		}
	}
	return nil
}

func reconstructPath(cameFrom map[int]int, start, goal int) []int {
	path := []int{goal}
	cur := goal
	for cur != start {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
