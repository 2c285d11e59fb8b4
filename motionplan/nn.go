package motionplan

import (
	"golang.org/x/exp/slices"

	"github.com/quotientplan/bundleplan/statespace"
)

// nnIndex is the configuration store & nearest-neighbor index of spec
// §4.2 (C3): the single source of truth for which configurations are
// currently active at a level. Any mutation to a configuration's state
// must go through remove then add again (spec §4.2).
//
// The teacher's nearestNeighbor.go parallelizes the brute-force scan
// across goroutines once the tree grows past a few thousand nodes
// (neighborManager). Spec §5 mandates a single-threaded cooperative
// engine with no background goroutines, so this index always does the
// sequential scan the teacher itself falls back to below that threshold.
type nnIndex struct {
	space   statespace.StateSpace
	members []*Configuration
}

func newNNIndex(space statespace.StateSpace) *nnIndex {
	return &nnIndex{space: space}
}

func (n *nnIndex) add(c *Configuration) {
	n.members = append(n.members, c)
}

func (n *nnIndex) remove(c *Configuration) {
	for i, m := range n.members {
		if m.index == c.index {
			n.members = append(n.members[:i], n.members[i+1:]...)
			return
		}
	}
}

func (n *nnIndex) size() int { return len(n.members) }

func (n *nnIndex) list() []*Configuration { return n.members }

// nearest returns the single closest member to q, or nil if the index is
// empty.
func (n *nnIndex) nearest(q statespace.State) *Configuration {
	if len(n.members) == 0 {
		return nil
	}
	best := n.members[0]
	bestDist := n.space.Distance(q, best.state)
	for _, m := range n.members[1:] {
		d := n.space.Distance(q, m.state)
		if d < bestDist {
			bestDist = d
			best = m
		}
	}
	return best
}

type ranked struct {
	config *Configuration
	dist   float64
}

// nearestK returns the k members closest to q, sorted ascending by
// distance. If k >= size, all members are returned.
func (n *nnIndex) nearestK(q statespace.State, k int) []*Configuration {
	if k > len(n.members) {
		k = len(n.members)
	}
	ranks := make([]ranked, len(n.members))
	for i, m := range n.members {
		ranks[i] = ranked{config: m, dist: n.space.Distance(q, m.state)}
	}
	slices.SortFunc(ranks, func(a, b ranked) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})
	out := make([]*Configuration, k)
	for i := 0; i < k; i++ {
		out[i] = ranks[i].config
	}
	return out
}

// nearestR returns every member within radius r of q.
func (n *nnIndex) nearestR(q statespace.State, r float64) []*Configuration {
	out := make([]*Configuration, 0)
	for _, m := range n.members {
		if n.space.Distance(q, m.state) <= r {
			out = append(out, m)
		}
	}
	return out
}
