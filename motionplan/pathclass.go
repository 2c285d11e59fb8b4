package motionplan

import (
	"math/rand"

	"github.com/quotientplan/bundleplan/statespace"
)

// maxConsecutiveRejections bounds the C9 enumerator's DFS: it stops once
// this many candidate paths in a row fail the homotopy-equivalence
// check, on the assumption that the sparse graph's remaining structure
// has been exhausted (spec §4.9).
const maxConsecutiveRejections = 10

// EnumeratePathClasses performs a depth-bounded DFS over lvl's sparse
// graph from start to goal, collecting up to nHead distinct path classes
// (spec §4.9, C9). Two sparse paths are considered the same class if
// they are discretely homotopy-equivalent under sameClass; candidates
// failing that check, or failing the projectability check against
// below, are rejected. The DFS stops after nHead accepted classes or
// maxConsecutiveRejections rejections in a row, whichever comes first.
//
// This has no teacher analogue; it is written fresh against the C4
// roadmap adjacency lists already built for A* search. QRRT/QRRT*/QMP
// levels never build a sparse spanner, so the DFS falls back to the
// dense graph (lvl.graph) in that case; SQMP levels enumerate over the
// spanner itself, since that is what keeps the search tractable.
func EnumeratePathClasses(lvl *BundleLevel, below *BundleLevel, start, goal int, nHead int) [][]int {
	g := lvl.sparse
	if g == nil {
		g = lvl.graph
	}
	accepted := make([][]int, 0, nHead)
	rejectedStreak := 0
	visited := make([]bool, len(g.adjacency))
	var path []int

	var dfs func(cur int) bool
	dfs = func(cur int) bool {
		path = append(path, cur)
		defer func() { path = path[:len(path)-1] }()

		if cur == goal {
			candidate := append([]int{}, path...)
			if !projectable(lvl, below, candidate) {
				rejectedStreak++
				return rejectedStreak < maxConsecutiveRejections
			}
			novel := true
			for _, existing := range accepted {
				if sameClass(lvl, existing, candidate) {
					novel = false
					break
				}
			}
			if !novel {
				rejectedStreak++
				return rejectedStreak < maxConsecutiveRejections
			}
			accepted = append(accepted, candidate)
			rejectedStreak = 0
			return len(accepted) < nHead
		}

		if cur >= len(visited) || visited[cur] {
			return true
		}
		visited[cur] = true
		defer func() { visited[cur] = false }()

		for _, e := range g.neighbors(cur) {
			if !dfs(e.to) {
				return false
			}
		}
		return true
	}
	dfs(start)

	lvl.pathStack = accepted
	return accepted
}

// sameClass reports whether a and b are treated as one path class: every
// vertex of each path lies within two propagation steps (2*Range) of some
// vertex of the other, so paths running side by side match whatever their
// vertex counts, while paths diverging around opposite sides of a wide
// obstacle do not (spec §4.9). The test compares this level's states
// only; it neither projects to the levels below nor checks the validity
// of the space between the two paths.
func sameClass(lvl *BundleLevel, a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	limit := lvl.options.Range * 2
	for _, pair := range [2][2][]int{{a, b}, {b, a}} {
		for _, pi := range pair[0] {
			sp := lvl.arena.get(pi).state
			near := false
			for _, qi := range pair[1] {
				if lvl.Space.Distance(sp, lvl.arena.get(qi).state) <= limit {
					near = true
					break
				}
			}
			if !near {
				return false
			}
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// projectable reports whether every configuration along candidate
// projects down to a valid state at the level below, rejecting path
// classes that only exist due to a bundle-level artifact with no
// quotient-space counterpart (spec §4.9).
func projectable(lvl *BundleLevel, below *BundleLevel, candidate []int) bool {
	if below == nil {
		return true
	}
	baseState := below.Space.AllocState()
	for _, idx := range candidate {
		c := lvl.arena.get(idx)
		lvl.ProjectionToBelow.Project(c.state, baseState)
		if !below.Space.SatisfiesBounds(baseState) {
			return false
		}
		if below.Validity != nil && !below.Validity.IsValid(baseState) {
			return false
		}
	}
	return true
}

// SampleFromPathStack draws a quotient sample biased toward one of the
// confirmed path classes on below's pathStack (spec §4.8 path-biased
// sampling): it picks a class and one of its vertices uniformly at random
// and merges that vertex with a fiber sample. sampleFromBelow uses it in
// place of the level's ordinary graph sampler whenever below has at least
// one confirmed class.
func SampleFromPathStack(lvl *BundleLevel, below *BundleLevel, rng *rand.Rand, out statespace.State) bool {
	if below == nil || len(below.pathStack) == 0 {
		return false
	}
	chosen := below.pathStack[rng.Intn(len(below.pathStack))]
	if len(chosen) == 0 {
		return false
	}
	baseIdx := chosen[rng.Intn(len(chosen))]
	baseState := below.arena.get(baseIdx).state

	fiberSpace := lvl.ProjectionToBelow.FiberSpace()
	if fiberSpace == nil {
		lvl.ProjectionToBelow.Merge(baseState, nil, out)
		return true
	}
	fiberSample := fiberSpace.AllocState()
	fiberSpace.SampleUniform(fiberSample)
	perturbed := fiberSpace.AllocState()
	fiberSpace.SampleUniformNear(perturbed, fiberSample, lvl.options.PathBiasFraction*fiberSpace.GetMaximumExtent())
	lvl.ProjectionToBelow.Merge(baseState, perturbed, out)
	return true
}

// CheckPathRestriction performs the C10 fast lift-and-check: attempts to
// lift each vertex of a confirmed below-level path into this level by
// merging it with a single shared fiber sample, rejecting the whole
// restriction as soon as one lift is invalid (spec §4.10). It is called
// once per newly confirmed below-level path, before that path is trusted
// as a seed for this level's quotient sampling.
func CheckPathRestriction(lvl *BundleLevel, below *BundleLevel, basePath []int) bool {
	if lvl.ProjectionToBelow == nil {
		return true
	}
	fiberSpace := lvl.ProjectionToBelow.FiberSpace()
	var fiberSample interface{}
	if fiberSpace != nil {
		fiberSample = fiberSpace.AllocState()
		fiberSpace.SampleUniform(fiberSample)
	}
	lifted := lvl.Space.AllocState()
	for _, idx := range basePath {
		baseState := below.arena.get(idx).state
		lvl.ProjectionToBelow.Merge(baseState, fiberSample, lifted)
		if !lvl.Space.SatisfiesBounds(lifted) {
			return false
		}
		if lvl.Validity != nil && !lvl.Validity.IsValid(lifted) {
			return false
		}
	}
	return true
}
