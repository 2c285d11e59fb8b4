package motionplan

import "github.com/quotientplan/bundleplan/statespace"

// sentinelIndex marks a Configuration with no representative in the
// sparse graph yet (spec §3, RoadmapGraph invariant).
const sentinelIndex = -1

// Configuration is a record bound to one bundle level: the underlying
// state plus planning bookkeeping (spec §3). It is always addressed by
// its arena index, never by pointer, so that tree rewiring and sparse
// dense-to-sparse bookkeeping stay index-stable across grow() calls
// (spec §9 Design Notes).
type Configuration struct {
	index int
	state statespace.State

	parent   int // sentinelIndex if root or unattached
	children []int

	cost     float64
	lineCost float64

	isStart        bool
	isGoal         bool
	onShortestPath bool

	totalConnectionAttempts      int
	successfulConnectionAttempts int

	// representativeIndex is this dense configuration's sparse-graph
	// representative (spec §3, §4.6); sentinelIndex if none yet assigned.
	representativeIndex int
}

// Index returns the configuration's stable arena index.
func (c *Configuration) Index() int { return c.index }

// State returns the underlying state owned by this configuration.
func (c *Configuration) State() statespace.State { return c.state }

// Cost returns the accumulated cost from the tree root (QRRT*) or zero for
// planners that don't track one.
func (c *Configuration) Cost() float64 { return c.cost }

// Parent returns the index of this configuration's parent in a tree
// planner, or sentinelIndex if it is the root or unattached.
func (c *Configuration) Parent() int { return c.parent }

// Children returns the indices of this configuration's children in a
// tree planner.
func (c *Configuration) Children() []int { return c.children }

// configurationArena owns the Configuration records of one bundle level.
// Configurations are created on insertion and destroyed only by Clear
// (spec §3 Lifecycles); indices are never reused within a Clear epoch so
// that stale references fail loudly rather than silently aliasing.
type configurationArena struct {
	configs []*Configuration
}

func newConfigurationArena() *configurationArena {
	return &configurationArena{}
}

// add allocates a new Configuration wrapping state and returns it. The
// caller is responsible for inserting it into the level's NN index and
// roadmap graph; the arena is the owner of record, not the source of
// truth for "currently active" (spec §4.2 gives that role to the NN
// index).
func (a *configurationArena) add(state statespace.State) *Configuration {
	c := &Configuration{
		index:               len(a.configs),
		state:               state,
		parent:              sentinelIndex,
		representativeIndex: sentinelIndex,
	}
	a.configs = append(a.configs, c)
	return c
}

func (a *configurationArena) get(index int) *Configuration {
	return a.configs[index]
}

func (a *configurationArena) size() int {
	return len(a.configs)
}

func (a *configurationArena) clear() {
	a.configs = nil
}

// detachFromParent removes c from its parent's children list, used by
// QRRT*'s rewire step before reattaching c under a new parent.
func (a *configurationArena) detachFromParent(c *Configuration) {
	if c.parent == sentinelIndex {
		return
	}
	parent := a.configs[c.parent]
	for i, childIdx := range parent.children {
		if childIdx == c.index {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	c.parent = sentinelIndex
}

// attachToParent sets c's parent to parent and registers c as one of
// parent's children.
func (a *configurationArena) attachToParent(c, parent *Configuration) {
	c.parent = parent.index
	parent.children = append(parent.children, c.index)
}
