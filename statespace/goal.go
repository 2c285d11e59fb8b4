package statespace

// StateGoal is a Goal satisfied by any state within Tolerance of Target
// under the owning space's Distance. It also implements
// GoalSampleableRegion by always returning Target.
type StateGoal struct {
	Space     StateSpace
	Target    State
	Tolerance float64
}

// NewStateGoal returns a single-state goal region.
func NewStateGoal(space StateSpace, target State, tolerance float64) *StateGoal {
	return &StateGoal{Space: space, Target: target, Tolerance: tolerance}
}

func (g *StateGoal) IsSatisfied(s State) (bool, float64) {
	d := g.Space.Distance(s, g.Target)
	return d <= g.Tolerance, d
}

func (g *StateGoal) SampleGoal(out State) bool {
	g.Space.CopyState(out, g.Target)
	return true
}
