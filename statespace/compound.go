package statespace

// CompoundState is an ordered tuple of substates, one per subspace of the
// owning CompoundStateSpace.
type CompoundState []State

// CompoundStateSpace is the ordered product of an arbitrary list of
// subspaces, each contributing Weight * subspace.Distance to the overall
// distance. It lets a bundle level be built out of simpler pieces (e.g.
// R^3 position x SO(3) orientation without committing to SE3StateSpace's
// fixed weighting, or stacking several RealVectorStateSpaces).
type CompoundStateSpace struct {
	Subspaces []StateSpace
	Weights   []float64
}

// NewCompoundStateSpace returns a product space. weights may be nil, in
// which case every subspace is weighted 1.
func NewCompoundStateSpace(subspaces []StateSpace, weights []float64) *CompoundStateSpace {
	if weights == nil {
		weights = make([]float64, len(subspaces))
		for i := range weights {
			weights[i] = 1
		}
	}
	return &CompoundStateSpace{Subspaces: subspaces, Weights: weights}
}

func (s *CompoundStateSpace) AllocState() State {
	out := make(CompoundState, len(s.Subspaces))
	for i, sub := range s.Subspaces {
		out[i] = sub.AllocState()
	}
	return out
}

func (s *CompoundStateSpace) CopyState(dst, src State) {
	dv, sv := dst.(CompoundState), src.(CompoundState)
	for i, sub := range s.Subspaces {
		sub.CopyState(dv[i], sv[i])
	}
}

func (s *CompoundStateSpace) CloneState(src State) State {
	sv := src.(CompoundState)
	out := make(CompoundState, len(s.Subspaces))
	for i, sub := range s.Subspaces {
		out[i] = sub.CloneState(sv[i])
	}
	return out
}

func (s *CompoundStateSpace) Distance(a, b State) float64 {
	av, bv := a.(CompoundState), b.(CompoundState)
	total := 0.0
	for i, sub := range s.Subspaces {
		total += s.Weights[i] * sub.Distance(av[i], bv[i])
	}
	return total
}

func (s *CompoundStateSpace) Interpolate(a, b State, t float64, out State) {
	av, bv, ov := a.(CompoundState), b.(CompoundState), out.(CompoundState)
	for i, sub := range s.Subspaces {
		sub.Interpolate(av[i], bv[i], t, ov[i])
	}
}

func (s *CompoundStateSpace) HasSymmetricInterpolate() bool {
	for _, sub := range s.Subspaces {
		if !sub.HasSymmetricInterpolate() {
			return false
		}
	}
	return true
}

func (s *CompoundStateSpace) SampleUniform(out State) {
	ov := out.(CompoundState)
	for i, sub := range s.Subspaces {
		sub.SampleUniform(ov[i])
	}
}

func (s *CompoundStateSpace) SampleUniformNear(out State, center State, radius float64) {
	ov, cv := out.(CompoundState), center.(CompoundState)
	for i, sub := range s.Subspaces {
		sub.SampleUniformNear(ov[i], cv[i], radius)
	}
}

func (s *CompoundStateSpace) SatisfiesBounds(st State) bool {
	sv := st.(CompoundState)
	for i, sub := range s.Subspaces {
		if !sub.SatisfiesBounds(sv[i]) {
			return false
		}
	}
	return true
}

func (s *CompoundStateSpace) GetMaximumExtent() float64 {
	total := 0.0
	for i, sub := range s.Subspaces {
		total += s.Weights[i] * sub.GetMaximumExtent()
	}
	return total
}

func (s *CompoundStateSpace) GetSpaceMeasure() float64 {
	measure := 1.0
	for _, sub := range s.Subspaces {
		measure *= sub.GetSpaceMeasure()
	}
	return measure
}

func (s *CompoundStateSpace) GetStateDimension() int {
	total := 0
	for _, sub := range s.Subspaces {
		total += sub.GetStateDimension()
	}
	return total
}
