package statespace

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// RealVectorState is the concrete representation used by
// RealVectorStateSpace: a fixed-length slice of float64 coordinates.
type RealVectorState []float64

// RealVectorStateSpace is R^n bounded by an axis-aligned box [Low, High].
// It backs the translational part of SE2StateSpace/SE3StateSpace and
// stands alone for the planar scenarios in spec §8 (S1, S2).
type RealVectorStateSpace struct {
	Low, High []float64
	rng       *rand.Rand
}

// NewRealVectorStateSpace returns an n-dimensional box space, n = len(low).
// low and high must be the same length and low[i] <= high[i] for all i.
func NewRealVectorStateSpace(low, high []float64, rng *rand.Rand) *RealVectorStateSpace {
	return &RealVectorStateSpace{Low: low, High: high, rng: rng}
}

func (s *RealVectorStateSpace) AllocState() State {
	return RealVectorState(make([]float64, len(s.Low)))
}

func (s *RealVectorStateSpace) CopyState(dst, src State) {
	copy(dst.(RealVectorState), src.(RealVectorState))
}

func (s *RealVectorStateSpace) CloneState(src State) State {
	v := src.(RealVectorState)
	out := make(RealVectorState, len(v))
	copy(out, v)
	return out
}

func (s *RealVectorStateSpace) Distance(a, b State) float64 {
	av, bv := a.(RealVectorState), b.(RealVectorState)
	diff := make([]float64, len(av))
	for i := range av {
		diff[i] = av[i] - bv[i]
	}
	return floats.Norm(diff, 2)
}

func (s *RealVectorStateSpace) Interpolate(a, b State, t float64, out State) {
	av, bv, ov := a.(RealVectorState), b.(RealVectorState), out.(RealVectorState)
	for i := range av {
		ov[i] = av[i] + t*(bv[i]-av[i])
	}
}

func (s *RealVectorStateSpace) HasSymmetricInterpolate() bool { return true }

func (s *RealVectorStateSpace) SampleUniform(out State) {
	ov := out.(RealVectorState)
	for i := range ov {
		ov[i] = s.Low[i] + s.rng.Float64()*(s.High[i]-s.Low[i])
	}
}

func (s *RealVectorStateSpace) SampleUniformNear(out State, center State, radius float64) {
	cv, ov := center.(RealVectorState), out.(RealVectorState)
	for i := range ov {
		lo := math.Max(s.Low[i], cv[i]-radius)
		hi := math.Min(s.High[i], cv[i]+radius)
		if hi <= lo {
			ov[i] = cv[i]
			continue
		}
		ov[i] = lo + s.rng.Float64()*(hi-lo)
	}
}

func (s *RealVectorStateSpace) SatisfiesBounds(st State) bool {
	v := st.(RealVectorState)
	for i, x := range v {
		if x < s.Low[i] || x > s.High[i] {
			return false
		}
	}
	return true
}

func (s *RealVectorStateSpace) GetMaximumExtent() float64 {
	diff := make([]float64, len(s.Low))
	for i := range s.Low {
		diff[i] = s.High[i] - s.Low[i]
	}
	return floats.Norm(diff, 2)
}

func (s *RealVectorStateSpace) GetSpaceMeasure() float64 {
	measure := 1.0
	for i := range s.Low {
		measure *= s.High[i] - s.Low[i]
	}
	return measure
}

func (s *RealVectorStateSpace) GetStateDimension() int { return len(s.Low) }

// UnitBallMeasure returns zeta_d, the Lebesgue measure of the unit ball in
// R^d, as used by QRRT*'s rRRT* radius formula (spec §4.5.2).
func UnitBallMeasure(d int) float64 {
	return math.Pow(math.Pi, float64(d)/2) / math.Gamma(float64(d)/2+1)
}
