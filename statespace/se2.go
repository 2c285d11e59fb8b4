package statespace

import (
	"math"
	"math/rand"
)

// SE2State is a planar rigid-body pose: position plus heading.
type SE2State struct {
	X, Y, Theta float64
}

// SE2StateSpace is R^2 x SO(2), bounded by an axis-aligned box on the
// translational part. rotationWeight scales the angular contribution to
// Distance so that translation and rotation units can be balanced.
type SE2StateSpace struct {
	Low, High      [2]float64
	RotationWeight float64
	rng            *rand.Rand
}

// NewSE2StateSpace returns a bounded SE(2) space.
func NewSE2StateSpace(low, high [2]float64, rotationWeight float64, rng *rand.Rand) *SE2StateSpace {
	return &SE2StateSpace{Low: low, High: high, RotationWeight: rotationWeight, rng: rng}
}

func (s *SE2StateSpace) AllocState() State { return &SE2State{} }

func (s *SE2StateSpace) CopyState(dst, src State) {
	*dst.(*SE2State) = *src.(*SE2State)
}

func (s *SE2StateSpace) CloneState(src State) State {
	v := *src.(*SE2State)
	return &v
}

func (s *SE2StateSpace) Distance(a, b State) float64 {
	av, bv := a.(*SE2State), b.(*SE2State)
	dx, dy := bv.X-av.X, bv.Y-av.Y
	lin := math.Hypot(dx, dy)
	ang := math.Abs(wrapAngle(bv.Theta - av.Theta))
	return lin + s.RotationWeight*ang
}

func (s *SE2StateSpace) Interpolate(a, b State, t float64, out State) {
	av, bv, ov := a.(*SE2State), b.(*SE2State), out.(*SE2State)
	ov.X = av.X + t*(bv.X-av.X)
	ov.Y = av.Y + t*(bv.Y-av.Y)
	ov.Theta = wrapAngle(av.Theta + t*wrapAngle(bv.Theta-av.Theta))
}

func (s *SE2StateSpace) HasSymmetricInterpolate() bool { return true }

func (s *SE2StateSpace) SampleUniform(out State) {
	ov := out.(*SE2State)
	ov.X = s.Low[0] + s.rng.Float64()*(s.High[0]-s.Low[0])
	ov.Y = s.Low[1] + s.rng.Float64()*(s.High[1]-s.Low[1])
	ov.Theta = wrapAngle(-math.Pi + s.rng.Float64()*2*math.Pi)
}

func (s *SE2StateSpace) SampleUniformNear(out State, center State, radius float64) {
	c, ov := center.(*SE2State), out.(*SE2State)
	ov.X = clamp(c.X+(s.rng.Float64()*2-1)*radius, s.Low[0], s.High[0])
	ov.Y = clamp(c.Y+(s.rng.Float64()*2-1)*radius, s.Low[1], s.High[1])
	ov.Theta = wrapAngle(c.Theta + (s.rng.Float64()*2-1)*radius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *SE2StateSpace) SatisfiesBounds(st State) bool {
	v := st.(*SE2State)
	return v.X >= s.Low[0] && v.X <= s.High[0] && v.Y >= s.Low[1] && v.Y <= s.High[1]
}

func (s *SE2StateSpace) GetMaximumExtent() float64 {
	dx, dy := s.High[0]-s.Low[0], s.High[1]-s.Low[1]
	return math.Hypot(dx, dy) + s.RotationWeight*math.Pi
}

func (s *SE2StateSpace) GetSpaceMeasure() float64 {
	return (s.High[0] - s.Low[0]) * (s.High[1] - s.Low[1]) * 2 * math.Pi
}

func (s *SE2StateSpace) GetStateDimension() int { return 3 }
