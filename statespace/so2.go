package statespace

import (
	"math"
	"math/rand"
)

// SO2State is a single wrapped angle in [-pi, pi).
type SO2State struct{ Theta float64 }

// SO2StateSpace is the space of planar rotations.
type SO2StateSpace struct {
	rng *rand.Rand
}

// NewSO2StateSpace returns the SO(2) rotation space.
func NewSO2StateSpace(rng *rand.Rand) *SO2StateSpace {
	return &SO2StateSpace{rng: rng}
}

func wrapAngle(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}

func (s *SO2StateSpace) AllocState() State { return &SO2State{} }

func (s *SO2StateSpace) CopyState(dst, src State) {
	dst.(*SO2State).Theta = src.(*SO2State).Theta
}

func (s *SO2StateSpace) CloneState(src State) State {
	return &SO2State{Theta: src.(*SO2State).Theta}
}

func (s *SO2StateSpace) Distance(a, b State) float64 {
	return math.Abs(wrapAngle(b.(*SO2State).Theta - a.(*SO2State).Theta))
}

func (s *SO2StateSpace) Interpolate(a, b State, t float64, out State) {
	diff := wrapAngle(b.(*SO2State).Theta - a.(*SO2State).Theta)
	out.(*SO2State).Theta = wrapAngle(a.(*SO2State).Theta + t*diff)
}

func (s *SO2StateSpace) HasSymmetricInterpolate() bool { return true }

func (s *SO2StateSpace) SampleUniform(out State) {
	out.(*SO2State).Theta = wrapAngle(-math.Pi + s.rng.Float64()*2*math.Pi)
}

func (s *SO2StateSpace) SampleUniformNear(out State, center State, radius float64) {
	c := center.(*SO2State).Theta
	out.(*SO2State).Theta = wrapAngle(c + (s.rng.Float64()*2-1)*radius)
}

func (s *SO2StateSpace) SatisfiesBounds(State) bool { return true }

func (s *SO2StateSpace) GetMaximumExtent() float64 { return math.Pi }

func (s *SO2StateSpace) GetSpaceMeasure() float64 { return 2 * math.Pi }

func (s *SO2StateSpace) GetStateDimension() int { return 1 }
