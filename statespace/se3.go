package statespace

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// SE3State is a rigid-body pose in 3D: position plus orientation.
type SE3State struct {
	Pos r3.Vector
	Rot quat.Number
}

// SE3StateSpace is R^3 x SO(3), bounded by an axis-aligned box on the
// translational part.
type SE3StateSpace struct {
	Low, High      r3.Vector
	RotationWeight float64
	rng            *rand.Rand
}

// NewSE3StateSpace returns a bounded SE(3) space.
func NewSE3StateSpace(low, high r3.Vector, rotationWeight float64, rng *rand.Rand) *SE3StateSpace {
	return &SE3StateSpace{Low: low, High: high, RotationWeight: rotationWeight, rng: rng}
}

func (s *SE3StateSpace) AllocState() State { return &SE3State{Rot: quat.Number{Real: 1}} }

func (s *SE3StateSpace) CopyState(dst, src State) {
	*dst.(*SE3State) = *src.(*SE3State)
}

func (s *SE3StateSpace) CloneState(src State) State {
	v := *src.(*SE3State)
	return &v
}

func (s *SE3StateSpace) Distance(a, b State) float64 {
	av, bv := a.(*SE3State), b.(*SE3State)
	lin := av.Pos.Sub(bv.Pos).Norm()
	dot := quatDot(av.Rot, bv.Rot)
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	ang := 2 * math.Acos(dot)
	return lin + s.RotationWeight*ang
}

func (s *SE3StateSpace) Interpolate(a, b State, t float64, out State) {
	av, bv, ov := a.(*SE3State), b.(*SE3State), out.(*SE3State)
	ov.Pos = av.Pos.Add(bv.Pos.Sub(av.Pos).Mul(t))
	ov.Rot = slerp(av.Rot, bv.Rot, t)
}

func (s *SE3StateSpace) HasSymmetricInterpolate() bool { return true }

func (s *SE3StateSpace) SampleUniform(out State) {
	ov := out.(*SE3State)
	ov.Pos = r3.Vector{
		X: s.Low.X + s.rng.Float64()*(s.High.X-s.Low.X),
		Y: s.Low.Y + s.rng.Float64()*(s.High.Y-s.Low.Y),
		Z: s.Low.Z + s.rng.Float64()*(s.High.Z-s.Low.Z),
	}
	ov.Rot = randomUnitQuat(s.rng)
}

func (s *SE3StateSpace) SampleUniformNear(out State, center State, radius float64) {
	c, ov := center.(*SE3State), out.(*SE3State)
	ov.Pos = r3.Vector{
		X: clamp(c.Pos.X+(s.rng.Float64()*2-1)*radius, s.Low.X, s.High.X),
		Y: clamp(c.Pos.Y+(s.rng.Float64()*2-1)*radius, s.Low.Y, s.High.Y),
		Z: clamp(c.Pos.Z+(s.rng.Float64()*2-1)*radius, s.Low.Z, s.High.Z),
	}
	axis := [3]float64{s.rng.NormFloat64(), s.rng.NormFloat64(), s.rng.NormFloat64()}
	norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if norm == 0 {
		ov.Rot = c.Rot
		return
	}
	angle := s.rng.Float64() * radius
	half := angle / 2
	sinHalf := math.Sin(half) / norm
	delta := quat.Number{Real: math.Cos(half), Imag: axis[0] * sinHalf, Jmag: axis[1] * sinHalf, Kmag: axis[2] * sinHalf}
	ov.Rot = normalizeQuat(quat.Mul(delta, c.Rot))
}

func (s *SE3StateSpace) SatisfiesBounds(st State) bool {
	v := st.(*SE3State)
	return v.Pos.X >= s.Low.X && v.Pos.X <= s.High.X &&
		v.Pos.Y >= s.Low.Y && v.Pos.Y <= s.High.Y &&
		v.Pos.Z >= s.Low.Z && v.Pos.Z <= s.High.Z
}

func (s *SE3StateSpace) GetMaximumExtent() float64 {
	diag := s.High.Sub(s.Low).Norm()
	return diag + s.RotationWeight*math.Pi
}

func (s *SE3StateSpace) GetSpaceMeasure() float64 {
	d := s.High.Sub(s.Low)
	return d.X * d.Y * d.Z * 2 * math.Pi * math.Pi
}

func (s *SE3StateSpace) GetStateDimension() int { return 6 }
