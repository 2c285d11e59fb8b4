package statespace

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/num/quat"
)

// SO3State is a unit quaternion representing a 3D rotation.
type SO3State struct{ Q quat.Number }

// SO3StateSpace is the space of spatial rotations, represented as unit
// quaternions (double-covering SO(3), as is conventional).
type SO3StateSpace struct {
	rng *rand.Rand
}

// NewSO3StateSpace returns the SO(3) rotation space.
func NewSO3StateSpace(rng *rand.Rand) *SO3StateSpace {
	return &SO3StateSpace{rng: rng}
}

func normalizeQuat(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// slerp performs spherical linear interpolation between two unit
// quaternions, taking the shorter arc.
func slerp(a, b quat.Number, t float64) quat.Number {
	dot := quatDot(a, b)
	if dot < 0 {
		b = quat.Scale(-1, b)
		dot = -dot
	}
	if dot > 0.9995 {
		// nearly colinear: fall back to linear interpolation + renormalize
		out := quat.Number{
			Real: a.Real + t*(b.Real-a.Real),
			Imag: a.Imag + t*(b.Imag-a.Imag),
			Jmag: a.Jmag + t*(b.Jmag-a.Jmag),
			Kmag: a.Kmag + t*(b.Kmag-a.Kmag),
		}
		return normalizeQuat(out)
	}
	theta := math.Acos(dot)
	sinTheta := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sinTheta
	wb := math.Sin(t*theta) / sinTheta
	return quat.Number{
		Real: wa*a.Real + wb*b.Real,
		Imag: wa*a.Imag + wb*b.Imag,
		Jmag: wa*a.Jmag + wb*b.Jmag,
		Kmag: wa*a.Kmag + wb*b.Kmag,
	}
}

func randomUnitQuat(rng *rand.Rand) quat.Number {
	// Shoemake's method for uniform random rotations.
	u1, u2, u3 := rng.Float64(), rng.Float64(), rng.Float64()
	s1, c1 := math.Sqrt(1-u1), math.Sqrt(u1)
	return quat.Number{
		Real: c1 * math.Sin(2*math.Pi*u3),
		Imag: s1 * math.Sin(2*math.Pi*u2),
		Jmag: s1 * math.Cos(2*math.Pi*u2),
		Kmag: c1 * math.Cos(2*math.Pi*u3),
	}
}

func (s *SO3StateSpace) AllocState() State { return &SO3State{Q: quat.Number{Real: 1}} }

func (s *SO3StateSpace) CopyState(dst, src State) {
	dst.(*SO3State).Q = src.(*SO3State).Q
}

func (s *SO3StateSpace) CloneState(src State) State {
	return &SO3State{Q: src.(*SO3State).Q}
}

// Distance returns the angle (in radians, [0,pi]) of the shortest rotation
// taking a to b.
// It uses the half-angle form 4*atan2(|qa-qb|, |qa+qb|), which stays
// accurate for nearly equal rotations where acos of the dot product loses
// about half the significant digits.
func (s *SO3StateSpace) Distance(a, b State) float64 {
	qa, qb := a.(*SO3State).Q, b.(*SO3State).Q
	if quatDot(qa, qb) < 0 {
		qb = quat.Scale(-1, qb)
	}
	return 4 * math.Atan2(quat.Abs(quat.Sub(qa, qb)), quat.Abs(quat.Add(qa, qb)))
}

func (s *SO3StateSpace) Interpolate(a, b State, t float64, out State) {
	out.(*SO3State).Q = slerp(a.(*SO3State).Q, b.(*SO3State).Q, t)
}

func (s *SO3StateSpace) HasSymmetricInterpolate() bool { return true }

func (s *SO3StateSpace) SampleUniform(out State) {
	out.(*SO3State).Q = randomUnitQuat(s.rng)
}

func (s *SO3StateSpace) SampleUniformNear(out State, center State, radius float64) {
	// Perturb by a small random-axis rotation of magnitude <= radius, then
	// compose with center.
	axis := [3]float64{s.rng.NormFloat64(), s.rng.NormFloat64(), s.rng.NormFloat64()}
	norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if norm == 0 {
		out.(*SO3State).Q = center.(*SO3State).Q
		return
	}
	angle := s.rng.Float64() * radius
	half := angle / 2
	sinHalf := math.Sin(half) / norm
	delta := quat.Number{
		Real: math.Cos(half),
		Imag: axis[0] * sinHalf,
		Jmag: axis[1] * sinHalf,
		Kmag: axis[2] * sinHalf,
	}
	out.(*SO3State).Q = normalizeQuat(quat.Mul(delta, center.(*SO3State).Q))
}

func (s *SO3StateSpace) SatisfiesBounds(State) bool { return true }

func (s *SO3StateSpace) GetMaximumExtent() float64 { return math.Pi }

func (s *SO3StateSpace) GetSpaceMeasure() float64 { return 2 * math.Pi * math.Pi }

func (s *SO3StateSpace) GetStateDimension() int { return 3 }
