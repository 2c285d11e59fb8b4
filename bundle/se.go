package bundle

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/quotientplan/bundleplan/statespace"
)

// se2ToR2Projection drops the heading from an SE(2) state, leaving R^2;
// the fiber is SO(2) (the dropped rotation).
type se2ToR2Projection struct {
	base  *statespace.RealVectorStateSpace
	fiber *statespace.SO2StateSpace
}

// NewSE2ToR2Projection builds the SE(2) -> R^2 projection of spec §4.1.
func NewSE2ToR2Projection(base *statespace.RealVectorStateSpace, fiber *statespace.SO2StateSpace) Projection {
	return &se2ToR2Projection{base: base, fiber: fiber}
}

func (p *se2ToR2Projection) Project(bundleState, out statespace.State) {
	s := bundleState.(*statespace.SE2State)
	ov := out.(statespace.RealVectorState)
	ov[0], ov[1] = s.X, s.Y
}

func (p *se2ToR2Projection) Merge(baseState, fiber statespace.State, out statespace.State) {
	bv := baseState.(statespace.RealVectorState)
	fv := fiber.(*statespace.SO2State)
	ov := out.(*statespace.SE2State)
	ov.X, ov.Y = bv[0], bv[1]
	ov.Theta = fv.Theta
}

func (p *se2ToR2Projection) FiberDimension() int               { return 1 }
func (p *se2ToR2Projection) BaseSpace() statespace.StateSpace  { return p.base }
func (p *se2ToR2Projection) FiberSpace() statespace.StateSpace { return p.fiber }

// se3ToR3Projection drops orientation from an SE(3) state, leaving R^3;
// the fiber is SO(3) (the dropped rotation).
type se3ToR3Projection struct {
	base  *statespace.RealVectorStateSpace
	fiber *statespace.SO3StateSpace
}

// NewSE3ToR3Projection builds the SE(3) -> R^3 projection of spec §4.1.
func NewSE3ToR3Projection(base *statespace.RealVectorStateSpace, fiber *statespace.SO3StateSpace) Projection {
	return &se3ToR3Projection{base: base, fiber: fiber}
}

func (p *se3ToR3Projection) Project(bundleState, out statespace.State) {
	s := bundleState.(*statespace.SE3State)
	ov := out.(statespace.RealVectorState)
	ov[0], ov[1], ov[2] = s.Pos.X, s.Pos.Y, s.Pos.Z
}

func (p *se3ToR3Projection) Merge(baseState, fiber statespace.State, out statespace.State) {
	bv := baseState.(statespace.RealVectorState)
	fv := fiber.(*statespace.SO3State)
	ov := out.(*statespace.SE3State)
	ov.Pos = r3.Vector{X: bv[0], Y: bv[1], Z: bv[2]}
	ov.Rot = fv.Q
}

func (p *se3ToR3Projection) FiberDimension() int               { return 3 }
func (p *se3ToR3Projection) BaseSpace() statespace.StateSpace  { return p.base }
func (p *se3ToR3Projection) FiberSpace() statespace.StateSpace { return p.fiber }

// so3ToSO2Projection projects a 3D orientation down to its heading (yaw)
// component, keeping pitch+roll as the fiber. This uses the Euler
// decomposition (yaw-pitch-roll, Z-Y-X convention) to split the
// quaternion, which is the conventional way OMPL-style bundles shed a
// single rotational degree of freedom.
type so3ToSO2Projection struct {
	base  *statespace.SO2StateSpace
	fiber *statespace.RealVectorStateSpace // pitch, roll
}

// NewSO3ToSO2Projection builds the SO(3) -> SO(2) projection of spec §4.1.
func NewSO3ToSO2Projection(base *statespace.SO2StateSpace, fiber *statespace.RealVectorStateSpace) Projection {
	return &so3ToSO2Projection{base: base, fiber: fiber}
}

func yawPitchRollFromQuat(q quat.Number) (yaw, pitch, roll float64) {
	// standard Z-Y-X Euler extraction from a unit quaternion
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	siny := 2 * (w*z + x*y)
	cosy := 1 - 2*(y*y+z*z)
	yaw = math.Atan2(siny, cosy)
	sinp := 2 * (w*y - z*x)
	pitch = asinClamped(sinp)
	sinr := 2 * (w*x + y*z)
	cosr := 1 - 2*(x*x+y*y)
	roll = math.Atan2(sinr, cosr)
	return
}

func asinClamped(v float64) float64 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return math.Asin(v)
}

func quatFromYawPitchRoll(yaw, pitch, roll float64) quat.Number {
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

func (p *so3ToSO2Projection) Project(bundleState, out statespace.State) {
	s := bundleState.(*statespace.SO3State)
	yaw, _, _ := yawPitchRollFromQuat(s.Q)
	out.(*statespace.SO2State).Theta = yaw
}

func (p *so3ToSO2Projection) Merge(baseState, fiber statespace.State, out statespace.State) {
	yaw := baseState.(*statespace.SO2State).Theta
	pr := fiber.(statespace.RealVectorState)
	out.(*statespace.SO3State).Q = quatFromYawPitchRoll(yaw, pr[0], pr[1])
}

func (p *so3ToSO2Projection) FiberDimension() int               { return 2 }
func (p *so3ToSO2Projection) BaseSpace() statespace.StateSpace  { return p.base }
func (p *so3ToSO2Projection) FiberSpace() statespace.StateSpace { return p.fiber }
