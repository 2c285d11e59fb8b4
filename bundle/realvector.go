package bundle

import "github.com/quotientplan/bundleplan/statespace"

// dropLastNProjection projects R^(n+k) -> R^n by dropping the trailing k
// coordinates; the fiber is R^k with the dropped coordinates as its state.
type dropLastNProjection struct {
	base  *statespace.RealVectorStateSpace
	fiber *statespace.RealVectorStateSpace
	n     int
	k     int
}

// NewDropLastNCoordinatesProjection builds the projection R^(n+k) -> R^n
// that forgets the last k coordinates, with fiberSpace describing bounds
// for those k coordinates (spec §4.1).
func NewDropLastNCoordinatesProjection(
	base *statespace.RealVectorStateSpace,
	fiber *statespace.RealVectorStateSpace,
) Projection {
	return &dropLastNProjection{
		base:  base,
		fiber: fiber,
		n:     base.GetStateDimension(),
		k:     fiber.GetStateDimension(),
	}
}

func (p *dropLastNProjection) Project(bundleState, out statespace.State) {
	bv := bundleState.(statespace.RealVectorState)
	ov := out.(statespace.RealVectorState)
	copy(ov, bv[:p.n])
}

func (p *dropLastNProjection) Merge(baseState, fiber statespace.State, out statespace.State) {
	bv := baseState.(statespace.RealVectorState)
	fv := fiber.(statespace.RealVectorState)
	ov := out.(statespace.RealVectorState)
	copy(ov[:p.n], bv)
	copy(ov[p.n:], fv)
}

func (p *dropLastNProjection) FiberDimension() int               { return p.k }
func (p *dropLastNProjection) BaseSpace() statespace.StateSpace  { return p.base }
func (p *dropLastNProjection) FiberSpace() statespace.StateSpace { return p.fiber }
