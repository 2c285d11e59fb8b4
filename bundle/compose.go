package bundle

import "github.com/quotientplan/bundleplan/statespace"

// composeProjection chains two projections end to end: Xk -> Xj -> Xi.
// Its fiber is the compound of the outer fiber (Xk over Xj) and the inner
// fiber (Xj over Xi), in that order. Used when a single spec-level bundle
// step is more naturally expressed as two simpler, reusable projections.
type composeProjection struct {
	outer Projection // Xk -> Xj
	inner Projection // Xj -> Xi
}

// NewComposeProjection returns the composition outer then inner.
func NewComposeProjection(outer, inner Projection) Projection {
	return &composeProjection{outer: outer, inner: inner}
}

func (p *composeProjection) Project(bundleState, out statespace.State) {
	mid := p.outer.BaseSpace().AllocState()
	p.outer.Project(bundleState, mid)
	p.inner.Project(mid, out)
}

func (p *composeProjection) Merge(baseState, fiber statespace.State, out statespace.State) {
	// fiber here is expected to be a statespace.CompoundState{outerFiber, innerFiber}
	cf := fiber.(statespace.CompoundState)
	mid := p.outer.BaseSpace().AllocState()
	p.inner.Merge(baseState, cf[1], mid)
	p.outer.Merge(mid, cf[0], out)
}

func (p *composeProjection) FiberDimension() int {
	return p.outer.FiberDimension() + p.inner.FiberDimension()
}

func (p *composeProjection) BaseSpace() statespace.StateSpace { return p.inner.BaseSpace() }

func (p *composeProjection) FiberSpace() statespace.StateSpace {
	return statespace.NewCompoundStateSpace(
		[]statespace.StateSpace{p.outer.FiberSpace(), p.inner.FiberSpace()}, nil)
}
