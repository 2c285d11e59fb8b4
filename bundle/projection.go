// Package bundle implements the projection maps (spec §4.1, C2) that tie
// adjacent bundle levels together: project lifts a state on Xk down to
// Xk-1, and merge combines an Xk-1 state with a fiber sample back up to
// Xk. No third-party library is needed here; this is pure interface glue
// over statespace.State, not state-space arithmetic in its own right.
package bundle

import "github.com/quotientplan/bundleplan/statespace"

// Projection is the contract between adjacent bundle levels (spec §4.1).
// Implementations must satisfy the round-trip law Project(Merge(x, f)) ==
// x for every base state x and fiber sample f.
type Projection interface {
	// Project lifts a state from the higher (bundle) space down to the
	// lower (base) space.
	Project(bundleState statespace.State, out statespace.State)
	// Merge combines a base-space state with a fiber sample to produce a
	// bundle-space state.
	Merge(baseState statespace.State, fiber statespace.State, out statespace.State)
	// FiberDimension is dim(bundle space) - dim(base space).
	FiberDimension() int
	// BaseSpace is the Xk-1 this projection targets.
	BaseSpace() statespace.StateSpace
	// FiberSpace is Fk, the kernel of the projection; nil dimension means
	// the fiber space has dimension 0 and Merge ignores its fiber arg.
	FiberSpace() statespace.StateSpace
}

// identityProjection is used at the bottom of a bundle stack (level 0 has
// no projection below it) and whenever dim(Xk) == dim(Xk-1).
type identityProjection struct {
	space statespace.StateSpace
}

// NewIdentityProjection returns a Projection whose fiber is zero-dimensional:
// Project and Merge are both identity.
func NewIdentityProjection(space statespace.StateSpace) Projection {
	return &identityProjection{space: space}
}

func (p *identityProjection) Project(bundleState, out statespace.State) {
	p.space.CopyState(out, bundleState)
}

func (p *identityProjection) Merge(baseState, _ statespace.State, out statespace.State) {
	p.space.CopyState(out, baseState)
}

func (p *identityProjection) FiberDimension() int                  { return 0 }
func (p *identityProjection) BaseSpace() statespace.StateSpace     { return p.space }
func (p *identityProjection) FiberSpace() statespace.StateSpace    { return nil }
