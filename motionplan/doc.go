// Package motionplan implements the bundle-space / quotient-space
// sampling-based motion planning core: a tower of BundleLevels connected
// by projections (package bundle), grown by QRRT, QRRT*, QMP and SQMP
// planners under a single Bundle-Space Scheduler, with a sparse SPARS
// spanner, path-class enumeration and path restriction layered on top.
//
// Every planner runs strictly sequentially within and across levels
// (spec §5): there are no background goroutines here, unlike the
// parallel nearest-neighbor search this package's structure is
// otherwise modeled on.
package motionplan
