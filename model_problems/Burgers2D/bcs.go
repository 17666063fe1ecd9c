package Burgers2D

import (
	"github.com/notargets/gofv/types"
)

// ExteriorState is the ghost state imposed by a boundary kind when flow enters through tag
func (tc *TestCase) ExteriorState(tag types.BCTAG, xi types.Vec2) types.Vec2 {
	switch tc.BCs[tag] {
	case types.BC_Wall:
		return types.Vec2{0, 0}
	case types.BC_In:
		return types.Vec2{tc.Mu[0], 0}
	default:
		return xi
	}
}

// GhostState resolves the exterior state of a boundary face with outward normal n
func (tc *TestCase) GhostState(xi types.Vec2, tag types.BCTAG, n types.Vec2) types.Vec2 {
	if xi.Dot(n) < 0 { // Inflow
		return tc.ExteriorState(tag, xi)
	}
	return xi // Outflow, extrapolate from the interior
}

// BoundaryFlux is the one sided physical flux of the ghost state
func (tc *TestCase) BoundaryFlux(xi types.Vec2, tag types.BCTAG, n types.Vec2) types.Vec2 {
	return tc.PhysicalFlux(tc.GhostState(xi, tag, n), n)
}

// BoundaryDtMax is the stable step of a boundary face of characteristic length h
func (tc *TestCase) BoundaryDtMax(xi types.Vec2, tag types.BCTAG, n types.Vec2, h float64) float64 {
	return tc.DtMax(xi, tc.GhostState(xi, tag, n), h)
}
