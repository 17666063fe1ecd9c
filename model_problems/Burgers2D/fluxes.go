package Burgers2D

import (
	"math"

	"github.com/notargets/gofv/types"
)

// PhysicalFlux is the flux of state x projected onto the normal n
func (tc *TestCase) PhysicalFlux(x, n types.Vec2) (f types.Vec2) {
	var (
		u, v = x[0], x[1]
		un   = saturate(u*n[0] + v*n[1])
	)
	f = types.Vec2{saturate(0.5 * u * un), saturate(0.5 * v * un)}
	return
}

// WaveSpeed bounds the characteristic speed of state x
func (tc *TestCase) WaveSpeed(x types.Vec2) float64 {
	return saturate(x.Scale(0.5).Norm()) // To be checked against the flux Jacobian eigenvalues
}

// Flux is the Rusanov flux from xi towards xj across a face with normal n
func (tc *TestCase) Flux(xi, xj, n types.Vec2) (f types.Vec2) {
	var (
		fi, fj = tc.PhysicalFlux(xi, n), tc.PhysicalFlux(xj, n)
		maxV   = math.Max(tc.WaveSpeed(xi), tc.WaveSpeed(xj))
	)
	// Halves are taken before summing so finite states never overflow into Inf - Inf
	for c := 0; c < 2; c++ {
		jump := saturate(maxV * (0.5*xj[c] - 0.5*xi[c]))
		f[c] = saturate(0.5*fi[c] + 0.5*fj[c] - jump)
	}
	return
}

// DtMax is the stable step for a face of characteristic length h
func (tc *TestCase) DtMax(xi, xj types.Vec2, h float64) (dt float64) {
	maxV := math.Max(tc.WaveSpeed(xi), tc.WaveSpeed(xj))
	if maxV == 0 {
		return math.MaxFloat64
	}
	return saturate(h / maxV)
}

// saturate clamps an overflowed product to the largest finite value of the same sign
func saturate(a float64) float64 {
	switch {
	case math.IsInf(a, 1):
		return math.MaxFloat64
	case math.IsInf(a, -1):
		return -math.MaxFloat64
	}
	return a
}
