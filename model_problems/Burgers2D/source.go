package Burgers2D

import (
	"math"

	"github.com/notargets/gofv/types"
)

func (tc *TestCase) HasSource() bool { return true }

// Source forces the first component at vertex i, located at p
func (tc *TestCase) Source(i int, p types.Vec2) types.Vec2 {
	return types.Vec2{tc.sourceMagnitude(p), 0}
}

// SourceDtMax treats the source as a local explicit Euler stiffness, 1/|S|
func (tc *TestCase) SourceDtMax(i int, p types.Vec2) float64 {
	s := math.Abs(tc.sourceMagnitude(p))
	if s == 0 {
		return math.MaxFloat64
	}
	return 1. / s
}

func (tc *TestCase) sourceMagnitude(p types.Vec2) float64 {
	return saturate(0.02 * math.Exp(tc.Mu[1]*p[0]))
}
