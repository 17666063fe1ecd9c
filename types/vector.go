package types

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec2 holds a two component state or a face normal
type Vec2 [2]float64

func NewVec2(a, b float64) Vec2 { return Vec2{a, b} }

func (v Vec2) Add(w Vec2) Vec2      { return Vec2{v[0] + w[0], v[1] + w[1]} }
func (v Vec2) Sub(w Vec2) Vec2      { return Vec2{v[0] - w[0], v[1] - w[1]} }
func (v Vec2) Scale(a float64) Vec2 { return Vec2{a * v[0], a * v[1]} }
func (v Vec2) Neg() Vec2            { return Vec2{-v[0], -v[1]} }
func (v Vec2) Dot(w Vec2) float64   { return v[0]*w[0] + v[1]*w[1] }

func (v Vec2) AddScaled(a float64, w Vec2) Vec2 {
	return Vec2{v[0] + a*w[0], v[1] + a*w[1]}
}

// Norm is the Euclidean length
func (v Vec2) Norm() float64 {
	return floats.Norm(v[:], 2)
}

func (v Vec2) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
