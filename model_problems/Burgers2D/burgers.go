package Burgers2D

import (
	"fmt"

	"github.com/notargets/gofv/types"
)

/*
The 2D inviscid vector Burgers' equations with a source term, written in conservative (flux) form:

				∂/∂t [ U ] + ∇⋅F(U) = S(x)

				U  = [ u ]
                     [ v ]

For a face with normal n = (nx, ny) the normal projection of the flux is

				u_n   = u * nx + v * ny
				F(U)⋅n = [ ½ u u_n ]
                         [ ½ v u_n ]

Key Properties:
    Hyperbolic system: The fluxes depend nonlinearly on the conserved variables.
    Shock formation: A compressive initial condition will evolve into a shock wave.
    Advection-dominated: No viscosity, so the numerical flux carries all of the dissipation.

Faces are solved with the Rusanov (local Lax Friedrichs) approximate Riemann solver:

				F* = ½ (F(U_L)⋅n + F(U_R)⋅n) - ½ λ (U_R - U_L)
where:
				λ = max(λ(U_L), λ(U_R))
				λ(U) = ½ |U|

The wave speed bound λ(U) = ½ |U| has not been verified against the eigenvalues of the flux
Jacobian. It is kept as is, and the tests pin this formula.

The source term only forces the first component and grows exponentially in x:

				S(x) = [ 0.02 exp(μ₁ x) ]
                       [       0        ]

Boundary faces use a ghost state. When the flow enters the domain (U⋅n < 0) the ghost state
is set by the boundary kind, otherwise the interior state is extrapolated. The boundary flux
is the physical flux of the ghost state, not a two sided Riemann flux.
*/

// TestCase is the Burgers test case: μ₀ is the inflow value, μ₁ the source growth rate
type TestCase struct {
	Mu  [2]float64
	BCs map[types.BCTAG]types.BCFLAG
}

func NewTestCase(mu [2]float64) (tc *TestCase) {
	tc = &TestCase{
		Mu:  mu,
		BCs: DefaultBCs(),
	}
	return
}

// DefaultBCs maps the four sides of the rectangle to their boundary kinds
func DefaultBCs() map[types.BCTAG]types.BCFLAG {
	return map[types.BCTAG]types.BCFLAG{
		types.BC_YMin: types.BC_Wall,
		types.BC_XMax: types.BC_In,
		types.BC_YMax: types.BC_Extrapolate,
		types.BC_XMin: types.BC_Extrapolate,
	}
}

// WithBCs replaces the boundary kinds of the named sides, other sides keep their kind
func (tc *TestCase) WithBCs(named map[string]string) (err error) {
	bcs := make(map[types.BCTAG]types.BCFLAG, len(tc.BCs))
	for tag, flag := range tc.BCs {
		bcs[tag] = flag
	}
	for name, kind := range named {
		var (
			tag  types.BCTAG
			flag types.BCFLAG
		)
		if tag, err = types.NewBCTAG(name); err != nil {
			return
		}
		if flag, err = types.NewBCFLAG(kind); err != nil {
			return fmt.Errorf("boundary %s: %w", name, err)
		}
		bcs[tag] = flag
	}
	tc.BCs = bcs
	return
}

// Initial is the uniform starting state
func (tc *TestCase) Initial(nVerts int) (x []types.Vec2) {
	x = make([]types.Vec2, nVerts)
	for i := range x {
		x[i] = types.Vec2{1, 1}
	}
	return
}

func (tc *TestCase) Print() {
	fmt.Printf("Vector Burgers Equations in 2 Dimensions\n")
	fmt.Printf("Mu = [%8.5f, %8.5f]\n", tc.Mu[0], tc.Mu[1])
	for _, tag := range types.SortedTags(tc.BCs) {
		fmt.Printf("BCs[%d:%s] = %s\n", int(tag), tag, tc.BCs[tag])
	}
}
