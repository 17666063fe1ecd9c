package FV2D

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notargets/gofv/types"
)

var (
	ErrNotImplemented = errors.New("not implemented")
	ErrDiverged       = errors.New("solution diverged")
)

// Convective supplies the numerical fluxes across interior and boundary faces
type Convective interface {
	Flux(xi, xj, n types.Vec2) types.Vec2
	BoundaryFlux(xi types.Vec2, tag types.BCTAG, n types.Vec2) types.Vec2
	DtMax(xi, xj types.Vec2, h float64) float64
	BoundaryDtMax(xi types.Vec2, tag types.BCTAG, n types.Vec2, h float64) float64
}

// Source supplies a per vertex forcing term
type Source interface {
	HasSource() bool
	Source(i int, p types.Vec2) types.Vec2
	SourceDtMax(i int, p types.Vec2) float64
}

// Linearized is only needed for implicit time stepping
type Linearized interface {
	JacFlux(xi, xj, n, dxi, dxj types.Vec2) types.Vec2
	JacBoundaryFlux(xi types.Vec2, tag types.BCTAG, n, dxi types.Vec2) types.Vec2
	JacSource(i int, p, dx types.Vec2) types.Vec2
}

type TemporalScheme uint8

const (
	SCHEME_Euler TemporalScheme = iota
	SCHEME_RK3
)

var (
	SchemeNames = map[string]TemporalScheme{
		"euler": SCHEME_Euler,
		"rk1":   SCHEME_Euler,
		"rk3":   SCHEME_RK3,
	}
	SchemePrintNames = []string{"Forward Euler", "SSP Runge Kutta 3"}
)

func (ts TemporalScheme) Print() (txt string) {
	txt = SchemePrintNames[ts]
	return
}

func NewTemporalScheme(label string) (ts TemporalScheme, err error) {
	var ok bool
	label = strings.ToLower(label)
	if ts, ok = SchemeNames[label]; !ok {
		err = fmt.Errorf("unable to use time integration scheme named %s", label)
	}
	return
}

// checkLinearized verifies every model taking part in an implicit step can be linearized
func checkLinearized(conv Convective, src Source) (err error) {
	if _, ok := conv.(Linearized); !ok {
		return fmt.Errorf("%w: implicit discretization needs flux jacobians, %T does not provide them",
			ErrNotImplemented, conv)
	}
	if src != nil && src.HasSource() {
		if _, ok := src.(Linearized); !ok {
			return fmt.Errorf("%w: implicit discretization needs source jacobians, %T does not provide them",
				ErrNotImplemented, src)
		}
	}
	return
}
