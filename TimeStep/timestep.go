/*
Package TimeStep holds the policies that decide the global time step of an explicit solver.

Each outer step follows the same cycle:

	Reset -> Accumulate (zero or more times) -> Finalize -> Value / Min / Max

Accumulate folds a chunk of per-entity stable step bounds into a running minimum. The fold
is a min reduction, so it gives the same answer however the bounds are chunked or ordered.
*/
package TimeStep

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the largest difference accepted when forcing a fixed time step
const Tolerance = 1.e-8

var (
	ErrStepMismatch    = errors.New("time step mismatch")
	ErrNotAccumulating = errors.New("time step policy is not accumulating, call Reset first")
)

type Policy interface {
	IsConstant() bool
	Reset()
	Accumulate(bounds []float64) error
	Finalize()
	Value() float64
	Set(dt float64) error
	Steps(dst []float64) []float64
	Min() float64
	Max() float64
	String() string
}

type Phase uint8

const (
	Idle Phase = iota
	Accumulating
	Finalized
)

func (p Phase) String() string {
	return [...]string{"Idle", "Accumulating", "Finalized"}[p]
}

// StepMismatchError is returned when a fixed policy is asked to take a different step
type StepMismatchError struct {
	Fixed, Requested float64
}

func (e *StepMismatchError) Error() string {
	return fmt.Sprintf("fixed time step %.2e cannot be set to %.2e", e.Fixed, e.Requested)
}

func (e *StepMismatchError) Unwrap() error { return ErrStepMismatch }

func checkStep(name string, val float64) (err error) {
	if !(val > 0) || math.IsInf(val, 0) {
		err = fmt.Errorf("%s must be positive and finite, have %v", name, val)
	}
	return
}

// fill writes val into the first n entries of dst, growing it if needed
func fill(dst []float64, n int, val float64) []float64 {
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = val
	}
	return dst
}

// ratio is the effective CFL number of a step relative to the smallest stable bound
func ratio(dt, dtMin float64) float64 {
	if dtMin == math.MaxFloat64 || dtMin <= 0 {
		return 0
	}
	return dt / dtMin
}
