package TimeStep

import (
	"fmt"
	"math"
)

// Fixed always steps by DT. The running minimum of the accumulated bounds is kept only to
// report the effective CFL number.
type Fixed struct {
	DT        float64
	NVerts    int
	ProcLimit int
	dtMin     float64
	phase     Phase
}

func NewFixed(dt float64, nVerts, ProcLimit int) (f *Fixed, err error) {
	if err = checkStep("fixed time step", dt); err != nil {
		return
	}
	if nVerts < 0 {
		err = fmt.Errorf("vertex count must not be negative, have %d", nVerts)
		return
	}
	f = &Fixed{
		DT:        dt,
		NVerts:    nVerts,
		ProcLimit: ProcLimit,
		dtMin:     math.MaxFloat64,
	}
	return
}

func (f *Fixed) IsConstant() bool { return true }

func (f *Fixed) Reset() {
	f.dtMin = math.MaxFloat64
	f.phase = Accumulating
}

func (f *Fixed) Accumulate(bounds []float64) (err error) {
	if f.phase != Accumulating {
		return ErrNotAccumulating
	}
	f.dtMin = math.Min(f.dtMin, ParallelMin(bounds, f.ProcLimit))
	return
}

func (f *Fixed) Finalize() { f.phase = Finalized }

func (f *Fixed) Phase() Phase { return f.phase }

func (f *Fixed) Value() float64 { return f.DT }

func (f *Fixed) Set(dt float64) (err error) {
	if math.IsNaN(dt) || math.Abs(f.DT-dt) > Tolerance {
		err = &StepMismatchError{Fixed: f.DT, Requested: dt}
	}
	return
}

func (f *Fixed) Steps(dst []float64) []float64 { return fill(dst, f.NVerts, f.DT) }

// Bound is the smallest stable step accumulated since the last Reset
func (f *Fixed) Bound() float64 { return f.dtMin }

func (f *Fixed) Min() float64 { return f.DT }
func (f *Fixed) Max() float64 { return f.DT }

func (f *Fixed) String() string {
	return fmt.Sprintf("%.2e (cfl=%.2e)", f.DT, ratio(f.DT, f.dtMin))
}

var _ Policy = (*Fixed)(nil)
