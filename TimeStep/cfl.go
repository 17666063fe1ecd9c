package TimeStep

import (
	"fmt"
	"math"
)

// CFL steps by CFL times the smallest stable bound accumulated during the step
type CFL struct {
	CFL         float64
	NVerts      int
	ProcLimit   int
	dtMin       float64
	explicit    float64
	hasExplicit bool
	phase       Phase
}

func NewCFL(cfl float64, nVerts, ProcLimit int) (c *CFL, err error) {
	if err = checkStep("CFL", cfl); err != nil {
		return
	}
	if nVerts < 0 {
		err = fmt.Errorf("vertex count must not be negative, have %d", nVerts)
		return
	}
	c = &CFL{
		CFL:       cfl,
		NVerts:    nVerts,
		ProcLimit: ProcLimit,
		dtMin:     math.MaxFloat64,
	}
	return
}

func (c *CFL) IsConstant() bool { return false }

func (c *CFL) Reset() {
	c.dtMin = math.MaxFloat64
	c.hasExplicit = false
	c.phase = Accumulating
}

func (c *CFL) Accumulate(bounds []float64) (err error) {
	if c.phase != Accumulating {
		return ErrNotAccumulating
	}
	c.dtMin = math.Min(c.dtMin, ParallelMin(bounds, c.ProcLimit))
	return
}

func (c *CFL) Finalize() { c.phase = Finalized }

func (c *CFL) Phase() Phase { return c.phase }

func (c *CFL) Value() (dt float64) {
	if c.hasExplicit {
		return c.explicit
	}
	if c.dtMin == math.MaxFloat64 {
		return math.MaxFloat64
	}
	if dt = c.CFL * c.dtMin; math.IsInf(dt, 1) {
		dt = math.MaxFloat64
	}
	return
}

// Set overrides the step until the next Reset
func (c *CFL) Set(dt float64) (err error) {
	c.explicit, c.hasExplicit = dt, true
	return
}

func (c *CFL) Steps(dst []float64) []float64 { return fill(dst, c.NVerts, c.Value()) }

func (c *CFL) Bound() float64 { return c.dtMin }

func (c *CFL) Min() float64 { return c.Value() }
func (c *CFL) Max() float64 { return c.Value() }

func (c *CFL) String() string {
	dt := c.Value()
	return fmt.Sprintf("%.2e (cfl=%.2e)", dt, ratio(dt, c.dtMin))
}

var _ Policy = (*CFL)(nil)
