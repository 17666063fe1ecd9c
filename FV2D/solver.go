package FV2D

import (
	"fmt"
	"sync"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofv/TimeStep"
	"github.com/notargets/gofv/types"
	"github.com/notargets/gofv/utils"
)

type Options struct {
	ProcLimit int // Number of go routines, 0 uses all CPUs
	Scheme    TemporalScheme
	Implicit  bool
}

/*
Solver assembles first order finite volume residuals on a Mesh and advances them explicitly.

	dx_v/dt = -1/Volume[v] * Σ_faces Length * F⋅n + S_v

Face fluxes are evaluated in parallel, each face writes only its own slot. The divergence
operator then gathers them into the vertices.
*/
type Solver struct {
	Mesh   *Mesh
	Conv   Convective
	Src    Source // Optional
	Scheme TemporalScheme
	// Parallel partitions over faces (interior then boundary) and over vertices
	FacePartitions, VertPartitions *utils.PartitionMap
	div                            *sparse.CSR
	faceFlux, vertRes              [2][]float64
	res, x1, x2                    []types.Vec2
	bounds, dt                     []float64
}

func NewSolver(m *Mesh, conv Convective, src Source, opts Options) (s *Solver, err error) {
	if m == nil || conv == nil {
		err = fmt.Errorf("solver needs a mesh and a convective model")
		return
	}
	if opts.Implicit {
		if err = checkLinearized(conv, src); err != nil {
			return
		}
		// Implicit stepping is not available in this solver even for linearized models
		err = fmt.Errorf("%w: implicit time stepping", ErrNotImplemented)
		return
	}
	if opts.Scheme > SCHEME_RK3 {
		err = fmt.Errorf("unknown temporal scheme %d", opts.Scheme)
		return
	}
	var (
		NV = m.NVerts()
		NF = len(m.Faces) + len(m.BFaces)
	)
	s = &Solver{
		Mesh:           m,
		Conv:           conv,
		Src:            src,
		Scheme:         opts.Scheme,
		FacePartitions: utils.NewPartitionMap(utils.ParallelDegree(opts.ProcLimit, NF), NF),
		VertPartitions: utils.NewPartitionMap(utils.ParallelDegree(opts.ProcLimit, NV), NV),
		div:            m.Divergence(),
		res:            make([]types.Vec2, NV),
		x1:             make([]types.Vec2, NV),
		x2:             make([]types.Vec2, NV),
		bounds:         make([]float64, NV),
	}
	for n := 0; n < 2; n++ {
		s.faceFlux[n] = make([]float64, NF)
		s.vertRes[n] = make([]float64, NV)
	}
	return
}

// parallel runs fn over each bucket of pm and waits for all of them
func parallel(pm *utils.PartitionMap, fn func(kMin, kMax int)) {
	var wg = sync.WaitGroup{}
	for np := 0; np < pm.ParallelDegree; np++ {
		if pm.GetBucketDimension(np) == 0 {
			continue
		}
		kMin, kMax := pm.GetBucketRange(np)
		wg.Add(1)
		go func(kMin, kMax int) {
			defer wg.Done()
			fn(kMin, kMax)
		}(kMin, kMax)
	}
	wg.Wait()
}

// Residual computes dx/dt for every vertex into r
func (s *Solver) Residual(x, r []types.Vec2) {
	var (
		m   = s.Mesh
		NFi = len(m.Faces)
	)
	parallel(s.FacePartitions, func(kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			var F types.Vec2
			if n < NFi {
				f := m.Faces[n]
				F = s.Conv.Flux(x[f.Verts[0]], x[f.Verts[1]], f.Normal)
			} else {
				f := m.BFaces[n-NFi]
				F = s.Conv.BoundaryFlux(x[f.Verts[0]], f.Tag, f.Normal)
			}
			s.faceFlux[0][n], s.faceFlux[1][n] = F[0], F[1]
		}
	})
	for c := 0; c < 2; c++ {
		for i := range s.vertRes[c] {
			s.vertRes[c][i] = 0
		}
		s.div.MulVecTo(s.vertRes[c], false, s.faceFlux[c])
	}
	hasSource := s.Src != nil && s.Src.HasSource()
	parallel(s.VertPartitions, func(kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			r[i] = types.Vec2{s.vertRes[0][i], s.vertRes[1][i]}
			if hasSource {
				r[i] = r[i].Add(s.Src.Source(i, m.X[i]))
			}
		}
	})
}

// StableSteps computes the largest stable step of each vertex into s.bounds
func (s *Solver) StableSteps(x []types.Vec2) []float64 {
	var (
		m         = s.Mesh
		NFi       = len(m.Faces)
		hasSource = s.Src != nil && s.Src.HasSource()
	)
	parallel(s.VertPartitions, func(kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			var bnd []float64
			for _, n := range m.VertFaces[i] {
				h := m.CharacteristicLength(n)
				if n < NFi {
					f := m.Faces[n]
					bnd = append(bnd, s.Conv.DtMax(x[f.Verts[0]], x[f.Verts[1]], h))
				} else {
					f := m.BFaces[n-NFi]
					bnd = append(bnd, s.Conv.BoundaryDtMax(x[i], f.Tag, f.Normal, h))
				}
			}
			if hasSource {
				bnd = append(bnd, s.Src.SourceDtMax(i, m.X[i]))
			}
			s.bounds[i] = floats.Min(bnd)
		}
	})
	return s.bounds
}

// UpdateTimeStep runs one Reset, Accumulate, Finalize cycle of the policy on the current state
func (s *Solver) UpdateTimeStep(x []types.Vec2, ts TimeStep.Policy) (err error) {
	if err = s.checkState(x); err != nil {
		return
	}
	ts.Reset()
	// The policy splits the reduction over its own buckets
	if err = ts.Accumulate(s.StableSteps(x)); err != nil {
		return
	}
	ts.Finalize()
	return
}

// ExplicitStep advances x in place by the step of the policy
func (s *Solver) ExplicitStep(ts TimeStep.Policy, x []types.Vec2) (err error) {
	if err = s.checkState(x); err != nil {
		return
	}
	s.dt = ts.Steps(s.dt)
	if len(s.dt) != len(x) {
		return fmt.Errorf("time step policy covers %d vertices, mesh has %d", len(s.dt), len(x))
	}
	dt := s.dt
	switch s.Scheme {
	case SCHEME_Euler:
		s.Residual(x, s.res)
		s.update(func(i int) {
			x[i] = x[i].AddScaled(dt[i], s.res[i])
		})
	case SCHEME_RK3:
		s.Residual(x, s.res)
		s.update(func(i int) {
			s.x1[i] = x[i].AddScaled(dt[i], s.res[i])
		})
		s.Residual(s.x1, s.res)
		s.update(func(i int) {
			s.x2[i] = x[i].Scale(0.75).Add(s.x1[i].AddScaled(dt[i], s.res[i]).Scale(0.25))
		})
		s.Residual(s.x2, s.res)
		s.update(func(i int) {
			x[i] = x[i].Scale(1. / 3.).Add(s.x2[i].AddScaled(dt[i], s.res[i]).Scale(2. / 3.))
		})
	}
	return s.checkFinite(x)
}

func (s *Solver) update(fn func(i int)) {
	parallel(s.VertPartitions, func(kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			fn(i)
		}
	})
}

func (s *Solver) checkState(x []types.Vec2) (err error) {
	if len(x) != s.Mesh.NVerts() {
		err = fmt.Errorf("state has %d vertices, mesh has %d", len(x), s.Mesh.NVerts())
	}
	return
}

func (s *Solver) checkFinite(x []types.Vec2) (err error) {
	for i, xi := range x {
		if !xi.IsFinite() {
			return fmt.Errorf("%w: vertex %d at %v has state %v", ErrDiverged, i, s.Mesh.X[i], xi)
		}
	}
	return
}

// MaxNorm is the largest state magnitude over all vertices
func MaxNorm(x []types.Vec2) float64 {
	if len(x) == 0 {
		return 0
	}
	norms := make([]float64, len(x))
	for i, xi := range x {
		norms[i] = xi.Norm()
	}
	return floats.Max(norms)
}
