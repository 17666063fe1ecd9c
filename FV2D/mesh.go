package FV2D

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gofv/types"
)

/*
Mesh is a vertex centered finite volume mesh built on a uniform rectangular grid of Nx x Ny cells.

The control volume of each vertex is the rectangle of the dual mesh around it, cut by the domain
boundary, so edge vertices own half cells and corner vertices own quarter cells. Vertex (i,j) sits
at (i*dx, j*dy) and the dual faces cross the grid edges at their midpoints.

Interior faces separate two neighboring vertices, their normal points from Verts[0] towards Verts[1].
Boundary faces belong to one vertex, their normal points out of the domain and they carry the tag
of the side they lie on.
*/
type Mesh struct {
	Lx, Ly    float64
	Nx, Ny    int          // Cells in each direction
	X         []types.Vec2 // Vertex coordinates
	Volume    []float64    // Dual cell area of each vertex
	Faces     []Face       // Interior faces
	BFaces    []Face       // Boundary faces
	VertFaces [][]int      // Faces of each vertex, indices >= len(Faces) address BFaces
}

type Face struct {
	Verts  [2]int // Verts[1] is -1 for a boundary face
	Normal types.Vec2
	Length float64
	Tag    types.BCTAG // Zero for interior faces
}

func (f Face) IsBoundary() bool { return f.Verts[1] < 0 }

func NewRectUniform(lx float64, nx int, ly float64, ny int) (m *Mesh, err error) {
	if nx < 1 || ny < 1 {
		err = fmt.Errorf("mesh needs at least one cell in each direction, have %d x %d", nx, ny)
		return
	}
	if !(lx > 0) || !(ly > 0) {
		err = fmt.Errorf("mesh lengths must be positive, have %v x %v", lx, ly)
		return
	}
	var (
		NVx, NVy = nx + 1, ny + 1
		NV       = NVx * NVy
		dx, dy   = lx / float64(nx), ly / float64(ny)
	)
	m = &Mesh{
		Lx: lx, Ly: ly,
		Nx: nx, Ny: ny,
		X:         make([]types.Vec2, NV),
		Volume:    make([]float64, NV),
		VertFaces: make([][]int, NV),
	}
	// Width of the dual cell in each direction, halved on the boundary
	wx := func(i int) float64 {
		if i == 0 || i == nx {
			return 0.5 * dx
		}
		return dx
	}
	wy := func(j int) float64 {
		if j == 0 || j == ny {
			return 0.5 * dy
		}
		return dy
	}
	for j := 0; j < NVy; j++ {
		for i := 0; i < NVx; i++ {
			v := m.VertIndex(i, j)
			m.X[v] = types.Vec2{float64(i) * dx, float64(j) * dy}
			m.Volume[v] = wx(i) * wy(j)
		}
	}
	addFace := func(vi, vj int, normal types.Vec2, length float64) {
		m.Faces = append(m.Faces, Face{
			Verts:  [2]int{vi, vj},
			Normal: normal,
			Length: length,
		})
	}
	for j := 0; j < NVy; j++ {
		for i := 0; i < NVx; i++ {
			v := m.VertIndex(i, j)
			if i < nx {
				addFace(v, m.VertIndex(i+1, j), types.Vec2{1, 0}, wy(j))
			}
			if j < ny {
				addFace(v, m.VertIndex(i, j+1), types.Vec2{0, 1}, wx(i))
			}
		}
	}
	addBFace := func(v int, tag types.BCTAG, normal types.Vec2, length float64) {
		m.BFaces = append(m.BFaces, Face{
			Verts:  [2]int{v, -1},
			Normal: normal,
			Length: length,
			Tag:    tag,
		})
	}
	for i := 0; i < NVx; i++ {
		addBFace(m.VertIndex(i, 0), types.BC_YMin, types.Vec2{0, -1}, wx(i))
	}
	for j := 0; j < NVy; j++ {
		addBFace(m.VertIndex(nx, j), types.BC_XMax, types.Vec2{1, 0}, wy(j))
	}
	for i := 0; i < NVx; i++ {
		addBFace(m.VertIndex(i, ny), types.BC_YMax, types.Vec2{0, 1}, wx(i))
	}
	for j := 0; j < NVy; j++ {
		addBFace(m.VertIndex(0, j), types.BC_XMin, types.Vec2{-1, 0}, wy(j))
	}
	for f, face := range m.Faces {
		m.VertFaces[face.Verts[0]] = append(m.VertFaces[face.Verts[0]], f)
		m.VertFaces[face.Verts[1]] = append(m.VertFaces[face.Verts[1]], f)
	}
	for b, face := range m.BFaces {
		m.VertFaces[face.Verts[0]] = append(m.VertFaces[face.Verts[0]], len(m.Faces)+b)
	}
	return
}

func (m *Mesh) NVerts() int { return len(m.X) }

func (m *Mesh) Vert(i int) types.Vec2 { return m.X[i] }

// VertIndex is the index of the vertex in column i, row j
func (m *Mesh) VertIndex(i, j int) int { return i + j*(m.Nx+1) }

// GetFace returns face n, where n >= len(Faces) addresses the boundary faces
func (m *Mesh) GetFace(n int) Face {
	if n < len(m.Faces) {
		return m.Faces[n]
	}
	return m.BFaces[n-len(m.Faces)]
}

// CharacteristicLength is the length scale used to bound the step of face n
func (m *Mesh) CharacteristicLength(n int) float64 {
	f := m.GetFace(n)
	vol := m.Volume[f.Verts[0]]
	if !f.IsBoundary() && m.Volume[f.Verts[1]] < vol {
		vol = m.Volume[f.Verts[1]]
	}
	return vol / f.Length
}

/*
Divergence builds the sparse operator that turns face fluxes into the rate of change of the
vertex states. Row v, column f holds -Length/Volume[v] when the normal of face f points out of
the dual cell of v, and +Length/Volume[v] when it points in. Boundary faces occupy the columns
after the interior faces.
*/
func (m *Mesh) Divergence() *sparse.CSR {
	var (
		NF  = len(m.Faces) + len(m.BFaces)
		dok = sparse.NewDOK(m.NVerts(), NF)
	)
	for n := 0; n < NF; n++ {
		f := m.GetFace(n)
		vi := f.Verts[0]
		dok.Set(vi, n, -f.Length/m.Volume[vi])
		if !f.IsBoundary() {
			vj := f.Verts[1]
			dok.Set(vj, n, f.Length/m.Volume[vj])
		}
	}
	return dok.ToCSR()
}
