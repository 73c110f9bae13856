package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/radapt/utils"
)

const DefaultHopCap = 100 // Raytrace edge hop budget before giving up

type Triangulation struct {
	K, Nv  int
	VX, VY utils.Vector         // Vertex coordinates, the only mesh state mutated by deformation
	EToV   utils.Matrix         // K x 3 matrix mapping vertices to triangles
	EToE   [][3]int             // Neighbor element across each tri edge, -1 = domain boundary
	Edges  map[EdgeNumber]*Edge // map of edges, key is the edge number, an int packed with the two vertices of each edge
	EdgeBC [][3]int             // BC tag per tri edge, 0 = interior
	VertBC []int                // BC tag per vertex, 0 = interior
	BParam []float64            // Normalized boundary parameter per vertex, valid where VertBC != 0
	VToE   []int                // One element containing each vertex, used as a search seed
	HopCap int
}

func NewTriangulation(VX, VY utils.Vector, EToV, BCType utils.Matrix) (tmesh *Triangulation) {
	var (
		K, _ = EToV.Dims()
	)
	tmesh = &Triangulation{
		K:      K,
		Nv:     VX.Len(),
		VX:     VX,
		VY:     VY,
		EToV:   EToV,
		EToE:   make([][3]int, K),
		Edges:  make(map[EdgeNumber]*Edge),
		EdgeBC: make([][3]int, K),
		VertBC: make([]int, VX.Len()),
		BParam: make([]float64, VX.Len()),
		VToE:   make([]int, VX.Len()),
		HopCap: DefaultHopCap,
	}
	for i := range tmesh.VToE {
		tmesh.VToE[i] = -1
	}
	// Create edges map
	for k := 0; k < K; k++ {
		verts := tmesh.GetTriVerts(k)
		bcFaces := [3]int{int(BCType.At(k, 0)), int(BCType.At(k, 1)), int(BCType.At(k, 2))}
		tmesh.NewEdge([2]int{verts[0], verts[1]}, k, First, bcFaces[0])
		tmesh.NewEdge([2]int{verts[1], verts[2]}, k, Second, bcFaces[1])
		tmesh.NewEdge([2]int{verts[2], verts[0]}, k, Third, bcFaces[2])
		for i := 0; i < 3; i++ {
			tmesh.EdgeBC[k][i] = bcFaces[i]
			if tmesh.VToE[verts[i]] == -1 {
				tmesh.VToE[verts[i]] = k
			}
		}
	}
	tmesh.buildConnectivity()
	return
}

// NewTriangulationAutoBC tags every single-connection edge with bcTag, for
// meshes whose generator produces no BC groups (eg. Delaunay output)
func NewTriangulationAutoBC(VX, VY utils.Vector, EToV utils.Matrix, bcTag int) (tmesh *Triangulation) {
	var (
		K, _   = EToV.Dims()
		BCType = utils.NewMatrix(K, 3)
	)
	tmesh = NewTriangulation(VX, VY, EToV, BCType)
	for _, e := range tmesh.Edges {
		if e.NumConnectedTris == 1 {
			e.BCType = bcTag
			k := int(e.ConnectedTris[0])
			i := e.ConnectedTriEdgeNumber[0].Index()
			tmesh.EdgeBC[k][i] = bcTag
		}
	}
	tmesh.markBoundaryVerts()
	return
}

func (tmesh *Triangulation) GetTriVerts(k int) (verts [3]int) {
	verts = [3]int{int(tmesh.EToV.At(k, 0)), int(tmesh.EToV.At(k, 1)), int(tmesh.EToV.At(k, 2))}
	return
}

func (tmesh *Triangulation) VertexCoords(v int) (x, y float64) {
	x, y = tmesh.VX.AtVec(v), tmesh.VY.AtVec(v)
	return
}

func (tmesh *Triangulation) NewEdge(verts [2]int, connectedElementNumber int,
	intEdgeNumber InternalEdgeNumber, bcFace int) (e *Edge) {
	var (
		ok bool
	)
	// Check if edge is already stored, allocate new one if not
	en := NewEdgeNumber(verts)
	conn := 1 // If edge exists, this will be the second (max) connection
	if e, ok = tmesh.Edges[en]; !ok {
		e = &Edge{}
		tmesh.Edges[en] = e
		conn = 0
	} else {
		if e.NumConnectedTris > 1 {
			panic("incorrect edge construction, more than two connected triangles")
		}
	}
	e.ConnectedTris[conn] = uint32(connectedElementNumber)
	e.ConnectedTriEdgeNumber[conn] = intEdgeNumber
	e.NumConnectedTris++
	if bcFace != 0 {
		e.BCType = bcFace
	}
	return
}

func (tmesh *Triangulation) buildConnectivity() {
	for k := 0; k < tmesh.K; k++ {
		tmesh.EToE[k] = [3]int{-1, -1, -1}
	}
	for _, e := range tmesh.Edges {
		if e.NumConnectedTris == 2 {
			k0, i0 := int(e.ConnectedTris[0]), e.ConnectedTriEdgeNumber[0].Index()
			k1, i1 := int(e.ConnectedTris[1]), e.ConnectedTriEdgeNumber[1].Index()
			tmesh.EToE[k0][i0] = k1
			tmesh.EToE[k1][i1] = k0
		}
	}
	tmesh.markBoundaryVerts()
}

func (tmesh *Triangulation) markBoundaryVerts() {
	for en, e := range tmesh.Edges {
		if e.NumConnectedTris == 1 {
			verts := en.GetVertices(false)
			tag := e.BCType
			if tag == 0 {
				tag = 1 // Untagged boundary edges still pin their vertices to the boundary
			}
			tmesh.VertBC[verts[0]] = tag
			tmesh.VertBC[verts[1]] = tag
		}
	}
}

func (tmesh *Triangulation) IsBoundaryVertex(v int) bool {
	return tmesh.VertBC[v] != 0
}

// EdgeVerts returns the two vertices of local edge i of element k, ordered
// as the CCW traversal within the triangle
func (tmesh *Triangulation) EdgeVerts(k, i int) (v1, v2 int) {
	verts := tmesh.GetTriVerts(k)
	v1, v2 = verts[i], verts[(i+1)%3]
	return
}

func (tmesh *Triangulation) SignedArea(k int) (area float64) {
	var (
		verts  = tmesh.GetTriVerts(k)
		x1, y1 = tmesh.VertexCoords(verts[0])
		x2, y2 = tmesh.VertexCoords(verts[1])
		x3, y3 = tmesh.VertexCoords(verts[2])
	)
	area = 0.5 * ((x2-x1)*(y3-y1) - (x3-x1)*(y2-y1))
	return
}

func (tmesh *Triangulation) Centroid(k int) (x, y float64) {
	var (
		verts = tmesh.GetTriVerts(k)
	)
	for _, v := range verts {
		vx, vy := tmesh.VertexCoords(v)
		x += vx
		y += vy
	}
	x /= 3
	y /= 3
	return
}

// AreaField computes the elementwise signed area distribution
func (tmesh *Triangulation) AreaField() (ef utils.Vector) {
	ef = utils.NewVector(tmesh.K)
	for k := 0; k < tmesh.K; k++ {
		ef.DataP[k] = tmesh.SignedArea(k)
	}
	return
}

func (tmesh *Triangulation) TotalArea() (area float64) {
	for k := 0; k < tmesh.K; k++ {
		area += tmesh.SignedArea(k)
	}
	return
}

// MinJacobian is the mesh quality measure: the smallest element Jacobian
// determinant. Negative or zero values indicate a tangled mesh.
func (tmesh *Triangulation) MinJacobian() (min float64) {
	min = math.MaxFloat64
	for k := 0; k < tmesh.K; k++ {
		if jac := 2 * tmesh.SignedArea(k); jac < min {
			min = jac
		}
	}
	return
}

type Edge struct {
	NumConnectedTris       uint8                 // Either 1 or 2
	ConnectedTris          [2]uint32             // Index numbers of triangles connected to this edge
	ConnectedTriEdgeNumber [2]InternalEdgeNumber // For the connected triangles, what is the edge number (one of 0, 1 or 2)
	BCType                 int                   // If not connected to two tris, this field will be used
}

func (e *Edge) Print() (p string) {
	for i := 0; i < int(e.NumConnectedTris); i++ {
		triNum := e.ConnectedTris[i]
		pp := fmt.Sprintf("Tri[%d] Edge[%s] BC=%d,",
			triNum, e.ConnectedTriEdgeNumber[i].String(), e.BCType)
		p += pp
	}
	return
}

type InternalEdgeNumber uint8

const (
	First InternalEdgeNumber = iota
	Second
	Third
)

func (ien InternalEdgeNumber) Index() int {
	return int(ien)
}

func (ien InternalEdgeNumber) String() string {
	switch ien {
	case First:
		return "First"
	case Second:
		return "Second"
	case Third:
		return "Third"
	default:
		panic("unknown option")
	}
}

type EdgeNumber uint64

func NewEdgeNumber(verts [2]int) (packed EdgeNumber) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] < verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeNumber(i1 + i2<<32)
	return
}

func (en EdgeNumber) GetVertices(rev bool) (verts [2]int) {
	var (
		enTmp EdgeNumber
	)
	enTmp = en >> 32
	verts[1] = int(enTmp)
	verts[0] = int(en - enTmp*(1<<32))
	if rev {
		verts[0], verts[1] = verts[1], verts[0]
	}
	return
}
