package geometry2D

import "github.com/notargets/radapt/utils"

/*
Hierarchy holds a sequence of triangulations ordered coarsest to finest that
share the standard refinement index correspondence: element i on level L is
geometrically contained in the parent region of element i on level L+1.
Refine() below produces exactly this numbering. Hierarchies built from
non-standard refinements violate the precondition and Locate results are
undefined - the invariant is not checked at runtime.
*/
type Hierarchy struct {
	Levels []*Triangulation
}

func NewHierarchy(levels ...*Triangulation) (h *Hierarchy) {
	if len(levels) == 0 {
		panic("hierarchy requires at least one level")
	}
	h = &Hierarchy{Levels: levels}
	return
}

func (h *Hierarchy) Finest() *Triangulation { return h.Levels[len(h.Levels)-1] }

// Locate raytraces on the coarsest level, then reuses the found element
// index as the seed on each finer level in turn
func (h *Hierarchy) Locate(x, y float64) (res LocateResult) {
	var (
		coarse = h.Levels[0]
	)
	res = coarse.Raytrace(x, y, 0)
	if res.Status == LocateNotFound {
		res = coarse.LocateBruteForce(x, y)
	}
	for _, tmesh := range h.Levels[1:] {
		if res.Status != LocateFound {
			return
		}
		seed := res.Element
		if seed >= tmesh.K {
			seed = tmesh.K - 1
		}
		res = tmesh.Locate(x, y, seed)
	}
	return
}

/*
Refine produces the standard 1:4 refinement. Vertex numbering keeps all
coarse vertices, then appends one midpoint vertex per coarse edge. Element
numbering places the central (midpoint) triangle of coarse element k at
index k and appends the three corner triangles at K+3k .. K+3k+2, which is
what preserves the containment correspondence Hierarchy.Locate relies on.
*/
func (tmesh *Triangulation) Refine() (fine *Triangulation) {
	var (
		K, Nv    = tmesh.K, tmesh.Nv
		midOf    = make(map[EdgeNumber]int)
		vx       = make([]float64, Nv, Nv+len(tmesh.Edges))
		vy       = make([]float64, Nv, Nv+len(tmesh.Edges))
		etovData = make([]float64, 4*K*3)
		bcData   = make([]float64, 4*K*3)
	)
	copy(vx, tmesh.VX.DataP)
	copy(vy, tmesh.VY.DataP)
	midpoint := func(v1, v2 int) int {
		en := NewEdgeNumber([2]int{v1, v2})
		if m, ok := midOf[en]; ok {
			return m
		}
		x1, y1 := tmesh.VertexCoords(v1)
		x2, y2 := tmesh.VertexCoords(v2)
		vx = append(vx, 0.5*(x1+x2))
		vy = append(vy, 0.5*(y1+y2))
		m := len(vx) - 1
		midOf[en] = m
		return m
	}
	setTri := func(kf int, verts [3]int, bcs [3]int) {
		for i := 0; i < 3; i++ {
			etovData[kf*3+i] = float64(verts[i])
			bcData[kf*3+i] = float64(bcs[i])
		}
	}
	for k := 0; k < K; k++ {
		var (
			verts = tmesh.GetTriVerts(k)
			bc    = tmesh.EdgeBC[k]
			m01   = midpoint(verts[0], verts[1])
			m12   = midpoint(verts[1], verts[2])
			m20   = midpoint(verts[2], verts[0])
		)
		// Central triangle keeps the parent index
		setTri(k, [3]int{m01, m12, m20}, [3]int{0, 0, 0})
		// Corner triangles inherit the split halves of the parent edge tags
		setTri(K+3*k, [3]int{verts[0], m01, m20}, [3]int{bc[0], 0, bc[2]})
		setTri(K+3*k+1, [3]int{verts[1], m12, m01}, [3]int{bc[1], 0, bc[0]})
		setTri(K+3*k+2, [3]int{verts[2], m20, m12}, [3]int{bc[2], 0, bc[1]})
	}
	var (
		NvF  = len(vx)
		EToV = utils.NewMatrix(4*K, 3, etovData)
		BC   = utils.NewMatrix(4*K, 3, bcData)
		VXF  = utils.NewVector(NvF, vx)
		VYF  = utils.NewVector(NvF, vy)
	)
	fine = NewTriangulation(VXF, VYF, EToV, BC)
	fine.HopCap = tmesh.HopCap
	return
}
