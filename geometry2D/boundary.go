package geometry2D

import (
	"fmt"
	"math"
)

/*
BoundaryCurve is the arc-length parametrization service for the domain
boundary. Boundary edges are chained into closed loops (outer boundary CCW,
holes CW, both directly from the element edge orientation), each loop
carrying a cumulative arc-length parameter. Loop geometry is snapshotted at
construction: boundary vertices slide along the frozen polyline while the
mesh deforms, then the curve is rebuilt for the next adaptation iteration.
*/
type BoundaryCurve struct {
	Loops      []*BoundaryLoop
	loopOfVert map[int]int
	posOfVert  map[int]int
}

type BoundaryLoop struct {
	Verts   []int     // Ordered boundary vertices
	X, Y    []float64 // Frozen coordinates of those vertices
	SVert   []float64 // Arc-length parameter at each vertex
	ETag    []int     // BC tag of the edge starting at each position
	Length  float64
	Regions []BoundaryRegion
}

// BoundaryRegion is one parametrized boundary arc: the run of consecutive
// edges sharing a BC tag. Vertex motion is clamped to its region so that
// vertices never cross into the adjacent segment.
type BoundaryRegion struct {
	Tag        int
	SMin, SMax float64 // Arc-length parameter bounds
	TMin, TMax float64 // Same bounds in [0,1]-normalized form
}

func NewBoundaryCurve(tmesh *Triangulation) (bc *BoundaryCurve) {
	var (
		next = make(map[int]int) // Directed boundary edge successor
		tag  = make(map[int]int) // BC tag of the edge starting at a vertex
	)
	for k := 0; k < tmesh.K; k++ {
		for i := 0; i < 3; i++ {
			if tmesh.EToE[k][i] != -1 {
				continue
			}
			v1, v2 := tmesh.EdgeVerts(k, i)
			next[v1] = v2
			tag[v1] = tmesh.EdgeBC[k][i]
		}
	}
	bc = &BoundaryCurve{
		loopOfVert: make(map[int]int),
		posOfVert:  make(map[int]int),
	}
	visited := make(map[int]bool)
	for v0 := range next {
		if visited[v0] {
			continue
		}
		var verts []int
		for v := v0; !visited[v]; v = next[v] {
			visited[v] = true
			verts = append(verts, v)
		}
		bl := newBoundaryLoop(tmesh, verts, tag)
		for pos, v := range bl.Verts {
			bc.loopOfVert[v] = len(bc.Loops)
			bc.posOfVert[v] = pos
			tmesh.BParam[v] = bl.Normalized(bl.SVert[pos])
		}
		bc.Loops = append(bc.Loops, bl)
	}
	return
}

func newBoundaryLoop(tmesh *Triangulation, verts []int, tag map[int]int) (bl *BoundaryLoop) {
	var (
		n = len(verts)
	)
	// Start the loop at a tag transition when one exists so no region
	// straddles the parameter origin
	start := 0
	for j := 0; j < n; j++ {
		if tag[verts[(j-1+n)%n]] != tag[verts[j]] {
			start = j
			break
		}
	}
	bl = &BoundaryLoop{
		Verts: make([]int, n),
		X:     make([]float64, n),
		Y:     make([]float64, n),
		SVert: make([]float64, n),
		ETag:  make([]int, n),
	}
	for j := 0; j < n; j++ {
		v := verts[(start+j)%n]
		bl.Verts[j] = v
		bl.X[j], bl.Y[j] = tmesh.VertexCoords(v)
		bl.ETag[j] = tag[v]
	}
	for j := 0; j < n; j++ {
		jn := (j + 1) % n
		dx, dy := bl.X[jn]-bl.X[j], bl.Y[jn]-bl.Y[j]
		segLen := math.Sqrt(dx*dx + dy*dy)
		if j < n-1 {
			bl.SVert[j+1] = bl.SVert[j] + segLen
		} else {
			bl.Length = bl.SVert[j] + segLen
		}
	}
	bl.buildRegions()
	return
}

func (bl *BoundaryLoop) buildRegions() {
	var (
		n = len(bl.Verts)
	)
	runStart := 0
	for j := 1; j <= n; j++ {
		if j < n && bl.ETag[j] == bl.ETag[runStart] {
			continue
		}
		sMax := bl.Length
		if j < n {
			sMax = bl.SVert[j]
		}
		bl.Regions = append(bl.Regions, BoundaryRegion{
			Tag:  bl.ETag[runStart],
			SMin: bl.SVert[runStart],
			SMax: sMax,
			TMin: bl.SVert[runStart] / bl.Length,
			TMax: sMax / bl.Length,
		})
		runStart = j
	}
}

// segment returns the polyline segment index containing parameter s
func (bl *BoundaryLoop) segment(s float64) (j int) {
	var (
		n = len(bl.Verts)
	)
	// SVert is sorted ascending, binary search for the last entry <= s
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if bl.SVert[mid] <= s {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	j = lo
	return
}

func (bl *BoundaryLoop) clamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > bl.Length {
		return bl.Length
	}
	return s
}

// Eval converts an arc-length parameter back to coordinates
func (bl *BoundaryLoop) Eval(s float64) (x, y float64) {
	var (
		n  = len(bl.Verts)
		j  = bl.segment(bl.clamp(s))
		jn = (j + 1) % n
	)
	sEnd := bl.Length
	if j < n-1 {
		sEnd = bl.SVert[j+1]
	}
	segLen := sEnd - bl.SVert[j]
	if segLen == 0 {
		return bl.X[j], bl.Y[j]
	}
	frac := (bl.clamp(s) - bl.SVert[j]) / segLen
	x = bl.X[j] + frac*(bl.X[jn]-bl.X[j])
	y = bl.Y[j] + frac*(bl.Y[jn]-bl.Y[j])
	return
}

// Tangent is the unit tangent of the segment containing s, oriented along
// increasing parameter
func (bl *BoundaryLoop) Tangent(s float64) (tx, ty float64) {
	var (
		n  = len(bl.Verts)
		j  = bl.segment(bl.clamp(s))
		jn = (j + 1) % n
	)
	dx, dy := bl.X[jn]-bl.X[j], bl.Y[jn]-bl.Y[j]
	segLen := math.Sqrt(dx*dx + dy*dy)
	if segLen == 0 {
		return 1, 0
	}
	tx, ty = dx/segLen, dy/segLen
	return
}

// Normal is the tangent rotated -90 degrees, outward for a CCW loop
func (bl *BoundaryLoop) Normal(s float64) (nx, ny float64) {
	tx, ty := bl.Tangent(s)
	nx, ny = ty, -tx
	return
}

func (bl *BoundaryLoop) Normalized(s float64) float64     { return s / bl.Length }
func (bl *BoundaryLoop) FromNormalized(t float64) float64 { return t * bl.Length }

// RegionAt returns the region whose parameter range contains s
func (bl *BoundaryLoop) RegionAt(s float64) BoundaryRegion {
	s = bl.clamp(s)
	for _, r := range bl.Regions {
		if s <= r.SMax {
			return r
		}
	}
	return bl.Regions[len(bl.Regions)-1]
}

// LoopOf returns the loop a boundary vertex belongs to
func (bc *BoundaryCurve) LoopOf(v int) (bl *BoundaryLoop, ok bool) {
	li, ok := bc.loopOfVert[v]
	if !ok {
		return
	}
	bl = bc.Loops[li]
	return
}

// ParamOf returns the arc-length parameter assigned to a boundary vertex
func (bc *BoundaryCurve) ParamOf(v int) float64 {
	bl, ok := bc.LoopOf(v)
	if !ok {
		panic(fmt.Errorf("vertex %d is not on the boundary", v))
	}
	return bl.SVert[bc.posOfVert[v]]
}

// RegionOf returns the boundary region owning the edge that starts at the
// vertex; the final vertex of a region belongs to the following region
func (bc *BoundaryCurve) RegionOf(v int) BoundaryRegion {
	bl, ok := bc.LoopOf(v)
	if !ok {
		panic(fmt.Errorf("vertex %d is not on the boundary", v))
	}
	var (
		s = bl.SVert[bc.posOfVert[v]]
	)
	for _, r := range bl.Regions {
		if s >= r.SMin && s < r.SMax {
			return r
		}
	}
	return bl.Regions[len(bl.Regions)-1]
}
