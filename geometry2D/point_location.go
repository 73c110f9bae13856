package geometry2D

import "math"

type LocateStatus uint8

const (
	LocateFound LocateStatus = iota
	LocateLeftDomain
	LocateNotFound
)

func (ls LocateStatus) String() string {
	switch ls {
	case LocateFound:
		return "Found"
	case LocateLeftDomain:
		return "LeftDomain"
	case LocateNotFound:
		return "NotFound"
	default:
		panic("unknown option")
	}
}

type LocateResult struct {
	Status  LocateStatus
	Element int // Containing element when Found, last valid element when LeftDomain
	Edge    int // Exit edge (local index) when LeftDomain, else -1
}

// containsTol absorbs roundoff for points sitting exactly on element edges.
// Together with the low-to-high element scan it makes the shared edge
// tie-break deterministic: the lowest-indexed element claims the point.
const containsTol = 1.e-12

// Contains tests point (x,y) against element k via sign consistency of the
// cross products with each CCW edge
func (tmesh *Triangulation) Contains(k int, x, y float64) bool {
	for i := 0; i < 3; i++ {
		v1, v2 := tmesh.EdgeVerts(k, i)
		x1, y1 := tmesh.VertexCoords(v1)
		x2, y2 := tmesh.VertexCoords(v2)
		if (x2-x1)*(y-y1)-(y2-y1)*(x-x1) < -containsTol {
			return false
		}
	}
	return true
}

// LocateBruteForce scans all elements in index order, used as the fallback
// when raytracing fails. O(K)
func (tmesh *Triangulation) LocateBruteForce(x, y float64) (res LocateResult) {
	for k := 0; k < tmesh.K; k++ {
		if tmesh.Contains(k, x, y) {
			return LocateResult{Status: LocateFound, Element: k, Edge: -1}
		}
	}
	return LocateResult{Status: LocateNotFound, Element: -1, Edge: -1}
}

// NearestElementByMidpoint returns the element whose centroid is nearest to
// (x,y), for clamping positions that have left the domain
func (tmesh *Triangulation) NearestElementByMidpoint(x, y float64) (kNearest int) {
	var (
		dMin = math.MaxFloat64
	)
	for k := 0; k < tmesh.K; k++ {
		cx, cy := tmesh.Centroid(k)
		d := (cx-x)*(cx-x) + (cy-y)*(cy-y)
		if d < dMin {
			dMin = d
			kNearest = k
		}
	}
	return
}

/*
Locate finds the element containing (x,y). With a valid hint element it
raytraces from the hint and falls back to the brute force scan when the
trace exhausts its hop budget; without a hint it scans directly.
LeftDomain results are reported as-is - the point exited through a domain
boundary edge and the caller decides what to do about it.
*/
func (tmesh *Triangulation) Locate(x, y float64, hint int) (res LocateResult) {
	if hint < 0 || hint >= tmesh.K {
		return tmesh.LocateBruteForce(x, y)
	}
	res = tmesh.Raytrace(x, y, hint)
	if res.Status == LocateNotFound {
		res = tmesh.LocateBruteForce(x, y)
	}
	return
}
