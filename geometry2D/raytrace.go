package geometry2D

/*
Raytracing point location: starting from a known element, walk toward the
target point by testing which element edge the segment (element interior
reference point -> target) crosses, hopping to the neighbor across that edge
until the element containing the target is reached.

The search is an explicit state machine so each transition is independently
testable:

	Scanning --(in-element test succeeds)--------------> Found
	Scanning --(crossing edge, neighbor exists)--------> Hopping -> Scanning
	Scanning --(crossing edge, no neighbor)------------> LeftDomain
	Scanning --(no crossing edge found)----------------> Exhausted
	Hopping  --(hop count exceeds cap)-----------------> Exhausted
*/
type SearchPhase uint8

const (
	Scanning SearchPhase = iota
	Hopping
	Found
	LeftDomain
	Exhausted
)

func (sp SearchPhase) String() string {
	switch sp {
	case Scanning:
		return "Scanning"
	case Hopping:
		return "Hopping"
	case Found:
		return "Found"
	case LeftDomain:
		return "LeftDomain"
	case Exhausted:
		return "Exhausted"
	default:
		panic("unknown option")
	}
}

// SearchState lives only for the duration of one raytrace call
type SearchState struct {
	Elem     int         // Current element guess
	LastEdge int         // Local edge we entered the current element through, -1 at start
	ExitEdge int         // Local edge the point left the domain through, set on LeftDomain
	Hops     int         // Accumulated hop count
	Phase    SearchPhase
}

func (tmesh *Triangulation) NewSearch(start int) (ss *SearchState) {
	ss = &SearchState{
		Elem:     start,
		LastEdge: -1,
		ExitEdge: -1,
		Phase:    Scanning,
	}
	return
}

func (ss *SearchState) Terminal() bool {
	switch ss.Phase {
	case Found, LeftDomain, Exhausted:
		return true
	}
	return false
}

// Step executes one state machine transition toward the target point
func (tmesh *Triangulation) Step(ss *SearchState, x, y float64) {
	switch ss.Phase {
	case Scanning:
		if tmesh.Contains(ss.Elem, x, y) {
			ss.Phase = Found
			return
		}
		refX, refY := tmesh.Centroid(ss.Elem)
		for i := 0; i < 3; i++ {
			if i == ss.LastEdge {
				continue // Don't re-test the edge we just came through
			}
			v1, v2 := tmesh.EdgeVerts(ss.Elem, i)
			x1, y1 := tmesh.VertexCoords(v1)
			x2, y2 := tmesh.VertexCoords(v2)
			if !segmentsCross(refX, refY, x, y, x1, y1, x2, y2) {
				continue
			}
			if tmesh.EToE[ss.Elem][i] == -1 {
				ss.ExitEdge = i
				ss.Phase = LeftDomain
				return
			}
			ss.ExitEdge = i
			ss.Phase = Hopping
			return
		}
		// The segment crosses no edge yet the point is not inside: a
		// degenerate configuration, let the caller fall back
		ss.Phase = Exhausted
	case Hopping:
		if ss.Hops >= tmesh.HopCap {
			ss.Phase = Exhausted
			return
		}
		neighbor := tmesh.EToE[ss.Elem][ss.ExitEdge]
		ss.LastEdge = tmesh.entryEdge(neighbor, ss.Elem)
		ss.Elem = neighbor
		ss.ExitEdge = -1
		ss.Hops++
		ss.Phase = Scanning
	default:
		panic("step on terminal search state: " + ss.Phase.String())
	}
}

// entryEdge finds the local edge of element k adjacent to element kFrom
func (tmesh *Triangulation) entryEdge(k, kFrom int) (i int) {
	for i = 0; i < 3; i++ {
		if tmesh.EToE[k][i] == kFrom {
			return
		}
	}
	panic("neighbor adjacency is not symmetric")
}

// Raytrace runs the search state machine to termination. Converges in
// element-diameter-bounded hops for convex domains; callers must fall back
// to LocateBruteForce on a NotFound result
func (tmesh *Triangulation) Raytrace(x, y float64, start int) (res LocateResult) {
	var (
		ss = tmesh.NewSearch(start)
	)
	for !ss.Terminal() {
		tmesh.Step(ss, x, y)
	}
	switch ss.Phase {
	case Found:
		res = LocateResult{Status: LocateFound, Element: ss.Elem, Edge: -1}
	case LeftDomain:
		res = LocateResult{Status: LocateLeftDomain, Element: ss.Elem, Edge: ss.ExitEdge}
	default:
		res = LocateResult{Status: LocateNotFound, Element: -1, Edge: -1}
	}
	return
}

func orient(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// segmentsCross tests whether segment (p1->p2) crosses segment (q1->q2),
// counting touching endpoints as a crossing so that targets sitting exactly
// on an edge still trigger the hop
func segmentsCross(p1x, p1y, p2x, p2y, q1x, q1y, q2x, q2y float64) bool {
	d1 := orient(p1x, p1y, p2x, p2y, q1x, q1y)
	d2 := orient(p1x, p1y, p2x, p2y, q2x, q2y)
	d3 := orient(q1x, q1y, q2x, q2y, p1x, p1y)
	d4 := orient(q1x, q1y, q2x, q2y, p2x, p2y)
	if d1 == 0 && d2 == 0 {
		return false // Collinear, handled by the in-element test instead
	}
	return d1*d2 <= 0 && d3*d4 <= 0
}
