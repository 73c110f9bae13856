package deform

import (
	"math"

	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
)

/*
advectBoundary moves boundary vertices along the 1-D boundary curve. The
scalar arc-length parameter is integrated with the same explicit Euler
scheme and blended denominator as interior points, using the velocity
projected onto the local tangent. The parameter is clamped to the vertex's
boundary region: reaching a region endpoint terminates the trajectory so a
vertex never crosses into the adjacent segment. Vertices sitting exactly on
a region endpoint are tag-transition corners and stay fixed, they anchor
the domain geometry.
*/
func (d *Deformer) advectBoundary(curve *geometry2D.BoundaryCurve,
	fl *iterationFields, newX, newY []float64) {
	var (
		tmesh = d.Tri
		nt    = d.IP.ODESteps
		dt    = 1 / float64(nt)
	)
	for v := 0; v < tmesh.Nv; v++ {
		if !tmesh.IsBoundaryVertex(v) {
			continue
		}
		var (
			bl, _  = curve.LoopOf(v)
			s      = curve.ParamOf(v)
			region = curve.RegionOf(v)
			elem   = tmesh.VToE[v]
		)
		if s <= region.SMin || s >= region.SMax {
			continue
		}
	steps:
		for step := 0; step < nt; step++ {
			x, y := bl.Eval(s)
			res := tmesh.Locate(x, y, elem)
			switch res.Status {
			case geometry2D.LocateFound:
				elem = res.Element
			case geometry2D.LocateLeftDomain:
				// Boundary points sit exactly on the domain edge, so the
				// trace can report an exit spuriously; clamp to the
				// nearest element for the velocity evaluation
				elem = tmesh.NearestElementByMidpoint(x, y)
			default:
				break steps // Freeze the parameter
			}
			var (
				t      = float64(step) * dt
				vx     = element2D.InterpolateAt(tmesh, elem, x, y, fl.VelX)
				vy     = element2D.InterpolateAt(tmesh, elem, x, y, fl.VelY)
				fp     = element2D.InterpolateAt(tmesh, elem, x, y, fl.FB)
				gp     = element2D.InterpolateAt(tmesh, elem, x, y, fl.G)
				tx, ty = bl.Tangent(s)
				den    = (1-t)*gp + t*fp
			)
			if math.Abs(den) < denominatorFloor {
				break
			}
			s += dt * (vx*tx + vy*ty) / den
			if s <= region.SMin {
				s = region.SMin
				break
			}
			if s >= region.SMax {
				s = region.SMax
				break
			}
		}
		newX[v], newY[v] = bl.Eval(s)
		tmesh.BParam[v] = bl.Normalized(s)
	}
}
