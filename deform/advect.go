package deform

import (
	"math"
	"sync"

	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// Below this the blended denominator is considered degenerate and the
// vertex freezes in place
const denominatorFloor = 1.e-12

// iterationFields holds the transient nodal fields of one adaptation
// iteration. They are rebuilt from the current mesh every iteration and
// dropped when the iteration ends.
type iterationFields struct {
	FB         utils.Vector // Blended, inverse-normalized monitor field
	G          utils.Vector // Nodal area field, inverse-normalized
	VelX, VelY utils.Vector // Recovered deformation velocity
}

/*
advectInterior integrates every interior vertex along the deformation
velocity with explicit Euler,

	dx/dt = v(x) / [(1-t)*g(x) + t*f(x)],  t: 0 -> 1.

Vertices are partitioned across a worker pool; each trajectory is
sequential in t but trajectories are independent because all reads go
against the frozen pre-iteration mesh. Results land in newX/newY and are
written back to the mesh only after the fork-join barrier.
*/
func (d *Deformer) advectInterior(fl *iterationFields, newX, newY []float64) {
	var (
		pm = d.Partitions
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			vMin, vMax := pm.GetBucketRange(np)
			for v := vMin; v < vMax; v++ {
				if d.Tri.IsBoundaryVertex(v) {
					continue
				}
				newX[v], newY[v] = d.integrateVertex(v, fl)
			}
		}(np)
	}
	wg.Wait()
}

// integrateVertex runs one vertex trajectory. Point location failures are
// absorbed here: the vertex freezes at its last located position and the
// caller never sees an error.
func (d *Deformer) integrateVertex(v int, fl *iterationFields) (lastX, lastY float64) {
	var (
		tmesh = d.Tri
		nt    = d.IP.ODESteps
		dt    = 1 / float64(nt)
		elem  = tmesh.VToE[v]
		x, y  = tmesh.VertexCoords(v)
	)
	lastX, lastY = x, y
	for step := 0; step <= nt; step++ {
		res := tmesh.Locate(x, y, elem)
		if res.Status != geometry2D.LocateFound {
			// LeftDomain is normal early termination, NotFound after the
			// brute force fallback is local recovery - both freeze
			return
		}
		elem = res.Element
		lastX, lastY = x, y
		if step == nt {
			return // Final position validated, trajectory complete
		}
		var (
			t   = float64(step) * dt
			vx  = element2D.InterpolateAt(tmesh, elem, x, y, fl.VelX)
			vy  = element2D.InterpolateAt(tmesh, elem, x, y, fl.VelY)
			fp  = element2D.InterpolateAt(tmesh, elem, x, y, fl.FB)
			gp  = element2D.InterpolateAt(tmesh, elem, x, y, fl.G)
			den = (1-t)*gp + t*fp
		)
		if math.Abs(den) < denominatorFloor {
			return
		}
		x += dt * vx / den
		y += dt * vy / den
	}
	return
}
