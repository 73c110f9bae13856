package element2D

import (
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// IntegrateNodal computes the L1 functional of a nodal field over the whole
// domain using the vertex rule, which is exact for P1 fields
func IntegrateNodal(tmesh *geometry2D.Triangulation, f utils.Vector) (sum float64) {
	for k := 0; k < tmesh.K; k++ {
		var (
			verts = tmesh.GetTriVerts(k)
			area  = tmesh.SignedArea(k)
		)
		sum += area * (f.AtVec(verts[0]) + f.AtVec(verts[1]) + f.AtVec(verts[2])) / 3
	}
	return
}

// IntegrateReciprocal computes the L1 functional of the reciprocal of a
// nodal field via a test-function-weighted elementwise average of 1/f
func IntegrateReciprocal(tmesh *geometry2D.Triangulation, f utils.Vector) (sum float64) {
	for k := 0; k < tmesh.K; k++ {
		var (
			verts = tmesh.GetTriVerts(k)
			area  = tmesh.SignedArea(k)
		)
		for i := 0; i < 3; i++ {
			sum += area / 3 / f.AtVec(verts[i])
		}
	}
	return
}

// ProjectToNodal lifts an elementwise field to nodal form by lumped-mass L2
// projection: each vertex receives the area-weighted average over the
// elements sharing it
func ProjectToNodal(tmesh *geometry2D.Triangulation, ef utils.Vector) (nf utils.Vector) {
	var (
		weight = make([]float64, tmesh.Nv)
	)
	nf = utils.NewVector(tmesh.Nv)
	for k := 0; k < tmesh.K; k++ {
		var (
			verts = tmesh.GetTriVerts(k)
			w     = tmesh.SignedArea(k) / 3
		)
		for _, v := range verts {
			nf.DataP[v] += w * ef.AtVec(k)
			weight[v] += w
		}
	}
	for v := 0; v < tmesh.Nv; v++ {
		nf.DataP[v] /= weight[v]
	}
	return
}
