package element2D

import (
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// RecoverGradient lifts the piecewise-constant gradient of a nodal field to
// nodal form by area-weighted averaging over the elements sharing each
// vertex. Exact for globally linear fields.
func RecoverGradient(tmesh *geometry2D.Triangulation, phi utils.Vector) (dx, dy utils.Vector) {
	var (
		weight = make([]float64, tmesh.Nv)
	)
	dx = utils.NewVector(tmesh.Nv)
	dy = utils.NewVector(tmesh.Nv)
	for k := 0; k < tmesh.K; k++ {
		var (
			gx, gy, area = GradShape(tmesh, k)
			verts        = tmesh.GetTriVerts(k)
			ex, ey       float64
		)
		for i := 0; i < 3; i++ {
			ex += gx[i] * phi.AtVec(verts[i])
			ey += gy[i] * phi.AtVec(verts[i])
		}
		for _, v := range verts {
			dx.DataP[v] += area * ex
			dy.DataP[v] += area * ey
			weight[v] += area
		}
	}
	for v := 0; v < tmesh.Nv; v++ {
		dx.DataP[v] /= weight[v]
		dy.DataP[v] /= weight[v]
	}
	return
}
