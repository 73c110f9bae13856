/*
Package element2D provides the linear (P1) triangle finite element basis:
pointwise evaluation at arbitrary coordinates via barycentric coordinates,
constant per-element shape gradients, elementwise quadrature and projection,
nodal gradient recovery and scalar Laplacian assembly.
*/
package element2D

import (
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// ShapeAt evaluates the three P1 shape functions of element k at (x,y).
// The shape functions are the barycentric coordinates of the point.
func ShapeAt(tmesh *geometry2D.Triangulation, k int, x, y float64) (N [3]float64) {
	var (
		verts  = tmesh.GetTriVerts(k)
		x1, y1 = tmesh.VertexCoords(verts[0])
		x2, y2 = tmesh.VertexCoords(verts[1])
		x3, y3 = tmesh.VertexCoords(verts[2])
		det    = (x2-x1)*(y3-y1) - (x3-x1)*(y2-y1) // 2x signed area
	)
	N[1] = ((x-x1)*(y3-y1) - (x3-x1)*(y-y1)) / det
	N[2] = ((x2-x1)*(y-y1) - (x-x1)*(y2-y1)) / det
	N[0] = 1 - N[1] - N[2]
	return
}

// GradShape returns the constant P1 shape gradients of element k and the
// element's signed area
func GradShape(tmesh *geometry2D.Triangulation, k int) (gx, gy [3]float64, area float64) {
	var (
		verts  = tmesh.GetTriVerts(k)
		x1, y1 = tmesh.VertexCoords(verts[0])
		x2, y2 = tmesh.VertexCoords(verts[1])
		x3, y3 = tmesh.VertexCoords(verts[2])
		det    = (x2-x1)*(y3-y1) - (x3-x1)*(y2-y1)
	)
	area = det / 2
	gx[0], gy[0] = (y2-y3)/det, (x3-x2)/det
	gx[1], gy[1] = (y3-y1)/det, (x1-x3)/det
	gx[2], gy[2] = (y1-y2)/det, (x2-x1)/det
	return
}

// InterpolateAt evaluates a nodal field at an arbitrary point inside
// element k
func InterpolateAt(tmesh *geometry2D.Triangulation, k int, x, y float64,
	f utils.Vector) (val float64) {
	var (
		N     = ShapeAt(tmesh, k, x, y)
		verts = tmesh.GetTriVerts(k)
	)
	for i := 0; i < 3; i++ {
		val += N[i] * f.AtVec(verts[i])
	}
	return
}
