package geometry2D

import (
	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/radapt/utils"
)

// Boundary tags assigned by UnitSquareMesh, one region per side
const (
	BCBottom = 1
	BCRight  = 2
	BCTop    = 3
	BCLeft   = 4
)

/*
UnitSquareMesh builds a structured right-triangle mesh of the unit square
with n x n cells, two triangles per cell, all CCW. Each side of the square
carries its own BC tag so the boundary splits into four regions.
*/
func UnitSquareMesh(n int) (tmesh *Triangulation) {
	var (
		Nv       = (n + 1) * (n + 1)
		K        = 2 * n * n
		vx       = make([]float64, Nv)
		vy       = make([]float64, Nv)
		etovData = make([]float64, K*3)
		bcData   = make([]float64, K*3)
		h        = 1. / float64(n)
	)
	vID := func(i, j int) int { return i + j*(n+1) }
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			vx[vID(i, j)] = float64(i) * h
			vy[vID(i, j)] = float64(j) * h
		}
	}
	var k int
	setTri := func(verts [3]int, bcs [3]int) {
		for i := 0; i < 3; i++ {
			etovData[k*3+i] = float64(verts[i])
			bcData[k*3+i] = float64(bcs[i])
		}
		k++
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			var (
				v00 = vID(i, j)
				v10 = vID(i+1, j)
				v01 = vID(i, j+1)
				v11 = vID(i+1, j+1)
				bcB, bcR, bcT, bcL int
			)
			if j == 0 {
				bcB = BCBottom
			}
			if i == n-1 {
				bcR = BCRight
			}
			if j == n-1 {
				bcT = BCTop
			}
			if i == 0 {
				bcL = BCLeft
			}
			// Lower-right triangle: edges (v00-v10)=bottom, (v10-v11)=right, diagonal
			setTri([3]int{v00, v10, v11}, [3]int{bcB, bcR, 0})
			// Upper-left triangle: diagonal, (v11-v01)=top, (v01-v00)=left
			setTri([3]int{v00, v11, v01}, [3]int{0, bcT, bcL})
		}
	}
	tmesh = NewTriangulation(
		utils.NewVector(Nv, vx), utils.NewVector(Nv, vy),
		utils.NewMatrix(K, 3, etovData), utils.NewMatrix(K, 3, bcData))
	return
}

/*
DelaunayMesh triangulates a scattered point cloud with Shewchuk's Triangle
and tags the hull edges with bcTag. The generator emits CCW triangles, which
the in-element tests rely on.
*/
func DelaunayMesh(points [][2]float64, bcTag int) (tmesh *Triangulation) {
	var (
		faces    = triangle.Delaunay(points)
		Nv       = len(points)
		K        = len(faces)
		vx       = make([]float64, Nv)
		vy       = make([]float64, Nv)
		etovData = make([]float64, K*3)
	)
	for i, pt := range points {
		vx[i], vy[i] = pt[0], pt[1]
	}
	for k, f := range faces {
		for i := 0; i < 3; i++ {
			etovData[k*3+i] = float64(f[i])
		}
	}
	tmesh = NewTriangulationAutoBC(
		utils.NewVector(Nv, vx), utils.NewVector(Nv, vy),
		utils.NewMatrix(K, 3, etovData), bcTag)
	return
}
