package element2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

func TestBasis(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(3)
	)
	// Shape functions are a partition of unity and interpolate vertices
	{
		for k := 0; k < tmesh.K; k++ {
			cx, cy := tmesh.Centroid(k)
			N := ShapeAt(tmesh, k, cx, cy)
			assert.True(t, near(1, N[0]+N[1]+N[2]))
			verts := tmesh.GetTriVerts(k)
			for i := 0; i < 3; i++ {
				x, y := tmesh.VertexCoords(verts[i])
				Nv := ShapeAt(tmesh, k, x, y)
				for j := 0; j < 3; j++ {
					want := 0.
					if i == j {
						want = 1
					}
					assert.True(t, near(want, Nv[j], 1.e-12))
				}
			}
		}
	}
	// Gradients reproduce the exact gradient of a linear field
	{
		linear := func(x, y float64) float64 { return 3 + 2*x - 5*y }
		f := utils.NewVector(tmesh.Nv)
		for v := 0; v < tmesh.Nv; v++ {
			x, y := tmesh.VertexCoords(v)
			f.DataP[v] = linear(x, y)
		}
		for k := 0; k < tmesh.K; k++ {
			var (
				gx, gy, area = GradShape(tmesh, k)
				verts        = tmesh.GetTriVerts(k)
				ex, ey       float64
			)
			assert.True(t, near(tmesh.SignedArea(k), area))
			for i := 0; i < 3; i++ {
				ex += gx[i] * f.AtVec(verts[i])
				ey += gy[i] * f.AtVec(verts[i])
			}
			assert.True(t, near(2, ex, 1.e-10))
			assert.True(t, near(-5, ey, 1.e-10))
		}
		// Interpolation is exact for the same field
		for k := 0; k < tmesh.K; k++ {
			cx, cy := tmesh.Centroid(k)
			assert.True(t, near(linear(cx, cy), InterpolateAt(tmesh, k, cx, cy, f), 1.e-10))
		}
	}
}

func TestQuadrature(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(4)
	)
	// The vertex rule integrates constants and linears exactly
	{
		one := utils.NewVectorConst(tmesh.Nv, 1)
		assert.True(t, near(1, IntegrateNodal(tmesh, one)))
		f := utils.NewVector(tmesh.Nv)
		for v := 0; v < tmesh.Nv; v++ {
			x, _ := tmesh.VertexCoords(v)
			f.DataP[v] = x
		}
		// ∫∫ x over the unit square = 1/2
		assert.True(t, near(0.5, IntegrateNodal(tmesh, f)))
	}
	// Reciprocal integration of a constant field
	{
		two := utils.NewVectorConst(tmesh.Nv, 2)
		assert.True(t, near(0.5, IntegrateReciprocal(tmesh, two)))
	}
	// Nodal projection of a constant elementwise field is that constant
	{
		ef := utils.NewVectorConst(tmesh.K, 3.5)
		nf := ProjectToNodal(tmesh, ef)
		for v := 0; v < tmesh.Nv; v++ {
			assert.True(t, near(3.5, nf.AtVec(v)))
		}
	}
}

func TestGradientRecovery(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(5)
		f     = utils.NewVector(tmesh.Nv)
	)
	// Recovery is exact for globally linear fields, boundary included
	for v := 0; v < tmesh.Nv; v++ {
		x, y := tmesh.VertexCoords(v)
		f.DataP[v] = 1 - 4*x + 7*y
	}
	dx, dy := RecoverGradient(tmesh, f)
	for v := 0; v < tmesh.Nv; v++ {
		assert.True(t, near(-4, dx.AtVec(v), 1.e-10))
		assert.True(t, near(7, dy.AtVec(v), 1.e-10))
	}
}

func TestAssembly(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(3)
	)
	// The stiffness matrix is symmetric and annihilates constants away
	// from the pinned DOF
	{
		A := AssembleStiffness(tmesh, 0)
		n, _ := A.Dims()
		assert.Equal(t, tmesh.Nv, n)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				assert.True(t, near(A.At(i, j), A.At(j, i), 1.e-12))
			}
		}
		ones := make([]float64, n)
		for i := range ones {
			ones[i] = 1
		}
		out := make([]float64, n)
		A.MulVec(ones, out)
		// Rows of vertices that share no element with the pinned DOF see a
		// constant as harmonic; rows next to the pin lost that coupling
		adjacent := make(map[int]bool)
		for k := 0; k < tmesh.K; k++ {
			verts := tmesh.GetTriVerts(k)
			if verts[0] == 0 || verts[1] == 0 || verts[2] == 0 {
				for _, v := range verts {
					adjacent[v] = true
				}
			}
		}
		for i := 1; i < n; i++ {
			if !adjacent[i] {
				assert.True(t, near(0, out[i], 1.e-10))
			}
		}
		assert.True(t, near(1, A.At(0, 0)))
	}
	// The load vector of a unit weight integrates to the domain area
	{
		w := utils.NewVectorConst(tmesh.Nv, 1)
		b := AssembleLoad(tmesh, w)
		var sum float64
		for _, v := range b {
			sum += v
		}
		assert.True(t, near(tmesh.TotalArea(), sum, 1.e-10))
	}
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
