package deform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/radapt/InputParameters"
	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

func defaultParams() (ip *InputParameters.DeformationParameters2D) {
	ip = &InputParameters.DeformationParameters2D{}
	ip.ApplyDefaults()
	return
}

func TestNormalization(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(5)
		area  = tmesh.TotalArea()
	)
	// NormalizeNumeric equalizes the integrals of both fields to the total
	// mesh area
	{
		g := NodalAreaField(tmesh)
		f := DistanceBandMonitor(0.5, 0.5, 0, 0.3, 0.5)(tmesh.VX, tmesh.VY)
		NormalizeNumeric(tmesh, f, g)
		assert.True(t, near(area, element2D.IntegrateNodal(tmesh, f), 1.e-10))
		assert.True(t, near(area, element2D.IntegrateNodal(tmesh, g), 1.e-10))
	}
	// NormalizeInverse equalizes the reciprocal integrals
	{
		g := NodalAreaField(tmesh)
		f := DistanceBandMonitor(0.5, 0.5, 0, 0.3, 0.5)(tmesh.VX, tmesh.VY)
		NormalizeInverse(tmesh, f, g)
		assert.True(t, near(area, element2D.IntegrateReciprocal(tmesh, f), 1.e-10))
		assert.True(t, near(area, element2D.IntegrateReciprocal(tmesh, g), 1.e-10))
	}
}

func TestBlend(t *testing.T) {
	var (
		f = utils.NewVector(3, []float64{1, 2, 3})
		g = utils.NewVector(3, []float64{4, 5, 6})
	)
	// Endpoints are exact, not just close
	{
		fb := Blend(f, g, 0)
		assert.Equal(t, g.DataP, fb.DataP)
		fb = Blend(f, g, 1)
		assert.Equal(t, f.DataP, fb.DataP)
	}
	// Interior values interpolate nodewise
	{
		fb := Blend(f, g, 0.5)
		assert.True(t, nearVec([]float64{2.5, 3.5, 4.5}, fb.DataP, 1.e-12))
	}
}

func TestBlendingSchedule(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(2)
		ip    = defaultParams()
		d     = NewDeformer(tmesh, ip)
	)
	// Monotone ramp hitting exactly one at the last iteration
	prev := 0.
	for k := 1; k <= ip.NAdapt; k++ {
		tk := d.BlendingSchedule(k)
		assert.True(t, tk > prev)
		assert.True(t, tk <= 1)
		prev = tk
	}
	assert.Equal(t, 1., d.BlendingSchedule(ip.NAdapt))
	// The quarter-power ramp front-loads the early iterations
	assert.True(t, d.BlendingSchedule(1) > 1/float64(ip.NAdapt))
}

func TestSolvePotential(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(6)
		ip    = defaultParams()
	)
	// Identical fields give an identically zero potential
	{
		fb := utils.NewVectorConst(tmesh.Nv, 1)
		g := utils.NewVectorConst(tmesh.Nv, 1)
		phi, iter, err := SolvePotential(tmesh, fb, g, ip.SolverTolerance, ip.SolverMaxIterations)
		assert.NoError(t, err)
		assert.Equal(t, 0, iter)
		for v := 0; v < tmesh.Nv; v++ {
			assert.Equal(t, 0., phi.AtVec(v))
		}
	}
	// A genuine source converges and produces a nonzero field
	{
		g := NodalAreaField(tmesh)
		f := DistanceBandMonitor(0.5, 0.5, 0, 0.3, 0.5)(tmesh.VX, tmesh.VY)
		NormalizeNumeric(tmesh, f, g)
		NormalizeInverse(tmesh, f, g)
		phi, _, err := SolvePotential(tmesh, f, g, ip.SolverTolerance, ip.SolverMaxIterations)
		assert.NoError(t, err)
		assert.True(t, phi.Max() > phi.Min())
		// The source peaks at the center, so the potential does too
		res := tmesh.LocateBruteForce(0.5, 0.5)
		kC := res.Element
		verts := tmesh.GetTriVerts(kC)
		var centerVal float64
		for _, v := range verts {
			centerVal += phi.AtVec(v) / 3
		}
		assert.True(t, centerVal > phi.AtVec(0))
	}
	// An impossible iteration budget surfaces the divergence error
	{
		g := NodalAreaField(tmesh)
		f := DistanceBandMonitor(0.5, 0.5, 0, 0.3, 0.5)(tmesh.VX, tmesh.VY)
		NormalizeNumeric(tmesh, f, g)
		NormalizeInverse(tmesh, f, g)
		_, _, err := SolvePotential(tmesh, f, g, 1.e-14, 1)
		assert.ErrorIs(t, err, ErrSolverDivergence)
	}
}

func TestDeformUniform(t *testing.T) {
	var (
		tmesh = geometry2D.UnitSquareMesh(4)
		ip    = defaultParams()
		x0    = append([]float64{}, tmesh.VX.DataP...)
		y0    = append([]float64{}, tmesh.VY.DataP...)
	)
	// A uniform monitor on a uniform mesh is a fixed point: nothing moves
	ip.BoundaryLevel = 1
	err := Deform(tmesh, ip, UniformMonitor, false)
	assert.NoError(t, err)
	assert.True(t, nearVec(x0, tmesh.VX.DataP, 1.e-12))
	assert.True(t, nearVec(y0, tmesh.VY.DataP, 1.e-12))
}

func TestDeformBand(t *testing.T) {
	var (
		n       = 8
		tmesh   = geometry2D.UnitSquareMesh(n)
		ip      = defaultParams()
		monitor = DistanceBandMonitor(0.5, 0.5, 0, 0.3, 0.5)
	)
	ip.NAdapt = 4
	ip.BoundaryLevel = 1
	err := Deform(tmesh, ip, monitor, false)
	assert.NoError(t, err)
	// The domain is unchanged and the mesh stays untangled
	assert.True(t, near(1, tmesh.TotalArea(), 1.e-8))
	assert.True(t, tmesh.MinJacobian() > 0)
	// Elements concentrated where the monitor dips: mean area near the
	// center drops below the global mean
	var (
		centerSum, centerN float64
		totalSum           float64
	)
	for k := 0; k < tmesh.K; k++ {
		area := tmesh.SignedArea(k)
		totalSum += area
		cx, cy := tmesh.Centroid(k)
		if (cx-0.5)*(cx-0.5)+(cy-0.5)*(cy-0.5) < 0.2*0.2 {
			centerSum += area
			centerN++
		}
	}
	assert.True(t, centerN > 0)
	assert.True(t, centerSum/centerN < totalSum/float64(tmesh.K))
	// Boundary vertices stayed on their own side of the square
	for v := 0; v < tmesh.Nv; v++ {
		if !tmesh.IsBoundaryVertex(v) {
			continue
		}
		x, y := tmesh.VertexCoords(v)
		onSide := near(x, 0, 1.e-10) || near(x, 1, 1.e-10) ||
			near(y, 0, 1.e-10) || near(y, 1, 1.e-10)
		assert.True(t, onSide)
		assert.True(t, tmesh.BParam[v] >= 0 && tmesh.BParam[v] <= 1)
	}
	// Corner vertices are clamped by their region bounds and cannot move
	for _, corner := range [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}} {
		found := false
		for v := 0; v < tmesh.Nv; v++ {
			x, y := tmesh.VertexCoords(v)
			if near(x, corner[0], 1.e-10) && near(y, corner[1], 1.e-10) {
				found = true
			}
		}
		assert.True(t, found)
	}
}

func nearVec(a, b []float64, tol float64) (l bool) {
	for i, val := range a {
		if !near(b[i], val, tol) {
			return false
		}
	}
	return true
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
