/*
Package deform implements grid deformation r-adaptation: vertex relocation
toward a target size distribution without connectivity change. Each
adaptation iteration compares the current element area distribution with a
monitor function, solves a potential equation whose gradient is an advection
velocity, then integrates every vertex along that field using raytracing
point location at each ODE step.
*/
package deform

import (
	"math"

	"github.com/notargets/radapt/InputParameters"
	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// MonitorFunc maps the full vertex coordinate arrays to a nodal target size
// field: small values demand small elements
type MonitorFunc func(VX, VY utils.Vector) utils.Vector

func UniformMonitor(VX, VY utils.Vector) utils.Vector {
	return utils.NewVectorConst(VX.Len(), 1)
}

/*
DistanceBandMonitor concentrates density in the annular band at distance
radius from (cx,cy): the target size dips to (1-amplitude) at the band
center and recovers to 1 over the band width. radius = 0 concentrates at
the point itself.
*/
func DistanceBandMonitor(cx, cy, radius, width, amplitude float64) MonitorFunc {
	if amplitude < 0 || amplitude >= 1 {
		panic("band monitor amplitude must lie in [0,1)")
	}
	return func(VX, VY utils.Vector) (f utils.Vector) {
		f = utils.NewVector(VX.Len())
		for i := range f.DataP {
			var (
				dx, dy = VX.AtVec(i) - cx, VY.AtVec(i) - cy
				d      = math.Sqrt(dx*dx+dy*dy) - radius
			)
			f.DataP[i] = 1 - amplitude*math.Exp(-(d/width)*(d/width))
		}
		return
	}
}

func MonitorFromParameters(mp InputParameters.MonitorParameters) MonitorFunc {
	switch mp.Type {
	case "Band":
		width := mp.Width
		if width == 0 {
			width = 0.25
		}
		amplitude := mp.Amplitude
		if amplitude == 0 {
			amplitude = 0.5
		}
		return DistanceBandMonitor(mp.CenterX, mp.CenterY, mp.Radius, width, amplitude)
	case "Uniform", "":
		return UniformMonitor
	default:
		panic("unknown monitor type: " + mp.Type)
	}
}

// NodalAreaField computes the current element area distribution projected
// to nodal form, the field the monitor is compared against
func NodalAreaField(tmesh *geometry2D.Triangulation) utils.Vector {
	return element2D.ProjectToNodal(tmesh, tmesh.AreaField())
}

/*
NormalizeNumeric rescales f and g in place so that the integral of each
over the domain equals the total mesh area: scale_f*∫f = scale_g*∫g = |Ω|.
Afterwards the two fields are directly comparable as area distributions.
*/
func NormalizeNumeric(tmesh *geometry2D.Triangulation, f, g utils.Vector) (scaleF, scaleG float64) {
	var (
		totalArea = tmesh.TotalArea()
		intF      = element2D.IntegrateNodal(tmesh, f)
		intG      = element2D.IntegrateNodal(tmesh, g)
	)
	scaleF, scaleG = totalArea/intF, totalArea/intG
	f.Scale(scaleF)
	g.Scale(scaleG)
	return
}

/*
NormalizeInverse applies the same integral matching to the reciprocal
fields, scaling f and g in place so ∫1/f = ∫1/g = |Ω|. The ODE denominator
blends 1/f and 1/g, so it is the reciprocals that must be normalized for
the velocity magnitude to come out right.
*/
func NormalizeInverse(tmesh *geometry2D.Triangulation, f, g utils.Vector) (scaleF, scaleG float64) {
	var (
		totalArea = tmesh.TotalArea()
		intF      = element2D.IntegrateReciprocal(tmesh, f)
		intG      = element2D.IntegrateReciprocal(tmesh, g)
	)
	// ∫ 1/(f*s) = |Ω| requires s = ∫(1/f) / |Ω|
	scaleF, scaleG = intF/totalArea, intG/totalArea
	f.Scale(scaleF)
	g.Scale(scaleG)
	return
}

// Blend combines monitor and area fields nodewise: t=1 returns f exactly,
// t=0 returns g exactly
func Blend(f, g utils.Vector, t float64) (fb utils.Vector) {
	fb = utils.NewVector(f.Len())
	for i := range fb.DataP {
		fb.DataP[i] = t*f.AtVec(i) + (1-t)*g.AtVec(i)
	}
	return
}
