package readfiles

import (
	"image/color"

	"github.com/notargets/avs/chart2d"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// PlotMesh renders the triangulation with edges colored by BC tag. The
// chart runs in its own goroutine and stays up until the process exits.
func PlotMesh(tmesh *geometry2D.Triangulation, plotPoints bool) (chart *chart2d.Chart2D) {
	var (
		points   []graphics2D.Point
		trimesh  graphics2D.TriMesh
		vxD, vyD = tmesh.VX.DataP, tmesh.VY.DataP
		K        = tmesh.K
		maxTag   float32
	)
	points = make([]graphics2D.Point, tmesh.Nv)
	for i, vx := range vxD {
		points[i].X[0] = float32(vx)
		points[i].X[1] = float32(vyD[i])
	}
	trimesh.Triangles = make([]graphics2D.Triangle, K)
	trimesh.Attributes = make([][]float32, K) // One BC attribute per face
	for k := 0; k < K; k++ {
		trimesh.Attributes[k] = make([]float32, 3)
		for i := 0; i < 3; i++ {
			trimesh.Triangles[k].Nodes[i] = int32(tmesh.EToV.At(k, i))
			tag := float32(tmesh.EdgeBC[k][i])
			trimesh.Attributes[k][i] = tag
			if tag > maxTag {
				maxTag = tag
			}
		}
	}
	trimesh.Geometry = points
	if maxTag == 0 {
		maxTag = 1
	}
	colorMap := utils2.NewColorMap(0, maxTag, 1)
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.5)
	chart = chart2d.NewChart2D(1920, 1920, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1])
	chart.AddColorMap(colorMap)
	go chart.Plot()
	white := color.RGBA{
		R: 255,
		G: 255,
		B: 255,
		A: 0,
	}
	black := color.RGBA{
		R: 0,
		G: 0,
		B: 0,
		A: 0,
	}
	if err := chart.AddTriMesh("TriMesh", trimesh,
		chart2d.CrossGlyph, chart2d.Solid, white); err != nil {
		panic("unable to add graph series")
	}
	var ptsGlyph chart2d.GlyphType
	ptsGlyph = chart2d.NoGlyph
	if plotPoints {
		ptsGlyph = chart2d.CircleGlyph
	}
	if err := chart.AddSeries("Vertices", vertexData(tmesh.VX), vertexData(tmesh.VY),
		ptsGlyph, chart2d.NoLine, black); err != nil {
		panic(err)
	}

	return
}

func vertexData(v utils.Vector) (d []float64) {
	d = make([]float64, v.Len())
	copy(d, v.DataP)
	return
}
