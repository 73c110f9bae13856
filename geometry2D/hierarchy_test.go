package geometry2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefine(t *testing.T) {
	var (
		coarse = UnitSquareMesh(2)
		fine   = coarse.Refine()
	)
	// Counts: 4x elements, coarse vertices plus one midpoint per edge
	{
		assert.Equal(t, 4*coarse.K, fine.K)
		assert.Equal(t, coarse.Nv+len(coarse.Edges), fine.Nv)
		assert.True(t, near(coarse.TotalArea(), fine.TotalArea()))
	}
	// Index correspondence: the central child at index k sits inside the
	// parent element k, and its three siblings follow at K+3k..K+3k+2
	{
		for k := 0; k < coarse.K; k++ {
			cx, cy := fine.Centroid(k)
			assert.True(t, coarse.Contains(k, cx, cy))
			for c := 0; c < 3; c++ {
				sx, sy := fine.Centroid(coarse.K + 3*k + c)
				assert.True(t, coarse.Contains(k, sx, sy))
			}
		}
	}
	// Child elements keep the parent orientation
	{
		for k := 0; k < fine.K; k++ {
			assert.True(t, fine.SignedArea(k) > 0)
		}
	}
	// BC tags survive on the split halves of boundary edges
	{
		var coarseTagged, fineTagged int
		for k := 0; k < coarse.K; k++ {
			for i := 0; i < 3; i++ {
				if coarse.EdgeBC[k][i] != 0 {
					coarseTagged++
				}
			}
		}
		for k := 0; k < fine.K; k++ {
			for i := 0; i < 3; i++ {
				if fine.EdgeBC[k][i] != 0 {
					fineTagged++
				}
			}
		}
		assert.Equal(t, 2*coarseTagged, fineTagged)
	}
}

func TestHierarchyLocate(t *testing.T) {
	var (
		l0 = UnitSquareMesh(2)
		l1 = l0.Refine()
		l2 = l1.Refine()
		h  = NewHierarchy(l0, l1, l2)
	)
	assert.Equal(t, l2, h.Finest())
	// The hierarchy agrees with a direct scan on the finest level
	{
		targets := [][2]float64{
			{0.05, 0.05}, {0.95, 0.95}, {0.3, 0.7}, {0.51, 0.49}, {0.99, 0.01},
		}
		for _, tgt := range targets {
			res := h.Locate(tgt[0], tgt[1])
			assert.Equal(t, LocateFound, res.Status)
			assert.True(t, l2.Contains(res.Element, tgt[0], tgt[1]))
		}
	}
	// Exhaustive agreement over a sample grid
	{
		for i := 0; i < 10; i++ {
			for j := 0; j < 10; j++ {
				x, y := 0.05+0.1*float64(i), 0.05+0.1*float64(j)
				res := h.Locate(x, y)
				assert.Equal(t, LocateFound, res.Status)
				assert.True(t, l2.Contains(res.Element, x, y))
			}
		}
	}
	// Leaving the domain surfaces from the coarse walk
	{
		res := h.Locate(2, 2)
		assert.NotEqual(t, LocateFound, res.Status)
	}
}
