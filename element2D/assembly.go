package element2D

import (
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// AssembleStiffness builds the scalar Laplacian stiffness matrix over the
// P1 space of the mesh: A_ij = ∫ ∇ψ_i · ∇ψ_j. When a pin DOF is given its
// row and column are replaced by identity, which removes the Neumann null
// space so the system becomes positive definite.
func AssembleStiffness(tmesh *geometry2D.Triangulation, pinO ...int) (A utils.CSR) {
	var (
		dok = utils.NewDOK(tmesh.Nv, tmesh.Nv)
		pin = -1
	)
	if len(pinO) != 0 {
		pin = pinO[0]
	}
	for k := 0; k < tmesh.K; k++ {
		var (
			gx, gy, area = GradShape(tmesh, k)
			verts        = tmesh.GetTriVerts(k)
		)
		for i := 0; i < 3; i++ {
			if verts[i] == pin {
				continue
			}
			for j := 0; j < 3; j++ {
				if verts[j] == pin {
					continue
				}
				dok.Accumulate(verts[i], verts[j],
					area*(gx[i]*gx[j]+gy[i]*gy[j]))
			}
		}
	}
	if pin != -1 {
		dok.Set(pin, pin, 1)
	}
	A = dok.ToCSR()
	return
}

// AssembleLoad builds the weak-form right hand side b_i = ∫ w ψ_i for a
// nodal weight field w, using the consistent P1 mass quadrature
func AssembleLoad(tmesh *geometry2D.Triangulation, w utils.Vector) (b []float64) {
	b = make([]float64, tmesh.Nv)
	for k := 0; k < tmesh.K; k++ {
		var (
			verts = tmesh.GetTriVerts(k)
			area  = tmesh.SignedArea(k)
		)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				m := area / 12
				if i == j {
					m = area / 6
				}
				b[verts[i]] += m * w.AtVec(verts[j])
			}
		}
	}
	return
}
