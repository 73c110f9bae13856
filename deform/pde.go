package deform

import (
	"errors"
	"fmt"

	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

// ErrSolverDivergence is fatal for the adaptation run: there is no retry
// policy for a failed potential solve
var ErrSolverDivergence = errors.New("deformation potential solve diverged")

/*
SolvePotential builds and solves the potential equation of the deformation
method,

	-Δφ = 1/f_blended - 1/g,  homogeneous Neumann walls,

whose gradient is the advection velocity. One degree of freedom is pinned
to remove the Neumann null space, then the system is handed to the
conjugate gradient solver.
*/
func SolvePotential(tmesh *geometry2D.Triangulation, fb, g utils.Vector,
	tol float64, maxIter int) (phi utils.Vector, iter int, err error) {
	const pin = 0
	var (
		A = element2D.AssembleStiffness(tmesh, pin)
		w = utils.NewVector(tmesh.Nv)
	)
	for i := range w.DataP {
		w.DataP[i] = 1/fb.AtVec(i) - 1/g.AtVec(i)
	}
	b := element2D.AssembleLoad(tmesh, w)
	b[pin] = 0
	phi = utils.NewVector(tmesh.Nv)
	iter, cgErr := utils.ConjugateGradient(A, b, phi.DataP, tol, maxIter)
	if cgErr != nil {
		err = fmt.Errorf("%w: %v", ErrSolverDivergence, cgErr)
	}
	return
}
