package utils

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrNotConverged = errors.New("iterative solver failed to converge")

/*
ConjugateGradient solves A*x = b for symmetric positive (semi-)definite A
using Jacobi-preconditioned CG. The solution is written into x, which also
supplies the initial guess. Convergence is measured against the relative
residual ||b - A*x|| / ||b||.
*/
func ConjugateGradient(A CSR, b, x []float64, tol float64, maxIter int) (iter int, err error) {
	var (
		n     = len(b)
		r     = make([]float64, n)
		z     = make([]float64, n)
		p     = make([]float64, n)
		q     = make([]float64, n)
		diag  = A.Diagonal()
		bNorm = floats.Norm(b, 2)
	)
	if bNorm == 0 {
		bNorm = 1
	}
	for i, d := range diag {
		if d == 0 {
			diag[i] = 1 // Unconstrained diagonal, no scaling
		}
	}
	A.MulVec(x, r)
	for i := range r {
		r[i] = b[i] - r[i]
	}
	for i := range z {
		z[i] = r[i] / diag[i]
	}
	copy(p, z)
	rz := floats.Dot(r, z)
	for iter = 0; iter < maxIter; iter++ {
		if floats.Norm(r, 2)/bNorm < tol {
			return
		}
		A.MulVec(p, q)
		pq := floats.Dot(p, q)
		if pq == 0 || math.IsNaN(pq) {
			err = fmt.Errorf("%w: breakdown at iteration %d", ErrNotConverged, iter)
			return
		}
		alpha := rz / pq
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		for i := range z {
			z[i] = r[i] / diag[i]
		}
		rzNew := floats.Dot(r, z)
		beta := rzNew / rz
		rz = rzNew
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	if floats.Norm(r, 2)/bNorm < tol {
		return
	}
	err = fmt.Errorf("%w: residual %g after %d iterations",
		ErrNotConverged, floats.Norm(r, 2)/bNorm, maxIter)
	return
}
