package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConjugateGradient(t *testing.T) {
	// Small dense SPD system with a known solution
	{
		dok := NewDOK(3, 3)
		dok.Set(0, 0, 4)
		dok.Set(0, 1, 1)
		dok.Set(1, 0, 1)
		dok.Set(1, 1, 3)
		dok.Set(1, 2, 1)
		dok.Set(2, 1, 1)
		dok.Set(2, 2, 2)
		A := dok.ToCSR()
		xExact := []float64{1, 2, 3}
		b := make([]float64, 3)
		A.MulVec(xExact, b)
		x := make([]float64, 3)
		iter, err := ConjugateGradient(A, b, x, 1.e-12, 100)
		assert.NoError(t, err)
		assert.True(t, iter <= 3+1) // CG is exact in n iterations
		assert.True(t, nearVec(xExact, x, 1.e-8))
	}
	// 1D Laplacian, the canonical large-ish SPD test
	{
		var (
			n   = 50
			dok = NewDOK(n, n)
		)
		for i := 0; i < n; i++ {
			dok.Set(i, i, 2)
			if i > 0 {
				dok.Set(i, i-1, -1)
			}
			if i < n-1 {
				dok.Set(i, i+1, -1)
			}
		}
		A := dok.ToCSR()
		b := make([]float64, n)
		for i := range b {
			b[i] = 1
		}
		x := make([]float64, n)
		_, err := ConjugateGradient(A, b, x, 1.e-10, 500)
		assert.NoError(t, err)
		// Verify the residual directly
		r := make([]float64, n)
		A.MulVec(x, r)
		for i := range r {
			assert.True(t, near(b[i], r[i], 1.e-8))
		}
	}
	// Iteration cap produces the sentinel error
	{
		var (
			n   = 50
			dok = NewDOK(n, n)
		)
		for i := 0; i < n; i++ {
			dok.Set(i, i, 2)
			if i > 0 {
				dok.Set(i, i-1, -1)
			}
			if i < n-1 {
				dok.Set(i, i+1, -1)
			}
		}
		A := dok.ToCSR()
		b := make([]float64, n)
		b[0] = 1
		x := make([]float64, n)
		_, err := ConjugateGradient(A, b, x, 1.e-14, 2)
		assert.ErrorIs(t, err, ErrNotConverged)
	}
}

func TestPartitionMap(t *testing.T) {
	// Buckets tile the index range with maximum imbalance of one
	for _, np := range []int{1, 3, 7} {
		for _, max := range []int{7, 20, 21} {
			pm := NewPartitionMap(np, max)
			prev := 0
			for n := 0; n < np; n++ {
				kMin, kMax := pm.GetBucketRange(n)
				assert.Equal(t, prev, kMin)
				dim := pm.GetBucketDimension(n)
				assert.Equal(t, kMax-kMin, dim)
				assert.True(t, dim >= max/np && dim <= max/np+1)
				prev = kMax
			}
			assert.Equal(t, max, prev)
		}
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
