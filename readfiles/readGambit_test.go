package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/radapt/geometry2D"
)

var squareNeu = `        CONTROL INFO 2.0.0
** GAMBIT NEUTRAL FILE
square
PROGRAM:                Gambit     VERSION:  2.0.0
 1 Jan 2020
     NUMNP     NELEM     NGRPS    NBSETS     NDFCD     NDFVL
         4         2         0         1         2         2
ENDOFSECTION
   NODAL COORDINATES 2.0.0
         1   0.00000000000e+00   0.00000000000e+00
         2   1.00000000000e+00   0.00000000000e+00
         3   1.00000000000e+00   1.00000000000e+00
         4   0.00000000000e+00   1.00000000000e+00
ENDOFSECTION
      ELEMENTS/CELLS 2.0.0
         1  3  3        1       2       3
         2  3  3        1       3       4
ENDOFSECTION
       BOUNDARY CONDITIONS 2.0.0
                    wall       1       4       0       6
         1       3       1
         1       3       2
         2       3       2
         2       3       3
ENDOFSECTION
`

func TestReadGambit2d(t *testing.T) {
	var (
		dir      = t.TempDir()
		filename = filepath.Join(dir, "square.neu")
	)
	assert.NoError(t, os.WriteFile(filename, []byte(squareNeu), 0644))
	K, VX, VY, EToV, BCType := ReadGambit2d(filename, false)
	// Mesh dimensions and zero-based index conversion
	{
		assert.Equal(t, 2, K)
		assert.Equal(t, 4, VX.Len())
		assert.Equal(t, []float64{0, 1, 1, 0}, VX.DataP)
		assert.Equal(t, []float64{0, 0, 1, 1}, VY.DataP)
		assert.Equal(t, []float64{0, 1, 2, 0, 2, 3}, EToV.DataP)
	}
	// All four hull faces tagged by the wall group, interior diagonal not
	{
		assert.Equal(t, 1., BCType.At(0, 0))
		assert.Equal(t, 1., BCType.At(0, 1))
		assert.Equal(t, 1., BCType.At(1, 1))
		assert.Equal(t, 1., BCType.At(1, 2))
		assert.Equal(t, 0., BCType.At(0, 2))
		assert.Equal(t, 0., BCType.At(1, 0))
	}
	// The result feeds straight into a triangulation
	{
		tmesh := geometry2D.NewTriangulation(VX, VY, EToV, BCType)
		assert.Equal(t, 1., tmesh.TotalArea())
		for v := 0; v < 4; v++ {
			assert.True(t, tmesh.IsBoundaryVertex(v))
		}
		assert.Equal(t, 1, tmesh.EToE[0][2])
		assert.Equal(t, 0, tmesh.EToE[1][0])
	}
}
