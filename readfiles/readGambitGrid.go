package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/radapt/utils"
)

/*
ReadGambit2d reads a Gambit Neutral (.neu) triangle mesh. Vertex and
element indices in the file are one-based and converted here; the BCType
matrix carries one integer tag per element edge, zero for interior edges.
Material groups are parsed and discarded, only the mesh geometry and
boundary groups feed the deformation.
*/
func ReadGambit2d(filename string, verbose bool) (K int, VX, VY utils.Vector, EToV, BCType utils.Matrix) {
	var (
		file   *os.File
		err    error
		reader *bufio.Reader
	)
	if verbose {
		fmt.Printf("Reading Gambit Neutral file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("unable to open file %s\n %s", filename, err))
	}
	defer file.Close()
	reader = bufio.NewReader(file)

	// Skip first six lines
	skipLines(6, reader)

	// Get dimensions
	Nv, K, Nmats, Nbcs, Nsd := ReadHeader(reader)
	skipLines(2, reader)

	if verbose {
		fmt.Printf("Nv = %d, K = %d\n", Nv, K)
		fmt.Printf("Nmats = %d, Nbcs = %d\n%d space dimensions\n", Nmats, Nbcs, Nsd)
	}
	if Nsd != 2 {
		panic("planar triangle meshes only, space dimensions must be 2")
	}

	VX, VY = Read2DVertices(Nv, reader)
	skipLines(2, reader)

	EToV = ReadTris(K, reader)
	skipLines(2, reader)

	if verbose {
		fmt.Printf("Bounding Box:\nXMin/XMax = %5.3f, %5.3f\nYMin/YMax = %5.3f, %5.3f\n",
			VX.Min(), VX.Max(), VY.Min(), VY.Max())
	}

	// Material groups are present in most generator output but carry
	// nothing the deformation needs
	for i := 0; i < Nmats; i++ {
		elnum := ReadMaterialHeader(reader)
		SkipMaterialGroup(reader, elnum)
		skipLines(2, reader)
	}

	BCType = ReadBCS(Nbcs, K, reader)
	return
}

func ReadBCS(Nbcs, K int, reader *bufio.Reader) (BCType utils.Matrix) {
	var (
		line, bctyp string
		err         error
		n           int
		bcid        int
	)
	BCType = utils.NewMatrix(K, 3)
	for i := 0; i < Nbcs; i++ {
		if i != 0 {
			skipLines(1, reader)
		}
		line = getLine(reader)
		if n, err = fmt.Sscanf(line, "%32s", &bctyp); err != nil {
			panic(err)
		}
		bctyp = strings.ToLower(strings.Trim(bctyp, " "))
		var numfaces int
		if n, err = fmt.Sscanf(line, "%32s%8d%8d", &bctyp, &bcid, &numfaces); err != nil || n < 3 {
			if err == nil {
				err = fmt.Errorf("malformed boundary group header, line: %s", line)
			}
			panic(err)
		}
		// Tag every named face of the group; group ordinal is the tag when
		// the file supplies no usable id
		tag := bcid
		if tag == 0 {
			tag = i + 1
		}
		for j := 0; j < numfaces; j++ {
			line = getLine(reader)
			var kp1, n2, faceNumberp1 int
			if n, err = fmt.Sscanf(line, "%d %d %d", &kp1, &n2, &faceNumberp1); err != nil || n < 3 {
				if err == nil && n < 3 {
					err = fmt.Errorf("read fewer than required dimensions, read %d, need 3\n, line: %s", n, line)
				}
				panic(err)
			}
			BCType.Set(kp1-1, faceNumberp1-1, float64(tag))
		}
		skipLines(1, reader)
	}
	return
}

func SkipMaterialGroup(reader *bufio.Reader, elementCount int) {
	var (
		added int
	)
	if elementCount%10 != 0 {
		added = 1
	}
	numLines := elementCount/10 + added
	skipLines(numLines, reader)
}

func ReadMaterialHeader(reader *bufio.Reader) (elnum int) {
	/*
	   GROUP:           1 ELEMENTS:        977 MATERIAL:      1.000 NFLAGS:          0
	                     epsilon: 1.000
	          0
	*/
	var (
		line   = getLine(reader)
		n      int
		err    error
		gn     int
		matval float64
	)
	nargs := 3
	if n, err = fmt.Sscanf(line, "GROUP: %11d ELEMENTS:%11d MATERIAL:%11f", &gn, &elnum, &matval); err != nil || n < nargs {
		if err == nil && n < nargs {
			err = fmt.Errorf("read fewer than %d dimensions, read %d, line: %s", nargs, n, line)
		}
		panic(err)
	}
	skipLines(2, reader) // Title line plus flags line
	return
}

func ReadHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int) {
	/*
		Nv      // num nodes in mesh
		K       // num elements
		Nmats   // num material groups
		Nbcs    // num boundary groups
		Nsd;    // num space dimensions
	*/
	var (
		line   = getLine(reader)
		n, dum int
		err    error
	)
	nargs := 6
	if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &dum); err != nil || n < nargs {
		if err == nil && n < nargs {
			err = fmt.Errorf("read fewer than %d dimensions, read %d, line: %s", nargs, n, line)
		}
		panic(err)
	}
	return
}

func Read2DVertices(Nv int, reader *bufio.Reader) (VX, VY utils.Vector) {
	var (
		line   string
		err    error
		n, ind int
	)
	nargs := 3
	VX, VY = utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy := VX.DataP, VY.DataP
	for i := 0; i < Nv; i++ {
		line = getLine(reader)
		if n, err = fmt.Sscanf(line, "%d", &ind); err != nil || n < 1 {
			err = fmt.Errorf("error reading index, line: %s, err: %v\n", line, err)
			panic(err)
		}
		if n, err = fmt.Sscanf(line, "%d %f %f", &ind, &vx[ind-1], &vy[ind-1]); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
	}
	return
}

func ReadTris(K int, reader *bufio.Reader) (EToV utils.Matrix) {
	//-------------------------------------
	// Triangles:
	//-------------------------------------
	// ENDOFSECTION
	//    ELEMENTS/CELLS 1.3.0
	//      1  3  3        1       2       3
	//      2  3  3        3       2       4
	var (
		line                       string
		err                        error
		n, ind, typ, nfaces, nargs int
	)
	EToV = utils.NewMatrix(K, 3)
	for i := 0; i < K; i++ {
		line = getLine(reader)
		nargs = 6
		var n1, n2, n3 int
		if n, err = fmt.Sscanf(line, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3); err != nil || n < nargs {
			if err == nil && n < nargs {
				err = fmt.Errorf("read fewer than required dimensions, read %d, need %d\n, line: %s", n, nargs, line)
			}
			panic(err)
		}
		EToV.Set(ind-1, 0, float64(n1-1))
		EToV.Set(ind-1, 1, float64(n2-1))
		EToV.Set(ind-1, 2, float64(n3-1))
	}
	return
}

func getLine(reader *bufio.Reader) (line string) {
	var (
		err error
	)
	line, err = reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("early end of file")
		}
		panic(err)
	}
	line = line[:len(line)-1] // Strip away the newline
	return
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLine(reader)
	}
}
