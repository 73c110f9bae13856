package deform

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/notargets/radapt/InputParameters"
	"github.com/notargets/radapt/element2D"
	"github.com/notargets/radapt/geometry2D"
	"github.com/notargets/radapt/utils"
)

type Deformer struct {
	Tri            *geometry2D.Triangulation
	IP             *InputParameters.DeformationParameters2D
	Monitor        MonitorFunc
	Partitions     *utils.PartitionMap // Vertex partitioning for the advection worker pool
	ParallelDegree int
	Verbose        bool
}

func NewDeformer(tmesh *geometry2D.Triangulation, ip *InputParameters.DeformationParameters2D,
	monitorO ...MonitorFunc) (d *Deformer) {
	d = &Deformer{
		Tri:     tmesh,
		IP:      ip,
		Monitor: MonitorFromParameters(ip.Monitor),
	}
	if len(monitorO) != 0 && monitorO[0] != nil {
		d.Monitor = monitorO[0]
	}
	tmesh.HopCap = ip.RaytraceHopCap
	d.SetParallelDegree(ip.ProcLimit, tmesh.Nv)
	return
}

func (d *Deformer) SetParallelDegree(ProcLimit, NvMax int) {
	if ProcLimit != 0 {
		d.ParallelDegree = ProcLimit
	} else {
		d.ParallelDegree = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(runtime.NumCPU())
	if d.ParallelDegree > NvMax {
		d.ParallelDegree = 1
	}
	d.Partitions = utils.NewPartitionMap(d.ParallelDegree, NvMax)
}

// BlendingSchedule ramps the blending parameter so early iterations favor
// the current area distribution and the final iteration uses the pure
// monitor function: t_k = (k/N)^(1/4) for k<N, t_N = 1
func (d *Deformer) BlendingSchedule(k int) (t float64) {
	var (
		N = d.IP.NAdapt
	)
	if k >= N {
		return 1
	}
	t = math.Pow(float64(k)/float64(N), d.IP.BlendingExponent)
	return
}

/*
Deform runs the full adaptation: N iterations, each rebuilding the monitor
and area fields on the current (possibly already deformed) mesh, solving
the potential equation, recovering the velocity and advecting every vertex.
The triangulation's vertex coordinates and boundary parameter values are
mutated in place. The only fatal failure is solver divergence; per-vertex
point location failures are absorbed by freezing positions.
*/
func (d *Deformer) Deform() (err error) {
	var (
		start = time.Now()
	)
	if d.Verbose {
		fmt.Printf("Grid deformation: K = %d, Nv = %d, %d iterations, %d go routines\n",
			d.Tri.K, d.Tri.Nv, d.IP.NAdapt, d.ParallelDegree)
	}
	for k := 1; k <= d.IP.NAdapt; k++ {
		t := d.BlendingSchedule(k)
		if err = d.adaptStep(t); err != nil {
			return fmt.Errorf("adaptation iteration %d: %w", k, err)
		}
		if d.Verbose {
			fmt.Printf("iteration %3d: t = %6.4f, total area = %8.6f, min Jacobian = %10.3e\n",
				k, t, d.Tri.TotalArea(), d.Tri.MinJacobian())
		}
	}
	if d.Verbose {
		fmt.Printf("deformation complete in %v, %s\n", time.Since(start), utils.GetMemUsage())
	}
	return
}

// adaptStep is one deformation iteration at blending parameter t. All
// nodal fields are scoped to this call and released on every exit path.
func (d *Deformer) adaptStep(t float64) (err error) {
	var (
		tmesh = d.Tri
		curve = geometry2D.NewBoundaryCurve(tmesh)
		g     = NodalAreaField(tmesh)
		f     = d.Monitor(tmesh.VX, tmesh.VY)
	)
	if f.Len() != tmesh.Nv {
		panic(fmt.Errorf("monitor callback returned %d values for %d vertices", f.Len(), tmesh.Nv))
	}
	NormalizeNumeric(tmesh, f, g)
	fb := Blend(f, g, t)
	NormalizeInverse(tmesh, fb, g)
	phi, iter, err := SolvePotential(tmesh, fb, g, d.IP.SolverTolerance, d.IP.SolverMaxIterations)
	if err != nil {
		return
	}
	if d.Verbose {
		fmt.Printf("  potential solve converged in %d CG iterations\n", iter)
	}
	velX, velY := element2D.RecoverGradient(tmesh, phi)
	fl := &iterationFields{FB: fb, G: g, VelX: velX, VelY: velY}
	// Advect against the frozen pre-step mesh, then write back once
	var (
		newX = make([]float64, tmesh.Nv)
		newY = make([]float64, tmesh.Nv)
	)
	copy(newX, tmesh.VX.DataP)
	copy(newY, tmesh.VY.DataP)
	d.advectInterior(fl, newX, newY)
	if d.IP.BoundaryLevel > 0 {
		d.advectBoundary(curve, fl, newX, newY)
	}
	copy(tmesh.VX.DataP, newX)
	copy(tmesh.VY.DataP, newY)
	return
}

// Deform is the single entry point of the package: it relocates the mesh
// vertices of tmesh toward the target distribution of the monitor
// function, or of the built-in monitor configured in ip when none is given
func Deform(tmesh *geometry2D.Triangulation, ip *InputParameters.DeformationParameters2D,
	monitor MonitorFunc, verbose bool) error {
	d := NewDeformer(tmesh, ip, monitor)
	d.Verbose = verbose
	return d.Deform()
}
