package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// MonitorParameters selects and shapes the built-in monitor functions
type MonitorParameters struct {
	Type      string  `yaml:"Type"` // "Uniform" or "Band"
	CenterX   float64 `yaml:"CenterX"`
	CenterY   float64 `yaml:"CenterY"`
	Radius    float64 `yaml:"Radius"`
	Width     float64 `yaml:"Width"`
	Amplitude float64 `yaml:"Amplitude"`
}

// Parameters obtained from the YAML input file. The struct is immutable for
// the duration of a run once parsed.
type DeformationParameters2D struct {
	Title               string            `yaml:"Title"`
	NAdapt              int               `yaml:"NAdapt"`              // Number of adaptation iterations
	ODESteps            int               `yaml:"ODESteps"`            // Explicit Euler steps per vertex trajectory
	BlendingExponent    float64           `yaml:"BlendingExponent"`    // t_k = (k/N)^BlendingExponent
	SolverTolerance     float64           `yaml:"SolverTolerance"`     // CG relative residual target
	SolverMaxIterations int               `yaml:"SolverMaxIterations"` // CG iteration cap
	RaytraceHopCap      int               `yaml:"RaytraceHopCap"`      // Edge hops before search gives up
	BoundaryLevel       int               `yaml:"BoundaryLevel"`       // 0 = boundary fixed, 1 = tangential tracking
	ProcLimit           int               `yaml:"ProcLimit"`           // 0 = use all CPUs
	Monitor             MonitorParameters `yaml:"Monitor"`
}

func (ip *DeformationParameters2D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	ip.ApplyDefaults()
	return nil
}

func (ip *DeformationParameters2D) ApplyDefaults() {
	if ip.NAdapt == 0 {
		ip.NAdapt = 5
	}
	if ip.ODESteps == 0 {
		ip.ODESteps = 20
	}
	if ip.BlendingExponent == 0 {
		ip.BlendingExponent = 0.25
	}
	if ip.SolverTolerance == 0 {
		ip.SolverTolerance = 1.e-8
	}
	if ip.SolverMaxIterations == 0 {
		ip.SolverMaxIterations = 2000
	}
	if ip.RaytraceHopCap == 0 {
		ip.RaytraceHopCap = 100
	}
	if ip.Monitor.Type == "" {
		ip.Monitor.Type = "Uniform"
	}
}

func (ip *DeformationParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= NAdapt\n", ip.NAdapt)
	fmt.Printf("[%d]\t\t\t= ODESteps\n", ip.ODESteps)
	fmt.Printf("%8.5f\t\t= BlendingExponent\n", ip.BlendingExponent)
	fmt.Printf("%8.1e\t\t= SolverTolerance\n", ip.SolverTolerance)
	fmt.Printf("[%d]\t\t= SolverMaxIterations\n", ip.SolverMaxIterations)
	fmt.Printf("[%d]\t\t\t= RaytraceHopCap\n", ip.RaytraceHopCap)
	fmt.Printf("[%d]\t\t\t= BoundaryLevel\n", ip.BoundaryLevel)
	fmt.Printf("[%s]\t\t\t= Monitor Type\n", ip.Monitor.Type)
}
