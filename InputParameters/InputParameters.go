package InputParameters

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofv/FV2D"
	"github.com/notargets/gofv/types"
)

// Parameters obtained from the YAML input file
type InputParameters2D struct {
	Title     string            `json:"Title"`
	Lx        float64           `json:"Lx"`
	Ly        float64           `json:"Ly"`
	Nx        int               `json:"Nx"`
	Ny        int               `json:"Ny"`
	Mu        [2]float64        `json:"Mu"` // Inflow value and source growth rate
	FinalTime float64           `json:"FinalTime"`
	Steps     int               `json:"Steps"`
	TimeStep  string            `json:"TimeStep"` // fixed or cfl
	CFL       float64           `json:"CFL"`
	DT        float64           `json:"DT"` // Fixed step, zero means FinalTime/Steps
	Scheme    string            `json:"Scheme"`
	ProcLimit int               `json:"ProcLimit"`
	BCs       map[string]string `json:"BCs"` // Side name to boundary kind
}

// NewInputParameters2D has the parameters of the reference Burgers run
func NewInputParameters2D() (ip *InputParameters2D) {
	ip = &InputParameters2D{
		Title:     "Vector Burgers",
		Lx:        100,
		Ly:        100,
		Nx:        250,
		Ny:        250,
		Mu:        [2]float64{4.3, 0.021},
		FinalTime: 25,
		Steps:     500,
		TimeStep:  "fixed",
		CFL:       0.5,
		Scheme:    "rk3",
	}
	return
}

// Parse reads the YAML input over the current values, keys not present keep their value
func (ip *InputParameters2D) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	return ip.Validate()
}

func (ip *InputParameters2D) Validate() (err error) {
	switch {
	case !(ip.Lx > 0) || !(ip.Ly > 0):
		return fmt.Errorf("domain lengths must be positive, have Lx=%v, Ly=%v", ip.Lx, ip.Ly)
	case ip.Nx < 1 || ip.Ny < 1:
		return fmt.Errorf("cell counts must be at least one, have Nx=%d, Ny=%d", ip.Nx, ip.Ny)
	case !(ip.FinalTime > 0) || math.IsInf(ip.FinalTime, 0):
		return fmt.Errorf("final time must be positive and finite, have %v", ip.FinalTime)
	case ip.ProcLimit < 0:
		return fmt.Errorf("ProcLimit must not be negative, have %d", ip.ProcLimit)
	}
	if _, err = FV2D.NewTemporalScheme(ip.Scheme); err != nil {
		return
	}
	switch strings.ToLower(ip.TimeStep) {
	case "fixed":
		if ip.DT == 0 && ip.Steps < 1 {
			return fmt.Errorf("fixed time stepping needs Steps or DT, have Steps=%d", ip.Steps)
		}
		if ip.DT < 0 {
			return fmt.Errorf("fixed time step must be positive, have %v", ip.DT)
		}
	case "cfl":
		if !(ip.CFL > 0) {
			return fmt.Errorf("CFL must be positive, have %v", ip.CFL)
		}
	default:
		return fmt.Errorf("unknown time step policy %q, use fixed or cfl", ip.TimeStep)
	}
	for name, kind := range ip.BCs {
		if _, err = types.NewBCTAG(name); err != nil {
			return
		}
		if _, err = types.NewBCFLAG(kind); err != nil {
			return fmt.Errorf("boundary %s: %w", name, err)
		}
	}
	return
}

// FixedDT is the step used by the fixed policy
func (ip *InputParameters2D) FixedDT() float64 {
	if ip.DT > 0 {
		return ip.DT
	}
	return ip.FinalTime / float64(ip.Steps)
}

func (ip *InputParameters2D) IsCFL() bool { return strings.ToLower(ip.TimeStep) == "cfl" }

func (ip *InputParameters2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%8.3f x %8.3f]\t= Domain\n", ip.Lx, ip.Ly)
	fmt.Printf("[%d x %d]\t\t= Cells\n", ip.Nx, ip.Ny)
	fmt.Printf("[%8.5f, %8.5f]\t= Mu\n", ip.Mu[0], ip.Mu[1])
	fmt.Printf("%8.5f\t\t= FinalTime\n", ip.FinalTime)
	if ip.IsCFL() {
		fmt.Printf("%8.5f\t\t= CFL\n", ip.CFL)
	} else {
		fmt.Printf("%8.5f\t\t= Fixed Time Step\n", ip.FixedDT())
	}
	fmt.Printf("[%s]\t\t\t= Scheme\n", ip.Scheme)
	keys := make([]string, 0, len(ip.BCs))
	for k := range ip.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, ip.BCs[key])
	}
}
