package plan

import (
	"fmt"

	"github.com/dmorvan/divecalc/internal/gas"
)

type Phase int

const (
	Descent Phase = iota
	Bottom
	Ascent
	Stop
)

func (p Phase) String() string {
	switch p {
	case Descent:
		return "descent"
	case Bottom:
		return "bottom"
	case Ascent:
		return "ascent"
	case Stop:
		return "stop"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// DiveMode is the mode the dive is planned in.
type DiveMode int

const (
	OC DiveMode = iota
	CC
)

func (m DiveMode) String() string {
	if m == CC {
		return "cc"
	}
	return "oc"
}

func ParseDiveMode(s string) (DiveMode, error) {
	switch s {
	case "oc":
		return OC, nil
	case "cc":
		return CC, nil
	}
	return 0, fmt.Errorf("unknown dive mode %q: must be oc or cc", s)
}

// StepMode is the effective breathing mode of one profile segment.
type StepMode int

const (
	StepOC StepMode = iota
	StepCC
	StepBailout
)

func (m StepMode) String() string {
	switch m {
	case StepCC:
		return "cc"
	case StepBailout:
		return "bailout"
	}
	return "oc"
}

// Step is one segment of the computed profile. The sequence is replaced as a
// whole by Build and filled in place, in order, by Calculate.
type Step struct {
	Phase      Phase
	Mode       StepMode
	StartDepth float64 // m
	EndDepth   float64 // m
	Time       float64 // min
	RunTime    float64 // min

	PAmbMax float64 // bar
	PpO2Max float64 // bar

	// breathed mixture
	O2Pct    float64
	N2Pct    float64
	HePct    float64
	Gas      gas.Gas
	GasIndex int // index into the gas list; -1 for loop and synthesized mixes

	GF           float64 // percent, in effect at the end depth
	GFSurface    float64 // percent
	CeilingDepth float64 // m, at the step's gradient factor

	SacRate         float64 // L/min at the surface
	AmbConsumption  float64 // L/min at depth
	StepConsumption float64 // L

	GasDensity   float64 // g/L
	EndWithoutO2 float64 // m
	EndWithO2    float64 // m

	CnsSingle float64 // percent, this dive
	CnsTotal  float64 // percent, including prior dives
	Otu       float64 // including prior dives
}

// MaxDepth is the deeper edge of the segment.
func (s Step) MaxDepth() float64 {
	if s.StartDepth > s.EndDepth {
		return s.StartDepth
	}
	return s.EndDepth
}
