// Package plan hosts the decompression engine: the setpoint and stop step
// schedules, the tissue model and the profile construction and calculation
// passes, plus the bottom time and deco gas searches built on top of them.
package plan

import (
	"fmt"

	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/semaphore"
)

// ceilingTolerance absorbs the discretization of evaluating ceilings only at
// segment boundaries.
const ceilingTolerance = 0.1 // m

// Plan owns one dive profile: the target depth, bottom time, mode flags,
// references to the three schedules and the computed step sequence. A Plan
// is not safe for concurrent use; overlapping Build or Calculate calls on
// the same instance are dropped with ErrBusy, never queued.
type Plan struct {
	Depth      float64 // m
	BottomTime float64 // min
	Mode       DiveMode
	Bailout    bool
	GfBoosted  bool

	Params    cfg.Params
	Gases     *gas.List
	SetPoints *SetPoints
	StopSteps *StopSteps

	// oxygen toxicity carried in from earlier dives of the day
	CnsInit float64 // percent
	OtuInit float64

	Steps     []Step
	GasTotals []GasTotal

	// LoopConsumed is the closed circuit loop volume, kept out of the
	// open circuit tank accounting.
	LoopConsumed float64 // L

	// deco gas forced per stop depth by the optimiser
	decoOverride map[float64]int

	buildToken *semaphore.Weighted
	calcToken  *semaphore.Weighted
}

// GasTotal is the consumption of one mixture over the whole profile.
type GasTotal struct {
	Gas         gas.Gas
	Index       int // -1 for synthesized mixtures
	Consumed    float64 // L
	EndPressure float64 // bar
	Breached    bool
}

func New(p cfg.Params, gases *gas.List, setPoints *SetPoints, stopSteps *StopSteps,
	depth, bottomTime float64, mode DiveMode) *Plan {
	return &Plan{
		Depth:      depth,
		BottomTime: bottomTime,
		Mode:       mode,
		GfBoosted:  p.BoostedSetpoints,
		Params:     p,
		Gases:      gases,
		SetPoints:  setPoints,
		StopSteps:  stopSteps,
		buildToken: semaphore.NewWeighted(1),
		calcToken:  semaphore.NewWeighted(1),
	}
}

// scratch clones the plan for probing searches: shared schedules, separate
// step sequence and tokens.
func (x *Plan) scratch() *Plan {
	s := *x
	s.Steps = nil
	s.GasTotals = nil
	s.buildToken = semaphore.NewWeighted(1)
	s.calcToken = semaphore.NewWeighted(1)
	return &s
}

// Build replaces the step sequence: descent, bottom, then for every stop
// station in decreasing depth order an ascent and the stop itself, and the
// final ascent to the surface. Returns ErrBusy when a prior Build on this
// instance is still running.
func (x *Plan) Build() error {
	if !x.buildToken.TryAcquire(1) {
		return ErrBusy.Here()
	}
	defer x.buildToken.Release(1)

	ccMode := func(afterBottom bool) StepMode {
		if x.Mode != CC {
			return StepOC
		}
		if x.Bailout && afterBottom {
			return StepBailout
		}
		return StepCC
	}

	// bottom time is counted from leaving the surface, so the bottom
	// segment holds whatever the descent leaves of it
	descentTime := x.Depth / x.Params.DescentRate
	bottomTime := x.BottomTime - descentTime
	if bottomTime < 0 {
		bottomTime = 0
	}
	steps := []Step{
		{
			Phase:    Descent,
			Mode:     ccMode(false),
			EndDepth: x.Depth,
			Time:     descentTime,
		},
		{
			Phase:      Bottom,
			Mode:       ccMode(false),
			StartDepth: x.Depth,
			EndDepth:   x.Depth,
			Time:       bottomTime,
		},
	}

	prev := x.Depth
	for _, st := range x.StopSteps.sortedUnique() {
		if st.Depth <= 0 || st.Depth >= x.Depth {
			continue
		}
		steps = append(steps,
			Step{
				Phase:      Ascent,
				Mode:       ccMode(true),
				StartDepth: prev,
				EndDepth:   st.Depth,
				Time:       (prev - st.Depth) / x.Params.AscentRate,
			},
			Step{
				Phase:      Stop,
				Mode:       ccMode(true),
				StartDepth: st.Depth,
				EndDepth:   st.Depth,
				Time:       st.Time,
			})
		prev = st.Depth
	}
	steps = append(steps, Step{
		Phase:      Ascent,
		Mode:       ccMode(true),
		StartDepth: prev,
		Time:       prev / x.Params.AscentRate,
	})

	x.Steps = steps
	return nil
}

// firstStopDepth is the deepest stop station of the built profile, zero
// when the profile has none.
func (x *Plan) firstStopDepth() float64 {
	for _, st := range x.Steps {
		if st.Phase == Stop {
			return st.StartDepth
		}
	}
	return 0
}

// Calculate fills the step sequence in order, carrying run time, tissue
// loading and oxygen toxicity forward step by step. A no-op without a built
// profile; returns ErrBusy when a prior Calculate is still running.
// Re-running on unchanged inputs reproduces identical metrics.
func (x *Plan) Calculate() error {
	if len(x.Steps) == 0 {
		return nil
	}
	if !x.calcToken.TryAcquire(1) {
		return ErrBusy.Here()
	}
	defer x.calcToken.Release(1)

	tissues := AirSaturation()
	runTime, cns, otu := 0.0, 0.0, x.OtuInit
	firstStop := x.firstStopDepth()

	for i := range x.Steps {
		st := &x.Steps[i]
		pAmbStart := gas.PressureAtDepth(st.StartDepth)
		pAmbEnd := gas.PressureAtDepth(st.EndDepth)
		st.PAmbMax = pAmbStart
		if pAmbEnd > st.PAmbMax {
			st.PAmbMax = pAmbEnd
		}
		maxDepth := st.MaxDepth()

		g, idx, ppO2Max := x.stepGas(st, maxDepth)
		st.Gas, st.GasIndex = g, idx
		st.PpO2Max = ppO2Max
		st.O2Pct, st.HePct = g.O2Pct, g.HePct
		st.N2Pct = 100 - g.O2Pct - g.HePct

		// loop mixture fractions are held constant over a ramp,
		// evaluated at the segment's deeper edge
		tissues.Load(g.FN2(), g.FHe(), pAmbStart, pAmbEnd, st.Time)

		gf := gradientFactorAt(x.Params.GfLow, x.Params.GfHigh, st.EndDepth, firstStop)
		st.GF = gf * 100
		st.GFSurface = tissues.GFSurface()
		st.CeilingDepth = tissues.CeilingDepth(gf)

		st.GasDensity = g.Density(maxDepth)
		st.EndWithoutO2 = g.ENDWithoutO2(maxDepth)
		st.EndWithO2 = g.ENDWithO2(maxDepth)

		cns += cnsIncrement(st.PpO2Max, st.Time)
		st.CnsSingle = cns
		st.CnsTotal = x.CnsInit + cns
		otu += otuIncrement(st.PpO2Max, st.Time)
		st.Otu = otu

		sac := x.Params.SacBottom
		if st.Phase == Ascent || st.Phase == Stop {
			sac = x.Params.SacDeco
		}
		st.SacRate = sac
		st.AmbConsumption = sac * st.PAmbMax
		st.StepConsumption = st.AmbConsumption * st.Time

		runTime += st.Time
		st.RunTime = runTime
	}
	return nil
}

// stepGas selects the mixture breathed on a step. Open circuit and bailout
// pick the best configured gas for the depth and role; closed circuit
// solves the loop fractions from the setpoint in effect.
func (x *Plan) stepGas(st *Step, maxDepth float64) (g gas.Gas, idx int, ppO2Max float64) {
	if st.Mode == StepCC {
		g, ppO2Max = x.loopMix(maxDepth)
		return g, -1, ppO2Max
	}
	role := gas.Bottom
	if st.Phase == Ascent || st.Phase == Stop {
		role = gas.Deco
	}
	if st.Phase == Stop {
		if i, ok := x.decoOverride[st.StartDepth]; ok && i >= 0 && i < len(x.Gases.Gases) {
			g = x.Gases.Gases[i]
			return g, i, g.PpO2At(maxDepth)
		}
	}
	g = x.Gases.BestForDepth(x.Params, maxDepth, role)
	return g, x.indexOf(g), g.PpO2At(maxDepth)
}

// loopMix solves the closed circuit mixture at depth: oxygen fraction from
// the setpoint, the rest split between nitrogen and helium in the active
// diluent's inert ratio.
func (x *Plan) loopMix(depth float64) (gas.Gas, float64) {
	pAmb := gas.PressureAtDepth(depth)
	sp := x.SetPoints.AtDepth(depth, x.GfBoosted)
	if sp > pAmb {
		sp = pAmb
	}
	fO2 := sp / pAmb
	dil := x.Gases.BestForDepth(x.Params, depth, gas.Diluent)
	heShare := 0.0
	if inert := dil.FN2() + dil.FHe(); inert > 0 {
		heShare = dil.FHe() / inert
	}
	he := (1 - fO2) * heShare * 100
	return gas.Gas{
		O2Pct:  fO2 * 100,
		HePct:  he,
		Type:   gas.Diluent,
		Status: gas.Active,
	}, sp
}

func (x *Plan) indexOf(g gas.Gas) int {
	for i, have := range x.Gases.Gases {
		if have == g {
			return i
		}
	}
	return -1
}

// UpdateGasConsumption aggregates per mixture consumption over the profile
// and projects tank end pressures. The returned error, if any, is a
// multierror listing every gas projected to breach its reserve.
func (x *Plan) UpdateGasConsumption() ([]GasTotal, error) {
	byIndex := map[int]float64{}
	bySynth := map[gas.Gas]float64{}
	loop := 0.0
	for _, st := range x.Steps {
		switch {
		case st.Mode == StepCC:
			loop += st.StepConsumption
		case st.GasIndex >= 0:
			byIndex[st.GasIndex] += st.StepConsumption
		default:
			bySynth[st.Gas] += st.StepConsumption
		}
	}
	x.LoopConsumed = loop

	var totals []GasTotal
	var breaches *multierror.Error
	add := func(g gas.Gas, idx int, consumed float64) {
		t := GasTotal{Gas: g, Index: idx, Consumed: consumed}
		if g.TankCount > 0 && g.TankCapacity > 0 {
			t.EndPressure = g.FillPressure - consumed/(float64(g.TankCount)*g.TankCapacity)
			t.Breached = t.EndPressure < g.ReservePressure
		}
		if t.Breached {
			breaches = multierror.Append(breaches, fmt.Errorf(
				"gas %s: projected end pressure %.0f bar is below the %.0f bar reserve",
				g, t.EndPressure, g.ReservePressure))
		}
		totals = append(totals, t)
	}
	for i, g := range x.Gases.Gases {
		if consumed, ok := byIndex[i]; ok {
			add(g, i, consumed)
		}
	}
	for g, consumed := range bySynth {
		add(g, -1, consumed)
	}
	x.GasTotals = totals
	return totals, breaches.ErrorOrNil()
}

// TTS is the time to surface: everything after the bottom phase.
func (x *Plan) TTS() float64 {
	tts := 0.0
	for _, st := range x.Steps {
		if st.Phase == Ascent || st.Phase == Stop {
			tts += st.Time
		}
	}
	return tts
}

// RunTime is the total profile duration.
func (x *Plan) RunTime() float64 {
	if len(x.Steps) == 0 {
		return 0
	}
	return x.Steps[len(x.Steps)-1].RunTime
}

// ceilingViolationAt returns the index of the first step that ends above
// the decompression ceiling in effect, or -1.
func (x *Plan) ceilingViolationAt() int {
	for i, st := range x.Steps {
		if st.EndDepth+ceilingTolerance < st.CeilingDepth {
			return i
		}
	}
	return -1
}

// CheckConstraints re-aggregates consumption and reports every violated
// planning constraint: reserve breaches, the decompression ceiling, the CNS
// and OTU ceilings and the per stop time limit.
func (x *Plan) CheckConstraints() error {
	var errs *multierror.Error
	if _, err := x.UpdateGasConsumption(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if i := x.ceilingViolationAt(); i >= 0 {
		st := x.Steps[i]
		errs = multierror.Append(errs, fmt.Errorf(
			"step %d (%s to %.0f m) ends above the %.1f m ceiling",
			i, st.Phase, st.EndDepth, st.CeilingDepth))
	}
	if n := len(x.Steps); n > 0 {
		last := x.Steps[n-1]
		if last.CnsTotal > x.Params.PlanCnsLimit {
			errs = multierror.Append(errs, fmt.Errorf(
				"CNS %.0f%% exceeds the %.0f%% limit", last.CnsTotal, x.Params.PlanCnsLimit))
		}
		if last.Otu > x.Params.PlanOtuLimit {
			errs = multierror.Append(errs, fmt.Errorf(
				"OTU %.0f exceeds the %.0f limit", last.Otu, x.Params.PlanOtuLimit))
		}
	}
	for _, st := range x.StopSteps.Steps {
		if st.Time > x.Params.MaxStopTime {
			errs = multierror.Append(errs, fmt.Errorf(
				"stop at %.0f m: %.0f min exceeds the %.0f min limit",
				st.Depth, st.Time, x.Params.MaxStopTime))
		}
	}
	return errs.ErrorOrNil()
}

// Recompute runs the full build, calculate and consumption cycle.
func (x *Plan) Recompute() error {
	if err := x.Build(); err != nil {
		return err
	}
	if err := x.Calculate(); err != nil {
		return err
	}
	_, err := x.UpdateGasConsumption()
	return err
}
