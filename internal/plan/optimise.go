package plan

import (
	"math"

	"github.com/dmorvan/divecalc/internal/gas"
)

// maxBottomTimeCap bounds the bottom time search to a full day.
const maxBottomTimeCap = 1440 // min

// MaxTimeAndTTS finds the longest whole minute bottom time for which no
// planning constraint is violated and reports the resulting time to
// surface. Feasibility is monotone in bottom time, so the search doubles an
// upper bound and bisects. Returns ErrInfeasible when even a zero bottom
// time violates a constraint.
func (x *Plan) MaxTimeAndTTS() (maxTime, tts float64, err error) {
	probe := func(t float64) (float64, bool) {
		s := x.scratch()
		s.BottomTime = t
		if err := s.Build(); err != nil {
			return 0, false
		}
		if err := s.Calculate(); err != nil {
			return 0, false
		}
		if s.CheckConstraints() != nil {
			return 0, false
		}
		return s.TTS(), true
	}

	bestTTS, ok := probe(0)
	if !ok {
		return 0, 0, ErrInfeasible.Here().Appendf("depth %.0f m", x.Depth)
	}
	best := 0.0

	lo, hi := 0.0, 1.0
	for {
		t, ok := probe(hi)
		if !ok {
			break
		}
		lo, best, bestTTS = hi, hi, t
		if hi >= maxBottomTimeCap {
			return best, bestTTS, nil
		}
		hi *= 2
		if hi > maxBottomTimeCap {
			hi = maxBottomTimeCap
		}
	}
	for hi-lo > 1 {
		mid := math.Floor((lo + hi) / 2)
		if t, ok := probe(mid); ok {
			lo, best, bestTTS = mid, mid, t
		} else {
			hi = mid
		}
	}
	return best, bestTTS, nil
}

// DecoChoice is the optimiser's pick for one stop station.
type DecoChoice struct {
	StopDepth float64
	Gas       gas.Gas
	GasIndex  int     // -1 when the default selection is kept
	Time      float64 // minimal stop minutes found
}

// OptimiseDecoGas tries, stop by stop from the deepest down, every active
// deco gas breathable at the station and keeps the assignment that
// minimises time to surface with stop durations shrunk to the smallest
// whole minutes clearing the decompression ceiling. Ties prefer the richer
// oxygen mixture. The winning assignment and the found stop durations stay
// in effect for subsequent calculations.
func (x *Plan) OptimiseDecoGas() ([]DecoChoice, float64, error) {
	var stops []StopStep
	for _, st := range x.StopSteps.sortedUnique() {
		if st.Depth > 0 && st.Depth < x.Depth {
			stops = append(stops, st)
		}
	}
	if len(stops) == 0 {
		return nil, 0, ErrInfeasible.Here().Append("no stop stations to optimise")
	}

	current := map[float64]int{}
	for d, i := range x.decoOverride {
		current[d] = i
	}
	curTimes, curTTS, curOK := x.minimiseStops(stops, current)
	curO2 := make([]float64, len(stops))
	for i, st := range stops {
		curO2[i] = x.Gases.BestForDepth(x.Params, st.Depth, gas.Deco).O2Pct
		if gi, ok := current[st.Depth]; ok {
			curO2[i] = x.Gases.Gases[gi].O2Pct
		}
	}

	const eps = 1e-9
	for si, st := range stops {
		for gi, g := range x.Gases.Gases {
			if g.Status != gas.Active || g.Type != gas.Deco {
				continue
			}
			if g.MOD(x.Params.MaxPpO2Deco)+eps < st.Depth {
				continue
			}
			trial := map[float64]int{}
			for d, i := range current {
				trial[d] = i
			}
			trial[st.Depth] = gi
			times, tts, ok := x.minimiseStops(stops, trial)
			if !ok {
				continue
			}
			better := !curOK ||
				tts < curTTS-eps ||
				(math.Abs(tts-curTTS) <= eps && g.O2Pct > curO2[si])
			if better {
				current, curTimes, curTTS, curOK = trial, times, tts, true
				curO2[si] = g.O2Pct
			}
		}
	}
	if !curOK {
		return nil, 0, ErrInfeasible.Here().Appendf("depth %.0f m", x.Depth)
	}

	x.decoOverride = current
	for i, st := range stops {
		for j := range x.StopSteps.Steps {
			if x.StopSteps.Steps[j].Depth == st.Depth {
				x.StopSteps.Steps[j].Time = curTimes[i]
			}
		}
	}
	if err := x.Recompute(); err != nil {
		return nil, 0, err
	}

	choices := make([]DecoChoice, len(stops))
	for i, st := range stops {
		c := DecoChoice{StopDepth: st.Depth, GasIndex: -1, Time: curTimes[i]}
		if gi, ok := current[st.Depth]; ok {
			c.GasIndex = gi
			c.Gas = x.Gases.Gases[gi]
		} else {
			c.Gas = x.Gases.BestForDepth(x.Params, st.Depth, gas.Deco)
		}
		choices[i] = c
	}
	return choices, curTTS, nil
}

// minimiseStops searches, deepest station first, the smallest whole minute
// duration of every stop for which no segment up to and including the
// following ascent ends above the ceiling, then validates the remaining
// constraints. Reports the durations, the resulting time to surface and
// feasibility.
func (x *Plan) minimiseStops(stops []StopStep, overrides map[float64]int) ([]float64, float64, bool) {
	s := x.scratch()
	s.decoOverride = overrides
	s.StopSteps = &StopSteps{Steps: append([]StopStep(nil), stops...)}

	for i := range s.StopSteps.Steps {
		// step layout: descent, bottom, then (ascent, stop) per
		// station, final ascent; the ascent following stop i sits at
		// index 4+2i
		ascentAfter := 4 + 2*i
		found := false
		for t := 1.0; t <= x.Params.MaxStopTime; t++ {
			s.StopSteps.Steps[i].Time = t
			if s.Build() != nil || s.Calculate() != nil {
				return nil, 0, false
			}
			if v := s.ceilingViolationAt(); v < 0 || v > ascentAfter {
				found = true
				break
			}
		}
		if !found {
			return nil, 0, false
		}
	}
	if s.CheckConstraints() != nil {
		return nil, 0, false
	}
	times := make([]float64, len(s.StopSteps.Steps))
	for i, st := range s.StopSteps.Steps {
		times[i] = st.Time
	}
	return times, s.TTS(), true
}
