package plan

import "fmt"

// Warnings lists the advisory flags raised by the calculated profile.
// Warnings never reject a plan; they surface conditions the diver should
// reconsider.
func (x *Plan) Warnings() []string {
	var out []string
	seen := map[string]bool{}
	add := func(format string, args ...interface{}) {
		s := fmt.Sprintf(format, args...)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	p := x.Params
	for i, st := range x.Steps {
		if st.GasDensity > p.WarningGasDensity {
			add("step %d: gas density %.1f g/L exceeds %.1f g/L", i, st.GasDensity, p.WarningGasDensity)
		}
		if st.EndWithO2 > p.WarningEnd {
			add("step %d: narcotic depth %.0f m exceeds %.0f m", i, st.EndWithO2, p.WarningEnd)
		}
		if st.PpO2Max > p.MaxPpO2Deco {
			add("step %d: pO2 %.2f bar exceeds %.2f bar", i, st.PpO2Max, p.MaxPpO2Deco)
		}
		if st.PpO2Max < p.WarningPpO2Low {
			add("step %d: pO2 %.2f bar is hypoxic", i, st.PpO2Max)
		}
		if st.CnsTotal > p.WarningCnsMax {
			add("CNS %.0f%% exceeds the %.0f%% warning threshold", st.CnsTotal, p.WarningCnsMax)
		}
		if st.Otu > p.WarningOtuMax {
			add("OTU %.0f exceeds the %.0f warning threshold", st.Otu, p.WarningOtuMax)
		}
	}
	return out
}

// CnsSingle, CnsTotal and Otu report the final oxygen toxicity figures of
// the calculated profile.
func (x *Plan) CnsSingle() float64 {
	if len(x.Steps) == 0 {
		return 0
	}
	return x.Steps[len(x.Steps)-1].CnsSingle
}

func (x *Plan) CnsTotal() float64 {
	if len(x.Steps) == 0 {
		return x.CnsInit
	}
	return x.Steps[len(x.Steps)-1].CnsTotal
}

func (x *Plan) Otu() float64 {
	if len(x.Steps) == 0 {
		return x.OtuInit
	}
	return x.Steps[len(x.Steps)-1].Otu
}
