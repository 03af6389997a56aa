package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/dmorvan/divecalc/internal/plan"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func renderSteps(w io.Writer, p *plan.Plan) {
	t := newTable(w)
	fmt.Fprintln(t, "#\tphase\tmode\tdepth, m\ttime\trun\tgas\tpO2\tGF, %\tceil, m\tEND, m\tg/L\tCNS, %\tOTU\tL\t")
	for i, st := range p.Steps {
		depth := fmt.Sprintf("%.0f", st.EndDepth)
		if st.StartDepth != st.EndDepth {
			depth = fmt.Sprintf("%.0f→%.0f", st.StartDepth, st.EndDepth)
		}
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%.0f\t%.1f\t%.0f\t%.2f\t%.1f\t%.1f\t%.0f\t\n",
			i, st.Phase, st.Mode, depth,
			formatMinutes(st.Time), formatMinutes(st.RunTime),
			st.Gas, st.PpO2Max, st.GF, st.CeilingDepth, st.EndWithoutO2,
			st.GasDensity, st.CnsTotal, st.Otu, st.StepConsumption)
	}
	t.Flush()
	fmt.Fprintf(w, "run time %s, TTS %s, surface GF %.0f%%\n",
		formatMinutes(p.RunTime()), formatMinutes(p.TTS()), surfaceGF(p))
}

func surfaceGF(p *plan.Plan) float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].GFSurface
}

func renderTotals(w io.Writer, p *plan.Plan) {
	if len(p.GasTotals) == 0 && p.LoopConsumed == 0 {
		return
	}
	t := newTable(w)
	fmt.Fprintln(t, "gas\tconsumed, L\tend, bar\treserve, bar\t")
	for _, gt := range p.GasTotals {
		mark := ""
		if gt.Breached {
			mark = " !"
		}
		fmt.Fprintf(t, "%s\t%.0f\t%.0f%s\t%.0f\t\n",
			gt.Gas, gt.Consumed, gt.EndPressure, mark, gt.Gas.ReservePressure)
	}
	t.Flush()
	if p.LoopConsumed > 0 {
		fmt.Fprintf(w, "loop volume %.0f L\n", p.LoopConsumed)
	}
}

func renderGases(w io.Writer, params cfg.Params, gases []gas.Gas) {
	t := newTable(w)
	fmt.Fprintln(t, "#\tgas\trole\tstatus\tMOD, m\tswitch, m\ttanks\tfill, bar\treserve, bar\t")
	for i, g := range gases {
		ceiling := gas.CeilingFor(params, g.Type)
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%.0f\t%.0f\t%d×%.0fL\t%.0f\t%.0f\t\n",
			i, g, g.Type, g.Status, g.MOD(ceiling), g.SwitchDepth,
			g.TankCount, g.TankCapacity, g.FillPressure, g.ReservePressure)
	}
	t.Flush()
}

func renderWarnings(w io.Writer, p *plan.Plan) {
	for _, s := range p.Warnings() {
		fmt.Fprintf(w, "warning: %s\n", s)
	}
	if err := p.CheckConstraints(); err != nil {
		fmt.Fprintf(w, "problems:\n%s\n", err)
	}
}

func formatMinutes(min float64) string {
	m := int(min)
	s := int((min - float64(m)) * 60)
	return fmt.Sprintf("%d:%02d", m, s)
}
