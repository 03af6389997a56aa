package app

import (
	"context"
	"fmt"

	"github.com/dmorvan/divecalc/internal/data"
	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/spf13/cobra"
)

var (
	planMode    string
	planBailout bool
	planCns     float64
	planOtu     float64
	planRecent  float64
	planSave    bool
)

var planCmd = &cobra.Command{
	Use:   "plan <depth> <bottom-time>",
	Short: "Compute the decompression profile for a dive",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlanCmd,
}

func init() {
	planCmd.Flags().StringVar(&planMode, "mode", "oc", "dive mode: oc or cc")
	planCmd.Flags().BoolVar(&planBailout, "bailout", false, "plan the deco on open circuit bailout")
	planCmd.Flags().Float64Var(&planCns, "cns", 0, "CNS carried in from earlier dives, percent")
	planCmd.Flags().Float64Var(&planOtu, "otu", 0, "OTU carried in from earlier dives")
	planCmd.Flags().Float64Var(&planRecent, "recent", 0,
		"add the toxicity of journal dives logged within this many hours")
	planCmd.Flags().BoolVar(&planSave, "save", false, "log the dive to the journal")
	rootCmd.AddCommand(planCmd)
}

func runPlanCmd(cmd *cobra.Command, args []string) error {
	p, err := planFromArgs(args)
	if err != nil {
		return err
	}
	if err := p.Build(); err != nil {
		return err
	}
	if err := p.Calculate(); err != nil {
		return err
	}
	if _, err := p.UpdateGasConsumption(); err != nil {
		log.PrintErr(err)
	}

	out := cmd.OutOrStdout()
	renderSteps(out, p)
	renderTotals(out, p)
	renderWarnings(out, p)

	if !planSave {
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer log.ErrIfFail(db.Close)
	last := p.Steps[len(p.Steps)-1]
	id, err := data.AddDive(cmd.Context(), db, data.Dive{
		Depth:      p.Depth,
		BottomTime: p.BottomTime,
		Mode:       p.Mode.String(),
		Bailout:    p.Bailout,
		RunTime:    p.RunTime(),
		TTS:        p.TTS(),
		Cns:        last.CnsSingle,
		Otu:        last.Otu - p.OtuInit,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged dive %d\n", id)
	return nil
}

// planFromArgs builds a plan from the depth and bottom time arguments and
// the shared mode, bailout and toxicity carry flags.
func planFromArgs(args []string) (*plan.Plan, error) {
	depth, err := parseFloatArg(args[0], "depth")
	if err != nil {
		return nil, err
	}
	bottomTime, err := parseFloatArg(args[1], "bottom time")
	if err != nil {
		return nil, err
	}
	mode, err := plan.ParseDiveMode(planMode)
	if err != nil {
		return nil, err
	}
	p := loadState().newPlan(depth, bottomTime, mode)
	p.Bailout = planBailout
	p.CnsInit, p.OtuInit = planCns, planOtu
	if planRecent > 0 {
		db, err := openDB()
		if err != nil {
			return nil, err
		}
		defer log.ErrIfFail(db.Close)
		x, err := data.OxToxSinceHours(context.Background(), db, planRecent)
		if err != nil {
			return nil, err
		}
		p.CnsInit += x.Cns
		p.OtuInit += x.Otu
	}
	return p, nil
}
