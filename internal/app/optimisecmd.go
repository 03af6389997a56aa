package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var optimiseSaveStops bool

var optimiseCmd = &cobra.Command{
	Use:   "optimise <depth> <bottom-time>",
	Short: "Pick the deco gases and minimal stop times for a dive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := planFromArgs(args)
		if err != nil {
			return err
		}
		choices, tts, err := p.OptimiseDecoGas()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		t := newTable(out)
		fmt.Fprintln(t, "stop, m\tgas\ttime\t")
		for _, c := range choices {
			fmt.Fprintf(t, "%.0f\t%s\t%s\t\n", c.StopDepth, c.Gas, formatMinutes(c.Time))
		}
		t.Flush()
		fmt.Fprintf(out, "TTS %s\n\n", formatMinutes(tts))

		renderSteps(out, p)
		renderTotals(out, p)
		renderWarnings(out, p)

		if optimiseSaveStops {
			if err := p.StopSteps.Save(); err != nil {
				return err
			}
			fmt.Fprintln(out, "stop schedule saved")
		}
		return nil
	},
}

func init() {
	optimiseCmd.Flags().StringVar(&planMode, "mode", "oc", "dive mode: oc or cc")
	optimiseCmd.Flags().BoolVar(&planBailout, "bailout", false, "plan the deco on open circuit bailout")
	optimiseCmd.Flags().Float64Var(&planCns, "cns", 0, "CNS carried in from earlier dives, percent")
	optimiseCmd.Flags().Float64Var(&planOtu, "otu", 0, "OTU carried in from earlier dives")
	optimiseCmd.Flags().BoolVar(&optimiseSaveStops, "save-stops", false,
		"persist the shrunk stop times into the stop schedule")
	rootCmd.AddCommand(optimiseCmd)
}
