package app

import (
	"fmt"

	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/spf13/cobra"
)

var maxTimeCmd = &cobra.Command{
	Use:   "maxtime <depth>",
	Short: "Find the longest bottom time free of constraint violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, err := parseFloatArg(args[0], "depth")
		if err != nil {
			return err
		}
		mode, err := plan.ParseDiveMode(planMode)
		if err != nil {
			return err
		}
		p := loadState().newPlan(depth, 0, mode)
		p.Bailout = planBailout
		maxTime, tts, err := p.MaxTimeAndTTS()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"max bottom time at %.0f m: %.0f min, TTS %s\n",
			depth, maxTime, formatMinutes(tts))
		return nil
	},
}

func init() {
	maxTimeCmd.Flags().StringVar(&planMode, "mode", "oc", "dive mode: oc or cc")
	maxTimeCmd.Flags().BoolVar(&planBailout, "bailout", false, "plan the deco on open circuit bailout")
	rootCmd.AddCommand(maxTimeCmd)
}
