package app

import (
	"github.com/dmorvan/divecalc/internal/pkg"
	"github.com/dmorvan/divecalc/internal/plan"
	"github.com/dmorvan/divecalc/internal/worklua"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script <file.lua>",
	Short: "Run a Lua planning script",
	Long: `The script drives the engine through the global dp object, e.g.

  dp:Gas{o2=50, role="deco"}
  dp:Dive(30, 20)
  for _, s in ipairs(dp:Plan()) do dp:Info(s.Phase, s.RunTime) end

Schedule changes made by a script stay in memory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := loadState().newPlan(0, 0, plan.OC)
		if err := worklua.Run(cmd.Context(), log, p, args[0]); err != nil {
			pkg.PrintMerryStacktrace(log, err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}
