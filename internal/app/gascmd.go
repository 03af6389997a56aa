package app

import (
	"github.com/dmorvan/divecalc/internal/gas"
	"github.com/spf13/cobra"
)

var gasFlags struct {
	role        string
	switchDepth float64
	switchPpO2  float64
	tanks       int
	capacity    float64
	fill        float64
	reserve     float64
}

var gasCmd = &cobra.Command{
	Use:   "gas",
	Short: "Manage the breathing gas list",
}

var gasListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the configured mixtures",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadState()
		renderGases(cmd.OutOrStdout(), s.params, s.gases.Gases)
		return nil
	},
}

var gasAddCmd = &cobra.Command{
	Use:   "add <o2%> [he%]",
	Short: "Add a mixture",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o2, err := parseFloatArg(args[0], "o2")
		if err != nil {
			return err
		}
		he := 0.0
		if len(args) == 2 {
			if he, err = parseFloatArg(args[1], "he"); err != nil {
				return err
			}
		}
		role, err := gas.ParseType(gasFlags.role)
		if err != nil {
			return err
		}
		g := gas.New(o2, he, role, gas.Active)
		applyGasFlags(cmd, &g)
		s := loadState()
		if err := s.gases.Add(g); err != nil {
			return err
		}
		return s.gases.Save()
	},
}

var gasEditCmd = &cobra.Command{
	Use:   "edit <index> <o2%> [he%]",
	Short: "Replace a mixture",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		o2, err := parseFloatArg(args[1], "o2")
		if err != nil {
			return err
		}
		he := 0.0
		if len(args) == 3 {
			if he, err = parseFloatArg(args[2], "he"); err != nil {
				return err
			}
		}
		s := loadState()
		if i < 0 || i >= len(s.gases.Gases) {
			return gas.ErrInvalidIndex.Here().Appendf("gas %d of %d", i, len(s.gases.Gases))
		}
		g := s.gases.Gases[i]
		g.O2Pct, g.HePct = o2, he
		if cmd.Flags().Changed("role") {
			if g.Type, err = gas.ParseType(gasFlags.role); err != nil {
				return err
			}
		}
		applyGasFlags(cmd, &g)
		if err := s.gases.Edit(i, g); err != nil {
			return err
		}
		return s.gases.Save()
	},
}

var gasDelCmd = &cobra.Command{
	Use:   "del <index>",
	Short: "Delete a mixture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		s := loadState()
		if err := s.gases.Delete(i); err != nil {
			return err
		}
		return s.gases.Save()
	},
}

func gasStatusCmd(use, short string, st gas.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <index>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndexArg(args[0])
			if err != nil {
				return err
			}
			s := loadState()
			if err := s.gases.SetStatus(i, st); err != nil {
				return err
			}
			return s.gases.Save()
		},
	}
}

// applyGasFlags copies only the tank and switch flags the user actually set.
func applyGasFlags(cmd *cobra.Command, g *gas.Gas) {
	f := cmd.Flags()
	if f.Changed("switch-depth") {
		g.SwitchDepth = gasFlags.switchDepth
	}
	if f.Changed("switch-ppo2") {
		g.SwitchPpO2 = gasFlags.switchPpO2
	}
	if f.Changed("tanks") {
		g.TankCount = gasFlags.tanks
	}
	if f.Changed("capacity") {
		g.TankCapacity = gasFlags.capacity
	}
	if f.Changed("fill") {
		g.FillPressure = gasFlags.fill
	}
	if f.Changed("reserve") {
		g.ReservePressure = gasFlags.reserve
	}
}

func init() {
	for _, c := range []*cobra.Command{gasAddCmd, gasEditCmd} {
		c.Flags().StringVar(&gasFlags.role, "role", "bottom", "gas role: bottom, deco or diluent")
		c.Flags().Float64Var(&gasFlags.switchDepth, "switch-depth", 0, "manual switch depth, m")
		c.Flags().Float64Var(&gasFlags.switchPpO2, "switch-ppo2", 0, "manual switch pO2, bar")
		c.Flags().IntVar(&gasFlags.tanks, "tanks", 1, "tank count")
		c.Flags().Float64Var(&gasFlags.capacity, "capacity", 12, "tank capacity, L")
		c.Flags().Float64Var(&gasFlags.fill, "fill", 200, "fill pressure, bar")
		c.Flags().Float64Var(&gasFlags.reserve, "reserve", 50, "reserve pressure, bar")
	}
	gasCmd.AddCommand(gasListCmd, gasAddCmd, gasEditCmd, gasDelCmd,
		gasStatusCmd("enable", "Mark a mixture available to the planner", gas.Active),
		gasStatusCmd("disable", "Hide a mixture from the planner", gas.Inactive))
	rootCmd.AddCommand(gasCmd)
}
