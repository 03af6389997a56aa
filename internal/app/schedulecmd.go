package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var spCmd = &cobra.Command{
	Use:   "sp",
	Short: "Manage the closed circuit setpoint schedule",
}

var spListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the setpoint breakpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadState()
		t := newTable(cmd.OutOrStdout())
		fmt.Fprintln(t, "#\tdepth, m\tpO2, bar\t")
		for i, p := range s.setPoints.Points {
			fmt.Fprintf(t, "%d\t%.0f\t%.2f\t\n", i, p.Depth, p.PpO2)
		}
		return t.Flush()
	},
}

var spAddCmd = &cobra.Command{
	Use:   "add <depth> <ppo2>",
	Short: "Add a breakpoint",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, ppO2, err := parseDepthValueArgs(args, "ppo2")
		if err != nil {
			return err
		}
		s := loadState()
		s.setPoints.Add(depth, ppO2)
		return s.setPoints.Save()
	},
}

var spEditCmd = &cobra.Command{
	Use:   "edit <index> <depth> <ppo2>",
	Short: "Replace a breakpoint",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		depth, ppO2, err := parseDepthValueArgs(args[1:], "ppo2")
		if err != nil {
			return err
		}
		s := loadState()
		if err := s.setPoints.Edit(i, depth, ppO2); err != nil {
			return err
		}
		return s.setPoints.Save()
	},
}

var spDelCmd = &cobra.Command{
	Use:   "del <index>",
	Short: "Remove a breakpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		s := loadState()
		if err := s.setPoints.Remove(i); err != nil {
			return err
		}
		return s.setPoints.Save()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Manage the decompression stop schedule",
}

var stopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stop stations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadState()
		t := newTable(cmd.OutOrStdout())
		fmt.Fprintln(t, "#\tdepth, m\ttime, min\t")
		for i, st := range s.stopSteps.Steps {
			fmt.Fprintf(t, "%d\t%.0f\t%.0f\t\n", i, st.Depth, st.Time)
		}
		return t.Flush()
	},
}

var stopAddCmd = &cobra.Command{
	Use:   "add <depth> <time>",
	Short: "Add a station",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, time, err := parseDepthValueArgs(args, "time")
		if err != nil {
			return err
		}
		s := loadState()
		s.stopSteps.Add(depth, time)
		return s.stopSteps.Save()
	},
}

var stopEditCmd = &cobra.Command{
	Use:   "edit <index> <depth> <time>",
	Short: "Replace a station",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		depth, time, err := parseDepthValueArgs(args[1:], "time")
		if err != nil {
			return err
		}
		s := loadState()
		if err := s.stopSteps.Edit(i, depth, time); err != nil {
			return err
		}
		return s.stopSteps.Save()
	},
}

var stopDelCmd = &cobra.Command{
	Use:   "del <index>",
	Short: "Remove a station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		s := loadState()
		if err := s.stopSteps.Remove(i); err != nil {
			return err
		}
		return s.stopSteps.Save()
	},
}

func parseDepthValueArgs(args []string, name string) (depth, value float64, err error) {
	if depth, err = parseFloatArg(args[0], "depth"); err != nil {
		return
	}
	value, err = parseFloatArg(args[1], name)
	return
}

func init() {
	spCmd.AddCommand(spListCmd, spAddCmd, spEditCmd, spDelCmd)
	stopCmd.AddCommand(stopListCmd, stopAddCmd, stopEditCmd, stopDelCmd)
	rootCmd.AddCommand(spCmd, stopCmd)
}
