package app

import (
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/spf13/cobra"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "divecalc",
	Short: "Technical dive planning from the command line",
	Long: `divecalc computes decompression profiles for open circuit and rebreather
dives: step sequences with ceilings, gradient factors, oxygen toxicity and
gas consumption, plus a maximum bottom time search and a deco gas optimiser.

Schedules, parameters and the dive journal live next to the executable
unless --dir points elsewhere.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		if dataDir != "" {
			cfg.SetDir(dataDir)
		}
	})
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "",
		"directory holding schedules, parameters and the dive journal")
}

func parseFloatArg(s, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", -1), 64)
	if err != nil {
		return 0, merry.Errorf("%s: %q is not a number", name, s)
	}
	return v, nil
}

func parseIndexArg(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, merry.Errorf("index: %q is not an integer", s)
	}
	return i, nil
}
