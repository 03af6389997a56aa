package app

import (
	"fmt"
	"strings"

	"github.com/ansel1/merry"
	"github.com/dmorvan/divecalc/internal/cfg"
	"github.com/dmorvan/divecalc/internal/pkg/must"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var paramsCmd = &cobra.Command{
	Use:   "params [name=value ...]",
	Short: "Show or change the planning parameters",
	Long: `Without arguments the current parameters are printed as YAML. Arguments
are name=value pairs using the same names, e.g.

  divecalc params gf_low=40 gf_high=80`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := cfg.Get()
		if len(args) == 0 {
			fmt.Fprint(cmd.OutOrStdout(), string(must.MarshalYaml(p)))
			return nil
		}
		var doc strings.Builder
		for _, a := range args {
			kv := strings.SplitN(a, "=", 2)
			if len(kv) != 2 || kv[0] == "" {
				return merry.Errorf("%q: expected name=value", a)
			}
			fmt.Fprintf(&doc, "%s: %s\n", kv[0], kv[1])
		}
		if err := yaml.Unmarshal([]byte(doc.String()), &p); err != nil {
			return err
		}
		return cfg.Set(p)
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
