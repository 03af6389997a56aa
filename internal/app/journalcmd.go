package app

import (
	"fmt"

	"github.com/dmorvan/divecalc/internal/data"
	"github.com/spf13/cobra"
)

var journalHours float64

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Browse the dive journal",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the logged dives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer log.ErrIfFail(db.Close)
		dives, err := data.ListDives(cmd.Context(), db)
		if err != nil {
			return err
		}
		t := newTable(cmd.OutOrStdout())
		fmt.Fprintln(t, "#\tdate\tdepth, m\tbottom, min\tmode\trun\tTTS\tCNS, %\tOTU\t")
		for _, d := range dives {
			mode := d.Mode
			if d.Bailout {
				mode += " bailout"
			}
			fmt.Fprintf(t, "%d\t%s\t%.0f\t%.0f\t%s\t%s\t%s\t%.1f\t%.1f\t\n",
				d.DiveID, d.CreatedAt.Format("2006-01-02 15:04"),
				d.Depth, d.BottomTime, mode,
				formatMinutes(d.RunTime), formatMinutes(d.TTS), d.Cns, d.Otu)
		}
		return t.Flush()
	},
}

var journalDelCmd = &cobra.Command{
	Use:   "del <id>",
	Short: "Delete a logged dive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIndexArg(args[0])
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer log.ErrIfFail(db.Close)
		return data.DeleteDive(cmd.Context(), db, int64(id))
	},
}

var journalOxToxCmd = &cobra.Command{
	Use:   "oxtox",
	Short: "Sum the oxygen toxicity of recent dives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer log.ErrIfFail(db.Close)
		x, err := data.OxToxSinceHours(cmd.Context(), db, journalHours)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "last %g h: CNS %.1f%%, OTU %.1f\n",
			journalHours, x.Cns, x.Otu)
		return nil
	},
}

func init() {
	journalOxToxCmd.Flags().Float64Var(&journalHours, "hours", 24, "look-back window")
	journalCmd.AddCommand(journalListCmd, journalDelCmd, journalOxToxCmd)
	rootCmd.AddCommand(journalCmd)
}
