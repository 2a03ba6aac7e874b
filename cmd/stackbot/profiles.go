package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackbot/internal/config"
)

var flagShowYAML bool

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the resolved difficulty profiles",
	Long: `Print the easy, medium and hard profiles after the config file's
overrides have been applied to the base weights.

Examples:
  stackbot profiles
  stackbot profiles --config ./my-bot.yaml
  stackbot profiles --yaml > ~/.stackbot/configs/bot.yaml`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

func init() {
	profilesCmd.Flags().BoolVar(&flagShowYAML, "yaml", false, "Print the built-in config file instead")
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	if flagShowYAML {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadBot()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tMOVE\tTHINK\tERROR\tLOOKAHEAD\tHEIGHT\tHOLES\tBUMPY\tLINES\tEDGE\tWELL\tOVERHANG")
	for _, d := range config.Difficulties() {
		p, err := cfg.Profile(d)
		if err != nil {
			return err
		}
		wt := p.Weights
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%v\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
			p.Difficulty, p.MoveDelay, p.ThinkDelay, p.ErrorRate*100, p.LookAhead,
			wt.Height, wt.Holes, wt.Bumpiness, wt.CompleteLines, wt.EdgeTouch, wt.WellDepth, wt.Overhang)
	}
	return w.Flush()
}
