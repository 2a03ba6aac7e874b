// stackbot is an autonomous falling-block player with three difficulty
// tiers, a headless simulator and a terminal viewer.
//
// Usage:
//
//	stackbot profiles            - Show the resolved difficulty profiles
//	stackbot sim                 - Play a batch of headless games
//	stackbot watch               - Watch the bot play in the terminal
//	stackbot runs [difficulty]   - Show stored run history
//	stackbot serve               - Serve bot games over SSH
//
// Global flags:
//
//	--seed <value>      - Piece sequence seed (0 = from the clock)
//	--db <path>         - Run history database (default: ~/.stackbot/runs.db)
//	--config <path>     - Bot config file
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackbot/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackbot",
	Short: "stackbot - an autonomous falling-block player",
	Long: `stackbot plays a falling-block puzzle on its own. It enumerates every
placement of the current piece, scores the resulting boards with a weighted
heuristic, optionally looks one piece ahead, and occasionally makes a
deliberate mistake depending on its difficulty tier.

Available commands:
  profiles - Show the resolved easy/medium/hard profiles
  sim      - Play many headless games and record the results
  watch    - Watch the bot play in your terminal
  runs     - Show recorded run history
  serve    - Let SSH users watch their own bot game

Examples:
  stackbot profiles
  stackbot sim --difficulty hard --games 20 --fast
  stackbot watch --difficulty easy
  stackbot runs medium
  stackbot serve --ssh :23234`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Piece sequence seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stackbot/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to bot config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the stderr logger shared by every command.
func newLogger(prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          prefix,
	}), nil
}

// loadBot loads the bot config, honoring --config.
func loadBot() (config.BotConfig, error) {
	return config.LoadBot(flagConfig)
}

// seed returns --seed, or a clock-derived seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
