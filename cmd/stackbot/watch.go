package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/core"
	"github.com/vovakirdan/stackbot/internal/platform/tui"
	"github.com/vovakirdan/stackbot/internal/storage"
)

var (
	flagWatchDifficulty string
	flagWatchFPS        int
	flagWatchNoSave     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the bot play in the terminal",
	Long: `Open a full-screen view of the bot playing. The board, the next piece
and the running score update as each move is applied.

Controls:
  p / space  pause or resume
  r          start a new game with the next seed
  ?          toggle help
  q / esc    quit

Examples:
  stackbot watch
  stackbot watch --difficulty easy --seed 42`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&flagWatchDifficulty, "difficulty", "d", "medium", "Difficulty tier (easy, medium, hard)")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 30, "Screen refresh rate")
	watchCmd.Flags().BoolVar(&flagWatchNoSave, "no-save", false, "Do not record finished games")
}

func runWatch(_ *cobra.Command, _ []string) error {
	difficulty, err := config.ParseDifficulty(flagWatchDifficulty)
	if err != nil {
		return err
	}
	cfg, err := loadBot()
	if err != nil {
		return err
	}
	profile, err := cfg.Profile(difficulty)
	if err != nil {
		return err
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	var store *storage.Store
	if !flagWatchNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	return tui.RunWatch(tui.WatchConfig{
		Profile: profile,
		Arena:   cfg.Arena,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagWatchFPS,
			Seed:     seed(),
		},
		Store: store,
		// stderr shares the terminal with the alt screen.
		Logger: log.New(io.Discard),
	})
}
