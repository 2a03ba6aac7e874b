package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/platform/tui"
	"github.com/vovakirdan/stackbot/internal/storage"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeDefault string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve bot games over SSH",
	Long: `Start an SSH server. Every connection gets its own bot game to watch;
finished games go into the shared run history.

The difficulty can be chosen with the SSH command:
  ssh -t localhost -p 23234 hard

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stackbot/host_key

Examples:
  stackbot serve
  stackbot serve --ssh :2222 --difficulty easy`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVarP(&flagServeDefault, "difficulty", "d", "medium", "Difficulty when the session does not name one")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger("stackbot-ssh")
	if err != nil {
		return err
	}

	difficulty, err := config.ParseDifficulty(flagServeDefault)
	if err != nil {
		return err
	}
	botCfg, err := loadBot()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history, runs will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Bot:         botCfg,
		Default:     difficulty,
	}, store, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Serving stackbot on %s\n", server.Addr())
	fmt.Fprintln(out, "Connect with: ssh -t localhost -p 23234 [easy|medium|hard]")
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
