package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tilt SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the variant picker menu.
Scores are stored per-server (all users share the same leaderboard).

Flags default to the ssh section of the config file.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses ssh.host_key, generating it if missing

Examples:
  tilt serve                           # Listen on :23234
  tilt serve --ssh :2222               # Listen on port 2222
  tilt serve --host-key ./my_host_key  # Use specific host key
  tilt serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting, e.g. 10m")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = firstNonEmpty(flagSSHAddr, appConfig.SSH.Address, cfg.Address)
	cfg.HostKeyPath = firstNonEmpty(flagHostKey, appConfig.SSH.HostKey)
	cfg.TickRate = flagFPS
	switch {
	case flagIdleTimeout > 0:
		cfg.IdleTimeout = flagIdleTimeout
	case appConfig.SSH.IdleTimeout > 0:
		cfg.IdleTimeout = appConfig.SSH.IdleTimeout
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("tilt-ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Starting tilt SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
