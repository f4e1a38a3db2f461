package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilt/internal/transport/mcp"
	"github.com/vovakirdan/tilt/internal/transport/websocket"
)

var (
	flagVariant string
	flagWatch   string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a game to AI agents over MCP (stdio)",
	Long: `Run a Model Context Protocol server on stdin/stdout so an AI agent can
play. Finished games are recorded in the scores database.

With --watch (or watch.address in the config), a websocket server streams
every board change to spectators:

  GET /ws     websocket feed of game events
  GET /state  latest snapshot as JSON

Logs go to stderr so they never mix with the protocol on stdout.

Examples:
  tilt mcp
  tilt mcp --variant 5x5 --seed 42
  tilt mcp --watch :8080`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagVariant, "variant", mcp.DefaultVariant, "Variant to start with")
	mcpCmd.Flags().StringVar(&flagWatch, "watch", "", "Address for the websocket spectator server, e.g. :8080")
}

func runMCP(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := mcp.Options{
		Variant: flagVariant,
		Seed:    flagSeed,
		Store:   store,
		Logger:  logger.WithPrefix("tilt-mcp"),
	}

	if addr := firstNonEmpty(flagWatch, appConfig.Watch.Address); addr != "" {
		hub := websocket.NewHub(logger.WithPrefix("tilt-watch"))
		opts.Watcher = hub
		go func() {
			if err := websocket.Serve(ctx, addr, hub); err != nil {
				logger.Error("watch server stopped", "error", err)
			}
		}()
	}

	srv, err := mcp.NewServer(opts)
	if err != nil {
		return err
	}
	return srv.ServeStdio()
}
