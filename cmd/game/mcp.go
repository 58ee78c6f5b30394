package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"aspects/internal/debug"
	"aspects/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a headless game over MCP on stdin and stdout",
	Long: `Starts a game without a terminal UI and exposes it as an MCP server.
Tools: get_state, list_rules, select_socket, confirm_combination and hint.
The intro is skipped and dialogue is dismissed on every call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		debugLogger := debug.NewLogger(cfg.Debug, cfg.DebugLog)
		defer debugLogger.Close()

		stopTracing := startTracing(ctx, cfg, debugLogger)
		defer stopTracing()

		session, err := newSession(cfg, true)
		if err != nil {
			return err
		}
		debugLogger.Printf("Serving session %s over MCP", session.ID())

		return mcp.NewServer(session, cfg.Threshold, debugLogger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
