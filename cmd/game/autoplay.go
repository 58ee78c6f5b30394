package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/spf13/cobra"

	"aspects/internal/debug"
	"aspects/internal/game/director"
	"aspects/internal/game/ending"
	"aspects/internal/mcp"
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play a whole game through the MCP server toward a chosen ending",
	Long: `Starts "aspects mcp" as a child process, plans a sequence of
combinations that reaches the requested ending and plays it through the
MCP tools.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("ending")
		want, err := ending.Parse(name)
		if err != nil {
			return err
		}

		debugLogger := debug.NewLogger(cfg.Debug, cfg.DebugLog)
		defer debugLogger.Close()

		ctx := context.Background()
		stopTracing := startTracing(ctx, cfg, debugLogger)
		defer stopTracing()

		server, err := serverCommand()
		if err != nil {
			return err
		}
		client := mcp.NewGardenClient(debugLogger)
		if err := client.ConnectCommand(ctx, server); err != nil {
			return err
		}
		defer client.Close()

		snap, err := client.GetState(ctx)
		if err != nil {
			return err
		}
		steps, err := director.Plan(snap, want, cfg.Threshold)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Planned %d combinations toward %s\n", len(steps), want)
		successes, failures := director.Execute(ctx, steps, client, debugLogger)
		for i, s := range successes {
			fmt.Fprintf(out, "%d. %s: %s\n", i+1, steps[i], s)
		}
		if len(failures) > 0 {
			return fmt.Errorf("autoplay stopped: %s", failures[0])
		}

		final, err := client.GetState(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Ending: %s (score %d)\n", final.Ending, final.Score)
		return nil
	},
}

// serverCommand runs this binary's mcp command with the same settings.
func serverCommand() (*exec.Cmd, error) {
	self, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	args := []string{"mcp", "--threshold", strconv.Itoa(cfg.Threshold)}
	if cfgFile != "" {
		args = append(args, "--config", cfgFile)
	}
	if cfg.Level != "" {
		args = append(args, "--level", cfg.Level)
	}
	if cfg.Debug {
		args = append(args, "--debug", "--debug-log", cfg.DebugLog)
	}
	return exec.Command(self, args...), nil
}

func init() {
	autoplayCmd.Flags().String("ending", "good", "ending to aim for: good, positive or negative")
	rootCmd.AddCommand(autoplayCmd)
}
