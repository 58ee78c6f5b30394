package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aspects/internal/logging"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Show recent narrator completions from the sqlite log",
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		limit, _ := cmd.Flags().GetInt("limit")
		full, _ := cmd.Flags().GetBool("full")

		logger, err := logging.NewCompletionLogger(cfg.Narrator.LogPath)
		if err != nil {
			return err
		}
		defer logger.Close()

		entries, err := logger.Recent(sessionID, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No narration recorded yet.")
			return nil
		}

		out := styledTable("When", "Session", "Node", "Model", "Fallback", "Response")
		for _, e := range entries {
			model, fallback := "invalid metadata", "?"
			var meta logging.CompletionMetadata
			if err := json.Unmarshal([]byte(e.Metadata), &meta); err == nil {
				model, fallback = meta.Model, fmt.Sprint(meta.Fallback)
			}

			response := e.Response
			if !full {
				response = truncate(strings.ReplaceAll(response, "\n", " "), 60)
			}
			out.Row(
				e.Timestamp.Format("2006-01-02 15:04:05"),
				shortID(e.SessionID),
				e.Node,
				model,
				fallback,
				response,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	reviewCmd.Flags().String("session", "", "only show this session")
	reviewCmd.Flags().Int("limit", 20, "number of completions to show")
	reviewCmd.Flags().Bool("full", false, "do not shorten responses")
	reviewCmd.Flags().String("log-path", "narration.db", "sqlite file recording llm narration")
	rootCmd.AddCommand(reviewCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
