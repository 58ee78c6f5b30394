package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.Bool("skip-intro", false, "start in the garden without the intro")
	flags.Bool("sound", true, "play sound cues")
	flags.String("narrator", "static", "narrator: static or llm")
	flags.String("model", "", "model for the llm narrator")
	flags.String("log-path", "narration.db", "sqlite file recording llm narration")
	flags.Int("fps", 20, "frames per second")
}

func init() {
	addPlayFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	model, cleanup, err := createApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
