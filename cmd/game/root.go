package main

import (
	"github.com/spf13/cobra"

	"aspects/internal/config"
	"aspects/internal/game/ending"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "aspects",
	Short: "A small garden of emotions",
	Long: `Aspects is played in the terminal. Walk the garden, stage one aspect
from a top socket and one from a bottom socket, and combine them at the
combiner. Every discovery fills two empty sockets. Once the garden is full
its emotional balance decides the ending.

Running aspects without a command starts a game.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPlay,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./aspects.yaml or ~/.config/aspects/aspects.yaml)")
	flags.Bool("debug", false, "write a debug log")
	flags.String("debug-log", "debug.log", "debug log path")
	flags.String("level", "", "level YAML file (default is the built-in garden)")
	flags.Int("threshold", ending.DefaultThreshold, "score magnitude past which an ending turns bad")

	addPlayFlags(rootCmd)
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"debug":      "debug",
	"debug-log":  "debug_log",
	"level":      "level",
	"threshold":  "threshold",
	"skip-intro": "skip_intro",
	"sound":      "sound",
	"narrator":   "narrator.mode",
	"model":      "narrator.model",
	"log-path":   "narrator.log_path",
	"fps":        "fps",
}

// loadConfig merges the config file, the environment and the flags of the
// command being run.
func loadConfig(cmd *cobra.Command, _ []string) error {
	v := config.NewViper(cfgFile)
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}
