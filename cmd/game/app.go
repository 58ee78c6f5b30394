package main

import (
	"context"
	"fmt"

	"aspects/cmd/game/ui"
	"aspects/internal/audio"
	"aspects/internal/config"
	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/narration"
	"aspects/internal/game/world"
	"aspects/internal/llm"
	"aspects/internal/logging"
	"aspects/internal/observability"
)

// startTracing installs the tracer provider. Failures only disable tracing.
func startTracing(ctx context.Context, cfg config.Config, debugLogger *debug.Logger) func() {
	tracerProvider, err := observability.InitTracing(ctx, cfg.Observability(Version))
	if err != nil {
		debugLogger.Printf("Failed to initialize tracing: %v", err)
		return func() {}
	}
	if tracerProvider.IsEnabled() {
		debugLogger.Println("OpenTelemetry tracing initialized and enabled")
	} else {
		debugLogger.Println("OpenTelemetry tracing disabled (set OTEL_TRACES_ENABLED=true to enable)")
	}
	return func() {
		tracerProvider.Shutdown(context.Background())
	}
}

func newSession(cfg config.Config, skipIntro bool) (*game.Session, error) {
	opts := game.Options{Threshold: cfg.Threshold, SkipIntro: skipIntro}
	if cfg.Level != "" {
		level, err := world.LoadLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		opts.Level = level
	}
	return game.NewSession(opts)
}

func newNarrator(cfg config.Config, debugLogger *debug.Logger) (narration.Narrator, *logging.CompletionLogger, error) {
	script, err := narration.DefaultScript()
	if cfg.Script != "" {
		script, err = narration.LoadScript(cfg.Script)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.Narrator.Mode != config.NarratorLLM {
		return narration.Static{Script: script}, nil, nil
	}

	completions, err := logging.NewCompletionLogger(cfg.Narrator.LogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize completion logger: %w", err)
	}
	service := llm.NewService(cfg.LLM(), debugLogger)
	debugLogger.Printf("LLM narrator using %s", service.Model())
	return narration.NewLLM(script, service, completions, debugLogger), completions, nil
}

func createApp(cfg config.Config) (ui.Model, func(), error) {
	debugLogger := debug.NewLogger(cfg.Debug, cfg.DebugLog)
	debugLogger.Println("Starting aspects with debug logging")

	stopTracing := startTracing(context.Background(), cfg, debugLogger)

	session, err := newSession(cfg, cfg.SkipIntro)
	if err != nil {
		stopTracing()
		return ui.Model{}, nil, err
	}
	debugLogger.Printf("Session %s on level %s", session.ID(), session.World().Name())

	narrator, completions, err := newNarrator(cfg, debugLogger)
	if err != nil {
		stopTracing()
		return ui.Model{}, nil, err
	}

	player, err := audio.Open(cfg.Sound)
	if err != nil {
		debugLogger.Printf("Sound disabled: %v", err)
	}

	loggers := ui.GameLoggers{
		Debug:      debugLogger,
		Completion: completions,
	}
	model := ui.NewModel(session, narrator, player, loggers, cfg.FPS)

	cleanup := func() {
		model.Cleanup()
		stopTracing()
	}
	return model, cleanup, nil
}
