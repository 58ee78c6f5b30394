package director

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/observability"
)

// Actions is the surface a plan is played through. The MCP client
// implements it, as does a session adapter in tests.
type Actions interface {
	SelectSocket(ctx context.Context, socketID string) (game.Snapshot, error)
	Confirm(ctx context.Context) (game.Snapshot, error)
}

// Execute plays steps in order and stops at the first one that fails,
// since every later step depends on its result.
func Execute(ctx context.Context, steps []Step, actions Actions, debugLogger *debug.Logger) ([]string, []string) {
	tracer := otel.Tracer("director")

	attrs := []attribute.KeyValue{attribute.Int("step_count", len(steps))}
	if sessionID := observability.GetSessionIDFromContext(ctx); sessionID != "" {
		attrs = append(attrs,
			attribute.String("langfuse.session.id", sessionID),
			attribute.String("session.id", sessionID),
		)
	}

	ctx, span := tracer.Start(ctx, "director.execute_plan", trace.WithAttributes(attrs...))
	defer span.End()

	var successes []string
	var failures []string

	for i, step := range steps {
		stepCtx, stepSpan := tracer.Start(ctx, "director.execute_step",
			trace.WithAttributes(
				attribute.Int("step_index", i),
				attribute.String("left_socket", step.LeftSocket),
				attribute.String("right_socket", step.RightSocket),
				attribute.String("expected", step.Result.String()),
			),
		)

		err := playStep(stepCtx, step, actions)
		if err != nil {
			failures = append(failures, fmt.Sprintf("step %d %s: %v", i+1, step, err))
			stepSpan.RecordError(err)
			stepSpan.End()
			break
		}
		successes = append(successes, fmt.Sprintf("Discovered %s", step.Result))
		stepSpan.SetAttributes(attribute.String("result", "success"))
		stepSpan.End()
		debugLogger.Printf("autoplay step %d: %s", i+1, step)
	}

	if len(failures) > 0 {
		debugLogger.Printf("%d plan steps failed", len(failures))
		span.SetAttributes(attribute.StringSlice("failures", failures))
	}
	span.SetAttributes(attribute.Int("success_count", len(successes)))

	return successes, failures
}

func playStep(ctx context.Context, step Step, actions Actions) error {
	if _, err := actions.SelectSocket(ctx, step.LeftSocket); err != nil {
		return fmt.Errorf("select %s: %w", step.LeftSocket, err)
	}
	if _, err := actions.SelectSocket(ctx, step.RightSocket); err != nil {
		return fmt.Errorf("select %s: %w", step.RightSocket, err)
	}
	snap, err := actions.Confirm(ctx)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if snap.LastCombined != step.Result.String() {
		return fmt.Errorf("expected %s, combined %q", step.Result, snap.LastCombined)
	}
	return nil
}
