package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"aspects/internal/debug"
	"aspects/internal/game"
	"aspects/internal/game/ending"
	"aspects/internal/llm"
	"aspects/internal/logging"
	"aspects/internal/observability"
)

// Narrator produces the lines shown for a dialogue node.
type Narrator interface {
	Narrate(ctx context.Context, node ending.Dialogue, snap game.Snapshot, history []string) ([]string, error)
}

// Static reads lines straight from a script.
type Static struct {
	Script Script
}

func (s Static) Narrate(_ context.Context, node ending.Dialogue, _ game.Snapshot, _ []string) ([]string, error) {
	lines, ok := s.Script.Lines(node)
	if !ok {
		return nil, fmt.Errorf("no lines for dialogue %q", node)
	}
	return lines, nil
}

// Completer is the part of llm.Service the narrator needs.
type Completer interface {
	CompleteJSONSchema(ctx context.Context, req llm.JSONSchemaCompletionRequest) (llm.Completion, error)
}

// CompletionRecorder stores what the model was asked and what it said.
type CompletionRecorder interface {
	LogCompletion(sessionID, node string, snapshot interface{}, systemPrompt, response string, metadata logging.CompletionMetadata) error
}

const narrationMaxTokens = 400

var linesSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"lines": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
	},
	"required":             []string{"lines"},
	"additionalProperties": false,
}

type linesResponse struct {
	Lines []string `json:"lines"`
}

// LLM restates script lines through a language model. When the model fails
// or answers with nothing usable the script lines are returned unchanged.
type LLM struct {
	script    Script
	completer Completer
	recorder  CompletionRecorder
	debug     *debug.Logger
	tracer    trace.Tracer
}

func NewLLM(script Script, completer Completer, recorder CompletionRecorder, debug *debug.Logger) *LLM {
	return &LLM{
		script:    script,
		completer: completer,
		recorder:  recorder,
		debug:     debug,
		tracer:    otel.Tracer("narration"),
	}
}

func (n *LLM) Narrate(ctx context.Context, node ending.Dialogue, snap game.Snapshot, history []string) ([]string, error) {
	base, ok := n.script.Lines(node)
	if !ok {
		return nil, fmt.Errorf("no lines for dialogue %q", node)
	}

	ctx, span := n.tracer.Start(ctx, "narration.narrate",
		trace.WithAttributes(observability.CreateLangfuseAttributes("narration", snap.Session, []string{string(node)})...),
	)
	defer span.End()
	span.SetAttributes(attribute.String("narration.node", string(node)))

	ctx = llm.WithOperationType(ctx, "narration."+strings.ToLower(string(node)))
	ctx = llm.WithGameContext(ctx, map[string]interface{}{
		"node":  string(node),
		"state": snap.State,
	})

	system := buildNarrationPrompt(node, base)
	user := game.BuildContext(snap, history)

	meta := logging.CompletionMetadata{MaxTokens: narrationMaxTokens}
	lines, resp, err := n.complete(ctx, system, user)
	if err != nil {
		span.RecordError(err)
		msg := err.Error()
		meta.Error = &msg
		meta.Fallback = true
		lines = base
		n.debug.Printf("narration %s fell back to script: %v", node, err)
	} else {
		meta.Model = resp.Model
		meta.ResponseTime = resp.Duration
		meta.InputTokens = resp.InputTokens
		meta.OutputTokens = resp.OutputTokens
	}
	span.SetAttributes(attribute.Bool("narration.fallback", meta.Fallback))

	if n.recorder != nil {
		if err := n.recorder.LogCompletion(snap.Session, string(node), snap, system, strings.Join(lines, "\n"), meta); err != nil {
			n.debug.Printf("failed to record narration: %v", err)
		}
	}
	return lines, nil
}

func (n *LLM) complete(ctx context.Context, system, user string) ([]string, llm.Completion, error) {
	resp, err := n.completer.CompleteJSONSchema(ctx, llm.JSONSchemaCompletionRequest{
		SystemPrompt:    system,
		UserPrompt:      user,
		MaxTokens:       narrationMaxTokens,
		ReasoningEffort: "minimal",
		SchemaName:      "narration_lines",
		Schema:          linesSchema,
	})
	if err != nil {
		return nil, resp, err
	}

	var parsed linesResponse
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil {
		return nil, resp, fmt.Errorf("failed to parse narration: %w", err)
	}
	var lines []string
	for _, l := range parsed.Lines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, resp, fmt.Errorf("model returned no lines")
	}
	return lines, resp, nil
}
