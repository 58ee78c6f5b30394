package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"aspects/internal/debug"
	"aspects/internal/observability"
)

const DefaultModel = "gpt-5-mini"

// Context keys for operation tracing
type contextKey string

const (
	operationTypeKey contextKey = "operation_type"
	gameContextKey   contextKey = "game_context"
)

// Config selects the model endpoint.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// MaxRetries is passed to the client when non-negative.
	MaxRetries int
}

type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(cfg Config, debug *debug.Logger) *Service {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	model := cfg.Model
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	client := openai.NewClient(opts...)
	return &Service{
		client: &client,
		model:  model,
		debug:  debug,
		tracer: otel.Tracer("llm-service"),
	}
}

type TextCompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxTokens       int
	Model           string // optional override
	ReasoningEffort string // optional: minimal, low, medium, high
}

type JSONSchemaCompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxTokens       int
	Model           string // optional override
	ReasoningEffort string // optional: minimal, low, medium, high
	SchemaName      string
	Schema          interface{}
}

// Completion is the text a model returned plus what it cost.
type Completion struct {
	Content      string
	Model        string
	InputTokens  int64
	OutputTokens int64
	Duration     time.Duration
}

func (s *Service) Model() string { return s.model }

func (s *Service) CompleteText(ctx context.Context, req TextCompletionRequest) (Completion, error) {
	params := s.params(req.Model, req.SystemPrompt, req.UserPrompt, req.MaxTokens, req.ReasoningEffort)
	return s.complete(ctx, "llm.complete_text", "text", params)
}

func (s *Service) CompleteJSONSchema(ctx context.Context, req JSONSchemaCompletionRequest) (Completion, error) {
	params := s.params(req.Model, req.SystemPrompt, req.UserPrompt, req.MaxTokens, req.ReasoningEffort)
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			Type: constant.JSONSchema("json_schema"),
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: openai.Bool(true),
			},
		},
	}
	return s.complete(ctx, "llm.complete_json_schema", "json_schema", params)
}

func (s *Service) params(model, system, user string, maxTokens int, effort string) openai.ChatCompletionNewParams {
	if strings.TrimSpace(model) == "" {
		model = s.model
	}
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
	}
	if effort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(effort)
	}
	return params
}

func (s *Service) complete(ctx context.Context, defaultSpan, format string, params openai.ChatCompletionNewParams) (Completion, error) {
	spanName := defaultSpan
	if opType := getOperationType(ctx); opType != "" {
		spanName = opType
	}
	model := string(params.Model)

	ctx, span := s.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", model, 0, 0, -1)...,
		),
	)
	defer span.End()

	span.SetAttributes(
		attribute.String("langfuse.observation.type", "generation"),
		attribute.String("response_format", format),
		attribute.String("game.operation_type", spanName),
	)
	CopyGameContextToSpan(ctx, span)

	if s.debug != nil {
		s.debug.Printf("LLM %s completion - model: %s, messages: %d", format, model, len(params.Messages))
	}

	start := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "llm_completion_error"))
		span.RecordError(err)
		if s.debug != nil {
			s.debug.Printf("LLM %s completion error: %v", format, err)
		}
		return Completion{}, fmt.Errorf("%s completion failed: %w", format, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return Completion{}, err
	}

	out := Completion{
		Content:      resp.Choices[0].Message.Content,
		Model:        model,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		Duration:     time.Since(start),
	}

	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", out.InputTokens),
		attribute.Int64("gen_ai.usage.output_tokens", out.OutputTokens),
		attribute.Int64("response_time_ms", out.Duration.Milliseconds()),
		attribute.String("langfuse.observation.output", out.Content),
		attribute.String("langfuse.observation.output_format", format),
		attribute.String("langfuse.observation.model.name", model),
	)

	if s.debug != nil {
		s.debug.Printf("LLM %s completion finish_reason=%s length=%d tokens=%d/%d duration=%v",
			format, resp.Choices[0].FinishReason, len(out.Content), out.InputTokens, out.OutputTokens, out.Duration)
	}

	return out, nil
}

func WithOperationType(ctx context.Context, opType string) context.Context {
	return context.WithValue(ctx, operationTypeKey, opType)
}

// WithGameContext merges gameCtx into any game context already on ctx.
func WithGameContext(ctx context.Context, gameCtx map[string]interface{}) context.Context {
	if existing, ok := ctx.Value(gameContextKey).(map[string]interface{}); ok && existing != nil {
		merged := make(map[string]interface{}, len(existing)+len(gameCtx))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range gameCtx {
			merged[k] = v
		}
		return context.WithValue(ctx, gameContextKey, merged)
	}
	return context.WithValue(ctx, gameContextKey, gameCtx)
}

func getOperationType(ctx context.Context) string {
	if opType, ok := ctx.Value(operationTypeKey).(string); ok {
		return opType
	}
	return ""
}

func getGameContext(ctx context.Context) map[string]interface{} {
	if gameCtx, ok := ctx.Value(gameContextKey).(map[string]interface{}); ok {
		return gameCtx
	}
	return nil
}

// CopyGameContextToSpan attaches game context and session id attributes to an existing span.
func CopyGameContextToSpan(ctx context.Context, span trace.Span) {
	if span == nil {
		return
	}
	if sid := observability.GetSessionIDFromContext(ctx); sid != "" {
		span.SetAttributes(
			attribute.String("langfuse.session.id", sid),
			attribute.String("session.id", sid),
		)
	}
	for k, v := range getGameContext(ctx) {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String("game."+k, val))
		case int:
			span.SetAttributes(attribute.Int("game."+k, val))
		case []string:
			span.SetAttributes(attribute.StringSlice("game."+k, val))
		}
	}
}
