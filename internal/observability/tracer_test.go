package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDisabledTracingIsNoop(t *testing.T) {
	tp, err := InitTracing(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NoError(t, tp.Shutdown(context.Background()))

	_, span := tp.GetTracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestSessionIDIsInjected(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := install(exp, Config{ServiceName: "aspects", ServiceVersion: "test", Environment: "test"})

	ctx := WithSessionID(context.Background(), "session-1")
	_, span := otel.Tracer("test").Start(ctx, "work")
	span.End()

	require.NoError(t, tp.provider.ForceFlush(context.Background()))
	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Attributes, attribute.String("session.id", "session-1"))

	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestAttributeHelpers(t *testing.T) {
	attrs := CreateLangfuseAttributes("narration", "", []string{"ending"})
	assert.Len(t, attrs, 2)

	attrs = CreateGenAIAttributes("openai", "m", 10, 0, -1)
	assert.Contains(t, attrs, attribute.Int("gen_ai.usage.input_tokens", 10))
	assert.Len(t, attrs, 4)
}
