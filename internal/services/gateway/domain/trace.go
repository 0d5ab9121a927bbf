package domain

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer instruments gateway tool invocations. Spans are no-ops until a
// tracer provider is registered by otel.Setup.
var tracer = otel.Tracer("github.com/factgate/factgate/internal/services/gateway")

// startToolSpan opens a server span for one tool invocation, tagged with the
// tool name and the gateway's correlation identifier.
func startToolSpan(ctx context.Context, toolName, invocationID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{
		attribute.String("mcp.tool.name", toolName),
		attribute.String("factgate.invocation_id", invocationID),
	}, attrs...)
	return tracer.Start(ctx, "mcp.tool "+toolName,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(spanAttrs...),
	)
}
