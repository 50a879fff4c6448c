package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("esport-datanal/internal/usecase")

// startUsecaseSpan starts a child span. Without a sampled parent the
// context is returned untouched with a no-op span.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanContextFromContext(ctx)
	if !parent.IsValid() || !parent.IsSampled() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func passAttributes(providerName, gameName string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("esport.provider", providerName),
		attribute.String("esport.game", gameName),
	}
}
