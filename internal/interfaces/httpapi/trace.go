package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("esport-datanal/internal/interfaces/httpapi")

// startHandlerSpan opens a "httpapi.Handler.<name>" span under the request
// span. Requests the tracing middleware filtered out, such as /healthz, get
// a no-op span.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+name, trace.WithAttributes(pathAttributes(r)...))
}

func pathAttributes(r *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if v := r.PathValue("provider"); v != "" {
		attrs = append(attrs, attribute.String("esport.provider", v))
	}
	if v := r.PathValue("game"); v != "" {
		attrs = append(attrs, attribute.String("esport.game", v))
	}
	return attrs
}

// recordSpanError marks the active span failed for server side errors.
// Client errors are annotated but leave the span status unset.
func recordSpanError(ctx context.Context, status int, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
