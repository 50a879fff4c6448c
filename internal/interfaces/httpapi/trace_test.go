package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestPathAttributes(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	var got []attribute.KeyValue
	mux.HandleFunc("POST /v1/providers/{provider}/games/{game}/watch", func(_ http.ResponseWriter, r *http.Request) {
		got = pathAttributes(r)
	})
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/v1/providers/provider1/games/lol/watch", nil))

	if len(got) != 2 {
		t.Fatalf("unexpected attribute count: got=%d want=%d", len(got), 2)
	}
	if got[0].Value.AsString() != "provider1" || got[1].Value.AsString() != "lol" {
		t.Fatalf("unexpected attributes: %+v", got)
	}
}

func TestStartHandlerSpan_NoParentIsNoop(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	ctx, span := startHandlerSpan(req, "Healthz")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected no span without a parent")
	}
	if ctx != req.Context() {
		t.Fatalf("expected request context to be returned untouched")
	}
}

func TestRecordSpanError_NonRecordingSpan(t *testing.T) {
	t.Parallel()

	ctx := trace.ContextWithSpan(context.Background(), trace.SpanFromContext(context.Background()))
	recordSpanError(ctx, http.StatusInternalServerError, errors.New("boom"))
}
