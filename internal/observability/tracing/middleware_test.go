package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupExporter wires an in-memory exporter into the global tracer and
// restores the previous provider when the test finishes.
func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer("neuradigest")
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer("neuradigest")
	})
	return exporter, tp
}

func flushSpans(t *testing.T, exporter *tracetest.InMemoryExporter, tp *sdktrace.TracerProvider) tracetest.SpanStubs {
	t.Helper()
	_ = tp.ForceFlush(context.Background())
	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	return spans
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(okHandler())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/news", nil))

	span := flushSpans(t, exporter, tp)[0]
	if span.Name != "GET /news" {
		t.Errorf("expected span name 'GET /news', got %q", span.Name)
	}

	want := map[string]string{
		"http.method":      "GET",
		"http.path":        "/news",
		"http.status_code": "200",
	}
	for _, attr := range span.Attributes {
		expected, ok := want[string(attr.Key)]
		if !ok {
			continue
		}
		if got := attr.Value.Emit(); got != expected {
			t.Errorf("attribute %s: expected %s, got %s", attr.Key, expected, got)
		}
		delete(want, string(attr.Key))
	}
	for key := range want {
		t.Errorf("attribute %s not found on span", key)
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupExporter(t)

	handler := Middleware(okHandler())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/news", nil))

	traceID := rr.Header().Get("X-Trace-Id")
	if traceID == "" {
		t.Fatal("X-Trace-Id header not found in response")
	}
	if len(traceID) != 32 {
		t.Errorf("expected 32 hex chars in trace ID, got %d", len(traceID))
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := setupExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())
	})

	handler := Middleware(okHandler())
	req := httptest.NewRequest("GET", "/news", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	span := flushSpans(t, exporter, tp)[0]
	if got := span.SpanContext.TraceID().String(); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace ID not propagated from traceparent, got %s", got)
	}
}

func TestMiddleware_MarksErrorSpansFor5xx(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/news", nil))

	span := flushSpans(t, exporter, tp)[0]
	for _, attr := range span.Attributes {
		if attr.Key == "error" && attr.Value.AsBool() {
			return
		}
	}
	t.Error("expected error attribute for 5xx response")
}

func TestMiddleware_NoErrorAttributeFor4xx(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/subscribers/99", nil))

	span := flushSpans(t, exporter, tp)[0]
	for _, attr := range span.Attributes {
		if attr.Key == "error" {
			t.Error("unexpected error attribute for 4xx response")
		}
	}
}

func TestResponseWriter_CapturesStatusCode(t *testing.T) {
	rw := newResponseWriter(httptest.NewRecorder())
	if rw.statusCode != http.StatusOK {
		t.Errorf("expected default status code 200, got %d", rw.statusCode)
	}
	rw.WriteHeader(http.StatusCreated)
	if rw.statusCode != http.StatusCreated {
		t.Errorf("expected status code 201, got %d", rw.statusCode)
	}
}
