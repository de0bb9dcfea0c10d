// Package tracing wires OpenTelemetry spans into the HTTP middleware
// chain.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("neuradigest")

// GetTracer returns the shared tracer for creating spans outside the
// middleware, such as around a full digest refresh.
func GetTracer() trace.Tracer {
	return tracer
}
