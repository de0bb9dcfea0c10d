// Package observability groups the logging, metrics and tracing
// subpackages shared by the API and worker.
//
// logging wraps slog with request ID propagation, metrics holds the
// Prometheus collectors for HTTP traffic and digest/subscription business
// events, and tracing wires OpenTelemetry spans into the middleware chain.
package observability
