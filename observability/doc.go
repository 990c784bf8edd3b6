// Package observability wires OpenTelemetry tracing and metrics export
// and defines the health reporting model used by the HTTP API.
package observability
