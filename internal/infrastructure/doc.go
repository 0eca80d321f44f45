// Package infrastructure provides cross-cutting runtime services:
// structured logging and OpenTelemetry metrics.
//
// Logging is slog with JSON output, optionally duplicated to a file.
// Every log record automatically carries the request trace ID when one
// is present in the context, so log lines from a single request can be
// correlated without threading the ID through call sites.
//
// Metrics use the OpenTelemetry SDK with a Prometheus exporter. The
// BusinessMetrics bundle covers dataset loads, dashboard queries, CSV
// exports, and HTTP traffic, and is scraped from the /metrics endpoint.
package infrastructure
