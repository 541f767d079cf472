// Package observability provides structured logging for the resource
// sharing backend.
//
// Loggers are zap-based and configured from ObservabilityConfig: level
// and output format (json for deployments, console for local work).
package observability
