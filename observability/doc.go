// Package observability provides OpenTelemetry tracing and metrics setup
// for flow execution. The pipe package's WithTracing and WithMetrics
// element wrappers record through the helpers here; nothing in the core
// engine depends on a collector being configured.
package observability
