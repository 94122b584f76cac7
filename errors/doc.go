// Package errors provides the structured error taxonomy for the flow engine.
// Every failure surfaced to a caller carries a machine-readable code, a
// human-readable message, and optional details naming the elements involved.
package errors
