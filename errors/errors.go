package errors

import (
	stderrors "errors"
	"fmt"
)

// FlowError is the unified engine error type.
type FlowError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context, typically element names.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *FlowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *FlowError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *FlowError) WithCause(cause error) *FlowError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *FlowError) WithDetail(key string, value any) *FlowError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new FlowError.
func New(code ErrorCode, message string) *FlowError {
	return &FlowError{Code: code, Message: message}
}

// Newf creates a new FlowError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *FlowError {
	return &FlowError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns an empty code when err is not a FlowError.
func CodeOf(err error) ErrorCode {
	var fe *FlowError
	if stderrors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// AsFlowError extracts a FlowError from err, unwrapping as needed.
func AsFlowError(err error) (*FlowError, bool) {
	var fe *FlowError
	if stderrors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// --- Common Error Constructors ---

// Structure creates a FlowError for invalid graph topology.
func Structure(message string) *FlowError {
	return New(ErrCodeStructure, message)
}

// Structuref creates a FlowError for invalid graph topology with formatting.
func Structuref(format string, args ...any) *FlowError {
	return Newf(ErrCodeStructure, format, args...)
}

// Cycle creates a FlowError naming the elements participating in a cycle.
func Cycle(elements []string) *FlowError {
	return Newf(ErrCodeCycle, "cycle detected among elements %v", elements).
		WithDetail("elements", elements)
}

// Resolution creates a FlowError for an unresolvable requirement.
func Resolution(source, attribute string) *FlowError {
	return Newf(ErrCodeResolution, "attribute %q not exported by element %q", attribute, source).
		WithDetail("source", source).
		WithDetail("attribute", attribute)
}

// InputArity creates a FlowError for a raw-input count mismatch.
func InputArity(want, got int) *FlowError {
	return Newf(ErrCodeInputArity, "flow requires %d input(s), got %d", want, got).
		WithDetail("want", want).
		WithDetail("got", got)
}

// Transform wraps a failure from within an element's transform call.
func Transform(element string, cause error) *FlowError {
	return Newf(ErrCodeTransform, "element %q failed", element).
		WithDetail("element", element).
		WithCause(cause)
}

// NotFound creates a FlowError for a registry or definition lookup miss.
func NotFound(kind, name string) *FlowError {
	return Newf(ErrCodeNotFound, "%s %q not found", kind, name).
		WithDetail("name", name)
}

// InvalidDefinition creates a FlowError for an unusable definition.
func InvalidDefinition(message string) *FlowError {
	return New(ErrCodeInvalidDefinition, message)
}
