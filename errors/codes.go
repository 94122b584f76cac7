package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Graph construction and validation errors (pre-flow, structural)
const (
	// ErrCodeStructure indicates invalid graph topology: an unreachable
	// outlet, a dangling element, or a duplicate element name.
	ErrCodeStructure ErrorCode = "STRUCTURE"
	// ErrCodeCycle indicates a cycle in the combined data/requirement graph.
	ErrCodeCycle ErrorCode = "CYCLE"
)

// Flow-pass errors
const (
	// ErrCodeResolution indicates a requirement's source attribute is
	// missing or its source had not executed when needed.
	ErrCodeResolution ErrorCode = "RESOLUTION"
	// ErrCodeInputArity indicates Flow was called with a raw-input count
	// that does not match the inlet count.
	ErrCodeInputArity ErrorCode = "INPUT_ARITY"
	// ErrCodeTransform wraps a failure raised inside an element's transform.
	ErrCodeTransform ErrorCode = "TRANSFORM"
)

// Definition and registry errors
const (
	// ErrCodeNotFound indicates a registry or definition lookup miss.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidDefinition indicates a pipe-system definition that
	// cannot be parsed or rebuilt.
	ErrCodeInvalidDefinition ErrorCode = "INVALID_DEFINITION"
)
