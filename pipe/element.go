package pipe

import "context"

// Element is the execution unit in a pipe graph.
type Element interface {
	// Name returns the element's identity. An empty name is replaced with a
	// generated one when the element is added to a Builder.
	Name() string
	// Transform consumes the gathered predecessor payloads and resolved
	// requirement arguments and produces one result. It must be a pure
	// function of its input: the engine runs it exactly once per pass and
	// hands the same result to every successor without cloning.
	Transform(ctx context.Context, in *Input) (*Output, error)
}

// Input carries everything an element receives for one execution.
type Input struct {
	// Data holds the predecessor results in predecessor-declaration order.
	// An inlet receives the single raw value supplied to Flow.
	Data []any
	// Args holds the arguments resolved from the element's requirements,
	// keyed by the requirement's argument name.
	Args map[string]any
}

// First returns the first payload, or nil when there is none.
// Single-predecessor elements use it instead of indexing Data.
func (in *Input) First() any {
	if len(in.Data) == 0 {
		return nil
	}
	return in.Data[0]
}

// Output carries an element's result and its exported attributes.
type Output struct {
	// Value is the result handed to every successor.
	Value any
	// Attrs are the read-only post-execution attributes other elements'
	// requirements may read. They must be populated before Transform
	// returns; the engine never mutates them.
	Attrs map[string]any
}

// FuncElement adapts a plain function to the Element interface.
type FuncElement struct {
	name string
	fn   func(ctx context.Context, in *Input) (*Output, error)
}

// NewFunc creates an Element from a function.
func NewFunc(name string, fn func(ctx context.Context, in *Input) (*Output, error)) *FuncElement {
	return &FuncElement{name: name, fn: fn}
}

func (e *FuncElement) Name() string { return e.name }

func (e *FuncElement) Transform(ctx context.Context, in *Input) (*Output, error) {
	return e.fn(ctx, in)
}

// inletElement feeds externally supplied raw input into the graph,
// optionally converting slice input to the tabular Frame representation.
type inletElement struct {
	name    string
	convert bool
}

func (e *inletElement) Name() string { return e.name }

func (e *inletElement) Transform(_ context.Context, in *Input) (*Output, error) {
	v := in.First()
	if e.convert {
		v = Tabular(v)
	}
	return &Output{Value: v}, nil
}

// outletElement terminates a branch; its result is the system output.
type outletElement struct {
	name string
}

func (e *outletElement) Name() string { return e.name }

func (e *outletElement) Transform(_ context.Context, in *Input) (*Output, error) {
	return &Output{Value: in.First()}, nil
}
