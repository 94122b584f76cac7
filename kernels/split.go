package kernels

import (
	"context"
	"fmt"

	"github.com/lyteflow/lyteflow/pipe"
)

// DefaultCopiesArg is the argument name a Duplicator reads its copy count
// override from.
const DefaultCopiesArg = "n_copies"

// Duplicator repeats its payload a configured number of times, producing a
// slice of copies. The count can be overridden per pass through a
// requirement bound to the copies argument, which is how a branch mirrors
// the variant count of an element on another branch.
type Duplicator struct {
	name    string
	copies  int
	argName string
}

// NewDuplicator creates a Duplicator with a static copy count.
func NewDuplicator(name string, copies int) *Duplicator {
	return &Duplicator{name: name, copies: copies, argName: DefaultCopiesArg}
}

// CopiesFrom changes the argument name the copy count override is read from.
func (d *Duplicator) CopiesFrom(arg string) *Duplicator {
	d.argName = arg
	return d
}

func (d *Duplicator) Name() string { return d.name }

func (d *Duplicator) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	copies := d.copies
	if raw, found := in.Args[d.argName]; found {
		n, err := asInt(raw)
		if err != nil {
			return nil, fmt.Errorf("duplicator: argument %q: %w", d.argName, err)
		}
		copies = n
	}
	if copies < 0 {
		return nil, fmt.Errorf("duplicator: negative copy count %d", copies)
	}

	out := make([]any, copies)
	for i := range out {
		out[i] = copyPayload(in.First())
	}
	return &pipe.Output{
		Value: out,
		Attrs: map[string]any{"n_copies": copies},
	}, nil
}

func asInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

// copyPayload clones frames and slices so downstream mutation of one copy
// cannot leak into another; scalars and unknown types pass by value.
func copyPayload(v any) any {
	switch x := v.(type) {
	case *pipe.Frame:
		return x.Clone()
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		return out
	case [][]float64:
		return cloneGrid(x)
	default:
		return v
	}
}
