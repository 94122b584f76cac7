package kernels

import (
	"context"
	"fmt"

	"github.com/lyteflow/lyteflow/pipe"
)

// Concat merges the payloads of every predecessor into one value, in
// predecessor-declaration order. Frames concatenate along the configured
// axis (0 appends rows, 1 appends columns); float64 slices append.
type Concat struct {
	name string
	axis int
}

// NewConcat creates a Concat for the given axis.
func NewConcat(name string, axis int) (*Concat, error) {
	if axis != 0 && axis != 1 {
		return nil, fmt.Errorf("concat: axis must be 0 or 1, got %d", axis)
	}
	return &Concat{name: name, axis: axis}, nil
}

func (c *Concat) Name() string { return c.name }

func (c *Concat) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("concat: no inputs")
	}

	switch in.Data[0].(type) {
	case *pipe.Frame:
		return c.concatFrames(in.Data)
	case []float64:
		var out []float64
		for i, v := range in.Data {
			s, valid := v.([]float64)
			if !valid {
				return nil, fmt.Errorf("concat: input %d is %T, expected []float64", i, v)
			}
			out = append(out, s...)
		}
		return &pipe.Output{Value: out}, nil
	default:
		return nil, fmt.Errorf("concat: unsupported payload %T", in.Data[0])
	}
}

func (c *Concat) concatFrames(data []any) (*pipe.Output, error) {
	frames := make([]*pipe.Frame, len(data))
	for i, v := range data {
		f, valid := v.(*pipe.Frame)
		if !valid {
			return nil, fmt.Errorf("concat: input %d is %T, expected *pipe.Frame", i, v)
		}
		frames[i] = f
	}

	if c.axis == 0 {
		base := frames[0].Clone()
		for _, f := range frames[1:] {
			if len(f.Columns) != len(base.Columns) {
				return nil, fmt.Errorf("concat: column count mismatch: %d vs %d",
					len(f.Columns), len(base.Columns))
			}
			base.Rows = append(base.Rows, f.Clone().Rows...)
		}
		return &pipe.Output{Value: base}, nil
	}

	// axis 1: append columns, rows must align
	base := frames[0].Clone()
	for _, f := range frames[1:] {
		if len(f.Rows) != len(base.Rows) {
			return nil, fmt.Errorf("concat: row count mismatch: %d vs %d",
				len(f.Rows), len(base.Rows))
		}
		base.Columns = append(base.Columns, f.Columns...)
		for i := range base.Rows {
			base.Rows[i] = append(base.Rows[i], f.Rows[i]...)
		}
	}
	return &pipe.Output{Value: base}, nil
}
