package kernels

import (
	"context"
	"fmt"

	"github.com/lyteflow/lyteflow/pipe"
)

// Scaler multiplies numeric input by a constant factor.
type Scaler struct {
	name   string
	factor float64
}

// NewScaler creates a Scaler.
func NewScaler(name string, factor float64) *Scaler {
	return &Scaler{name: name, factor: factor}
}

func (s *Scaler) Name() string { return s.name }

func (s *Scaler) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	switch x := in.First().(type) {
	case int:
		return &pipe.Output{Value: float64(x) * s.factor}, nil
	case float64:
		return &pipe.Output{Value: x * s.factor}, nil
	case []float64:
		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = v * s.factor
		}
		return &pipe.Output{Value: out}, nil
	case *pipe.Frame:
		f := x.Clone()
		for _, row := range f.Rows {
			for i := range row {
				row[i] *= s.factor
			}
		}
		return &pipe.Output{Value: f}, nil
	default:
		return nil, fmt.Errorf("scaler: unsupported payload %T", in.First())
	}
}

// Normalizer rescales values to the [0, 1] range using min-max scaling.
// When dependent is true a single min/max pair is computed over the whole
// payload, otherwise each column scales independently.
type Normalizer struct {
	name      string
	dependent bool
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(name string, dependent bool) *Normalizer {
	return &Normalizer{name: name, dependent: dependent}
}

func (n *Normalizer) Name() string { return n.name }

func (n *Normalizer) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	switch x := in.First().(type) {
	case []float64:
		out := make([]float64, len(x))
		copy(out, x)
		normalize(out)
		return &pipe.Output{Value: out}, nil
	case *pipe.Frame:
		f := x.Clone()
		if n.dependent {
			var all []float64
			for _, row := range f.Rows {
				all = append(all, row...)
			}
			lo, hi := bounds(all)
			for _, row := range f.Rows {
				scaleTo(row, lo, hi)
			}
		} else {
			for c := range f.Columns {
				col := make([]float64, len(f.Rows))
				for r, row := range f.Rows {
					col[r] = row[c]
				}
				lo, hi := bounds(col)
				for _, row := range f.Rows {
					row[c] = scaled(row[c], lo, hi)
				}
			}
		}
		return &pipe.Output{Value: f}, nil
	default:
		return nil, fmt.Errorf("normalizer: unsupported payload %T", in.First())
	}
}

func normalize(vals []float64) {
	lo, hi := bounds(vals)
	scaleTo(vals, lo, hi)
}

func bounds(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func scaleTo(vals []float64, lo, hi float64) {
	for i := range vals {
		vals[i] = scaled(vals[i], lo, hi)
	}
}

func scaled(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
