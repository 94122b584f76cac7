package kernels

import (
	"context"
	"fmt"
	"sort"

	"github.com/lyteflow/lyteflow/pipe"
)

// OneHot encodes a slice of categories as a binary frame with one column
// per distinct value, columns sorted by value.
type OneHot struct {
	name string
}

// NewOneHot creates a OneHot encoder.
func NewOneHot(name string) *OneHot {
	return &OneHot{name: name}
}

func (o *OneHot) Name() string { return o.name }

func (o *OneHot) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	cats, err := asCategories(in.First())
	if err != nil {
		return nil, err
	}

	distinct := make(map[string]bool, len(cats))
	for _, c := range cats {
		distinct[c] = true
	}
	columns := make([]string, 0, len(distinct))
	for c := range distinct {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	rows := make([][]float64, len(cats))
	for i, c := range cats {
		rows[i] = make([]float64, len(columns))
		rows[i][index[c]] = 1
	}

	return &pipe.Output{
		Value: pipe.NewFrame(columns, rows),
		Attrs: map[string]any{"n_categories": len(columns)},
	}, nil
}

func asCategories(v any) ([]string, error) {
	switch x := v.(type) {
	case []string:
		return x, nil
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, valid := e.(string)
			if !valid {
				return nil, fmt.Errorf("onehot: element %d is %T, expected string", i, e)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("onehot: unsupported payload %T", v)
	}
}
