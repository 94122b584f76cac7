package kernels

import (
	"context"
	"fmt"

	"github.com/lyteflow/lyteflow/pipe"
)

// ColumnFilter keeps only the named columns of a frame, in the order given.
// A named column missing from the input is an error unless ignoreAbsent is
// set.
type ColumnFilter struct {
	name         string
	columns      []string
	ignoreAbsent bool
}

// NewColumnFilter creates a ColumnFilter.
func NewColumnFilter(name string, columns []string, ignoreAbsent bool) *ColumnFilter {
	return &ColumnFilter{name: name, columns: columns, ignoreAbsent: ignoreAbsent}
}

func (c *ColumnFilter) Name() string { return c.name }

func (c *ColumnFilter) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	f, valid := in.First().(*pipe.Frame)
	if !valid {
		return nil, fmt.Errorf("column_filter: payload %T is not a frame", in.First())
	}

	var keep []int
	var cols []string
	for _, name := range c.columns {
		idx := f.Column(name)
		if idx < 0 {
			if c.ignoreAbsent {
				continue
			}
			return nil, fmt.Errorf("column_filter: column %q not found", name)
		}
		keep = append(keep, idx)
		cols = append(cols, name)
	}

	rows := make([][]float64, len(f.Rows))
	for i, row := range f.Rows {
		rows[i] = make([]float64, len(keep))
		for j, idx := range keep {
			rows[i][j] = row[idx]
		}
	}

	return &pipe.Output{Value: pipe.NewFrame(cols, rows)}, nil
}
