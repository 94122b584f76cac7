package kernels

import (
	"context"
	"fmt"
	"sort"

	"github.com/lyteflow/lyteflow/pipe"
)

// DefaultVariantAttr is the attribute key a Rotator exports its variant
// count under unless configured otherwise. The key is configuration, not a
// contract: requirements bind whatever key the producing element exports.
const DefaultVariantAttr = "n_result"

// Rotator produces one rotated variant of a 2-D grid per configured
// rotation. Rotations are degrees in multiples of 90; values are normalized
// into [0, 360) and deduplicated. The number of produced variants is
// exported as a post-execution attribute for cross-branch requirements.
type Rotator struct {
	name      string
	rotations []int
	attrKey   string
}

// NewRotator creates a Rotator. keepOriginal adds a 0-degree variant.
func NewRotator(name string, rotations []int, keepOriginal bool) (*Rotator, error) {
	verified := make(map[int]bool)
	for _, r := range rotations {
		r %= 360
		if r < 0 {
			r += 360
		}
		if r%90 != 0 {
			return nil, fmt.Errorf("rotator: rotation %d is not a multiple of 90", r)
		}
		verified[r] = true
	}
	if keepOriginal {
		verified[0] = true
	}
	if len(verified) == 0 {
		return nil, fmt.Errorf("rotator: no rotations configured")
	}

	sorted := make([]int, 0, len(verified))
	for r := range verified {
		sorted = append(sorted, r)
	}
	sort.Ints(sorted)

	return &Rotator{name: name, rotations: sorted, attrKey: DefaultVariantAttr}, nil
}

// ExportAs changes the attribute key the variant count is exported under.
func (r *Rotator) ExportAs(key string) *Rotator {
	r.attrKey = key
	return r
}

func (r *Rotator) Name() string { return r.name }

func (r *Rotator) Transform(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
	grid, err := asGrid(in.First())
	if err != nil {
		return nil, err
	}

	variants := make([]any, len(r.rotations))
	for i, rot := range r.rotations {
		variants[i] = rotateGrid(grid, rot)
	}

	return &pipe.Output{
		Value: variants,
		Attrs: map[string]any{r.attrKey: len(variants)},
	}, nil
}

func asGrid(v any) ([][]float64, error) {
	switch x := v.(type) {
	case [][]float64:
		return x, nil
	case *pipe.Frame:
		return x.Rows, nil
	default:
		return nil, fmt.Errorf("rotator: payload %T is not a 2-D grid", v)
	}
}

// rotateGrid rotates clockwise by deg, a normalized multiple of 90.
func rotateGrid(grid [][]float64, deg int) [][]float64 {
	out := cloneGrid(grid)
	for turns := (deg / 90) % 4; turns > 0; turns-- {
		out = rotateQuarter(out)
	}
	return out
}

func rotateQuarter(grid [][]float64) [][]float64 {
	if len(grid) == 0 {
		return grid
	}
	h, w := len(grid), len(grid[0])
	out := make([][]float64, w)
	for i := range out {
		out[i] = make([]float64, h)
		for j := range out[i] {
			out[i][j] = grid[h-1-j][i]
		}
	}
	return out
}

func cloneGrid(grid [][]float64) [][]float64 {
	out := make([][]float64, len(grid))
	for i, row := range grid {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
