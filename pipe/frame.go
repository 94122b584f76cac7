package pipe

import "strconv"

// Frame is the minimal tabular carrier passed between elements that operate
// on column-oriented data. It is intentionally not a numerics library: just
// named columns over float64 rows, enough for inlet conversion and the
// kernel set.
type Frame struct {
	Columns []string
	Rows    [][]float64
}

// NewFrame creates a Frame with generated column names when cols is nil.
func NewFrame(cols []string, rows [][]float64) *Frame {
	if cols == nil {
		width := 0
		if len(rows) > 0 {
			width = len(rows[0])
		}
		cols = make([]string, width)
		for i := range cols {
			cols[i] = strconv.Itoa(i)
		}
	}
	return &Frame{Columns: cols, Rows: rows}
}

// Shape returns (rows, columns).
func (f *Frame) Shape() (int, int) {
	return len(f.Rows), len(f.Columns)
}

// Column returns the index of the named column, or -1.
func (f *Frame) Column(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	cols := make([]string, len(f.Columns))
	copy(cols, f.Columns)
	rows := make([][]float64, len(f.Rows))
	for i, r := range f.Rows {
		rows[i] = make([]float64, len(r))
		copy(rows[i], r)
	}
	return &Frame{Columns: cols, Rows: rows}
}

// Tabular converts 1- and 2-dimensional float64 slice input into a Frame.
// Any other value is returned unchanged.
func Tabular(v any) any {
	switch x := v.(type) {
	case []float64:
		rows := make([][]float64, len(x))
		for i, val := range x {
			rows[i] = []float64{val}
		}
		return NewFrame(nil, rows)
	case [][]float64:
		return NewFrame(nil, x)
	case *Frame:
		return x
	default:
		return v
	}
}
