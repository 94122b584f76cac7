package kernels

import (
	"context"
	"testing"

	"github.com/lyteflow/lyteflow/pipe"
)

func TestNewRotator_Validation(t *testing.T) {
	if _, err := NewRotator("r", []int{45}, false); err == nil {
		t.Error("expected error for rotation not a multiple of 90")
	}
	if _, err := NewRotator("r", nil, false); err == nil {
		t.Error("expected error for empty rotation set")
	}
	if _, err := NewRotator("r", nil, true); err != nil {
		t.Errorf("keep_original alone should be valid: %v", err)
	}
}

func TestNewRotator_NormalizesRotations(t *testing.T) {
	// -90 and 630 both normalize to 270; 450 to 90.
	r, err := NewRotator("r", []int{-90, 630, 450, 90}, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.rotations) != 2 || r.rotations[0] != 90 || r.rotations[1] != 270 {
		t.Errorf("expected deduplicated [90 270], got %v", r.rotations)
	}
}

func TestRotateQuarter(t *testing.T) {
	got := rotateQuarter([][]float64{{1, 2, 3}, {4, 5, 6}})
	want := [][]float64{{4, 1}, {5, 2}, {6, 3}}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	}
}

func TestRotator_Transform(t *testing.T) {
	r, err := NewRotator("r", []int{90, 180}, true)
	if err != nil {
		t.Fatal(err)
	}
	grid := [][]float64{{1, 2}, {3, 4}}

	out := transform(t, r, grid)
	variants := out.Value.([]any)
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants (0, 90, 180), got %d", len(variants))
	}
	if out.Attrs[DefaultVariantAttr] != 3 {
		t.Errorf("expected variant count exported, got %v", out.Attrs)
	}

	// variant 0 is the unrotated grid, and a copy of it
	first := variants[0].([][]float64)
	if first[0][0] != 1 {
		t.Errorf("expected original grid first, got %v", first)
	}
	first[0][0] = 99
	if grid[0][0] != 1 {
		t.Error("variant shares storage with the input grid")
	}

	quarter := variants[1].([][]float64)
	if quarter[0][0] != 3 || quarter[0][1] != 1 {
		t.Errorf("unexpected 90-degree variant: %v", quarter)
	}
}

func TestRotator_ExportAs(t *testing.T) {
	r, err := NewRotator("r", []int{90}, false)
	if err != nil {
		t.Fatal(err)
	}
	r.ExportAs("variants")

	out := transform(t, r, [][]float64{{1}})
	if out.Attrs["variants"] != 1 {
		t.Errorf("expected custom attribute key, got %v", out.Attrs)
	}
	if _, found := out.Attrs[DefaultVariantAttr]; found {
		t.Error("default key still exported after ExportAs")
	}
}

func TestRotator_AcceptsFrame(t *testing.T) {
	r, err := NewRotator("r", []int{180}, false)
	if err != nil {
		t.Fatal(err)
	}
	f := pipe.NewFrame(nil, [][]float64{{1, 2}, {3, 4}})

	out := transform(t, r, f)
	rotated := out.Value.([]any)[0].([][]float64)
	if rotated[0][0] != 4 {
		t.Errorf("unexpected 180-degree rotation: %v", rotated)
	}
}

func TestRotator_RejectsScalar(t *testing.T) {
	r, err := NewRotator("r", []int{90}, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Transform(context.Background(), &pipe.Input{Data: []any{1.0}}); err == nil {
		t.Fatal("expected error for non-grid payload")
	}
}
