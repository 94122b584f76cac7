package pipe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyteflow/lyteflow/errors"
)

// testRegistry registers a "scale" kind reading a "factor" option.
func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register("scale", func(options map[string]any) (Element, error) {
		name, _ := options["name"].(string)
		factor, ok := options["factor"].(float64)
		if !ok {
			return nil, fmt.Errorf("scale requires a factor option")
		}
		return scaleBy(name, factor), nil
	})
	return reg
}

func testDefinition() *Definition {
	return &Definition{
		Name: "half-pipe",
		Elements: []ElementDef{
			{Name: "in", Kind: KindInlet},
			{Name: "half", Kind: "scale", Options: map[string]any{"factor": 0.5}},
			{Name: "out", Kind: KindOutlet},
		},
		Connections: []ConnectionDef{
			{From: "in", To: "half"},
			{From: "half", To: "out"},
		},
	}
}

func TestRegistry_RoundTrip(t *testing.T) {
	reg := testRegistry()

	if _, found := reg.Get("scale"); !found {
		t.Fatal("registered kind not found")
	}
	if _, err := reg.New("nope", nil); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND error, got %v", err)
	}
	reg.Register("another", func(map[string]any) (Element, error) { return passthrough("x"), nil })
	kinds := reg.List()
	if len(kinds) != 2 || kinds[0] != "another" || kinds[1] != "scale" {
		t.Errorf("expected sorted kinds, got %v", kinds)
	}
}

func TestBuildSystem_FromDefinition(t *testing.T) {
	sys, err := BuildSystem(testDefinition(), testRegistry(), Options{})
	if err != nil {
		t.Fatalf("build system: %v", err)
	}
	if sys.Name() != "half-pipe" {
		t.Errorf("expected system named from definition, got %q", sys.Name())
	}

	out, err := sys.Flow(context.Background(), 4.0)
	if err != nil {
		t.Fatalf("flow: %v", err)
	}
	if out[0] != 2.0 {
		t.Errorf("expected 2.0, got %v", out[0])
	}
}

func TestBuildGraph_Errors(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name string
		def  *Definition
		code errors.ErrorCode
	}{
		{
			name: "unknown kind",
			def: &Definition{Elements: []ElementDef{
				{Name: "x", Kind: "mystery"},
			}},
			code: errors.ErrCodeNotFound,
		},
		{
			name: "empty element name",
			def: &Definition{Elements: []ElementDef{
				{Kind: KindInlet},
			}},
			code: errors.ErrCodeInvalidDefinition,
		},
		{
			name: "duplicate element name",
			def: &Definition{Elements: []ElementDef{
				{Name: "x", Kind: KindInlet},
				{Name: "x", Kind: KindOutlet},
			}},
			code: errors.ErrCodeInvalidDefinition,
		},
		{
			name: "unknown connection endpoint",
			def: &Definition{
				Elements: []ElementDef{
					{Name: "in", Kind: KindInlet},
					{Name: "out", Kind: KindOutlet},
				},
				Connections: []ConnectionDef{{From: "in", To: "ghost"}},
			},
			code: errors.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildGraph(tt.def, reg); !errors.IsCode(err, tt.code) {
				t.Fatalf("expected %s error, got %v", tt.code, err)
			}
		})
	}
}

func TestBuildGraph_LeavesDefinitionUntouched(t *testing.T) {
	def := testDefinition()
	if _, err := BuildGraph(def, testRegistry()); err != nil {
		t.Fatalf("build: %v", err)
	}

	opts := def.Elements[1].Options
	if _, found := opts["name"]; found {
		t.Error("building injected a name into the definition's options")
	}
	if len(opts) != 1 {
		t.Errorf("definition options changed: %v", opts)
	}
}

func TestDefinition_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	def := testDefinition()

	for _, ext := range []string{"yml", "json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "def."+ext)
			if err := SaveDefinition(def, path); err != nil {
				t.Fatalf("save: %v", err)
			}
			loaded, err := LoadDefinition(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if loaded.Name != def.Name {
				t.Errorf("name changed: %q vs %q", loaded.Name, def.Name)
			}
			if len(loaded.Elements) != len(def.Elements) {
				t.Fatalf("elements changed: %d vs %d", len(loaded.Elements), len(def.Elements))
			}
			if len(loaded.Connections) != len(def.Connections) {
				t.Fatalf("connections changed: %d vs %d", len(loaded.Connections), len(def.Connections))
			}

			sys, err := BuildSystem(loaded, testRegistry(), Options{})
			if err != nil {
				t.Fatalf("build from loaded definition: %v", err)
			}
			out, err := sys.Flow(context.Background(), 10.0)
			if err != nil {
				t.Fatalf("flow: %v", err)
			}
			if out[0] != 5.0 {
				t.Errorf("expected 5.0, got %v", out[0])
			}
		})
	}
}

func TestLoadDefinition_Missing(t *testing.T) {
	_, err := LoadDefinition(filepath.Join(t.TempDir(), "absent.yml"))
	if !errors.IsCode(err, errors.ErrCodeInvalidDefinition) {
		t.Fatalf("expected INVALID_DEFINITION error, got %v", err)
	}
}

func TestLoadDefinition_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadDefinition(path)
	if !errors.IsCode(err, errors.ErrCodeInvalidDefinition) {
		t.Fatalf("expected INVALID_DEFINITION error, got %v", err)
	}
}
