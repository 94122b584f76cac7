package inspect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lyteflow/lyteflow/pipe"
)

func buildSystem(t *testing.T) *pipe.System {
	t.Helper()
	b := pipe.NewBuilder()
	in := b.AddInlet(pipe.InletSpec{Name: "in"})
	scale := b.Add(pipe.NewFunc("scale", func(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
		return &pipe.Output{Value: in.First()}, nil
	}))
	out := b.AddOutlet("out")
	if err := b.Connect(in, scale); err != nil {
		t.Fatal(err)
	}
	if err := b.Connect(scale, out); err != nil {
		t.Fatal(err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	sys, err := pipe.NewSystem(g, pipe.Options{Name: "inspect-test"})
	if err != nil {
		t.Fatal(err)
	}
	return sys
}

func TestHandler_Graph(t *testing.T) {
	sys := buildSystem(t)
	srv := httptest.NewServer(Handler(sys))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/graph")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var view GraphView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Name != "inspect-test" {
		t.Errorf("expected name inspect-test, got %q", view.Name)
	}
	if len(view.Nodes) != 3 {
		t.Errorf("expected 3 nodes, got %d", len(view.Nodes))
	}
	if len(view.DataEdges) != 2 {
		t.Errorf("expected 2 data edges, got %d", len(view.DataEdges))
	}
	if len(view.Inlets) != 1 || len(view.Outlets) != 1 {
		t.Errorf("expected 1 inlet and 1 outlet, got %d/%d", len(view.Inlets), len(view.Outlets))
	}
	if len(view.Order) != 3 {
		t.Errorf("expected full execution order, got %v", view.Order)
	}
}

func TestHandler_Healthz(t *testing.T) {
	sys := buildSystem(t)
	srv := httptest.NewServer(Handler(sys))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestHandler_Version(t *testing.T) {
	sys := buildSystem(t)
	srv := httptest.NewServer(Handler(sys))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Version == "" {
		t.Error("expected a version in the response")
	}
}

func TestView_Requirements(t *testing.T) {
	b := pipe.NewBuilder()
	in1 := b.AddInlet(pipe.InletSpec{Name: "in1"})
	in2 := b.AddInlet(pipe.InletSpec{Name: "in2"})
	produce := b.Add(pipe.NewFunc("produce", func(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
		return &pipe.Output{Value: in.First(), Attrs: map[string]any{"n": 1}}, nil
	}))
	consume := b.Add(pipe.NewFunc("consume", func(_ context.Context, in *pipe.Input) (*pipe.Output, error) {
		return &pipe.Output{Value: in.Args["count"]}, nil
	}))
	out1 := b.AddOutlet("out1")
	out2 := b.AddOutlet("out2")
	for _, c := range [][2]pipe.Handle{{in1, produce}, {produce, out1}, {in2, consume}, {consume, out2}} {
		if err := b.Connect(c[0], c[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Require(consume, produce, "n", "count"); err != nil {
		t.Fatal(err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	sys, err := pipe.NewSystem(g, pipe.Options{})
	if err != nil {
		t.Fatal(err)
	}

	view := View(sys)
	if len(view.Requirements) != 1 {
		t.Fatalf("expected 1 requirement edge, got %d", len(view.Requirements))
	}
	if view.Requirements[0].Attribute != "n" || view.Requirements[0].Argument != "count" {
		t.Errorf("unexpected requirement: %+v", view.Requirements[0])
	}
}
