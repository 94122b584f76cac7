package pipe

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lyteflow/lyteflow/errors"
)

// Handle is an opaque reference to an element in a graph's arena.
// Handles are assigned in creation order, which is also the scheduler's
// tie-break order.
type Handle int

// node is an arena slot: the element plus its wiring.
type node struct {
	name    string
	elem    Element
	preds   []Handle // ordered, reciprocal of succs
	succs   []Handle
	inlet   bool
	outlet  bool
	convert bool
}

// requirement binds an exported attribute of the source element to a
// transform argument of the target, creating an ordering edge that is not a
// data edge.
type requirement struct {
	Source    Handle
	Target    Handle
	Attribute string
	Argument  string
}

// InletSpec configures an inlet declaration.
type InletSpec struct {
	// Name identifies the inlet; generated when empty.
	Name string
	// Convert enables conversion of raw slice input to the tabular Frame
	// representation before forwarding.
	Convert bool
}

// Builder assembles a pipe graph. It is not safe for concurrent use;
// Build freezes the result into an immutable Graph.
type Builder struct {
	nodes   []node
	reqs    []requirement
	inlets  []Handle
	outlets []Handle
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddInlet declares a data inlet. Inlet order is the order raw inputs are
// bound in Flow.
func (b *Builder) AddInlet(spec InletSpec) Handle {
	name := spec.Name
	if name == "" {
		name = generateName("inlet")
	}
	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, node{
		name:    name,
		elem:    &inletElement{name: name, convert: spec.Convert},
		inlet:   true,
		convert: spec.Convert,
	})
	b.inlets = append(b.inlets, h)
	return h
}

// AddOutlet declares a data outlet. Outlet order is the order Flow returns
// results.
func (b *Builder) AddOutlet(name string) Handle {
	if name == "" {
		name = generateName("outlet")
	}
	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, node{
		name:   name,
		elem:   &outletElement{name: name},
		outlet: true,
	})
	b.outlets = append(b.outlets, h)
	return h
}

// Add places an element in the arena and returns its handle.
func (b *Builder) Add(e Element) Handle {
	name := e.Name()
	if name == "" {
		name = generateName("element")
	}
	h := Handle(len(b.nodes))
	b.nodes = append(b.nodes, node{name: name, elem: e})
	return h
}

// Connect wires a directed data edge from one element to another. The
// successor's predecessor list keeps connection order, which is the order
// its payloads are gathered at execution time.
func (b *Builder) Connect(from, to Handle) error {
	if err := b.check(from); err != nil {
		return err
	}
	if err := b.check(to); err != nil {
		return err
	}
	if from == to {
		return errors.Structuref("element %q cannot connect to itself", b.nodes[from].name)
	}
	if b.nodes[to].inlet {
		return errors.Structuref("cannot connect into inlet %q", b.nodes[to].name)
	}
	if b.nodes[from].outlet {
		return errors.Structuref("cannot connect out of outlet %q", b.nodes[from].name)
	}
	if b.nodes[to].outlet && len(b.nodes[to].preds) > 0 {
		return errors.Structuref("outlet %q already has a predecessor", b.nodes[to].name)
	}
	b.nodes[to].preds = append(b.nodes[to].preds, from)
	b.nodes[from].succs = append(b.nodes[from].succs, to)
	return nil
}

// Require declares that before target executes, the engine must read the
// named attribute exported by source and pass it to target's transform under
// the given argument name.
func (b *Builder) Require(target, source Handle, attribute, argument string) error {
	if err := b.check(target); err != nil {
		return err
	}
	if err := b.check(source); err != nil {
		return err
	}
	if target == source {
		return errors.Structuref("element %q cannot require itself", b.nodes[target].name)
	}
	if attribute == "" || argument == "" {
		return errors.Structure("requirement attribute and argument must be non-empty")
	}
	b.reqs = append(b.reqs, requirement{
		Source:    source,
		Target:    target,
		Attribute: attribute,
		Argument:  argument,
	})
	return nil
}

// Build validates the assembled structure and derives the execution order.
// The returned Graph is immutable; the Builder must not be reused after a
// successful Build.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		nodes:   b.nodes,
		reqs:    b.reqs,
		inlets:  b.inlets,
		outlets: b.outlets,
	}
	closure, err := g.validate()
	if err != nil {
		return nil, err
	}
	order, err := g.schedule(closure)
	if err != nil {
		return nil, err
	}
	g.order = order
	return g, nil
}

func (b *Builder) check(h Handle) error {
	if h < 0 || int(h) >= len(b.nodes) {
		return errors.Structuref("unknown element handle %d", h)
	}
	return nil
}

func generateName(kind string) string {
	return fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8])
}

// Graph is a validated, immutable pipe graph. It is safe to share across
// concurrent flow passes; per-pass state lives outside it.
type Graph struct {
	nodes   []node
	reqs    []requirement
	inlets  []Handle
	outlets []Handle
	order   []Handle
}

// NodeInfo describes one element for external consumers (e.g. a renderer).
type NodeInfo struct {
	Handle Handle `json:"handle"`
	Name   string `json:"name"`
	Kind   string `json:"kind"` // "inlet", "outlet" or "element"
}

// EdgeInfo describes one directed data edge.
type EdgeInfo struct {
	From Handle `json:"from"`
	To   Handle `json:"to"`
}

// RequirementInfo describes one requirement edge.
type RequirementInfo struct {
	Source    Handle `json:"source"`
	Target    Handle `json:"target"`
	Attribute string `json:"attribute"`
	Argument  string `json:"argument"`
}

// Nodes returns a description of every element in the arena.
func (g *Graph) Nodes() []NodeInfo {
	infos := make([]NodeInfo, len(g.nodes))
	for i, n := range g.nodes {
		kind := "element"
		switch {
		case n.inlet:
			kind = "inlet"
		case n.outlet:
			kind = "outlet"
		}
		infos[i] = NodeInfo{Handle: Handle(i), Name: n.name, Kind: kind}
	}
	return infos
}

// DataEdges returns every directed data edge.
func (g *Graph) DataEdges() []EdgeInfo {
	var edges []EdgeInfo
	for to, n := range g.nodes {
		for _, from := range n.preds {
			edges = append(edges, EdgeInfo{From: from, To: Handle(to)})
		}
	}
	return edges
}

// RequirementEdges returns every requirement edge.
func (g *Graph) RequirementEdges() []RequirementInfo {
	infos := make([]RequirementInfo, len(g.reqs))
	for i, r := range g.reqs {
		infos[i] = RequirementInfo(r)
	}
	return infos
}

// Inlets returns the declared inlet handles in declaration order.
func (g *Graph) Inlets() []Handle {
	return append([]Handle(nil), g.inlets...)
}

// Outlets returns the declared outlet handles in declaration order.
func (g *Graph) Outlets() []Handle {
	return append([]Handle(nil), g.outlets...)
}

// Order returns the scheduled execution order over the reachable elements.
func (g *Graph) Order() []Handle {
	return append([]Handle(nil), g.order...)
}

// NameOf returns the element name for a handle, or "" for an unknown handle.
func (g *Graph) NameOf(h Handle) string {
	if h < 0 || int(h) >= len(g.nodes) {
		return ""
	}
	return g.nodes[h].name
}

func (g *Graph) names(handles []Handle) []string {
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = g.nodes[h].name
	}
	return out
}
