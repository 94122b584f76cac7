package pipe

import "github.com/lyteflow/lyteflow/errors"

// validate checks the assembled structure and returns the closure of
// elements reachable from the inlets. It is read-only and idempotent:
// repeated calls over an unchanged graph produce identical results.
func (g *Graph) validate() ([]Handle, error) {
	if len(g.inlets) == 0 {
		return nil, errors.Structure("graph has no inlets")
	}
	if len(g.outlets) == 0 {
		return nil, errors.Structure("graph has no outlets")
	}

	seen := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		if seen[n.name] {
			return nil, errors.Structuref("duplicate element name %q", n.name).
				WithDetail("element", n.name)
		}
		seen[n.name] = true
	}

	closure := g.closure()
	inClosure := make([]bool, len(g.nodes))
	for _, h := range closure {
		inClosure[h] = true
	}

	for _, h := range g.outlets {
		if !inClosure[h] {
			return nil, errors.Structuref("outlet %q is not reachable from any inlet", g.nodes[h].name).
				WithDetail("element", g.nodes[h].name)
		}
	}

	for _, h := range closure {
		n := g.nodes[h]
		if !n.inlet && len(n.preds) == 0 {
			return nil, errors.Structuref("element %q has no predecessors", n.name).
				WithDetail("element", n.name)
		}
		if !n.outlet && len(n.succs) == 0 {
			return nil, errors.Structuref("element %q has no successors and is not an outlet", n.name).
				WithDetail("element", n.name)
		}
		// A predecessor outside the closure would never execute, leaving the
		// element waiting forever.
		for _, p := range n.preds {
			if !inClosure[p] {
				return nil, errors.Structuref("element %q feeds %q but is not reachable from any inlet",
					g.nodes[p].name, n.name).
					WithDetail("element", g.nodes[p].name)
			}
		}
	}

	// A requirement source outside the closure would never execute, so its
	// attribute could never be read.
	for _, r := range g.reqs {
		if !inClosure[r.Source] {
			return nil, errors.Structuref("requirement source %q is not reachable from any inlet", g.nodes[r.Source].name).
				WithDetail("element", g.nodes[r.Source].name)
		}
		if !inClosure[r.Target] {
			return nil, errors.Structuref("requirement target %q is not reachable from any inlet", g.nodes[r.Target].name).
				WithDetail("element", g.nodes[r.Target].name)
		}
	}

	return closure, nil
}

// closure walks successor edges from every inlet and returns the reachable
// handles in first-visit order.
func (g *Graph) closure() []Handle {
	visited := make([]bool, len(g.nodes))
	var out []Handle

	var walk func(h Handle)
	walk = func(h Handle) {
		if visited[h] {
			return
		}
		visited[h] = true
		out = append(out, h)
		for _, s := range g.nodes[h].succs {
			walk(s)
		}
	}

	for _, h := range g.inlets {
		walk(h)
	}
	return out
}
