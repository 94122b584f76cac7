package pipe

import "github.com/lyteflow/lyteflow/errors"

// schedule derives a total execution order over the closure using Kahn's
// algorithm on the union of data edges and requirement edges. Ties among
// ready elements break by handle creation order, so repeated scheduling of
// an unchanged graph is deterministic.
func (g *Graph) schedule(closure []Handle) ([]Handle, error) {
	inClosure := make([]bool, len(g.nodes))
	for _, h := range closure {
		inClosure[h] = true
	}

	inDegree := make(map[Handle]int, len(closure))
	dependents := make(map[Handle][]Handle, len(closure))

	for _, h := range closure {
		inDegree[h] = len(g.nodes[h].preds)
		for _, s := range g.nodes[h].succs {
			dependents[h] = append(dependents[h], s)
		}
	}
	for _, r := range g.reqs {
		inDegree[r.Target]++
		dependents[r.Source] = append(dependents[r.Source], r.Target)
	}

	var ready []Handle
	for _, h := range closure {
		if inDegree[h] == 0 {
			ready = append(ready, h)
		}
	}

	order := make([]Handle, 0, len(closure))
	for len(ready) > 0 {
		// Pop the lowest handle: declaration-order tie-break.
		min := 0
		for i := 1; i < len(ready); i++ {
			if ready[i] < ready[min] {
				min = i
			}
		}
		h := ready[min]
		ready = append(ready[:min], ready[min+1:]...)

		order = append(order, h)
		for _, d := range dependents[h] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(order) != len(closure) {
		return nil, errors.Cycle(g.names(g.cycleMembers(closure, order, dependents)))
	}
	return order, nil
}

// cycleMembers narrows the unscheduled remainder down to the elements that
// actually participate in a cycle by repeatedly trimming nodes with no
// remaining outgoing edge.
func (g *Graph) cycleMembers(closure, scheduled []Handle, dependents map[Handle][]Handle) []Handle {
	remaining := make(map[Handle]bool, len(closure))
	for _, h := range closure {
		remaining[h] = true
	}
	for _, h := range scheduled {
		delete(remaining, h)
	}

	for {
		trimmed := false
		for h := range remaining {
			hasOut := false
			for _, d := range dependents[h] {
				if remaining[d] {
					hasOut = true
					break
				}
			}
			if !hasOut {
				delete(remaining, h)
				trimmed = true
			}
		}
		if !trimmed {
			break
		}
	}

	var members []Handle
	for _, h := range closure {
		if remaining[h] {
			members = append(members, h)
		}
	}
	return members
}
