package graph

import "slices"

// FindCycles returns the strongly connected components that form cycles,
// found via Tarjan's algorithm: components with more than one node, and
// single nodes with an edge to themselves. Nodes are visited in insertion
// order, so the result is deterministic for a given graph.
func (g *Graph) FindCycles() [][]string {
	var (
		index    int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
		sccs     [][]string
	)

	var strongConnect func(id string)
	strongConnect = func(id string) {
		indices[id] = index
		lowlinks[id] = index
		index++
		stack = append(stack, id)
		onStack[id] = true

		for _, dep := range g.edges[id] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[id] = min(lowlinks[id], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[id] = min(lowlinks[id], indices[dep])
			}
		}

		if lowlinks[id] != indices[id] {
			return
		}
		var scc []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			scc = append(scc, w)
			if w == id {
				break
			}
		}
		if len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0]) {
			slices.Reverse(scc)
			sccs = append(sccs, scc)
		}
	}

	for _, id := range g.order {
		if _, visited := indices[id]; !visited {
			strongConnect(id)
		}
	}
	return sccs
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	return len(g.FindCycles()) > 0
}
