package graph

import "slices"

// TopologicalOrder returns node ids ordered so that every edge points
// forward: an element comes before the elements it relates to (Kahn's
// algorithm). Nodes on or behind a cycle cannot be ordered and are
// returned separately, in insertion order.
func (g *Graph) TopologicalOrder() (order []string, cyclic []string) {
	inDegree := make(map[string]int, len(g.order))
	for _, id := range g.order {
		for _, dep := range g.edges[id] {
			inDegree[dep]++
		}
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		for _, dep := range g.edges[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for _, id := range g.order {
		if inDegree[id] > 0 {
			cyclic = append(cyclic, id)
		}
	}
	return order, cyclic
}

// DependencyOrder returns node ids with targets before the elements that
// relate to them, the reverse of TopologicalOrder. For DEPENDS_ON edges
// this is a build order.
func (g *Graph) DependencyOrder() (order []string, cyclic []string) {
	order, cyclic = g.TopologicalOrder()
	slices.Reverse(order)
	return order, cyclic
}
