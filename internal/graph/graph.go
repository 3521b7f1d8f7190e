// Package graph builds a directed graph over the elements of an SPDX
// document from its relationships, and analyzes it for cycles and
// dependency order.
package graph

import (
	"slices"

	"github.com/gospdx/gospdx/spdx"
)

// Graph is a directed graph of element identifiers. An edge from a to b
// records a relationship owned by a whose target is b.
type Graph struct {
	order []string
	nodes map[string]struct{}
	edges map[string][]string
}

// New returns a graph with no nodes or edges.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

// FromDocument returns the graph of doc's relationships. When types are
// given, only relationships of those types become edges. Every package,
// file and snippet is a node even without edges. Relationships to NONE and
// NOASSERTION are not edges.
func FromDocument(doc *spdx.Document, types ...spdx.RelationshipType) *Graph {
	g := New()
	g.AddNode(doc.ID)
	for _, p := range doc.Packages {
		g.AddNode(p.ID)
	}
	for _, f := range doc.Files {
		g.AddNode(f.ID)
	}
	for _, s := range doc.Snippets {
		g.AddNode(s.ID)
	}

	add := func(e *spdx.Element) {
		for _, r := range e.Relationships {
			if len(types) > 0 && !slices.Contains(types, r.Type) {
				continue
			}
			if r.Related == nil || r.Related == spdx.NoneElement || r.Related == spdx.NoAssertionElement {
				continue
			}
			g.AddEdge(e.ID, r.Related.ElementID())
		}
	}
	add(&doc.Element)
	for _, p := range doc.Packages {
		add(&p.Element)
	}
	for _, f := range doc.Files {
		add(&f.Element)
	}
	for _, s := range doc.Snippets {
		add(&s.Element)
	}
	return g
}

// AddNode registers an element. Duplicate calls are no-ops.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
}

// AddEdge records an edge from "from" to "to". Missing nodes are created
// implicitly. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Targets returns the nodes id has edges to.
func (g *Graph) Targets(id string) []string {
	return g.edges[id]
}

// HasNode reports whether id exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns the node ids in the order they were added.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}
