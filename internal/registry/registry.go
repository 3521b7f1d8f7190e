// Package registry tracks the elements and nodes seen while reading one
// document.
//
// A Registry has two independent namespaces: element identifiers
// ("SPDXRef-..."), which are stable and name document elements, and node
// keys, which name RDF nodes (blank node labels or URIs) and exist only to
// share one parsed object between repeated references. A Registry belongs
// to a single read and is never shared.
package registry

import "github.com/gospdx/gospdx/spdx"

// Registry maps identifiers to parsed elements and node keys to parsed
// objects.
type Registry struct {
	elements map[string]spdx.SpdxElement
	order    []string
	nodes    map[string]any
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		elements: make(map[string]spdx.SpdxElement),
		nodes:    make(map[string]any),
	}
}

// Register records e under id. A second registration of the same id
// replaces the first but keeps its original position in Elements.
// It reports whether id was already registered.
func (r *Registry) Register(id string, e spdx.SpdxElement) (replaced bool) {
	if _, replaced = r.elements[id]; !replaced {
		r.order = append(r.order, id)
	}
	r.elements[id] = e
	return replaced
}

// Resolve returns the element registered under id.
func (r *Registry) Resolve(id string) (spdx.SpdxElement, bool) {
	e, ok := r.elements[id]
	return e, ok
}

// RegisterNode records v under a node key.
func (r *Registry) RegisterNode(key string, v any) {
	r.nodes[key] = v
}

// ResolveNode returns the object registered under a node key.
func (r *Registry) ResolveNode(key string) (any, bool) {
	v, ok := r.nodes[key]
	return v, ok
}

// Elements returns the registered elements in first-registration order.
func (r *Registry) Elements() []spdx.SpdxElement {
	out := make([]spdx.SpdxElement, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.elements[id])
	}
	return out
}

// Len returns the number of registered element identifiers.
func (r *Registry) Len() int {
	return len(r.elements)
}

// Reset empties both namespaces.
func (r *Registry) Reset() {
	clear(r.elements)
	clear(r.nodes)
	r.order = r.order[:0]
}
