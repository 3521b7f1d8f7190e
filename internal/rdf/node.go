// Package rdf decodes RDF/XML into a generic node tree.
//
// The tree keeps the XML shape: every element becomes a Node with its
// resolved namespace, local name, attributes, children and character data.
// Interpreting the tree as SPDX is left to the reader.
package rdf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Namespaces used by SPDX RDF documents.
const (
	NSRDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NSRDFS = "http://www.w3.org/2000/01/rdf-schema#"
	NSSPDX = "http://spdx.org/rdf/terms#"
	NSDOAP = "http://usefulinc.com/ns/doap#"
	NSPtr  = "http://www.w3.org/2009/pointers#"
	NSXML  = "http://www.w3.org/XML/1998/namespace"

	// LicensesBase prefixes the URI of every listed license.
	LicensesBase = "http://spdx.org/licenses/"
)

// Node is one XML element of an RDF document.
type Node struct {
	Space    string
	Local    string
	Attrs    []xml.Attr
	Children []*Node
	Text     string
	Parent   *Node
}

// Decode reads an XML document and returns its root element.
func Decode(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	var root, cur *Node
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding RDF/XML: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{
				Space:  t.Name.Space,
				Local:  t.Name.Local,
				Attrs:  attrsWithoutNamespaceDecls(t.Attr),
				Parent: cur,
			}
			if cur == nil {
				if root != nil {
					return nil, errors.New("decoding RDF/XML: multiple root elements")
				}
				root = n
			} else {
				cur.Children = append(cur.Children, n)
			}
			cur = n
			text.Reset()
		case xml.CharData:
			if cur != nil && len(cur.Children) == 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if len(cur.Children) == 0 {
				cur.Text = text.String()
			}
			text.Reset()
			cur = cur.Parent
		}
	}
	if root == nil {
		return nil, errors.New("decoding RDF/XML: empty document")
	}
	return root, nil
}

func attrsWithoutNamespaceDecls(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Is reports whether the node has the given namespace and local name.
func (n *Node) Is(space, local string) bool {
	return n.Space == space && n.Local == local
}

// Value returns the node's character data with surrounding whitespace
// removed.
func (n *Node) Value() string {
	return strings.TrimSpace(n.Text)
}

// IsEmpty reports whether the node has neither child elements nor
// non-whitespace text.
func (n *Node) IsEmpty() bool {
	return len(n.Children) == 0 && n.Value() == ""
}

// Child returns the first child with the given local name, or nil.
func (n *Node) Child(local string) *Node {
	for _, c := range n.Children {
		if c.Local == local {
			return c
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Name returns the node's qualified name for messages, e.g. "spdx:Package".
func (n *Node) Name() string {
	switch n.Space {
	case NSSPDX:
		return "spdx:" + n.Local
	case NSRDF:
		return "rdf:" + n.Local
	case NSRDFS:
		return "rdfs:" + n.Local
	case NSDOAP:
		return "doap:" + n.Local
	case NSPtr:
		return "ptr:" + n.Local
	}
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}
