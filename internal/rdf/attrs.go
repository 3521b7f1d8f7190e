package rdf

import "strings"

// Attrs holds the RDF attributes shared by every node.
type Attrs struct {
	About    string // rdf:about, an absolute or fragment URI
	ID       string // rdf:ID, a fragment relative to the document base
	NodeID   string // rdf:nodeID, a blank node label
	Resource string // rdf:resource, the object of a property element
	Language string // xml:lang
	Datatype string // rdf:datatype
}

// Attributes extracts the shared attributes of n. Attributes in no
// namespace are accepted as well, as some writers omit the rdf prefix.
func Attributes(n *Node) Attrs {
	var a Attrs
	for _, attr := range n.Attrs {
		if attr.Name.Space != NSRDF && attr.Name.Space != NSXML && attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "about":
			a.About = attr.Value
		case "ID":
			a.ID = attr.Value
		case "nodeID":
			a.NodeID = attr.Value
		case "resource":
			a.Resource = attr.Value
		case "lang":
			a.Language = attr.Value
		case "datatype":
			a.Datatype = attr.Value
		}
	}
	return a
}

// Identifier returns the element identifier named by about or ID, without
// its namespace: "http://ex.org/doc#SPDXRef-1" gives "SPDXRef-1".
func (a Attrs) Identifier() string {
	if a.About != "" {
		_, frag := SplitURI(a.About)
		return frag
	}
	return a.ID
}

// Key returns a string identifying the node for deduplication: the blank
// node label if there is one, otherwise the about URI or ID.
func (a Attrs) Key() string {
	switch {
	case a.NodeID != "":
		return "_:" + a.NodeID
	case a.About != "":
		return a.About
	case a.ID != "":
		return "#" + a.ID
	}
	return ""
}

// SplitURI splits a URI at its last '#' into namespace and fragment.
// A URI without '#' is returned whole as the fragment.
func SplitURI(uri string) (namespace, fragment string) {
	if i := strings.LastIndexByte(uri, '#'); i >= 0 {
		return uri[:i], uri[i+1:]
	}
	return "", uri
}
