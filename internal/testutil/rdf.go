package testutil

import "strings"

// TestNamespace is the document namespace used by SpdxDocument.
const TestNamespace = "http://spdx.org/spdxdocs/test-1"

const rdfOpen = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
    xmlns:spdx="http://spdx.org/rdf/terms#"
    xmlns:doap="http://usefulinc.com/ns/doap#"
    xmlns:ptr="http://www.w3.org/2009/pointers#">
`

// RDFDocument wraps body in an rdf:RDF element declaring the SPDX
// namespaces.
func RDFDocument(body ...string) string {
	return rdfOpen + strings.Join(body, "\n") + "\n</rdf:RDF>\n"
}

// SpdxDocument returns an RDF document whose SpdxDocument element has the
// identifier SPDXRef-DOCUMENT in TestNamespace, the given properties, and
// the given extra top-level elements.
func SpdxDocument(props string, extra ...string) string {
	doc := `<spdx:SpdxDocument rdf:about="` + TestNamespace + `#SPDXRef-DOCUMENT">
  <spdx:specVersion>SPDX-2.3</spdx:specVersion>
  <spdx:name>test-document</spdx:name>
  <spdx:dataLicense rdf:resource="http://spdx.org/licenses/CC0-1.0"/>
` + props + `
</spdx:SpdxDocument>`
	return RDFDocument(append([]string{doc}, extra...)...)
}

// Ref returns an rdf:resource URI for id in TestNamespace.
func Ref(id string) string {
	return TestNamespace + "#" + id
}
