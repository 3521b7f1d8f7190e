package rdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
    xmlns:spdx="http://spdx.org/rdf/terms#"
    xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
  <spdx:SpdxDocument rdf:about="http://example.org/doc#SPDXRef-DOCUMENT">
    <spdx:name xml:lang="en">  sample  </spdx:name>
    <rdfs:comment>a comment</rdfs:comment>
    <spdx:dataLicense rdf:resource="http://spdx.org/licenses/CC0-1.0"/>
    <spdx:relationship rdf:nodeID="r1"/>
  </spdx:SpdxDocument>
  <spdx:Relationship rdf:nodeID="r1">
    <spdx:relationshipType rdf:resource="http://spdx.org/rdf/terms#relationshipType_describes"/>
  </spdx:Relationship>
</rdf:RDF>`

func TestDecode(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	assert.True(t, root.Is(NSRDF, "RDF"))
	require.Len(t, root.Children, 2)

	doc := root.Children[0]
	assert.True(t, doc.Is(NSSPDX, "SpdxDocument"))
	assert.Equal(t, "spdx:SpdxDocument", doc.Name())
	assert.Same(t, root, doc.Parent)

	name := doc.Child("name")
	require.NotNil(t, name)
	assert.Equal(t, "sample", name.Value())
	assert.Equal(t, "en", Attributes(name).Language)

	comment := doc.Child("comment")
	require.NotNil(t, comment)
	assert.Equal(t, NSRDFS, comment.Space)

	assert.Nil(t, doc.Child("missing"))
	assert.True(t, doc.Child("dataLicense").IsEmpty())
	assert.False(t, doc.IsEmpty())
}

func TestAttributes(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	doc := Attributes(root.Children[0])
	assert.Equal(t, "http://example.org/doc#SPDXRef-DOCUMENT", doc.About)
	assert.Equal(t, "SPDXRef-DOCUMENT", doc.Identifier())
	assert.Equal(t, doc.About, doc.Key())

	rel := Attributes(root.Children[1])
	assert.Equal(t, "r1", rel.NodeID)
	assert.Equal(t, "_:r1", rel.Key())
	assert.Empty(t, rel.Identifier())

	lic := Attributes(root.Children[0].Child("dataLicense"))
	assert.Equal(t, "http://spdx.org/licenses/CC0-1.0", lic.Resource)
}

func TestWalk(t *testing.T) {
	root, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	var names []string
	root.Walk(func(n *Node) { names = append(names, n.Local) })
	assert.Equal(t, []string{
		"RDF", "SpdxDocument", "name", "comment", "dataLicense", "relationship",
		"Relationship", "relationshipType",
	}, names)
}

func TestSplitURI(t *testing.T) {
	ns, frag := SplitURI("http://example.org/doc#SPDXRef-1")
	assert.Equal(t, "http://example.org/doc", ns)
	assert.Equal(t, "SPDXRef-1", frag)

	ns, frag = SplitURI("#SPDXRef-1")
	assert.Empty(t, ns)
	assert.Equal(t, "SPDXRef-1", frag)

	ns, frag = SplitURI("SPDXRef-1")
	assert.Empty(t, ns)
	assert.Equal(t, "SPDXRef-1", frag)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("<a><b></a>"))
	assert.Error(t, err)
}
