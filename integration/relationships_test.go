package integration

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gospdx/gospdx"
	"github.com/gospdx/gospdx/internal/graph"
	"github.com/gospdx/gospdx/spdx"
)

func TestDescribedElements(t *testing.T) {
	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			doc := getDocument(t, format)
			described := doc.DescribedElements()
			require.Len(t, described, 1)
			assert.Same(t, doc.Packages[0], described[0])
		})
	}
}

// TestRelationshipTargetsShared checks that relationship targets are the
// elements the document lists, not copies or stubs.
func TestRelationshipTargetsShared(t *testing.T) {
	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			doc := getDocument(t, format)
			main := getFile(t, doc, "SPDXRef-Main")
			util := getFile(t, doc, "SPDXRef-Util")

			var contained []spdx.SpdxElement
			for _, r := range doc.Packages[0].Relationships {
				if r.Type == spdx.RelationshipContains {
					contained = append(contained, r.Related)
				}
			}
			require.Len(t, contained, 1)
			assert.Same(t, main, contained[0])

			require.Len(t, main.Relationships, 1)
			assert.Same(t, util, main.Relationships[0].Related)

			require.Len(t, util.Relationships, 1)
			assert.Equal(t, spdx.RelationshipOther, util.Relationships[0].Type)
			assert.Equal(t, spdx.NoAssertionElement, util.Relationships[0].Related)
			assert.Equal(t, "provenance unknown", util.Relationships[0].Comment)
		})
	}
}

func TestDependencyOrder(t *testing.T) {
	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			g := graph.FromDocument(getDocument(t, format))
			assert.False(t, g.HasCycles())

			order, cyclic := g.DependencyOrder()
			assert.Empty(t, cyclic)
			assert.Len(t, order, g.Len())

			pos := func(id string) int { return slices.Index(order, id) }
			assert.Less(t, pos("SPDXRef-Util"), pos("SPDXRef-Main"))
			assert.Less(t, pos("SPDXRef-Main"), pos("SPDXRef-Package"))
			assert.Less(t, pos("SPDXRef-Package"), pos("SPDXRef-DOCUMENT"))
		})
	}
}

func TestAnnotations(t *testing.T) {
	// Tag-value fixture carries no annotation.
	for _, format := range []gospdx.Format{gospdx.FormatRDF, gospdx.FormatJSON, gospdx.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			doc := getDocument(t, format)
			require.Len(t, doc.Annotations, 1)
			a := doc.Annotations[0]
			assert.Equal(t, "Person: Jane Doe", a.Annotator)
			assert.Equal(t, spdx.AnnotationReview, a.Type)
			assert.Equal(t, "Checked licensing.", a.Comment)
		})
	}
}
