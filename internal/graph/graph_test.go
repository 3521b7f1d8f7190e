package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gospdx/gospdx/spdx"
)

func TestAddEdge(t *testing.T) {
	g := New()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")

	assert.True(t, g.HasNode("a"))
	assert.True(t, g.HasNode("b"))
	assert.False(t, g.HasNode("d"))
	assert.Equal(t, []string{"b", "c"}, g.Targets("a"))
	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes())
	assert.Equal(t, 3, g.Len())
}

func TestFindCycles(t *testing.T) {
	tests := []struct {
		name  string
		edges [][2]string
		want  [][]string
	}{
		{name: "empty"},
		{name: "chain", edges: [][2]string{{"a", "b"}, {"b", "c"}}},
		{name: "self loop", edges: [][2]string{{"a", "a"}}, want: [][]string{{"a"}}},
		{
			name:  "two node cycle",
			edges: [][2]string{{"a", "b"}, {"b", "a"}},
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "cycle behind a chain",
			edges: [][2]string{{"x", "a"}, {"a", "b"}, {"b", "c"}, {"c", "a"}},
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "two cycles",
			edges: [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}},
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}
			got := g.FindCycles()
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.ElementsMatch(t, tt.want[i], got[i])
			}
			assert.Equal(t, len(tt.want) > 0, g.HasCycles())
		})
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := New()
	g.AddNode("lone")
	g.AddEdge("app", "lib")
	g.AddEdge("lib", "base")
	g.AddEdge("app", "base")

	order, cyclic := g.TopologicalOrder()
	assert.Empty(t, cyclic)
	require.Len(t, order, 4)
	assertBefore(t, order, "app", "lib")
	assertBefore(t, order, "lib", "base")

	deps, _ := g.DependencyOrder()
	assertBefore(t, deps, "base", "lib")
	assertBefore(t, deps, "lib", "app")
}

func TestTopologicalOrderCyclic(t *testing.T) {
	g := New()
	g.AddEdge("root", "a")
	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("b", "tail")

	order, cyclic := g.TopologicalOrder()
	assert.Equal(t, []string{"root"}, order)
	assert.Equal(t, []string{"a", "b", "tail"}, cyclic)
}

func assertBefore(t *testing.T, order []string, first, second string) {
	t.Helper()
	i, j := -1, -1
	for k, id := range order {
		switch id {
		case first:
			i = k
		case second:
			j = k
		}
	}
	require.NotEqual(t, -1, i, "%s missing from %v", first, order)
	require.NotEqual(t, -1, j, "%s missing from %v", second, order)
	assert.Less(t, i, j, "%s should precede %s in %v", first, second, order)
}

func file(id string) *spdx.File {
	f := &spdx.File{FileName: id}
	f.ID = id
	return f
}

func TestFromDocument(t *testing.T) {
	a, b, c := file("SPDXRef-A"), file("SPDXRef-B"), file("SPDXRef-C")
	pkg := &spdx.Package{DownloadLocation: "NONE"}
	pkg.ID = "SPDXRef-P"

	doc := &spdx.Document{Packages: []*spdx.Package{pkg}, Files: []*spdx.File{a, b, c}}
	doc.ID = "SPDXRef-DOCUMENT"
	doc.Relationships = []*spdx.Relationship{{Type: spdx.RelationshipDescribes, Related: pkg}}
	pkg.Relationships = []*spdx.Relationship{
		{Type: spdx.RelationshipContains, Related: a},
		{Type: spdx.RelationshipContains, Related: b},
	}
	a.Relationships = []*spdx.Relationship{
		{Type: spdx.RelationshipDependsOn, Related: b},
		{Type: spdx.RelationshipOther, Related: spdx.NoAssertionElement},
	}
	b.Relationships = []*spdx.Relationship{{Type: spdx.RelationshipDependsOn, Related: a}}

	t.Run("all relationships", func(t *testing.T) {
		g := FromDocument(doc)
		assert.Equal(t, []string{"SPDXRef-DOCUMENT", "SPDXRef-P", "SPDXRef-A", "SPDXRef-B", "SPDXRef-C"}, g.Nodes())
		assert.Equal(t, []string{"SPDXRef-A", "SPDXRef-B"}, g.Targets("SPDXRef-P"))
		assert.Equal(t, []string{"SPDXRef-B"}, g.Targets("SPDXRef-A"))
		cycles := g.FindCycles()
		require.Len(t, cycles, 1)
		assert.ElementsMatch(t, []string{"SPDXRef-A", "SPDXRef-B"}, cycles[0])
	})

	t.Run("filtered", func(t *testing.T) {
		g := FromDocument(doc, spdx.RelationshipContains)
		assert.False(t, g.HasCycles())
		assert.Empty(t, g.Targets("SPDXRef-A"))
		order, cyclic := g.TopologicalOrder()
		assert.Empty(t, cyclic)
		assertBefore(t, order, "SPDXRef-P", "SPDXRef-A")
	})
}
