package registry

import (
	"testing"

	"github.com/gospdx/gospdx/spdx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFile(id string) *spdx.File {
	f := &spdx.File{FileName: id + ".c"}
	f.ID = id
	return f
}

func TestRegisterResolve(t *testing.T) {
	r := New()
	f := newFile("SPDXRef-File")

	_, ok := r.Resolve("SPDXRef-File")
	assert.False(t, ok)

	assert.False(t, r.Register("SPDXRef-File", f))
	got, ok := r.Resolve("SPDXRef-File")
	require.True(t, ok)
	assert.Same(t, f, got)
}

func TestLastWriteWins(t *testing.T) {
	r := New()
	first, second := newFile("SPDXRef-A"), newFile("SPDXRef-A")
	r.Register("SPDXRef-A", first)
	r.Register("SPDXRef-B", newFile("SPDXRef-B"))
	assert.True(t, r.Register("SPDXRef-A", second))

	got, _ := r.Resolve("SPDXRef-A")
	assert.Same(t, second, got)

	elems := r.Elements()
	require.Len(t, elems, 2)
	assert.Same(t, second, elems[0], "replacement keeps the first position")
	assert.Equal(t, "SPDXRef-B", elems[1].ElementID())
}

func TestNamespacesAreIndependent(t *testing.T) {
	r := New()
	cs := &spdx.Checksum{Algorithm: spdx.ChecksumSHA1, Value: "abc"}
	r.RegisterNode("SPDXRef-A", cs)

	_, ok := r.Resolve("SPDXRef-A")
	assert.False(t, ok)

	v, ok := r.ResolveNode("SPDXRef-A")
	require.True(t, ok)
	assert.Same(t, cs, v)
	assert.Equal(t, 0, r.Len())
}

func TestReset(t *testing.T) {
	r := New()
	r.Register("SPDXRef-A", newFile("SPDXRef-A"))
	r.RegisterNode("_:n1", "x")
	r.Reset()

	_, ok := r.Resolve("SPDXRef-A")
	assert.False(t, ok)
	_, ok = r.ResolveNode("_:n1")
	assert.False(t, ok)
	assert.Empty(t, r.Elements())
}
