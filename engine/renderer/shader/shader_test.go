package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShader(t *testing.T) {
	s := NewShader("Custom", WithPassTags(TagSRPDefaultUnlit, TagAlways), WithSource("x"))

	assert.Equal(t, "Custom", s.Name())
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.True(t, s.HasPass(TagAlways))
	assert.False(t, s.HasPass(TagForwardBase))
	assert.False(t, s.SupportsInstancing())

	tags := s.PassTags()
	tags[0] = TagVertex
	assert.True(t, s.HasPass(TagSRPDefaultUnlit))
}

func TestBuiltinRegistry(t *testing.T) {
	r := NewBuiltinRegistry()

	for _, name := range []string{NameUnlitColor, NameLitDiffuse, NameLegacyDiffuse, NameSkybox, NameInternalError} {
		s, ok := r.Find(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, s.Source(), name)
	}

	lit, _ := r.Find(NameLitDiffuse)
	assert.Contains(t, lit.Source(), "struct VisibleLights")
	legacy, _ := r.Find(NameLegacyDiffuse)
	assert.False(t, legacy.HasPass(TagSRPDefaultUnlit))
	assert.Len(t, r.Names(), 5)
}

func TestRegistry_Remove(t *testing.T) {
	r := NewBuiltinRegistry()
	r.Remove(NameInternalError)

	s, ok := r.Find(NameInternalError)
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestLegacyPassTags_Order(t *testing.T) {
	assert.Equal(t, []TagID{TagForwardBase, TagPrepassBase, TagAlways, TagVertex, TagVertexLMRGBM, TagVertexLM}, LegacyPassTags())
}
