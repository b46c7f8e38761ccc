package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Cube")

	assert.Equal(t, "Cube", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.BindGroupLayout())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())
}

func TestReleaseWithoutGPUResources(t *testing.T) {
	p := NewBindGroupProvider("Frame", WithBuffer(0, nil))
	p.SetIndexCount(36)

	assert.NotPanics(t, p.Release)
	assert.Zero(t, p.IndexCount())
	assert.Nil(t, p.Buffer(0))
}
