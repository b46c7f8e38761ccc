package material

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterial_QueueFromAlpha(t *testing.T) {
	s := shader.NewShader(shader.NameUnlitColor)

	opaque := NewMaterial(s)
	assert.Equal(t, RenderQueueGeometry, opaque.RenderQueue())
	assert.Equal(t, shader.NameUnlitColor, opaque.Name())

	glass := NewMaterial(s, WithBaseColor(common.Color{1, 1, 1, 0.5}))
	assert.Equal(t, RenderQueueTransparent, glass.RenderQueue())

	overlay := NewMaterial(s, WithRenderQueue(9000))
	assert.Equal(t, RenderQueueMax, overlay.RenderQueue())

	assert.NotEqual(t, opaque.ID(), glass.ID())
}

func TestNewErrorMaterial(t *testing.T) {
	m, err := NewErrorMaterial(shader.NewBuiltinRegistry())
	require.NoError(t, err)

	assert.Equal(t, shader.NameInternalError, m.Shader().Name())
	assert.True(t, m.HideFlags().Has(HideAndDontSave))
	assert.True(t, m.HideFlags().Has(DontSave))
	assert.Equal(t, common.ColorMagenta, m.BaseColor())
}

func TestNewErrorMaterial_Missing(t *testing.T) {
	m, err := NewErrorMaterial(shader.NewRegistry())
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrMissingFallbackShader))
	assert.Contains(t, err.Error(), shader.NameInternalError)

	_, err = NewErrorMaterial(nil)
	assert.ErrorIs(t, err, ErrMissingFallbackShader)
}

func TestPropertyBlock(t *testing.T) {
	m := NewMaterial(nil, WithBaseColor(common.ColorWhite))

	var nilBlock *PropertyBlock
	assert.True(t, nilBlock.IsEmpty())
	assert.Equal(t, common.ColorWhite, ResolveColor(m, nilBlock))

	b := NewPropertyBlock()
	assert.True(t, b.IsEmpty())
	b.SetColor(PropertyColor, common.Color{0.2, 0.4, 0.6, 1})
	assert.False(t, b.IsEmpty())
	assert.Equal(t, common.Color{0.2, 0.4, 0.6, 1}, ResolveColor(m, b))

	b.Clear()
	_, ok := b.Color(PropertyColor)
	assert.False(t, ok)
}

func TestGPUInstance_Size(t *testing.T) {
	g := GPUInstance{LightIndices: [MaxLightsPerObject]float32{0, 1, -1, -1, -1, -1, -1, -1}}
	assert.Equal(t, 112, g.Size())
	assert.Len(t, g.Marshal(), 112)
	assert.NotEmpty(t, GPUInstanceSource)
}
