package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestGPUVisibleLights_Layout(t *testing.T) {
	var g GPUVisibleLights
	assert.Equal(t, 1024, g.Size())

	assert.True(t, g.SetArray(PropertyVisibleLightAttenuations, []mgl32.Vec4{{0, 0, 0, 1}, {2, 0, 0, 1}}))
	assert.False(t, g.SetArray("_Unknown", nil))

	buf := g.Marshal()
	assert.Len(t, buf, 1024)

	// attenuations start at offset 512; slot 1 x component at 512 + 16
	x := math.Float32frombits(binary.LittleEndian.Uint32(buf[528:532]))
	assert.Equal(t, float32(2), x)
	assert.NotEmpty(t, GPUVisibleLightsSource)
}

func TestGPUVisibleLights_SetArrayZeroesMissing(t *testing.T) {
	var g GPUVisibleLights
	g.SetArray(PropertyVisibleLightColors, []mgl32.Vec4{{1, 1, 1, 1}, {1, 1, 1, 1}})
	g.SetArray(PropertyVisibleLightColors, []mgl32.Vec4{{0.5, 0, 0, 1}})

	assert.Equal(t, [4]float32{0.5, 0, 0, 1}, g.Colors[0])
	assert.Equal(t, [4]float32{}, g.Colors[1])
}

func TestLight_ToVisibleLight(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(1, 2, 3),
		WithDirection(0, 0, 1),
		WithIntensity(2),
		WithRange(7),
		WithSpotAngle(40),
	)

	v := l.ToVisibleLight()
	assert.Equal(t, LightTypeSpot, v.Type)
	assert.Equal(t, float32(2), v.FinalColor[0])
	assert.Equal(t, float32(1), v.FinalColor[3])
	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, v.LocalToWorld.Col(3))
	assert.Equal(t, float32(7), v.Range)
	assert.Equal(t, float32(40), v.SpotAngle)
	assert.Equal(t, float32(7), l.Bounds().Radius)
}

func TestLight_DirectionOpposite(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(0, 0, -1))
	f := l.Forward()
	assert.InDelta(t, -1, f.Z(), 1e-5)
	assert.Equal(t, "Directional", l.Type().String())
	assert.Equal(t, float32(0), l.Bounds().Radius)
}
