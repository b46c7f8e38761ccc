package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func directional(color common.Color) VisibleLight {
	return VisibleLight{Type: LightTypeDirectional, FinalColor: color, LocalToWorld: mgl32.Ident4()}
}

func point(x, y, z, r float32) VisibleLight {
	return VisibleLight{
		Type:         LightTypePoint,
		FinalColor:   common.ColorWhite,
		LocalToWorld: mgl32.Translate3D(x, y, z),
		Range:        r,
	}
}

func TestPack_Directional(t *testing.T) {
	// identity rotation faces +Z
	b := Pack([]VisibleLight{directional(common.Color{1, 0.5, 0.25, 1})})

	require.Equal(t, 1, b.Count)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, b.Colors[0])
	assert.Equal(t, mgl32.Vec4{0, 0, -1, 0}, b.DirectionsOrPositions[0])
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, b.Attenuations[0])
	assert.Equal(t, mgl32.Vec4{}, b.SpotDirections[0])
}

func TestPack_DirectionalRotated(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(0, -1, 0))
	b := Pack([]VisibleLight{l.ToVisibleLight()})

	dir := b.DirectionsOrPositions[0]
	assert.InDelta(t, 0, dir.X(), 1e-5)
	assert.InDelta(t, 1, dir.Y(), 1e-5)
	assert.InDelta(t, 0, dir.Z(), 1e-5)
	assert.Equal(t, float32(0), dir.W())
}

func TestPack_Point(t *testing.T) {
	b := Pack([]VisibleLight{point(1, 2, 3, 4)})

	assert.Equal(t, mgl32.Vec4{1, 2, 3, 1}, b.DirectionsOrPositions[0])
	assert.InDelta(t, 1.0/16.0, b.Attenuations[0].X(), 1e-7)
	assert.Equal(t, float32(0), b.Attenuations[0].Z())
	assert.Equal(t, float32(1), b.Attenuations[0].W())
}

func TestPack_PointZeroRange(t *testing.T) {
	b := Pack([]VisibleLight{point(0, 0, 0, 0)})

	att := b.Attenuations[0].X()
	assert.False(t, math.IsInf(float64(att), 0))
	assert.InDelta(t, 1e5, att, 1)
}

func TestPack_Spot60(t *testing.T) {
	l := VisibleLight{
		Type:         LightTypeSpot,
		FinalColor:   common.ColorWhite,
		LocalToWorld: mgl32.Translate3D(0, 3, 0),
		Range:        10,
		SpotAngle:    60,
	}
	b := Pack([]VisibleLight{l})

	att := b.Attenuations[0]
	outerCos := math.Cos(math.Pi / 6)
	innerCos := math.Cos(math.Atan(46.0 / 64.0 * math.Tan(math.Pi/6)))
	wantZ := 1 / (innerCos - outerCos)

	assert.InDelta(t, 0.01, att.X(), 1e-7)
	assert.Greater(t, att.Z(), float32(0))
	assert.InDelta(t, wantZ, att.Z(), 1e-3)
	assert.InDelta(t, -outerCos*wantZ, att.W(), 1e-3)
	assert.False(t, math.IsInf(float64(att.W()), 0))
	assert.Equal(t, mgl32.Vec4{0, 3, 0, 1}, b.DirectionsOrPositions[0])
	assert.Equal(t, mgl32.Vec4{0, 0, -1, 0}, b.SpotDirections[0])
}

func TestPack_SpotFloorClamp(t *testing.T) {
	// a zero cone makes innerCos == outerCos
	b := Pack([]VisibleLight{{Type: LightTypeSpot, LocalToWorld: mgl32.Ident4(), Range: 1, SpotAngle: 0}})

	assert.InDelta(t, 1000, b.Attenuations[0].Z(), 1e-3)
	assert.InDelta(t, -1000, b.Attenuations[0].W(), 1e-3)
}

func TestPack_Unsupported(t *testing.T) {
	lights := []VisibleLight{
		{Type: LightTypeArea, FinalColor: common.ColorWhite, LocalToWorld: mgl32.Translate3D(5, 5, 5), Range: 3},
		point(1, 1, 1, 1),
	}
	b := Pack(lights)

	require.Equal(t, 2, b.Count)
	assert.Equal(t, mgl32.Vec4{}, b.Colors[0])
	assert.Equal(t, mgl32.Vec4{}, b.DirectionsOrPositions[0])
	assert.Equal(t, mgl32.Vec4{}, b.Attenuations[0])
	assert.Equal(t, mgl32.Vec4{}, b.SpotDirections[0])
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, b.DirectionsOrPositions[1])
}

func TestPack_ZeroTail(t *testing.T) {
	for _, n := range []int{0, 1, 5, MaxVisibleLights} {
		lights := make([]VisibleLight, n)
		for i := range lights {
			lights[i] = point(float32(i+1), 0, 0, 2)
		}
		b := Pack(lights)

		assert.Equal(t, n, b.Count)
		for i := range MaxVisibleLights {
			if i < n {
				assert.Equal(t, float32(i+1), b.DirectionsOrPositions[i].X(), "slot %d", i)
				assert.NotEqual(t, mgl32.Vec4{}, b.Colors[i], "slot %d", i)
			} else {
				assert.Equal(t, mgl32.Vec4{}, b.Colors[i], "slot %d", i)
				assert.Equal(t, mgl32.Vec4{}, b.DirectionsOrPositions[i], "slot %d", i)
				assert.Equal(t, mgl32.Vec4{}, b.Attenuations[i], "slot %d", i)
			}
		}
	}
}

func TestPack_Truncates(t *testing.T) {
	lights := make([]VisibleLight, 20)
	for i := range lights {
		lights[i] = point(float32(i), 0, 0, 1)
	}

	var b LightBuffer
	dropped := PackInto(&b, lights)

	assert.Equal(t, 4, dropped)
	assert.Equal(t, MaxVisibleLights, b.Count)
	assert.Equal(t, float32(15), b.DirectionsOrPositions[15].X())
}

func TestPack_Deterministic(t *testing.T) {
	lights := []VisibleLight{
		directional(common.ColorWhite),
		point(1, 2, 3, 5),
		{Type: LightTypeSpot, FinalColor: common.ColorMagenta, LocalToWorld: mgl32.Translate3D(1, 0, 0), Range: 8, SpotAngle: 45},
	}

	first := Pack(lights)
	second := Pack(lights)
	assert.Equal(t, first, second)

	a := ToGPUVisibleLights(&first)
	b := ToGPUVisibleLights(&second)
	assert.Equal(t, a.Marshal(), b.Marshal())
}

func TestPackInto_ResetsStaleSlots(t *testing.T) {
	var b LightBuffer
	many := make([]VisibleLight, 10)
	for i := range many {
		many[i] = point(1, 1, 1, 1)
	}
	PackInto(&b, many)

	PackInto(&b, []VisibleLight{directional(common.ColorWhite)})

	assert.Equal(t, 1, b.Count)
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, b.Colors[0])
	for i := 1; i < MaxVisibleLights; i++ {
		assert.Equal(t, mgl32.Vec4{}, b.Colors[i], "slot %d", i)
		assert.Equal(t, mgl32.Vec4{}, b.Attenuations[i], "slot %d", i)
	}
}
