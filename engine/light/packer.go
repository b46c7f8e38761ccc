package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxVisibleLights is the number of light slots uploaded per camera. Visible lights past this
// count are dropped in the order the host reported them.
const MaxVisibleLights = 16

const (
	// minRangeSquared keeps the point and spot attenuation finite for zero-range lights.
	minRangeSquared = 1e-5

	// innerConeRatio is the tangent ratio between the inner and outer spot cone.
	innerConeRatio = 46.0 / 64.0

	// minSpotAngleRange floors the inner/outer cosine difference so attenuation.z stays finite.
	minSpotAngleRange = 0.001
)

// LightBuffer holds the packed per-camera light arrays. Index i in every array describes the
// i-th visible light. Slots at or past Count are zero.
//
// Attenuation layout:
//
//	x = 1 / range^2          (point and spot)
//	y = unused
//	z = 1 / (innerCos - outerCos)   (spot, 0 otherwise)
//	w = -outerCos * z               (spot, 1 otherwise)
type LightBuffer struct {
	Colors                [MaxVisibleLights]mgl32.Vec4
	DirectionsOrPositions [MaxVisibleLights]mgl32.Vec4
	Attenuations          [MaxVisibleLights]mgl32.Vec4
	SpotDirections        [MaxVisibleLights]mgl32.Vec4

	// Count is the number of slots consumed, min(len(lights), MaxVisibleLights).
	Count int
}

// Reset zeroes every slot.
func (b *LightBuffer) Reset() {
	*b = LightBuffer{}
}

// Pack maps a visible-light list onto a fresh LightBuffer.
//
// Parameters:
//   - lights: the visible lights in host order
//
// Returns:
//   - LightBuffer: the packed arrays
func Pack(lights []VisibleLight) LightBuffer {
	var b LightBuffer
	PackInto(&b, lights)
	return b
}

// PackInto packs lights into a reused buffer. The buffer is zeroed before any slot is written,
// so data left over from a previous camera never survives into unused slots.
//
// Parameters:
//   - b: the destination buffer
//   - lights: the visible lights in host order
//
// Returns:
//   - int: the number of lights dropped because they did not fit
func PackInto(b *LightBuffer, lights []VisibleLight) int {
	b.Reset()

	n := min(len(lights), MaxVisibleLights)
	for i := range n {
		packLight(b, i, &lights[i])
	}
	b.Count = n

	return len(lights) - n
}

func packLight(b *LightBuffer, i int, l *VisibleLight) {
	switch l.Type {
	case LightTypeDirectional:
		b.Colors[i] = l.FinalColor.Vec4()
		b.Attenuations[i] = mgl32.Vec4{0, 0, 0, 1}
		b.DirectionsOrPositions[i] = backward(l.LocalToWorld)

	case LightTypePoint:
		b.Colors[i] = l.FinalColor.Vec4()
		b.Attenuations[i] = mgl32.Vec4{rangeAttenuation(l.Range), 0, 0, 1}
		b.DirectionsOrPositions[i] = l.LocalToWorld.Col(3)

	case LightTypeSpot:
		b.Colors[i] = l.FinalColor.Vec4()
		z, w := spotAttenuation(l.SpotAngle)
		b.Attenuations[i] = mgl32.Vec4{rangeAttenuation(l.Range), 0, z, w}
		b.DirectionsOrPositions[i] = l.LocalToWorld.Col(3)
		b.SpotDirections[i] = backward(l.LocalToWorld)

	default:
		// no realtime model; the slot stays zero
	}
}

// backward returns the negated forward axis of a transform with w = 0.
func backward(m mgl32.Mat4) mgl32.Vec4 {
	v := m.Col(2).Mul(-1)
	v[3] = 0
	return v
}

func rangeAttenuation(r float32) float32 {
	return float32(1.0 / math.Max(float64(r)*float64(r), minRangeSquared))
}

// spotAttenuation returns the z and w attenuation terms for a full cone angle in degrees.
func spotAttenuation(spotAngle float32) (z, w float32) {
	outerRad := 0.5 * float64(spotAngle) * math.Pi / 180.0
	outerCos := math.Cos(outerRad)
	outerTan := math.Tan(outerRad)
	innerCos := math.Cos(math.Atan(innerConeRatio * outerTan))
	angleRange := math.Max(innerCos-outerCos, minSpotAngleRange)

	zz := 1.0 / angleRange
	return float32(zz), float32(-outerCos * zz)
}
