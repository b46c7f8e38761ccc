package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Global shader property names the packed light arrays are uploaded under.
const (
	PropertyVisibleLightColors                = "_VisibleLightColors"
	PropertyVisibleLightDirectionsOrPositions = "_VisibleLightDirectionsOrPositions"
	PropertyVisibleLightAttenuations          = "_VisibleLightAttenuations"
	PropertyVisibleLightSpotDirections        = "_VisibleLightSpotDirections"
)

// GPUVisibleLightsSource is the canonical WGSL definition of the VisibleLights struct.
// Matches GPUVisibleLights layout exactly (1024 bytes, uniform aligned).
//
//go:embed assets/visible_lights.wgsl
var GPUVisibleLightsSource string

// GPUVisibleLights is the GPU-aligned uniform holding the four light arrays.
// Matches the WGSL VisibleLights struct layout exactly (see GPUVisibleLightsSource).
// Size: 1024 bytes.
//
// Layout:
//
//	array<vec4<f32>, 16> colors                   (256 bytes, offset   0)
//	array<vec4<f32>, 16> directions_or_positions  (256 bytes, offset 256)
//	array<vec4<f32>, 16> attenuations             (256 bytes, offset 512)
//	array<vec4<f32>, 16> spot_directions          (256 bytes, offset 768)
type GPUVisibleLights struct {
	Colors                [MaxVisibleLights][4]float32
	DirectionsOrPositions [MaxVisibleLights][4]float32
	Attenuations          [MaxVisibleLights][4]float32
	SpotDirections        [MaxVisibleLights][4]float32
}

// Size returns the size of the GPUVisibleLights struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (1024)
func (g *GPUVisibleLights) Size() int {
	return int(unsafe.Sizeof(*g))
}

// SetArray copies a global vector array into the field matching its property name.
// Values past MaxVisibleLights are ignored and missing values are zeroed.
//
// Parameters:
//   - name: one of the PropertyVisibleLight* names
//   - values: the uploaded vectors
//
// Returns:
//   - bool: false if the name is not a light array property
func (g *GPUVisibleLights) SetArray(name string, values []mgl32.Vec4) bool {
	var dst *[MaxVisibleLights][4]float32
	switch name {
	case PropertyVisibleLightColors:
		dst = &g.Colors
	case PropertyVisibleLightDirectionsOrPositions:
		dst = &g.DirectionsOrPositions
	case PropertyVisibleLightAttenuations:
		dst = &g.Attenuations
	case PropertyVisibleLightSpotDirections:
		dst = &g.SpotDirections
	default:
		return false
	}
	*dst = [MaxVisibleLights][4]float32{}
	for i := 0; i < len(values) && i < MaxVisibleLights; i++ {
		dst[i] = values[i]
	}
	return true
}

// Marshal serializes the GPUVisibleLights struct into a byte buffer suitable for
// GPU uniform upload.
//
// Returns:
//   - []byte: 1024-byte buffer ready for GPU upload
func (g *GPUVisibleLights) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := 0
	for _, arr := range [...]*[MaxVisibleLights][4]float32{&g.Colors, &g.DirectionsOrPositions, &g.Attenuations, &g.SpotDirections} {
		for i := range MaxVisibleLights {
			for c := range 4 {
				binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(arr[i][c]))
				off += 4
			}
		}
	}
	return buf
}

// ToGPUVisibleLights converts a packed LightBuffer into its uniform representation.
//
// Parameters:
//   - b: the packed buffer
//
// Returns:
//   - GPUVisibleLights: the GPU-aligned representation
func ToGPUVisibleLights(b *LightBuffer) GPUVisibleLights {
	var g GPUVisibleLights
	for i := range MaxVisibleLights {
		g.Colors[i] = b.Colors[i]
		g.DirectionsOrPositions[i] = b.DirectionsOrPositions[i]
		g.Attenuations[i] = b.Attenuations[i]
		g.SpotDirections[i] = b.SpotDirections[i]
	}
	return g
}
