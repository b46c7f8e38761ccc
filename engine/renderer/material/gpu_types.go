package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxLightsPerObject is the number of light indices attached to each drawn object.
const MaxLightsPerObject = 8

// GPUInstanceSource is the canonical WGSL definition of the per-instance vertex input.
// Matches GPUInstance layout exactly (112 bytes).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is the per-instance vertex data the forward shaders read from vertex buffer slot 1.
// Size: 112 bytes.
//
// Layout:
//
//	vec4<f32> x4 model          (64 bytes, offset  0, locations 2-5)
//	vec4<f32>    color          (16 bytes, offset 64, location 6)
//	vec4<f32> x2 light_indices  (32 bytes, offset 80, locations 7-8)
type GPUInstance struct {
	Model        [16]float32
	Color        [4]float32
	LightIndices [MaxLightsPerObject]float32 // -1 terminates the list
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (112)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer ready for GPU upload
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}

// MarshalTo serializes the instance into dst, which must hold at least Size() bytes.
//
// Parameters:
//   - dst: the destination slice
func (g *GPUInstance) MarshalTo(dst []byte) {
	off := 0
	for i := range 16 {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(g.Model[i]))
		off += 4
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(g.Color[i]))
		off += 4
	}
	for i := range MaxLightsPerObject {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(g.LightIndices[i]))
		off += 4
	}
}
