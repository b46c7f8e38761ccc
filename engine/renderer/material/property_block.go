package material

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

// PropertyColor is the per-renderer color property read by the forward shaders.
const PropertyColor = "_Color"

// PropertyBlock carries per-renderer overrides of material properties. Renderers sharing a material
// can still be drawn in one instanced batch because the overrides travel as instance data.
type PropertyBlock struct {
	vectors map[string]mgl32.Vec4
}

// NewPropertyBlock creates an empty PropertyBlock.
//
// Returns:
//   - *PropertyBlock: the block
func NewPropertyBlock() *PropertyBlock {
	return &PropertyBlock{vectors: make(map[string]mgl32.Vec4)}
}

// SetColor stores a color property.
//
// Parameters:
//   - name: the property name
//   - c: the color
func (b *PropertyBlock) SetColor(name string, c common.Color) {
	b.SetVector(name, c.Vec4())
}

// Color returns a color property.
//
// Parameters:
//   - name: the property name
//
// Returns:
//   - common.Color: the color, zero if absent
//   - bool: true if the property is set
func (b *PropertyBlock) Color(name string) (common.Color, bool) {
	v, ok := b.Vector(name)
	return common.Color(v), ok
}

// SetVector stores a vector property.
//
// Parameters:
//   - name: the property name
//   - v: the value
func (b *PropertyBlock) SetVector(name string, v mgl32.Vec4) {
	if b.vectors == nil {
		b.vectors = make(map[string]mgl32.Vec4)
	}
	b.vectors[name] = v
}

// Vector returns a vector property.
//
// Parameters:
//   - name: the property name
//
// Returns:
//   - mgl32.Vec4: the value, zero if absent
//   - bool: true if the property is set
func (b *PropertyBlock) Vector(name string) (mgl32.Vec4, bool) {
	if b == nil {
		return mgl32.Vec4{}, false
	}
	v, ok := b.vectors[name]
	return v, ok
}

// IsEmpty reports whether the block holds no properties. A nil block is empty.
func (b *PropertyBlock) IsEmpty() bool {
	return b == nil || len(b.vectors) == 0
}

// Clear removes every property.
func (b *PropertyBlock) Clear() {
	clear(b.vectors)
}

// ResolveColor returns the color a renderer is drawn with: the block's _Color when set, the
// material base color otherwise.
//
// Parameters:
//   - m: the renderer material
//   - b: the renderer property block, may be nil
//
// Returns:
//   - common.Color: the effective color
func ResolveColor(m Material, b *PropertyBlock) common.Color {
	if c, ok := b.Color(PropertyColor); ok {
		return c
	}
	return m.BaseColor()
}
