// package common contains common types that are used throughout this pipeline. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "github.com/go-gl/mathgl/mgl32"

// Color is a linear RGBA color.
type Color [4]float32

var (
	// ColorClear is fully transparent black. Unused light slots hold this value.
	ColorClear = Color{0, 0, 0, 0}

	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}

	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}

	// ColorMagenta is the color the error shader paints unsupported materials with.
	ColorMagenta = Color{1, 0, 1, 1}
)

// Vec4 returns the color as an mgl32.Vec4 suitable for global vector uploads.
//
// Returns:
//   - mgl32.Vec4: the color as (r, g, b, a)
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4(c)
}

// Scale multiplies the RGB channels by the given factor and leaves alpha untouched.
// Lights use this to fold intensity into their final color.
//
// Parameters:
//   - f: the multiplier applied to r, g and b
//
// Returns:
//   - Color: the scaled color
func (c Color) Scale(f float32) Color {
	return Color{c[0] * f, c[1] * f, c[2] * f, c[3]}
}

// BoundingSphere is a world-space bounding volume used for frustum and light-range tests.
type BoundingSphere struct {
	// Center is the world-space center of the sphere.
	Center mgl32.Vec3
	// Radius is the sphere radius in world units.
	Radius float32
}

// Intersects reports whether two bounding spheres overlap or touch.
//
// Parameters:
//   - other: the sphere to test against
//
// Returns:
//   - bool: true if the spheres overlap
func (s BoundingSphere) Intersects(other BoundingSphere) bool {
	r := s.Radius + other.Radius
	d := s.Center.Sub(other.Center)
	return d.Dot(d) <= r*r
}

// Transform returns the sphere moved into the space of the given matrix. The radius is scaled
// by the largest axis scale of the matrix so the result stays conservative.
//
// Parameters:
//   - m: the local-to-world matrix
//
// Returns:
//   - BoundingSphere: the transformed sphere
func (s BoundingSphere) Transform(m mgl32.Mat4) BoundingSphere {
	center := m.Mul4x1(s.Center.Vec4(1)).Vec3()
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	scale := max(sx, sy, sz)
	return BoundingSphere{Center: center, Radius: s.Radius * scale}
}
