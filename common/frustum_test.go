package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestExtractFrustum_SphereVisibility(t *testing.T) {
	// camera at origin looking down -Z, 90 deg fov, near 1, far 100
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1.0, 1.0, 100.0)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(proj.Mul4(view))

	tests := []struct {
		name     string
		sphere   BoundingSphere
		expected bool
	}{
		{"inside center", BoundingSphere{Center: mgl32.Vec3{0, 0, -10}, Radius: 1}, true},
		{"outside left", BoundingSphere{Center: mgl32.Vec3{-30, 0, -10}, Radius: 1}, false},
		{"outside right", BoundingSphere{Center: mgl32.Vec3{30, 0, -10}, Radius: 1}, false},
		{"behind camera", BoundingSphere{Center: mgl32.Vec3{0, 0, 5}, Radius: 1}, false},
		{"beyond far", BoundingSphere{Center: mgl32.Vec3{0, 0, -200}, Radius: 1}, false},
		{"straddles left plane", BoundingSphere{Center: mgl32.Vec3{-11, 0, -10}, Radius: 2}, true},
		{"encompasses frustum", BoundingSphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1000}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, f.IntersectsSphere(tc.sphere))
		})
	}
}

func TestExtractFrustum_NormalizedPlanes(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 50.0)
	f := ExtractFrustum(proj)

	assert.False(t, f.IsDegenerate())
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5, "plane %d", i)
	}
}

func TestExtractFrustum_Degenerate(t *testing.T) {
	f := ExtractFrustum(mgl32.Mat4{})
	assert.True(t, f.IsDegenerate())
}

func TestBoundingSphere_Transform(t *testing.T) {
	s := BoundingSphere{Center: mgl32.Vec3{1, 0, 0}, Radius: 1}
	m := mgl32.Translate3D(0, 5, 0).Mul4(mgl32.Scale3D(2, 3, 1))

	out := s.Transform(m)

	assert.InDelta(t, 2.0, out.Center.X(), 1e-6)
	assert.InDelta(t, 5.0, out.Center.Y(), 1e-6)
	assert.InDelta(t, 3.0, out.Radius, 1e-6)
}

func TestBoundingSphere_Intersects(t *testing.T) {
	a := BoundingSphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1}

	assert.True(t, a.Intersects(BoundingSphere{Center: mgl32.Vec3{1.5, 0, 0}, Radius: 1}))
	assert.True(t, a.Intersects(BoundingSphere{Center: mgl32.Vec3{2, 0, 0}, Radius: 1}))
	assert.False(t, a.Intersects(BoundingSphere{Center: mgl32.Vec3{3, 0, 0}, Radius: 1}))
}
