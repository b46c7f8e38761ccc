package culling

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestParametersFromCamera(t *testing.T) {
	cam := camera.NewCamera(
		camera.WithName("main"),
		camera.WithCullingMask(0b101),
		camera.WithLookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}),
	)

	p, ok := ParametersFromCamera(cam)
	assert.True(t, ok)
	assert.Equal(t, "main", p.CameraName)
	assert.Equal(t, uint32(0b101), p.CullingMask)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, p.CameraPosition)
	assert.False(t, p.Frustum.IsDegenerate())
}

func TestParametersFromCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		cam  camera.Camera
	}{
		{"zero aspect", camera.NewCamera(camera.WithAspect(0))},
		{"negative near", camera.NewCamera(camera.WithNear(-1))},
		{"far equals near", camera.NewCamera(camera.WithNear(1), camera.WithFar(1))},
		{"zero fov", camera.NewCamera(camera.WithFov(0))},
		{"eye on target", camera.NewCamera(camera.WithLookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ParametersFromCamera(tc.cam)
			assert.False(t, ok)
		})
	}

	_, ok := ParametersFromCamera(nil)
	assert.False(t, ok)
}

func TestIdentityLightIndexMap(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, IdentityLightIndexMap(3))
	assert.Empty(t, IdentityLightIndexMap(0))
}
