package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClearFlags_Policy(t *testing.T) {
	tests := []struct {
		flags ClearFlags
		want  ClearPolicy
	}{
		{ClearFlagsSkybox, ClearPolicy{DrawSkybox: true, ClearDepth: true, ClearColor: false}},
		{ClearFlagsColor, ClearPolicy{DrawSkybox: false, ClearDepth: true, ClearColor: true}},
		{ClearFlagsDepth, ClearPolicy{DrawSkybox: false, ClearDepth: true, ClearColor: false}},
		{ClearFlagsNothing, ClearPolicy{DrawSkybox: false, ClearDepth: false, ClearColor: false}},
	}

	for _, tc := range tests {
		t.Run(tc.flags.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.flags.Policy())
		})
	}
}

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, KindGame, c.Kind())
	assert.Equal(t, ClearFlagsSkybox, c.ClearFlags())
	assert.Equal(t, ^uint32(0), c.CullingMask())
	assert.True(t, c.Enabled())
	assert.Equal(t, mgl32.Perspective(c.Fov(), 1, 0.1, 100), c.ProjectionMatrix())
}

func TestCamera_Options(t *testing.T) {
	bg := common.Color{0.1, 0.2, 0.3, 1}
	c := NewCamera(
		WithName("scene"),
		WithKind(KindSceneView),
		WithClearFlags(ClearFlagsColor),
		WithBackgroundColor(bg),
		WithCullingMask(0b10),
		WithDepth(-1),
		WithAspect(2),
		WithLookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}),
	)

	assert.Equal(t, "scene", c.Name())
	assert.Equal(t, KindSceneView, c.Kind())
	assert.Equal(t, ClearFlagsColor, c.ClearFlags())
	assert.Equal(t, bg, c.BackgroundColor())
	assert.Equal(t, uint32(0b10), c.CullingMask())
	assert.Equal(t, float32(-1), c.Depth())
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, c.Position())

	// the origin sits 5 units in front of the eye
	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -5, p.Z(), 1e-5)
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
}

func TestCamera_Controller(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithElevation(0), WithAzimuth(0), WithTarget(0, 1, 0))
	c := NewCamera(WithController(ctrl))

	pos := c.Position()
	assert.InDelta(t, 0, pos.X(), 1e-5)
	assert.InDelta(t, 1, pos.Y(), 1e-5)
	assert.InDelta(t, 10, pos.Z(), 1e-5)

	ctrl.Zoom(3)
	c.Update()
	assert.InDelta(t, 7, c.Position().Z(), 1e-5)
}

func TestOrbitController_Clamps(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(5), WithRadiusBounds(2, 8), WithOrbitSpeed(1))

	ctrl.Zoom(100)
	assert.Equal(t, float32(2), ctrl.Radius())
	ctrl.Zoom(-100)
	assert.Equal(t, float32(8), ctrl.Radius())

	for range 5 {
		ctrl.OrbitUp()
	}
	assert.Less(t, ctrl.Elevation(), float32(1.5708))

	ctrl.OrbitLeft()
	ctrl.OrbitRight()
	assert.InDelta(t, 0, ctrl.Azimuth(), 1e-6)
}

func TestToGPUCameraUniform_DepthRemap(t *testing.T) {
	c := NewCamera(WithNear(1), WithFar(10), WithLookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}))
	u := ToGPUCameraUniform(c)
	m := mgl32.Mat4(u.ViewProj)

	near := m.Mul4x1(mgl32.Vec4{0, 0, -1, 1})
	far := m.Mul4x1(mgl32.Vec4{0, 0, -10, 1})
	assert.InDelta(t, 0, near.Z()/near.W(), 1e-5)
	assert.InDelta(t, 1, far.Z()/far.W(), 1e-5)
	assert.Len(t, u.Marshal(), 80)
}
