// Package culling defines the hand-off between a host's visibility pass and the render pipeline.
package culling

import (
	"math"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Parameters is everything a host needs to cull one camera.
type Parameters struct {
	CameraName     string
	Kind           camera.Kind
	CullingMask    uint32
	CameraPosition mgl32.Vec3
	ViewProjection mgl32.Mat4
	Frustum        common.Frustum
}

// ParametersFromCamera derives culling parameters from a camera. It fails for cameras whose
// projection cannot produce a usable frustum: non-positive aspect or field of view, a near plane
// at or behind the eye, a far plane not beyond the near plane, or a singular view-projection.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - Parameters: the derived parameters, zero on failure
//   - bool: false if the camera is degenerate
func ParametersFromCamera(cam camera.Camera) (Parameters, bool) {
	if cam == nil {
		return Parameters{}, false
	}
	fov, aspect, near, far := cam.Fov(), cam.Aspect(), cam.Near(), cam.Far()
	if aspect <= 0 || fov <= 0 || fov >= math.Pi || near <= 0 || far <= near {
		return Parameters{}, false
	}

	vp := cam.ViewProjectionMatrix()
	for _, v := range vp {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return Parameters{}, false
		}
	}
	f := common.ExtractFrustum(vp)
	if f.IsDegenerate() {
		return Parameters{}, false
	}

	return Parameters{
		CameraName:     cam.Name(),
		Kind:           cam.Kind(),
		CullingMask:    cam.CullingMask(),
		CameraPosition: cam.Position(),
		ViewProjection: vp,
		Frustum:        f,
	}, true
}

// Results is the host-owned outcome of culling one camera. It is borrowed by the pipeline for a
// single camera pass and must not be used after the next Cull call.
type Results interface {
	// VisibleLights returns the lights that affect the frustum, in host order.
	//
	// Returns:
	//   - []light.VisibleLight: the visible lights
	VisibleLights() []light.VisibleLight

	// VisibleRendererCount returns the number of renderers that passed culling.
	//
	// Returns:
	//   - int: the renderer count
	VisibleRendererCount() int

	// LightIndexMap maps each visible light index to the slot it was uploaded to, -1 when the
	// light was not uploaded. The default map is the identity.
	//
	// Returns:
	//   - []int: one entry per visible light
	LightIndexMap() []int

	// SetLightIndexMap replaces the light index map used when per-object light indices are built.
	//
	// Parameters:
	//   - m: one entry per visible light
	SetLightIndexMap(m []int)
}

// IdentityLightIndexMap returns the default index map for n visible lights.
//
// Parameters:
//   - n: the visible light count
//
// Returns:
//   - []int: 0..n-1
func IdentityLightIndexMap(n int) []int {
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	return m
}
