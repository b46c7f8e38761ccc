package render_pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/draw"
)

// RenderContext is the host surface a RenderPipeline renders through. Every call blocks until the
// host has accepted the work; the host may execute it asynchronously afterwards.
type RenderContext interface {
	draw.Drawer

	// CullingParameters derives culling parameters for a camera.
	//
	// Parameters:
	//   - cam: the camera
	//
	// Returns:
	//   - culling.Parameters: the parameters
	//   - bool: false if the camera cannot be culled, in which case it is skipped
	CullingParameters(cam camera.Camera) (culling.Parameters, bool)

	// Cull runs visibility culling. The results stay valid until the next Cull call.
	//
	// Parameters:
	//   - params: parameters from CullingParameters
	//
	// Returns:
	//   - culling.Results: the visible renderers and lights
	Cull(params culling.Parameters) culling.Results

	// SetupCameraProperties binds the camera matrices and position as global shader state.
	//
	// Parameters:
	//   - cam: the camera
	SetupCameraProperties(cam camera.Camera)

	// ExecuteCommandBuffer schedules the recorded commands. The pipeline clears the buffer afterwards,
	// so the host must copy anything it keeps.
	//
	// Parameters:
	//   - cb: the command buffer
	ExecuteCommandBuffer(cb command_buffer.CommandBuffer)

	// DrawSkybox schedules the skybox for a camera.
	//
	// Parameters:
	//   - cam: the camera
	DrawSkybox(cam camera.Camera)

	// Submit sends everything scheduled since the previous Submit to the GPU.
	Submit()
}

// EditorContext is implemented by hosts running inside an editor.
type EditorContext interface {
	// EmitWorldGeometryForSceneView adds editor gizmo geometry to the scene view before it is culled.
	//
	// Parameters:
	//   - cam: the scene view camera
	EmitWorldGeometryForSceneView(cam camera.Camera)
}
