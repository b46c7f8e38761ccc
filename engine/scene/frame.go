package scene

import (
	"errors"

	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
)

// ErrNoBackend is reported by Submit when the scene has no Backend to execute frames.
var ErrNoBackend = errors.New("scene: no backend attached")

// FrameCommandType identifies an entry of a submitted Frame.
type FrameCommandType int

const (
	// FrameCommandCamera binds a camera's matrices for the commands that follow.
	FrameCommandCamera FrameCommandType = iota
	// FrameCommandBuffer carries one command recorded in a pipeline command buffer.
	FrameCommandBuffer
	// FrameCommandSkybox draws the procedural sky behind everything else.
	FrameCommandSkybox
	// FrameCommandDraw draws one batch of geometry.
	FrameCommandDraw
)

// String returns the name of the frame command type.
func (t FrameCommandType) String() string {
	switch t {
	case FrameCommandCamera:
		return "Camera"
	case FrameCommandBuffer:
		return "Buffer"
	case FrameCommandSkybox:
		return "Skybox"
	case FrameCommandDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}

// DrawCall is one GPU draw: a mesh drawn len(Instances) times with a material's pass.
type DrawCall struct {
	Mesh     Mesh
	Material material.Material
	PassTag  shader.TagID
	// Instances holds per-instance model, color and light indices. Always at least one entry.
	Instances []material.GPUInstance
	// Batched is set when Mesh is a world-space combination of several renderers.
	Batched bool
	// Renderers lists the renderers the call draws, in draw order.
	Renderers []MeshRenderer
}

// FrameCommand is one ordered entry of a Frame. Only the fields relevant to Type are set.
type FrameCommand struct {
	Type FrameCommandType

	// Camera, Skybox
	Camera  camera.Camera
	Uniform camera.GPUCameraUniform

	// Buffer
	Command command_buffer.Command

	// Skybox
	Material material.Material

	// Draw
	Draw *DrawCall
}

// Frame is everything scheduled between two Submit calls, in execution order.
type Frame struct {
	Commands []FrameCommand
	Stats    FrameStats
}

// FrameStats counts the work of submitted frames.
type FrameStats struct {
	Submits          int
	Cameras          int
	VisibleRenderers int
	VisibleLights    int
	DrawCalls        int
	Instances        int
	DynamicBatches   int
	InstancedBatches int
	SkyboxDraws      int
}

// Add accumulates other into s.
//
// Parameters:
//   - other: the stats to add
func (s *FrameStats) Add(other FrameStats) {
	s.Submits += other.Submits
	s.Cameras += other.Cameras
	s.VisibleRenderers += other.VisibleRenderers
	s.VisibleLights += other.VisibleLights
	s.DrawCalls += other.DrawCalls
	s.Instances += other.Instances
	s.DynamicBatches += other.DynamicBatches
	s.InstancedBatches += other.InstancedBatches
	s.SkyboxDraws += other.SkyboxDraws
}

// Backend executes submitted frames, typically on a GPU.
type Backend interface {
	// Execute runs every command of a frame in order. The frame is only valid during the call.
	//
	// Parameters:
	//   - frame: the frame to execute
	//
	// Returns:
	//   - error: error if the frame could not be executed
	Execute(frame *Frame) error
}
