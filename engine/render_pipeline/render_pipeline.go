// Package render_pipeline is the per-frame forward render loop. For each camera it culls, clears,
// uploads the visible lights and issues the skybox, opaque, transparent and diagnostic draws
// through a host RenderContext.
package render_pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
)

// renderPipelineImpl is the implementation of the RenderPipeline interface.
type renderPipelineImpl struct {
	config  Config
	logger  common.Logger
	finder  shader.Finder
	passTag shader.TagID

	// scratch state reused by every camera pass
	commandBuffer command_buffer.CommandBuffer
	lightBuffer   light.LightBuffer

	diagnostic *diagnosticPass
}

// RenderPipeline renders frames through a host RenderContext.
//
// A pipeline is single-threaded: Render must not be called concurrently. Its command
// buffer and light buffer are reused across cameras and frames and are reset before
// every reuse.
type RenderPipeline interface {
	// Render renders every camera in the given order. Cameras the host cannot cull are skipped
	// and issue no commands.
	//
	// Parameters:
	//   - ctx: the host render context
	//   - cameras: the cameras in render order
	Render(ctx RenderContext, cameras []camera.Camera)

	// Config returns the configuration the pipeline was built with.
	//
	// Returns:
	//   - Config: a copy of the configuration
	Config() Config

	// DiagnosticsEnabled reports whether the diagnostic pass will run.
	//
	// Returns:
	//   - bool: false in release builds or when the error shader was not found
	DiagnosticsEnabled() bool
}

var _ RenderPipeline = &renderPipelineImpl{}

// NewRenderPipeline creates a RenderPipeline. Session resources such as the diagnostic error
// material are created here, once.
//
// Parameters:
//   - opts: variadic list of RenderPipelineBuilderOption functions
//
// Returns:
//   - RenderPipeline: the pipeline
func NewRenderPipeline(opts ...RenderPipelineBuilderOption) RenderPipeline {
	p := &renderPipelineImpl{
		logger:        common.NewNopLogger(),
		passTag:       shader.TagSRPDefaultUnlit,
		commandBuffer: command_buffer.NewCommandBuffer(cameraSampleName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.finder == nil {
		p.finder = shader.NewBuiltinRegistry()
	}
	if p.config.BuildMode.Diagnostics() {
		p.diagnostic = newDiagnosticPass(p.finder, p.logger)
	}

	p.logger.Debugf("render pipeline created: mode=%s dynamicBatching=%t instancing=%t",
		p.config.BuildMode, p.config.DynamicBatching, p.config.GPUInstancing)
	return p
}

func (p *renderPipelineImpl) Render(ctx RenderContext, cameras []camera.Camera) {
	for _, cam := range cameras {
		p.renderCamera(ctx, cam)
	}
}

func (p *renderPipelineImpl) Config() Config {
	return p.config
}

func (p *renderPipelineImpl) DiagnosticsEnabled() bool {
	return p.diagnostic.Enabled()
}
