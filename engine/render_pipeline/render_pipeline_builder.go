package render_pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
)

// RenderPipelineBuilderOption is a function that configures a RenderPipeline during construction.
type RenderPipelineBuilderOption func(*renderPipelineImpl)

// WithDynamicBatching is an option builder that lets the host merge small meshes sharing a material.
//
// Parameters:
//   - enabled: true to enable dynamic batching
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithDynamicBatching(enabled bool) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		p.config.DynamicBatching = enabled
	}
}

// WithGPUInstancing is an option builder that lets the host draw renderers sharing a mesh and
// material in one instanced call.
//
// Parameters:
//   - enabled: true to enable instancing
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithGPUInstancing(enabled bool) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		p.config.GPUInstancing = enabled
	}
}

// WithBuildMode is an option builder that sets the capability level.
//
// Parameters:
//   - mode: the build mode
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithBuildMode(mode BuildMode) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		p.config.BuildMode = mode
	}
}

// WithShaderFinder is an option builder that sets where the error shader is looked up.
// Defaults to the built-in shader registry.
//
// Parameters:
//   - finder: the shader lookup
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithShaderFinder(finder shader.Finder) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		p.finder = finder
	}
}

// WithLogger is an option builder that sets the pipeline logger.
//
// Parameters:
//   - logger: the logger, nil keeps the no-op logger
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithLogger(logger common.Logger) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPassTag is an option builder that overrides the pass tag drawn by the forward pass.
//
// Parameters:
//   - tag: the pass tag, empty keeps SRPDefaultUnlit
//
// Returns:
//   - RenderPipelineBuilderOption: a function that applies the option to a renderPipelineImpl
func WithPassTag(tag shader.TagID) RenderPipelineBuilderOption {
	return func(p *renderPipelineImpl) {
		p.passTag = common.Coalesce(tag, shader.TagSRPDefaultUnlit)
	}
}
