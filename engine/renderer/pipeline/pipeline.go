package pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Geometry identifies which vertex inputs a pipeline consumes.
type Geometry int

const (
	// GeometryMesh reads mesh vertices from slot 0 and GPUInstance data from slot 1.
	GeometryMesh Geometry = iota

	// GeometryFullscreen generates a screen-covering triangle from the vertex index and binds no buffers.
	GeometryFullscreen
)

// keySuffixTransparent distinguishes the blended variant of a shader's pipeline.
const keySuffixTransparent = "#transparent"

// keySuffixSkybox distinguishes the skybox variant of a shader's pipeline.
const keySuffixSkybox = "#skybox"

// pipeline is the implementation of the Pipeline interface.
// It holds the GPU render pipeline together with the render state it was created from.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string
	// shader provides the WGSL source and both entry points
	shader shader.Shader
	// geometry selects the vertex buffer layouts and whether the frame bind group is used
	geometry Geometry

	// renderPipeline is nil until the backend registers the pipeline
	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a GPU render pipeline: the shader it runs and the fixed-function state
// (depth, blend, cull, topology) it was created with.
type Pipeline interface {
	// PipelineKey returns the unique key associated with this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader returns the shader this pipeline runs.
	//
	// Returns:
	//   - shader.Shader: the shader
	Shader() shader.Shader

	// Geometry returns the vertex input style of the pipeline.
	//
	// Returns:
	//   - Geometry: mesh or fullscreen
	Geometry() Geometry

	// Pipeline returns the underlying GPU pipeline, nil before registration.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the render pipeline
	Pipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether depth testing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth testing is enabled, false otherwise
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether depth writing is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if depth writing is enabled, false otherwise
	DepthWriteEnabled() bool

	// DepthCompare returns the comparison used when depth testing is enabled.
	//
	// Returns:
	//   - wgpu.CompareFunction: the compare function, CompareFunctionAlways when depth testing is off
	DepthCompare() wgpu.CompareFunction

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled, false otherwise
	BlendEnabled() bool

	// CullMode returns the cull mode configured for this pipeline.
	//
	// Returns:
	//   - wgpu.CullMode: the cull mode for this pipeline
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology configured for this pipeline.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology for this pipeline
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the front face winding order configured for this pipeline.
	//
	// Returns:
	//   - wgpu.FrontFace: the front face winding order for this pipeline
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask for this pipeline
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, or nil if blending is not enabled
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline created by the backend.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline to set
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline if one was created.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline with opaque depth-tested defaults.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - s: the shader the pipeline runs
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline with the specified configuration
func NewPipeline(pipelineKey string, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		shader:            s,
		geometry:          GeometryMesh,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		blendEnabled:      false,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTransparentQueue reports whether a render queue is drawn with blending.
//
// Parameters:
//   - renderQueue: the material render queue
//
// Returns:
//   - bool: true for queues after the opaque geometry range
func IsTransparentQueue(renderQueue int) bool {
	return renderQueue > material.RenderQueueGeometryLast
}

// KeyFor returns the cache key of the pipeline a material is drawn with.
//
// Parameters:
//   - mat: the material
//
// Returns:
//   - string: the shader name, suffixed for the transparent variant; empty when the material has no shader
func KeyFor(mat material.Material) string {
	if mat == nil || mat.Shader() == nil {
		return ""
	}
	if IsTransparentQueue(mat.RenderQueue()) {
		return mat.Shader().Name() + keySuffixTransparent
	}
	return mat.Shader().Name()
}

// SkyboxKeyFor returns the cache key of the pipeline a skybox material is drawn with.
//
// Parameters:
//   - mat: the skybox material
//
// Returns:
//   - string: the shader name with the skybox suffix; empty when the material has no shader
func SkyboxKeyFor(mat material.Material) string {
	if mat == nil || mat.Shader() == nil {
		return ""
	}
	return mat.Shader().Name() + keySuffixSkybox
}

// ForMaterial builds the pipeline description a mesh drawn with mat needs.
// Transparent queues blend and keep the depth buffer read-only.
//
// Parameters:
//   - mat: the material, which must carry a shader
//
// Returns:
//   - Pipeline: the unregistered pipeline
func ForMaterial(mat material.Material) Pipeline {
	if IsTransparentQueue(mat.RenderQueue()) {
		return NewPipeline(KeyFor(mat), mat.Shader(),
			WithBlendEnabled(true),
			WithDepthWriteEnabled(false),
		)
	}
	return NewPipeline(KeyFor(mat), mat.Shader())
}

// ForSkybox builds the fullscreen pipeline the skybox material is drawn with. It tests against
// the far plane without writing depth so geometry drawn later stays in front.
//
// Parameters:
//   - mat: the skybox material, which must carry a shader
//
// Returns:
//   - Pipeline: the unregistered pipeline
func ForSkybox(mat material.Material) Pipeline {
	return NewPipeline(SkyboxKeyFor(mat), mat.Shader(),
		WithGeometry(GeometryFullscreen),
		WithDepthWriteEnabled(false),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
	)
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) Geometry() Geometry {
	return p.geometry
}

func (p *pipeline) Pipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	if !p.depthTestEnabled {
		return wgpu.CompareFunctionAlways
	}
	return p.depthCompare
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	if !p.blendEnabled {
		return nil
	}
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
