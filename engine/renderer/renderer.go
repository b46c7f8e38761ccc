package renderer

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-srp/engine/scene"
	"github.com/Carmen-Shannon/oxy-srp/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

// Bindings of the per-camera uniform bind group at group 0.
const (
	bindingCamera = 0
	bindingLights = 1
)

// Sizes of the per-camera uniforms; they match camera.GPUCameraUniform and light.GPUVisibleLights.
const (
	cameraUniformSize = 80
	lightsUniformSize = 1024
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger common.Logger

	pipelineCache map[string]pipeline.Pipeline
	// pipelineErrors remembers keys whose pipeline could not be built so they fail fast.
	pipelineErrors map[string]error
	meshCache      map[uuid.UUID]bind_group_provider.BindGroupProvider

	// frameProvider holds the camera and light uniforms bound at group 0.
	frameProvider bind_group_provider.BindGroupProvider
	// instanceProvider holds the per-pass GPUInstance vertex buffer under binding 0.
	instanceProvider bind_group_provider.BindGroupProvider

	backendType RendererBackendType
	backend     RendererBackend
	// frameOpen is set between BeginFrame and Present; Execute then records into the open frame.
	frameOpen bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingPipelines     []pipeline.Pipeline
}

// Renderer executes the frames a scene submits on the GPU.
//
// Execute acquires and presents a surface image of its own unless BeginFrame opened one, in which
// case every Execute before Present draws into the same image; this is how several scenes
// composite in one displayed frame. Each frame is split into camera passes. Every pass uploads its camera and light uniforms,
// uploads the instance data of its draws into one shared vertex buffer, and then records the
// skybox and mesh draws in submission order. Pipelines are created lazily per shader and render
// queue variant and cached by key; mesh buffers are cached by mesh ID, while dynamically batched
// meshes live for a single frame.
type Renderer interface {
	scene.Backend

	// Pipeline retrieves the cached Pipeline associated with the given key.
	//
	// Parameters:
	//   - key: the pipeline key, see pipeline.KeyFor
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines returns a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: pipelines keyed by PipelineKey
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU pipelines of the given descriptions ahead of their first
	// draw. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// BeginFrame acquires the surface image the following Execute calls draw into.
	//
	// Returns:
	//   - error: an error if a frame is already open or the surface image could not be acquired
	BeginFrame() error

	// Present presents the image opened by BeginFrame. It is a no-op without an open frame.
	Present()

	// EvictMesh releases the GPU buffers cached for a mesh.
	//
	// Parameters:
	//   - id: the mesh ID
	EvictMesh(id uuid.UUID)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. It takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release frees every cached GPU resource and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the window's surface.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - w: the window providing the surface and its initial size
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the GPU device or the uniform buffers could not be created
func NewRenderer(backendType RendererBackendType, w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:             &sync.Mutex{},
		logger:         common.NewNopLogger(),
		pipelineCache:  make(map[string]pipeline.Pipeline),
		pipelineErrors: make(map[string]error),
		meshCache:      make(map[uuid.UUID]bind_group_provider.BindGroupProvider),
		backendType:    backendType,
	}

	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
		if err != nil {
			return nil, fmt.Errorf("renderer: %w", err)
		}
		r.backend = b
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(w.Width(), w.Height())

	r.frameProvider = bind_group_provider.NewBindGroupProvider("Frame Uniforms")
	err := r.backend.InitBindGroup(r.frameProvider, wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Uniforms Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    bindingCamera,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: cameraUniformSize,
				},
			},
			{
				Binding:    bindingLights,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: lightsUniformSize,
				},
			},
		},
	})
	if err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("renderer: frame uniforms: %w", err)
	}
	r.instanceProvider = bind_group_provider.NewBindGroupProvider("Instances")

	if err := r.RegisterPipelines(r.pendingPipelines...); err != nil {
		r.Release()
		return nil, err
	}
	r.pendingPipelines = nil

	return r, nil
}

func (r *renderer) Execute(frame *scene.Frame) error {
	passes := planPasses(frame)
	if len(passes) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	standalone := !r.frameOpen
	if standalone {
		if err := r.backend.BeginFrame(); err != nil {
			return fmt.Errorf("renderer: begin frame: %w", err)
		}
	}

	var transient []bind_group_provider.BindGroupProvider
	defer func() {
		for _, p := range transient {
			p.Release()
		}
	}()

	var errs []error
	for i := range passes {
		if err := r.executePass(&passes[i], &transient); err != nil {
			errs = append(errs, err)
		}
	}
	if standalone {
		r.backend.Present()
	}

	return errors.Join(errs...)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameOpen {
		return errors.New("renderer: frame already open")
	}
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("renderer: begin frame: %w", err)
	}
	r.frameOpen = true
	return nil
}

func (r *renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.frameOpen {
		return
	}
	r.backend.Present()
	r.frameOpen = false
}

// resolvedItem is a pass item with its GPU resources looked up.
type resolvedItem struct {
	pipeline pipeline.Pipeline
	mesh     bind_group_provider.BindGroupProvider
	item     passItem
}

func (r *renderer) executePass(pass *cameraPass, transient *[]bind_group_provider.BindGroupProvider) error {
	var errs []error
	resolved := make([]resolvedItem, 0, len(pass.items))
	for _, it := range pass.items {
		if it.skybox != nil {
			p, err := r.pipelineFor(pipeline.SkyboxKeyFor(it.skybox), func() pipeline.Pipeline {
				return pipeline.ForSkybox(it.skybox)
			})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			resolved = append(resolved, resolvedItem{pipeline: p, item: it})
			continue
		}

		mat := it.draw.Material
		p, err := r.pipelineFor(pipeline.KeyFor(mat), func() pipeline.Pipeline {
			return pipeline.ForMaterial(mat)
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		mesh, err := r.meshFor(it.draw, transient)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		resolved = append(resolved, resolvedItem{pipeline: p, mesh: mesh, item: it})
	}

	writes := []bind_group_provider.BufferWrite{
		{Provider: r.frameProvider, Binding: bindingCamera, Data: pass.uniform.Marshal()},
		{Provider: r.frameProvider, Binding: bindingLights, Data: pass.lights.Marshal()},
	}
	if pass.instances > 0 {
		data := pass.instanceData()
		if err := r.backend.EnsureBuffer(r.instanceProvider, 0, uint64(len(data)), wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst); err != nil {
			return errors.Join(append(errs, fmt.Errorf("renderer: instance buffer: %w", err))...)
		}
		writes = append(writes, bind_group_provider.BufferWrite{Provider: r.instanceProvider, Binding: 0, Data: data})
	}
	r.backend.WriteBuffers(writes)

	if err := r.backend.BeginPass(pass.clear); err != nil {
		return errors.Join(append(errs, fmt.Errorf("renderer: begin pass: %w", err))...)
	}
	instances := r.instanceProvider.Buffer(0)
	for _, ri := range resolved {
		if ri.item.skybox != nil {
			r.backend.DrawFullscreen(ri.pipeline)
			continue
		}
		r.backend.DrawCall(ri.pipeline, ri.mesh, instances,
			ri.item.firstInstance, uint32(len(ri.item.draw.Instances)), r.frameProvider)
	}
	if err := r.backend.EndPass(); err != nil {
		errs = append(errs, fmt.Errorf("renderer: submit pass: %w", err))
	}

	return errors.Join(errs...)
}

// pipelineFor returns the cached pipeline for key, registering the one build describes on first use.
func (r *renderer) pipelineFor(key string, build func() pipeline.Pipeline) (pipeline.Pipeline, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: material has no shader", ErrPipelineNotFound)
	}
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}
	if err, ok := r.pipelineErrors[key]; ok {
		return nil, err
	}
	p := build()
	if err := r.backend.RegisterRenderPipeline(p, r.frameProvider.BindGroupLayout()); err != nil {
		if !errors.Is(err, ErrPipelineNotFound) {
			err = fmt.Errorf("%w: %q: %w", ErrPipelineNotFound, key, err)
		}
		r.pipelineErrors[key] = err
		r.logger.Errorf("failed to create pipeline %q: %v", key, err)
		return nil, err
	}
	r.pipelineCache[key] = p
	r.logger.Debugf("created pipeline %q", key)
	return p, nil
}

// meshFor returns the GPU buffers of a draw's mesh. Batched meshes are built per frame and are
// appended to transient instead of the cache.
func (r *renderer) meshFor(draw *scene.DrawCall, transient *[]bind_group_provider.BindGroupProvider) (bind_group_provider.BindGroupProvider, error) {
	m := draw.Mesh
	if !draw.Batched {
		if p, ok := r.meshCache[m.ID()]; ok {
			return p, nil
		}
	}

	p := bind_group_provider.NewBindGroupProvider(m.Name())
	if err := r.backend.InitMeshBuffers(p, marshalVertices(m.Vertices()), marshalIndices(m.Indices()), len(m.Indices())); err != nil {
		p.Release()
		return nil, fmt.Errorf("renderer: upload mesh %q: %w", m.Name(), err)
	}
	if p.VertexBuffer() == nil || p.IndexBuffer() == nil {
		p.Release()
		return nil, fmt.Errorf("renderer: mesh %q has no geometry", m.Name())
	}

	if draw.Batched {
		*transient = append(*transient, p)
	} else {
		r.meshCache[m.ID()] = p
	}
	return p, nil
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.pipelineCache)
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if _, err := r.pipelineFor(p.PipelineKey(), func() pipeline.Pipeline { return p }); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) EvictMesh(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.meshCache[id]; ok {
		p.Release()
		delete(r.meshCache, id)
	}
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	for id, p := range r.meshCache {
		p.Release()
		delete(r.meshCache, id)
	}
	r.instanceProvider.Release()
	r.frameProvider.Release()
	r.backend.Release()
}
