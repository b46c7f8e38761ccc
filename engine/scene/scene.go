package scene

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/profiler"
	"github.com/Carmen-Shannon/oxy-srp/engine/render_pipeline"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/google/uuid"
)

// GizmoLayer is the layer scene view gizmo geometry is drawn on.
const GizmoLayer uint8 = 31

// Scene is an in-memory render host. It registers renderers, lights and cameras, implements the
// RenderContext a RenderPipeline draws through, and hands each submitted Frame to a Backend.
// Thread-safe for concurrent access, though a frame is expected to be rendered from one goroutine.
type Scene interface {
	render_pipeline.RenderContext
	render_pipeline.EditorContext

	// Name returns the scene's identifier.
	Name() string

	// AddRenderer registers renderers. Renderers already registered are ignored.
	//
	// Parameters:
	//   - renderers: the renderers to add
	AddRenderer(renderers ...MeshRenderer)

	// RemoveRenderer unregisters a renderer by ID.
	//
	// Parameters:
	//   - id: the renderer ID
	//
	// Returns:
	//   - bool: true if a renderer was removed
	RemoveRenderer(id uuid.UUID) bool

	// Renderers returns the registered renderers in registration order.
	Renderers() []MeshRenderer

	// AddLight registers lights. Visible lights are reported in registration order.
	//
	// Parameters:
	//   - lights: the lights to add
	AddLight(lights ...light.Light)

	// RemoveLight unregisters a light.
	//
	// Parameters:
	//   - l: the light
	//
	// Returns:
	//   - bool: true if the light was removed
	RemoveLight(l light.Light) bool

	// Lights returns the registered lights in registration order.
	Lights() []light.Light

	// AddCamera registers cameras.
	//
	// Parameters:
	//   - cameras: the cameras to add
	AddCamera(cameras ...camera.Camera)

	// RemoveCamera unregisters a camera.
	//
	// Parameters:
	//   - c: the camera
	//
	// Returns:
	//   - bool: true if the camera was removed
	RemoveCamera(c camera.Camera) bool

	// Cameras returns the enabled cameras in render order: ascending Depth, then registration order.
	Cameras() []camera.Camera

	// Backend returns the backend frames are submitted to.
	Backend() Backend

	// SetBackend replaces the backend.
	//
	// Parameters:
	//   - b: the backend, nil to drop frames
	SetBackend(b Backend)

	// Stats returns the work counted since the last ResetStats.
	Stats() FrameStats

	// ResetStats zeroes the accumulated stats.
	ResetStats()

	// Err returns and clears the last Submit error.
	//
	// Returns:
	//   - error: ErrNoBackend, a wrapped backend error, or nil
	Err() error

	// Close stops the culling workers. The scene must not be used afterwards.
	Close()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu     *sync.RWMutex
	name   string
	logger common.Logger
	finder shader.Finder

	renderers []MeshRenderer
	lights    []light.Light
	cameras   []camera.Camera

	backend  Backend
	profiler *profiler.Profiler

	skyboxMaterial material.Material

	// gizmos are the scene view renderers emitted for the current camera; cleared on Submit.
	gizmos         []MeshRenderer
	gizmoRenderers []MeshRenderer

	pending Frame
	stats   FrameStats
	lastErr error

	// computePool runs the parallel renderer culling. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene. The shader finder is required and NewScene panics if it is nil;
// it supplies the skybox and gizmo shaders.
//
// Parameters:
//   - name: the name of the scene
//   - finder: shader lookup for built-in scene materials (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, finder shader.Finder, options ...SceneBuilderOption) Scene {
	if finder == nil {
		panic("scene: NewScene requires a non-nil shader.Finder")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		logger:         common.NewNopLogger(),
		finder:         finder,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	if sky, ok := finder.Find(shader.NameSkybox); ok {
		s.skyboxMaterial = material.NewMaterial(sky,
			material.WithName("Default-Skybox"),
			material.WithRenderQueue(material.RenderQueueBackground),
			material.WithHideFlags(material.HideAndDontSave),
		)
	} else {
		s.logger.Warnf("skybox shader %q not found, skybox draws are skipped", shader.NameSkybox)
	}

	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) AddRenderer(renderers ...MeshRenderer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range renderers {
		if r == nil {
			continue
		}
		if slices.ContainsFunc(s.renderers, func(o MeshRenderer) bool { return o.ID() == r.ID() }) {
			continue
		}
		s.renderers = append(s.renderers, r)
	}
}

func (s *scene) RemoveRenderer(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.renderers, func(r MeshRenderer) bool { return r.ID() == id })
	if i < 0 {
		return false
	}
	s.renderers = slices.Delete(s.renderers, i, i+1)
	return true
}

func (s *scene) Renderers() []MeshRenderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.renderers)
}

func (s *scene) AddLight(lights ...light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lights {
		if l != nil && !slices.Contains(s.lights, l) {
			s.lights = append(s.lights, l)
		}
	}
}

func (s *scene) RemoveLight(l light.Light) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.lights, l)
	if i < 0 {
		return false
	}
	s.lights = slices.Delete(s.lights, i, i+1)
	return true
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) AddCamera(cameras ...camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range cameras {
		if c != nil && !slices.Contains(s.cameras, c) {
			s.cameras = append(s.cameras, c)
		}
	}
}

func (s *scene) RemoveCamera(c camera.Camera) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.cameras, c)
	if i < 0 {
		return false
	}
	s.cameras = slices.Delete(s.cameras, i, i+1)
	return true
}

func (s *scene) Cameras() []camera.Camera {
	s.mu.RLock()
	out := make([]camera.Camera, 0, len(s.cameras))
	for _, c := range s.cameras {
		if c.Enabled() {
			out = append(out, c)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b camera.Camera) int {
		switch {
		case a.Depth() < b.Depth():
			return -1
		case a.Depth() > b.Depth():
			return 1
		}
		return 0
	})
	return out
}

func (s *scene) Backend() Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

func (s *scene) SetBackend(b Backend) {
	s.mu.Lock()
	s.backend = b
	s.mu.Unlock()
}

func (s *scene) Stats() FrameStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *scene) ResetStats() {
	s.mu.Lock()
	s.stats = FrameStats{}
	s.mu.Unlock()
}

func (s *scene) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.lastErr
	s.lastErr = nil
	return err
}

func (s *scene) Close() {
	s.computePool.Stop()
}

// CullingParameters derives frustum culling parameters from the camera.
func (s *scene) CullingParameters(cam camera.Camera) (culling.Parameters, bool) {
	return culling.ParametersFromCamera(cam)
}

// Cull frustum culls every registered renderer and the emitted gizmos, and collects the lights
// touching the frustum.
func (s *scene) Cull(params culling.Parameters) culling.Results {
	s.mu.RLock()
	renderers := make([]MeshRenderer, 0, len(s.renderers)+len(s.gizmos))
	renderers = append(renderers, s.renderers...)
	renderers = append(renderers, s.gizmos...)
	lights := slices.Clone(s.lights)
	s.mu.RUnlock()

	res := &cullResults{params: params}
	res.renderers = s.cullRenderers(params, renderers)
	cullLights(params, lights, res)
	res.indexMap = culling.IdentityLightIndexMap(len(res.lights))

	s.mu.Lock()
	s.pending.Stats.VisibleRenderers += len(res.renderers)
	s.pending.Stats.VisibleLights += len(res.lights)
	s.mu.Unlock()

	s.logger.Debugf("camera %q: %d/%d renderers, %d lights visible",
		params.CameraName, len(res.renderers), len(renderers), len(res.lights))
	return res
}

func (s *scene) SetupCameraProperties(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Commands = append(s.pending.Commands, FrameCommand{
		Type:    FrameCommandCamera,
		Camera:  cam,
		Uniform: camera.ToGPUCameraUniform(cam),
	})
	s.pending.Stats.Cameras++
}

// ExecuteCommandBuffer copies the recorded commands into the pending frame. Sample markers also
// open and close profiler scopes.
func (s *scene) ExecuteCommandBuffer(cb command_buffer.CommandBuffer) {
	for _, cmd := range cb.Commands() {
		if s.profiler != nil {
			switch cmd.Type {
			case command_buffer.CommandBeginSample:
				s.profiler.BeginSample(cmd.Name)
			case command_buffer.CommandEndSample:
				s.profiler.EndSample(cmd.Name)
			}
		}
		if cmd.Vectors != nil {
			cmd.Vectors = slices.Clone(cmd.Vectors)
		}
		s.mu.Lock()
		s.pending.Commands = append(s.pending.Commands, FrameCommand{Type: FrameCommandBuffer, Command: cmd})
		s.mu.Unlock()
	}
}

func (s *scene) DrawSkybox(cam camera.Camera) {
	if s.skyboxMaterial == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending.Commands = append(s.pending.Commands, FrameCommand{
		Type:     FrameCommandSkybox,
		Camera:   cam,
		Uniform:  camera.ToGPUCameraUniform(cam),
		Material: s.skyboxMaterial,
	})
	s.pending.Stats.SkyboxDraws++
}

// EmitWorldGeometryForSceneView adds the axis gizmo to the next Cull. It is removed on Submit.
func (s *scene) EmitWorldGeometryForSceneView(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gizmoRenderers == nil {
		s.gizmoRenderers = s.buildGizmos()
	}
	s.gizmos = s.gizmoRenderers
}

// buildGizmos creates the unit axis bars drawn in scene views, colored by axis.
func (s *scene) buildGizmos() []MeshRenderer {
	unlit, ok := s.finder.Find(shader.NameUnlitColor)
	if !ok {
		s.logger.Warnf("gizmo shader %q not found, scene view gizmos are skipped", shader.NameUnlitColor)
		return []MeshRenderer{}
	}
	mat := material.NewMaterial(unlit,
		material.WithName("Gizmo"),
		material.WithHideFlags(material.HideAndDontSave),
		material.WithInstancing(true),
	)
	bar := NewCubeMesh(1)
	const thickness = 0.02
	return []MeshRenderer{
		NewMeshRenderer(bar, mat, WithRendererName("Gizmo X"), WithLayer(GizmoLayer),
			WithPosition(0.5, 0, 0), WithScale(1, thickness, thickness), WithColor(common.Color{1, 0, 0, 1})),
		NewMeshRenderer(bar, mat, WithRendererName("Gizmo Y"), WithLayer(GizmoLayer),
			WithPosition(0, 0.5, 0), WithScale(thickness, 1, thickness), WithColor(common.Color{0, 1, 0, 1})),
		NewMeshRenderer(bar, mat, WithRendererName("Gizmo Z"), WithLayer(GizmoLayer),
			WithPosition(0, 0, 0.5), WithScale(thickness, thickness, 1), WithColor(common.Color{0, 0, 1, 1})),
	}
}

// Submit hands the pending frame to the backend and starts a new one. Failures are logged and
// kept for Err.
func (s *scene) Submit() {
	s.mu.Lock()
	frame := s.pending
	s.pending = Frame{Commands: make([]FrameCommand, 0, len(frame.Commands))}
	s.gizmos = nil
	frame.Stats.Submits = 1
	s.stats.Add(frame.Stats)
	backend := s.backend
	s.mu.Unlock()

	if backend == nil {
		s.setErr(ErrNoBackend)
		return
	}
	if err := backend.Execute(&frame); err != nil {
		s.setErr(fmt.Errorf("scene: execute frame: %w", err))
	}
}

func (s *scene) setErr(err error) {
	s.logger.Errorf("%v", err)
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
