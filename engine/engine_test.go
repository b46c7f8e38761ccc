package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/render_pipeline"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-srp/engine/scene"
	"github.com/Carmen-Shannon/oxy-srp/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderBackend records the label of each executed frame into a shared log.
type orderBackend struct {
	label string
	log   *[]string
	err   error
}

func (b *orderBackend) Execute(*scene.Frame) error {
	*b.log = append(*b.log, b.label)
	return b.err
}

// fakeRenderer records the frame lifecycle. Unused Renderer methods panic through the nil embed.
type fakeRenderer struct {
	renderer.Renderer
	calls    []string
	beginErr error
	width    int
	height   int
}

func (r *fakeRenderer) Execute(*scene.Frame) error {
	r.calls = append(r.calls, "execute")
	return nil
}

func (r *fakeRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return r.beginErr
}

func (r *fakeRenderer) Present() {
	r.calls = append(r.calls, "present")
}

func (r *fakeRenderer) Resize(width, height int) {
	r.width, r.height = width, height
}

// fakeWindow captures the resize callback the engine installs.
type fakeWindow struct {
	window.Window
	onResize func(width, height int)
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func newLitScene(t *testing.T, name string, options ...scene.SceneBuilderOption) scene.Scene {
	t.Helper()
	finder := shader.NewBuiltinRegistry()
	s := scene.NewScene(name, finder, options...)
	t.Cleanup(s.Close)

	sh, ok := finder.Find(shader.NameUnlitColor)
	require.True(t, ok)
	s.AddRenderer(scene.NewMeshRenderer(scene.NewCubeMesh(1), material.NewMaterial(sh)))
	s.AddCamera(camera.NewCamera(camera.WithLookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{})))
	return s
}

func TestRenderFrameWithoutScenes(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r))

	stats, err := e.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, scene.FrameStats{}, stats)
	assert.Empty(t, r.calls, "no frame is opened without scenes")
}

func TestRenderFrameSceneOrder(t *testing.T) {
	var log []string
	e := NewEngine(
		WithScene(10, newLitScene(t, "ui", scene.WithBackend(&orderBackend{label: "ui", log: &log}))),
		WithScene(-1, newLitScene(t, "background", scene.WithBackend(&orderBackend{label: "background", log: &log}))),
	)
	e.AddScene(0, newLitScene(t, "world", scene.WithBackend(&orderBackend{label: "world", log: &log})))

	stats, err := e.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{"background", "world", "ui"}, log)
	assert.Equal(t, 3, stats.Submits)
	assert.Equal(t, 3, stats.Cameras)
	assert.Equal(t, stats, e.FrameStats())

	// stats are per frame, not cumulative
	stats, err = e.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Submits)
}

func TestRenderFrameJoinsSceneErrors(t *testing.T) {
	var log []string
	boom := errors.New("device lost")
	e := NewEngine(
		WithScene(0, newLitScene(t, "ok", scene.WithBackend(&orderBackend{label: "ok", log: &log}))),
		WithScene(1, newLitScene(t, "broken", scene.WithBackend(&orderBackend{label: "broken", log: &log, err: boom}))),
	)

	_, err := e.RenderFrame()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `scene "broken"`)
	assert.Equal(t, []string{"ok", "broken"}, log, "a failing scene does not stop the others")
}

func TestRenderFrameSharesOneRendererFrame(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r), WithLogger(common.NewNopLogger()))
	a := newLitScene(t, "a")
	b := newLitScene(t, "b")
	e.AddScene(0, a)
	e.AddScene(1, b)

	assert.Same(t, r, a.Backend(), "scenes without a backend attach to the renderer")

	_, err := e.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{"begin", "execute", "execute", "present"}, r.calls)
}

func TestRenderFrameKeepsExplicitBackend(t *testing.T) {
	var log []string
	r := &fakeRenderer{}
	s := newLitScene(t, "offscreen", scene.WithBackend(&orderBackend{label: "offscreen", log: &log}))
	e := NewEngine(WithRenderer(r), WithScene(0, s))

	_, err := e.RenderFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{"offscreen"}, log)
	assert.Equal(t, []string{"begin", "present"}, r.calls)
}

func TestRenderFrameBeginFailure(t *testing.T) {
	r := &fakeRenderer{beginErr: errors.New("surface outdated")}
	e := NewEngine(WithRenderer(r), WithScene(0, newLitScene(t, "a")))

	_, err := e.RenderFrame()
	require.Error(t, err)
	assert.Equal(t, []string{"begin"}, r.calls)
}

func TestSceneRegistry(t *testing.T) {
	e := NewEngine()
	s := newLitScene(t, "a")

	e.AddScene(3, s)
	e.AddScene(4, nil)
	assert.Same(t, s, e.Scene(3))
	assert.Nil(t, e.Scene(4))

	scenes := e.Scenes()
	require.Len(t, scenes, 1)
	delete(scenes, 3)
	assert.NotNil(t, e.Scene(3), "Scenes returns a copy")

	e.RemoveScene(3)
	assert.Empty(t, e.Scenes())
}

func TestResizeUpdatesRendererAndCameras(t *testing.T) {
	r := &fakeRenderer{}
	w := &fakeWindow{}
	s := newLitScene(t, "a")
	NewEngine(WithWindow(w), WithRenderer(r), WithScene(0, s))
	require.NotNil(t, w.onResize)

	w.onResize(1920, 1080)
	assert.Equal(t, 1920, r.width)
	assert.Equal(t, 1080, r.height)
	assert.InDelta(t, 1920.0/1080.0, s.Cameras()[0].Aspect(), 1e-6)

	w.onResize(800, 0)
	assert.InDelta(t, 1920.0/1080.0, s.Cameras()[0].Aspect(), 1e-6, "a zero height keeps the aspect")
}

func TestDefaults(t *testing.T) {
	e := NewEngine(WithRenderPipeline(render_pipeline.NewRenderPipeline(render_pipeline.WithGPUInstancing(true))))
	assert.NotNil(t, e.Pipeline())
	assert.NotNil(t, e.Profiler())
	assert.Nil(t, e.Window())
	assert.Nil(t, e.Renderer())
}

func TestRateOptions(t *testing.T) {
	e := NewEngine(WithTickRate(120), WithRenderFrameLimit(30)).(*engine)
	assert.Equal(t, time.Second/120, e.engineTickRate)
	assert.Equal(t, time.Second/30, e.renderFrameLimit)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)
	e.SetRenderFrameLimit(0)
	assert.Zero(t, e.renderFrameLimit)
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	e.Quit()
	assert.NotPanics(t, e.Quit)
}
