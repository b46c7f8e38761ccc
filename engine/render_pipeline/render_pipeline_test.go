package render_pipeline

import (
	"bytes"
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/draw"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventKind string

const (
	evCullingParams eventKind = "cullingParameters"
	evEmitGeometry  eventKind = "emitGeometry"
	evCull          eventKind = "cull"
	evSetup         eventKind = "setupCamera"
	evExecute       eventKind = "execute"
	evSkybox        eventKind = "skybox"
	evDraw          eventKind = "draw"
	evSubmit        eventKind = "submit"
)

type event struct {
	kind     eventKind
	camera   string
	commands []command_buffer.Command
	settings draw.DrawSettings
	filter   draw.FilterSettings
}

type fakeResults struct {
	lights    []light.VisibleLight
	renderers int
	indexMap  []int
}

func (r *fakeResults) VisibleLights() []light.VisibleLight { return r.lights }
func (r *fakeResults) VisibleRendererCount() int          { return r.renderers }
func (r *fakeResults) LightIndexMap() []int               { return r.indexMap }
func (r *fakeResults) SetLightIndexMap(m []int)           { r.indexMap = m }

// recordingContext is a RenderContext that records every call in order.
type recordingContext struct {
	events  []event
	invalid map[string]bool
	lights  map[string][]light.VisibleLight
	results []*fakeResults
}

func newRecordingContext() *recordingContext {
	return &recordingContext{
		invalid: make(map[string]bool),
		lights:  make(map[string][]light.VisibleLight),
	}
}

func (c *recordingContext) CullingParameters(cam camera.Camera) (culling.Parameters, bool) {
	c.events = append(c.events, event{kind: evCullingParams, camera: cam.Name()})
	if c.invalid[cam.Name()] {
		return culling.Parameters{}, false
	}
	return culling.Parameters{CameraName: cam.Name(), Kind: cam.Kind()}, true
}

func (c *recordingContext) Cull(params culling.Parameters) culling.Results {
	c.events = append(c.events, event{kind: evCull, camera: params.CameraName})
	lights := c.lights[params.CameraName]
	r := &fakeResults{lights: lights, renderers: 5, indexMap: culling.IdentityLightIndexMap(len(lights))}
	c.results = append(c.results, r)
	return r
}

func (c *recordingContext) SetupCameraProperties(cam camera.Camera) {
	c.events = append(c.events, event{kind: evSetup, camera: cam.Name()})
}

func (c *recordingContext) ExecuteCommandBuffer(cb command_buffer.CommandBuffer) {
	cmds := make([]command_buffer.Command, cb.Len())
	copy(cmds, cb.Commands())
	c.events = append(c.events, event{kind: evExecute, commands: cmds})
}

func (c *recordingContext) DrawRenderers(_ culling.Results, s draw.DrawSettings, f draw.FilterSettings) {
	c.events = append(c.events, event{kind: evDraw, settings: s, filter: f})
}

func (c *recordingContext) DrawSkybox(cam camera.Camera) {
	c.events = append(c.events, event{kind: evSkybox, camera: cam.Name()})
}

func (c *recordingContext) Submit() {
	c.events = append(c.events, event{kind: evSubmit})
}

func (c *recordingContext) count(kind eventKind) int {
	n := 0
	for _, e := range c.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

func (c *recordingContext) kinds() []eventKind {
	out := make([]eventKind, len(c.events))
	for i, e := range c.events {
		out[i] = e.kind
	}
	return out
}

func (c *recordingContext) draws() []event {
	var out []event
	for _, e := range c.events {
		if e.kind == evDraw {
			out = append(out, e)
		}
	}
	return out
}

// editorContext adds scene view geometry injection to the recording context.
type editorContext struct {
	*recordingContext
}

func (c editorContext) EmitWorldGeometryForSceneView(cam camera.Camera) {
	c.events = append(c.events, event{kind: evEmitGeometry, camera: cam.Name()})
}

func twoLights() []light.VisibleLight {
	return []light.VisibleLight{
		{Type: light.LightTypeDirectional, FinalColor: common.ColorWhite, LocalToWorld: mgl32.Ident4()},
		{Type: light.LightTypePoint, FinalColor: common.Color{1, 0, 0, 1}, LocalToWorld: mgl32.Translate3D(0, 2, 0), Range: 5},
	}
}

func uploads(cmds []command_buffer.Command) map[string][]mgl32.Vec4 {
	out := make(map[string][]mgl32.Vec4)
	for _, c := range cmds {
		if c.Type == command_buffer.CommandSetGlobalVectorArray {
			out[c.Name] = c.Vectors
		}
	}
	return out
}

func TestRender_SingleCameraCommandOrder(t *testing.T) {
	ctx := newRecordingContext()
	cam := camera.NewCamera(camera.WithName("main"), camera.WithClearFlags(camera.ClearFlagsSkybox))
	ctx.lights["main"] = twoLights()

	p := NewRenderPipeline(WithBuildMode(BuildModeRelease))
	p.Render(ctx, []camera.Camera{cam})

	assert.Equal(t, []eventKind{
		evCullingParams, evCull, evSetup,
		evExecute,
		evSkybox,
		evDraw, evDraw,
		evExecute,
		evSubmit,
	}, ctx.kinds())

	first := ctx.events[3].commands
	require.Len(t, first, 6)
	assert.Equal(t, command_buffer.CommandClearRenderTarget, first[0].Type)
	assert.True(t, first[0].ClearDepth)
	assert.False(t, first[0].ClearColor)
	assert.Equal(t, command_buffer.CommandBeginSample, first[1].Type)

	up := uploads(first)
	require.Len(t, up, 4)
	colors := up[light.PropertyVisibleLightColors]
	dirs := up[light.PropertyVisibleLightDirectionsOrPositions]
	require.Len(t, colors, light.MaxVisibleLights)
	assert.Equal(t, mgl32.Vec4{0, 0, -1, 0}, dirs[0])
	assert.Equal(t, mgl32.Vec4{0, 2, 0, 1}, dirs[1])
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, colors[1])
	for i := 2; i < light.MaxVisibleLights; i++ {
		assert.Equal(t, mgl32.Vec4{}, colors[i], "slot %d", i)
		assert.Equal(t, mgl32.Vec4{}, dirs[i], "slot %d", i)
	}

	draws := ctx.draws()
	assert.Equal(t, draw.QueueOpaque, draws[0].filter.RenderQueueRange)
	assert.Equal(t, draw.CommonOpaque, draws[0].settings.Criteria)
	assert.Equal(t, []shader.TagID{shader.TagSRPDefaultUnlit}, draws[0].settings.PassTags)
	assert.True(t, draws[0].settings.PerObjectData.Has(draw.PerObjectLightIndices|draw.PerObjectLightData))
	assert.Equal(t, draw.QueueTransparent, draws[1].filter.RenderQueueRange)
	assert.Equal(t, draw.CommonTransparent, draws[1].settings.Criteria)
	assert.Nil(t, draws[1].settings.OverrideMaterial)

	last := ctx.events[7].commands
	require.Len(t, last, 1)
	assert.Equal(t, command_buffer.CommandEndSample, last[0].Type)
}

func TestRender_SkipsCamerasThatFailCulling(t *testing.T) {
	ctx := newRecordingContext()
	ctx.invalid["broken"] = true
	cams := []camera.Camera{
		camera.NewCamera(camera.WithName("a")),
		camera.NewCamera(camera.WithName("broken")),
		camera.NewCamera(camera.WithName("b")),
	}

	var logs bytes.Buffer
	p := NewRenderPipeline(WithLogger(common.NewWriterLogger("srp", true, &logs, &logs)))
	p.Render(ctx, cams)

	assert.Equal(t, 3, ctx.count(evCullingParams))
	assert.Equal(t, 2, ctx.count(evCull))
	assert.Equal(t, 2, ctx.count(evSubmit))
	assert.Equal(t, 4, ctx.count(evExecute))
	assert.Equal(t, 4, ctx.count(evDraw))
	assert.Contains(t, logs.String(), `skipping camera "broken"`)

	for _, e := range ctx.events {
		if e.kind == evCull {
			assert.NotEqual(t, "broken", e.camera)
		}
	}
}

func TestRender_ClearFlags(t *testing.T) {
	tests := []struct {
		flags      camera.ClearFlags
		skybox     bool
		clearDepth bool
		clearColor bool
	}{
		{camera.ClearFlagsSkybox, true, true, false},
		{camera.ClearFlagsColor, false, true, true},
		{camera.ClearFlagsDepth, false, true, false},
		{camera.ClearFlagsNothing, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.flags.String(), func(t *testing.T) {
			ctx := newRecordingContext()
			bg := common.Color{0.1, 0.2, 0.3, 1}
			cam := camera.NewCamera(camera.WithClearFlags(tc.flags), camera.WithBackgroundColor(bg))

			NewRenderPipeline().Render(ctx, []camera.Camera{cam})

			cmd := ctx.events[3].commands[0]
			assert.Equal(t, tc.clearDepth, cmd.ClearDepth)
			assert.Equal(t, tc.clearColor, cmd.ClearColor)
			assert.Equal(t, bg, cmd.Background)
			if tc.skybox {
				assert.Equal(t, 1, ctx.count(evSkybox))
			} else {
				assert.Equal(t, 0, ctx.count(evSkybox))
			}
		})
	}
}

func TestRender_BatchingFlags(t *testing.T) {
	ctx := newRecordingContext()
	p := Asset{DynamicBatching: true, GPUInstancing: false}.CreatePipeline()
	p.Render(ctx, []camera.Camera{camera.NewCamera()})

	assert.Equal(t, Config{DynamicBatching: true}, p.Config())
	for _, d := range ctx.draws() {
		assert.True(t, d.settings.EnableDynamicBatching)
		assert.False(t, d.settings.EnableInstancing)
	}

	ctx = newRecordingContext()
	NewRenderPipeline(WithGPUInstancing(true)).Render(ctx, []camera.Camera{camera.NewCamera()})
	for _, d := range ctx.draws() {
		assert.False(t, d.settings.EnableDynamicBatching)
		assert.True(t, d.settings.EnableInstancing)
	}
}

func TestRender_DiagnosticPass(t *testing.T) {
	tests := []struct {
		mode      BuildMode
		wantDraws int
	}{
		{BuildModeRelease, 2},
		{BuildModeDevelopment, 3},
		{BuildModeEditor, 3},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			ctx := newRecordingContext()
			p := NewRenderPipeline(WithBuildMode(tc.mode))
			p.Render(ctx, []camera.Camera{camera.NewCamera()})

			draws := ctx.draws()
			require.Len(t, draws, tc.wantDraws)
			assert.Equal(t, tc.mode.Diagnostics(), p.DiagnosticsEnabled())
			if tc.wantDraws < 3 {
				return
			}

			diag := draws[2]
			assert.Equal(t, shader.LegacyPassTags(), diag.settings.PassTags)
			require.NotNil(t, diag.settings.OverrideMaterial)
			assert.Equal(t, shader.NameInternalError, diag.settings.OverrideMaterial.Shader().Name())
			assert.Equal(t, draw.QueueOpaque, diag.filter.RenderQueueRange)
		})
	}
}

func TestRender_DiagnosticPassReusesErrorMaterial(t *testing.T) {
	ctx := newRecordingContext()
	p := NewRenderPipeline(WithBuildMode(BuildModeDevelopment))
	p.Render(ctx, []camera.Camera{camera.NewCamera(), camera.NewCamera()})

	draws := ctx.draws()
	require.Len(t, draws, 6)
	assert.Equal(t, draws[2].settings.OverrideMaterial.ID(), draws[5].settings.OverrideMaterial.ID())
}

func TestRender_MissingFallbackShader(t *testing.T) {
	var logs bytes.Buffer
	ctx := newRecordingContext()
	p := NewRenderPipeline(
		WithBuildMode(BuildModeDevelopment),
		WithShaderFinder(shader.NewRegistry()),
		WithLogger(common.NewWriterLogger("", false, &logs, &logs)),
	)
	p.Render(ctx, []camera.Camera{camera.NewCamera()})

	assert.False(t, p.DiagnosticsEnabled())
	assert.Contains(t, logs.String(), "diagnostic pass disabled")
	assert.Contains(t, logs.String(), shader.NameInternalError)

	draws := ctx.draws()
	require.Len(t, draws, 2)
	assert.Equal(t, draw.QueueOpaque, draws[0].filter.RenderQueueRange)
	assert.Equal(t, draw.QueueTransparent, draws[1].filter.RenderQueueRange)
}

func TestRender_SceneViewGeometry(t *testing.T) {
	sceneView := camera.NewCamera(camera.WithName("scene"), camera.WithKind(camera.KindSceneView))
	game := camera.NewCamera(camera.WithName("game"))

	t.Run("editor build", func(t *testing.T) {
		ctx := editorContext{newRecordingContext()}
		NewRenderPipeline(WithBuildMode(BuildModeEditor)).Render(ctx, []camera.Camera{sceneView, game})

		kinds := ctx.kinds()
		assert.Equal(t, []eventKind{evCullingParams, evEmitGeometry, evCull}, kinds[:3])
		assert.Equal(t, 1, ctx.count(evEmitGeometry))
	})

	t.Run("development build", func(t *testing.T) {
		ctx := editorContext{newRecordingContext()}
		NewRenderPipeline(WithBuildMode(BuildModeDevelopment)).Render(ctx, []camera.Camera{sceneView})
		assert.Equal(t, 0, ctx.count(evEmitGeometry))
	})

	t.Run("host without editor support", func(t *testing.T) {
		ctx := newRecordingContext()
		NewRenderPipeline(WithBuildMode(BuildModeEditor)).Render(ctx, []camera.Camera{sceneView})
		assert.Equal(t, 1, ctx.count(evSubmit))
	})
}

func TestRender_LightOverflowMarksIndexMap(t *testing.T) {
	ctx := newRecordingContext()
	lights := make([]light.VisibleLight, 20)
	for i := range lights {
		lights[i] = light.VisibleLight{Type: light.LightTypePoint, FinalColor: common.ColorWhite, LocalToWorld: mgl32.Translate3D(float32(i), 0, 0), Range: 1}
	}
	ctx.lights["Main Camera"] = lights

	NewRenderPipeline().Render(ctx, []camera.Camera{camera.NewCamera()})

	require.Len(t, ctx.results, 1)
	m := ctx.results[0].indexMap
	require.Len(t, m, 20)
	for i := range 16 {
		assert.Equal(t, i, m[i])
	}
	for i := 16; i < 20; i++ {
		assert.Equal(t, -1, m[i])
	}

	dirs := uploads(ctx.events[3].commands)[light.PropertyVisibleLightDirectionsOrPositions]
	assert.Equal(t, float32(15), dirs[15].X())
}

func TestRender_LightBufferResetBetweenCameras(t *testing.T) {
	ctx := newRecordingContext()
	many := make([]light.VisibleLight, 10)
	for i := range many {
		many[i] = light.VisibleLight{Type: light.LightTypePoint, FinalColor: common.ColorWhite, LocalToWorld: mgl32.Ident4(), Range: 1}
	}
	ctx.lights["a"] = many
	ctx.lights["b"] = twoLights()[:1]

	NewRenderPipeline().Render(ctx, []camera.Camera{
		camera.NewCamera(camera.WithName("a")),
		camera.NewCamera(camera.WithName("b")),
	})

	var lightExecs []map[string][]mgl32.Vec4
	for _, e := range ctx.events {
		if e.kind == evExecute && len(e.commands) > 1 {
			lightExecs = append(lightExecs, uploads(e.commands))
		}
	}
	require.Len(t, lightExecs, 2)

	second := lightExecs[1][light.PropertyVisibleLightColors]
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, second[0])
	for i := 1; i < light.MaxVisibleLights; i++ {
		assert.Equal(t, mgl32.Vec4{}, second[i], "slot %d", i)
	}
	// the first camera's recorded upload is unaffected by the second pack
	assert.Equal(t, mgl32.Vec4{1, 1, 1, 1}, lightExecs[0][light.PropertyVisibleLightColors][9])
}

func TestWithPassTag(t *testing.T) {
	ctx := newRecordingContext()
	NewRenderPipeline(WithPassTag("CustomLit")).Render(ctx, []camera.Camera{camera.NewCamera()})
	assert.Equal(t, []shader.TagID{"CustomLit"}, ctx.draws()[0].settings.PassTags)

	ctx = newRecordingContext()
	NewRenderPipeline(WithPassTag("")).Render(ctx, []camera.Camera{camera.NewCamera()})
	assert.Equal(t, []shader.TagID{shader.TagSRPDefaultUnlit}, ctx.draws()[0].settings.PassTags)
}
