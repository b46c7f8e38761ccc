package render_pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/draw"
)

// cameraSampleName is the profiler scope wrapped around each camera's commands.
const cameraSampleName = "Render Camera"

// renderCamera runs the forward pass for one camera.
func (p *renderPipelineImpl) renderCamera(ctx RenderContext, cam camera.Camera) {
	params, ok := ctx.CullingParameters(cam)
	if !ok {
		p.logger.Debugf("skipping camera %q: no valid culling parameters", cameraName(cam))
		return
	}

	if cam.Kind() == camera.KindSceneView && p.config.BuildMode.Editor() {
		if ec, ok := ctx.(EditorContext); ok {
			ec.EmitWorldGeometryForSceneView(cam)
		}
	}

	results := ctx.Cull(params)
	ctx.SetupCameraProperties(cam)

	policy := cam.ClearFlags().Policy()
	cb := p.commandBuffer
	cb.ClearRenderTarget(policy.ClearDepth, policy.ClearColor, cam.BackgroundColor())
	cb.BeginSample(cameraSampleName)

	p.uploadLights(results)
	ctx.ExecuteCommandBuffer(cb)
	cb.Clear()

	if policy.DrawSkybox {
		ctx.DrawSkybox(cam)
	}

	settings := draw.NewDrawSettings(cam.Position(), p.passTag, draw.CommonOpaque)
	settings.EnableDynamicBatching = p.config.DynamicBatching
	settings.EnableInstancing = p.config.GPUInstancing
	settings.PerObjectData = draw.PerObjectLightIndices | draw.PerObjectLightData

	draw.Issue(ctx, results, settings, draw.NewFilterSettings(draw.QueueOpaque))

	settings.Criteria = draw.CommonTransparent
	draw.Issue(ctx, results, settings, draw.NewFilterSettings(draw.QueueTransparent))

	if p.config.BuildMode.Diagnostics() {
		p.diagnostic.Execute(ctx, cam, results)
	}

	cb.EndSample(cameraSampleName)
	ctx.ExecuteCommandBuffer(cb)
	cb.Clear()

	ctx.Submit()
}

// uploadLights packs the visible lights and records the four global array uploads.
func (p *renderPipelineImpl) uploadLights(results culling.Results) {
	visible := results.VisibleLights()
	if dropped := light.PackInto(&p.lightBuffer, visible); dropped > 0 {
		m := results.LightIndexMap()
		for i := light.MaxVisibleLights; i < len(m); i++ {
			m[i] = -1
		}
		results.SetLightIndexMap(m)
		p.logger.Debugf("%d visible lights exceed the %d light slots; %d dropped",
			len(visible), light.MaxVisibleLights, dropped)
	}

	cb := p.commandBuffer
	cb.SetGlobalVectorArray(light.PropertyVisibleLightColors, p.lightBuffer.Colors[:])
	cb.SetGlobalVectorArray(light.PropertyVisibleLightDirectionsOrPositions, p.lightBuffer.DirectionsOrPositions[:])
	cb.SetGlobalVectorArray(light.PropertyVisibleLightAttenuations, p.lightBuffer.Attenuations[:])
	cb.SetGlobalVectorArray(light.PropertyVisibleLightSpotDirections, p.lightBuffer.SpotDirections[:])
}

func cameraName(cam camera.Camera) string {
	if cam == nil {
		return "<nil>"
	}
	return cam.Name()
}
