package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-srp/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cameraCmd(x float32) scene.FrameCommand {
	return scene.FrameCommand{
		Type:    scene.FrameCommandCamera,
		Uniform: camera.GPUCameraUniform{CameraPosition: [3]float32{x, 0, 0}},
	}
}

func bufferCmd(cmd command_buffer.Command) scene.FrameCommand {
	return scene.FrameCommand{Type: scene.FrameCommandBuffer, Command: cmd}
}

func clearCmd(depth, color bool, bg common.Color) scene.FrameCommand {
	return bufferCmd(command_buffer.Command{
		Type:       command_buffer.CommandClearRenderTarget,
		ClearDepth: depth,
		ClearColor: color,
		Background: bg,
	})
}

func lightColorsCmd(c mgl32.Vec4) scene.FrameCommand {
	return bufferCmd(command_buffer.Command{
		Type:    command_buffer.CommandSetGlobalVectorArray,
		Name:    light.PropertyVisibleLightColors,
		Vectors: []mgl32.Vec4{c},
	})
}

func drawCmd(instances int) scene.FrameCommand {
	mat := material.NewMaterial(shader.NewShader(shader.NameUnlitColor))
	insts := make([]material.GPUInstance, instances)
	for i := range insts {
		insts[i].Color = [4]float32{float32(i), 0, 0, 1}
	}
	return scene.FrameCommand{
		Type: scene.FrameCommandDraw,
		Draw: &scene.DrawCall{
			Mesh:      scene.NewCubeMesh(1),
			Material:  mat,
			PassTag:   shader.TagSRPDefaultUnlit,
			Instances: insts,
		},
	}
}

func skyboxCmd() scene.FrameCommand {
	sky := shader.NewShader(shader.NameSkybox)
	return scene.FrameCommand{
		Type:     scene.FrameCommandSkybox,
		Material: material.NewMaterial(sky, material.WithRenderQueue(material.RenderQueueBackground)),
	}
}

func TestPlanPassesSingleCamera(t *testing.T) {
	frame := &scene.Frame{Commands: []scene.FrameCommand{
		cameraCmd(1),
		clearCmd(true, true, common.Color{0.25, 0.5, 0.75, 1}),
		bufferCmd(command_buffer.Command{Type: command_buffer.CommandBeginSample, Name: "Render Camera"}),
		lightColorsCmd(mgl32.Vec4{1, 0, 0, 1}),
		skyboxCmd(),
		drawCmd(3),
		drawCmd(2),
		bufferCmd(command_buffer.Command{Type: command_buffer.CommandEndSample, Name: "Render Camera"}),
	}}

	passes := planPasses(frame)
	require.Len(t, passes, 1)
	p := passes[0]

	assert.Equal(t, [3]float32{1, 0, 0}, p.uniform.CameraPosition)
	assert.True(t, p.clear.ClearColor)
	assert.True(t, p.clear.ClearDepth)
	assert.InDelta(t, 0.5, p.clear.Color.G, 1e-6)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, p.lights.Colors[0])

	require.Len(t, p.items, 3)
	assert.NotNil(t, p.items[0].skybox)
	assert.Equal(t, uint32(0), p.items[1].firstInstance)
	assert.Equal(t, uint32(3), p.items[2].firstInstance)
	assert.Equal(t, 5, p.instances)
}

func TestPlanPassesPerCamera(t *testing.T) {
	frame := &scene.Frame{Commands: []scene.FrameCommand{
		cameraCmd(1),
		clearCmd(true, true, common.ColorBlack),
		drawCmd(1),
		cameraCmd(2),
		clearCmd(true, false, common.Color{}),
		drawCmd(1),
	}}

	passes := planPasses(frame)
	require.Len(t, passes, 2)
	assert.Equal(t, float32(2), passes[1].uniform.CameraPosition[0])
	assert.True(t, passes[1].clear.ClearDepth)
	assert.False(t, passes[1].clear.ClearColor, "second camera keeps the first camera's color")
	assert.Equal(t, uint32(0), passes[1].items[0].firstInstance)
}

func TestPlanPassesSplitsOnLateUniformChange(t *testing.T) {
	frame := &scene.Frame{Commands: []scene.FrameCommand{
		cameraCmd(1),
		lightColorsCmd(mgl32.Vec4{1, 0, 0, 1}),
		drawCmd(1),
		lightColorsCmd(mgl32.Vec4{0, 1, 0, 1}),
		drawCmd(1),
		clearCmd(true, false, common.Color{}),
		drawCmd(1),
	}}

	passes := planPasses(frame)
	require.Len(t, passes, 3)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, passes[0].lights.Colors[0])
	assert.Equal(t, [4]float32{0, 1, 0, 1}, passes[1].lights.Colors[0])
	assert.False(t, passes[1].clear.ClearDepth)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, passes[2].lights.Colors[0], "lights carry over a split")
	assert.True(t, passes[2].clear.ClearDepth)
	for _, p := range passes {
		assert.Equal(t, float32(1), p.uniform.CameraPosition[0])
	}
}

func TestPlanPassesDropsOrphansAndEmptyPasses(t *testing.T) {
	frame := &scene.Frame{Commands: []scene.FrameCommand{
		drawCmd(1),
		clearCmd(true, true, common.ColorBlack),
		cameraCmd(1),
		{Type: scene.FrameCommandDraw},
		{Type: scene.FrameCommandSkybox, Material: material.NewMaterial(nil)},
		cameraCmd(2),
		drawCmd(0),
	}}

	assert.Empty(t, planPasses(frame))
	assert.Empty(t, planPasses(nil))
}

func TestInstanceData(t *testing.T) {
	frame := &scene.Frame{Commands: []scene.FrameCommand{
		cameraCmd(0),
		skyboxCmd(),
		drawCmd(2),
		drawCmd(1),
	}}
	passes := planPasses(frame)
	require.Len(t, passes, 1)

	data := passes[0].instanceData()
	require.Len(t, data, 3*instanceStride)

	colorR := func(instance int) float32 {
		off := instance*instanceStride + 64
		return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	assert.Equal(t, float32(0), colorR(0))
	assert.Equal(t, float32(1), colorR(1))
	assert.Equal(t, float32(0), colorR(2))
}

func TestMarshalGeometry(t *testing.T) {
	cube := scene.NewCubeMesh(2)

	verts := marshalVertices(cube.Vertices())
	require.Len(t, verts, cube.VertexCount()*vertexStride)
	first := cube.Vertices()[0]
	assert.Equal(t, first.Position.X(), math.Float32frombits(binary.LittleEndian.Uint32(verts[0:])))
	assert.Equal(t, first.Normal.Z(), math.Float32frombits(binary.LittleEndian.Uint32(verts[20:])))

	idx := marshalIndices([]uint32{0, 1, 70000})
	require.Len(t, idx, 12)
	assert.Equal(t, uint32(70000), binary.LittleEndian.Uint32(idx[8:]))

	var inst material.GPUInstance
	assert.Equal(t, instanceStride, inst.Size())
}
