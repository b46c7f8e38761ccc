package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/command_buffer"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexStride is the byte size of one scene.Vertex on the GPU (position + normal).
const vertexStride = 24

// instanceStride is the byte size of one material.GPUInstance on the GPU.
const instanceStride = 112

// passItem is one draw inside a camera pass: either the skybox or a mesh draw call.
type passItem struct {
	skybox material.Material
	draw   *scene.DrawCall
	// firstInstance indexes the draw's first instance in the pass instance data.
	firstInstance uint32
}

// cameraPass is the GPU work recorded for one camera between render target changes.
type cameraPass struct {
	camera    camera.Camera
	uniform   camera.GPUCameraUniform
	lights    light.GPUVisibleLights
	clear     PassClear
	items     []passItem
	instances int
}

// planPasses splits a frame into camera passes. A pass starts at every camera command and again
// whenever a clear or a light upload arrives after the current pass already has draws, so every
// draw sees the uniforms that were current when it was recorded. Commands that arrive before any
// camera are dropped, as are passes that neither clear nor draw.
func planPasses(frame *scene.Frame) []cameraPass {
	if frame == nil {
		return nil
	}
	var passes []cameraPass
	cur := -1

	split := func() {
		prev := passes[cur]
		passes = append(passes, cameraPass{
			camera:  prev.camera,
			uniform: prev.uniform,
			lights:  prev.lights,
		})
		cur = len(passes) - 1
	}

	for i := range frame.Commands {
		fc := &frame.Commands[i]
		switch fc.Type {
		case scene.FrameCommandCamera:
			passes = append(passes, cameraPass{camera: fc.Camera, uniform: fc.Uniform})
			cur = len(passes) - 1

		case scene.FrameCommandBuffer:
			if cur < 0 {
				continue
			}
			cmd := fc.Command
			switch cmd.Type {
			case command_buffer.CommandClearRenderTarget:
				if len(passes[cur].items) > 0 {
					split()
				}
				p := &passes[cur]
				p.clear.ClearColor = p.clear.ClearColor || cmd.ClearColor
				p.clear.ClearDepth = p.clear.ClearDepth || cmd.ClearDepth
				if cmd.ClearColor {
					p.clear.Color = wgpu.Color{
						R: float64(cmd.Background[0]),
						G: float64(cmd.Background[1]),
						B: float64(cmd.Background[2]),
						A: float64(cmd.Background[3]),
					}
				}
			case command_buffer.CommandSetGlobalVectorArray:
				if len(passes[cur].items) > 0 {
					split()
				}
				passes[cur].lights.SetArray(cmd.Name, cmd.Vectors)
			}

		case scene.FrameCommandSkybox:
			if cur < 0 || fc.Material == nil || fc.Material.Shader() == nil {
				continue
			}
			passes[cur].items = append(passes[cur].items, passItem{skybox: fc.Material})

		case scene.FrameCommandDraw:
			if cur < 0 || fc.Draw == nil || fc.Draw.Mesh == nil || len(fc.Draw.Instances) == 0 {
				continue
			}
			p := &passes[cur]
			p.items = append(p.items, passItem{draw: fc.Draw, firstInstance: uint32(p.instances)})
			p.instances += len(fc.Draw.Instances)
		}
	}

	out := passes[:0]
	for _, p := range passes {
		if len(p.items) == 0 && !p.clear.ClearColor && !p.clear.ClearDepth {
			continue
		}
		out = append(out, p)
	}
	return out
}

// instanceData serializes every draw's instances of a pass back to back.
func (p *cameraPass) instanceData() []byte {
	buf := make([]byte, p.instances*instanceStride)
	for _, it := range p.items {
		if it.draw == nil {
			continue
		}
		off := int(it.firstInstance) * instanceStride
		for i := range it.draw.Instances {
			it.draw.Instances[i].MarshalTo(buf[off:])
			off += instanceStride
		}
	}
	return buf
}

// marshalVertices serializes mesh vertices as tightly packed position and normal triples.
func marshalVertices(vertices []scene.Vertex) []byte {
	buf := make([]byte, len(vertices)*vertexStride)
	off := 0
	for _, v := range vertices {
		for _, f := range [6]float32{v.Position[0], v.Position[1], v.Position[2], v.Normal[0], v.Normal[1], v.Normal[2]} {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

// marshalIndices returns a byte view of 32-bit indices. The view aliases indices.
func marshalIndices(indices []uint32) []byte {
	return common.SliceToBytes(indices)
}
