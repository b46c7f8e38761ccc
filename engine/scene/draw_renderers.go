package scene

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/draw"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// maxBatchMeshVertices is the largest mesh dynamic batching will merge.
	maxBatchMeshVertices = 300

	// maxBatchVertices caps the vertex count of one combined mesh.
	maxBatchVertices = 1 << 16

	// maxInstancesPerDraw caps the instance count of one instanced draw.
	maxInstancesPerDraw = 1023

	// distanceBuckets is the resolution of quantized front-to-back sorting, buckets per octave.
	distanceBuckets = 8
)

// DrawRenderers selects visible renderers matching the filter and each pass tag, sorts them,
// groups them into batches and appends the resulting draw calls to the pending frame.
//
// Parameters:
//   - results: culling results returned by this scene's Cull
//   - settings: the draw settings
//   - filter: the renderer filter
func (s *scene) DrawRenderers(results culling.Results, settings draw.DrawSettings, filter draw.FilterSettings) {
	res, ok := results.(*cullResults)
	if !ok || res == nil {
		s.logger.Warnf("DrawRenderers: culling results were not produced by this scene")
		return
	}
	if settings.OverrideMaterial != nil && settings.OverrideMaterial.Shader() == nil {
		s.logger.Warnf("DrawRenderers: override material %q has no shader", settings.OverrideMaterial.Name())
		return
	}

	items := make([]rendererState, 0, len(res.renderers))
	for _, tag := range settings.PassTags {
		if tag == "" {
			continue
		}
		items = items[:0]
		for _, st := range res.renderers {
			if st.material == nil || st.material.Shader() == nil {
				continue
			}
			if !filter.RenderQueueRange.Contains(st.material.RenderQueue()) {
				continue
			}
			if filter.LayerMask&(1<<st.layer) == 0 {
				continue
			}
			if !st.material.Shader().HasPass(tag) {
				continue
			}
			if settings.OverrideMaterial != nil {
				st.material = settings.OverrideMaterial
				st.color = settings.OverrideMaterial.BaseColor()
				st.hasBlock = false
			}
			items = append(items, st)
		}
		if len(items) == 0 {
			continue
		}

		sortRenderers(items, settings.Criteria)
		calls := buildDrawCalls(res, items, tag, settings)

		s.mu.Lock()
		for _, c := range calls {
			s.pending.Commands = append(s.pending.Commands, FrameCommand{Type: FrameCommandDraw, Draw: c})
			s.pending.Stats.DrawCalls++
			s.pending.Stats.Instances += len(c.Instances)
			if c.Batched {
				s.pending.Stats.DynamicBatches++
			} else if len(c.Instances) > 1 {
				s.pending.Stats.InstancedBatches++
			}
		}
		s.mu.Unlock()
	}
}

// sortRenderers orders items by the requested criteria. Ties keep registration order.
func sortRenderers(items []rendererState, criteria draw.SortingCriteria) {
	slices.SortStableFunc(items, func(a, b rendererState) int {
		if criteria.Has(draw.SortingLayer) {
			if c := cmp.Compare(a.sortingOrder, b.sortingOrder); c != 0 {
				return c
			}
		}
		if criteria.Has(draw.SortingRenderQueue) {
			if c := cmp.Compare(a.material.RenderQueue(), b.material.RenderQueue()); c != 0 {
				return c
			}
		}
		switch {
		case criteria.Has(draw.SortingBackToFront):
			if c := cmp.Compare(b.distance, a.distance); c != 0 {
				return c
			}
		case criteria.Has(draw.SortingQuantizedFrontToBack):
			if c := cmp.Compare(distanceBucket(a.distance), distanceBucket(b.distance)); c != 0 {
				return c
			}
		}
		if criteria.Has(draw.SortingOptimizeStateChanges) {
			if c := strings.Compare(a.material.Shader().Name(), b.material.Shader().Name()); c != 0 {
				return c
			}
			if c := strings.Compare(a.material.ID().String(), b.material.ID().String()); c != 0 {
				return c
			}
			if c := strings.Compare(a.mesh.ID().String(), b.mesh.ID().String()); c != 0 {
				return c
			}
		}
		return 0
	})
}

// distanceBucket maps a distance onto logarithmic buckets so nearby objects compare equal and
// state sorting can group them.
func distanceBucket(d float32) int {
	return int(math.Log2(1+float64(max(d, 0))) * distanceBuckets)
}

func canInstance(st *rendererState, settings draw.DrawSettings) bool {
	return settings.EnableInstancing && st.material.InstancingEnabled() && st.material.Shader().SupportsInstancing()
}

func canBatch(st *rendererState, settings draw.DrawSettings) bool {
	return settings.EnableDynamicBatching && !st.hasBlock && st.mesh.VertexCount() <= maxBatchMeshVertices
}

// buildDrawCalls groups sorted items into draw calls. Consecutive instanceable items sharing a
// mesh and material become one instanced call; otherwise consecutive batchable items sharing a
// material are merged into one world-space mesh. Grouping never reorders items.
func buildDrawCalls(res *cullResults, items []rendererState, tag shader.TagID, settings draw.DrawSettings) []*DrawCall {
	withLights := settings.PerObjectData.Has(draw.PerObjectLightIndices)
	instanceOf := func(st *rendererState, model mgl32.Mat4) material.GPUInstance {
		inst := material.GPUInstance{Model: model, Color: st.color}
		if withLights {
			res.lightIndices(st, &inst.LightIndices)
		} else {
			for i := range inst.LightIndices {
				inst.LightIndices[i] = -1
			}
		}
		return inst
	}

	var calls []*DrawCall
	for i := 0; i < len(items); {
		first := &items[i]
		j := i + 1

		switch {
		case canInstance(first, settings):
			for j < len(items) && j-i < maxInstancesPerDraw &&
				items[j].mesh == first.mesh && items[j].material == first.material {
				j++
			}
			call := &DrawCall{Mesh: first.mesh, Material: first.material, PassTag: tag}
			for k := i; k < j; k++ {
				call.Instances = append(call.Instances, instanceOf(&items[k], items[k].model))
				call.Renderers = append(call.Renderers, items[k].renderer)
			}
			calls = append(calls, call)

		case canBatch(first, settings):
			verts := first.mesh.VertexCount()
			for j < len(items) && items[j].material == first.material && canBatch(&items[j], settings) &&
				!canInstance(&items[j], settings) && verts+items[j].mesh.VertexCount() <= maxBatchVertices {
				verts += items[j].mesh.VertexCount()
				j++
			}
			if j-i == 1 {
				calls = append(calls, singleCall(first, tag, instanceOf(first, first.model)))
				break
			}
			meshes := make([]Mesh, 0, j-i)
			models := make([]mgl32.Mat4, 0, j-i)
			renderers := make([]MeshRenderer, 0, j-i)
			for k := i; k < j; k++ {
				meshes = append(meshes, items[k].mesh)
				models = append(models, items[k].model)
				renderers = append(renderers, items[k].renderer)
			}
			inst := instanceOf(first, mgl32.Ident4())
			if withLights {
				inst.LightIndices = mergeLightIndices(res, items[i:j])
			}
			calls = append(calls, &DrawCall{
				Mesh:      combineMeshes(meshes, models),
				Material:  first.material,
				PassTag:   tag,
				Instances: []material.GPUInstance{inst},
				Batched:   true,
				Renderers: renderers,
			})

		default:
			calls = append(calls, singleCall(first, tag, instanceOf(first, first.model)))
		}
		i = j
	}
	return calls
}

func singleCall(st *rendererState, tag shader.TagID, inst material.GPUInstance) *DrawCall {
	return &DrawCall{
		Mesh:      st.mesh,
		Material:  st.material,
		PassTag:   tag,
		Instances: []material.GPUInstance{inst},
		Renderers: []MeshRenderer{st.renderer},
	}
}

// mergeLightIndices is the union of the light slots of a dynamic batch, first come first kept.
func mergeLightIndices(res *cullResults, items []rendererState) [material.MaxLightsPerObject]float32 {
	var out [material.MaxLightsPerObject]float32
	n := 0
	var scratch [material.MaxLightsPerObject]float32
	for k := range items {
		res.lightIndices(&items[k], &scratch)
		for _, idx := range scratch {
			if idx < 0 || n == len(out) {
				break
			}
			if !slices.Contains(out[:n], idx) {
				out[n] = idx
				n++
			}
		}
	}
	for ; n < len(out); n++ {
		out[n] = -1
	}
	return out
}
