package scene

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
)

// cullChunkSize is the number of renderers one culling task tests.
const cullChunkSize = 64

// cullResults is the scene's culling.Results. It owns snapshots of everything it references.
type cullResults struct {
	params    culling.Parameters
	renderers []rendererState
	lights    []light.VisibleLight
	// lightBounds and lightMasks are parallel to lights.
	lightBounds []common.BoundingSphere
	lightMasks  []uint32
	indexMap    []int
}

var _ culling.Results = &cullResults{}

func (r *cullResults) VisibleLights() []light.VisibleLight {
	return r.lights
}

func (r *cullResults) VisibleRendererCount() int {
	return len(r.renderers)
}

func (r *cullResults) LightIndexMap() []int {
	return r.indexMap
}

func (r *cullResults) SetLightIndexMap(m []int) {
	r.indexMap = append(r.indexMap[:0], m...)
}

// lightSlot returns the uploaded slot of visible light i, -1 if it was not uploaded.
func (r *cullResults) lightSlot(i int) int {
	if i < len(r.indexMap) {
		return r.indexMap[i]
	}
	if i < light.MaxVisibleLights {
		return i
	}
	return -1
}

// lightIndices fills dst with the slots of the lights touching a renderer, -1 terminated.
func (r *cullResults) lightIndices(state *rendererState, dst *[material.MaxLightsPerObject]float32) {
	n := 0
	for i, vl := range r.lights {
		if n == len(dst) {
			break
		}
		slot := r.lightSlot(i)
		if slot < 0 || slot >= light.MaxVisibleLights || vl.Type == light.LightTypeArea {
			continue
		}
		if r.lightMasks[i]&(1<<state.layer) == 0 {
			continue
		}
		if vl.Type != light.LightTypeDirectional && !r.lightBounds[i].Intersects(state.bounds) {
			continue
		}
		dst[n] = float32(slot)
		n++
	}
	for ; n < len(dst); n++ {
		dst[n] = -1
	}
}

// cullRenderers tests every renderer against the frustum on the compute pool and returns the
// survivors in registration order.
func (s *scene) cullRenderers(params culling.Parameters, renderers []MeshRenderer) []rendererState {
	states := make([]rendererState, len(renderers))
	visible := make([]bool, len(renderers))

	// A WaitGroup provides the per-cull barrier; pool.Wait() blocks until workers idle-exit.
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(renderers); start += cullChunkSize {
		end := min(start+cullChunkSize, len(renderers))
		wg.Add(1)
		id := taskID
		taskID++
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := start; i < end; i++ {
					st := stateOf(renderers[i])
					states[i] = st
					visible[i] = st.enabled &&
						params.CullingMask&(1<<st.layer) != 0 &&
						params.Frustum.IntersectsSphere(st.bounds)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	out := states[:0]
	for i, ok := range visible {
		if !ok {
			continue
		}
		st := states[i]
		st.distance = st.bounds.Center.Sub(params.CameraPosition).Len()
		out = append(out, st)
	}
	return out
}

// cullLights keeps enabled directional lights and every other light whose range sphere touches
// the frustum.
func cullLights(params culling.Parameters, lights []light.Light, res *cullResults) {
	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		bounds := l.Bounds()
		if l.Type() != light.LightTypeDirectional && !params.Frustum.IntersectsSphere(bounds) {
			continue
		}
		res.lights = append(res.lights, l.ToVisibleLight())
		res.lightBounds = append(res.lightBounds, bounds)
		res.lightMasks = append(res.lightMasks, l.LayerMask())
	}
}
