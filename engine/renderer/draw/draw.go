// Package draw holds the sort and filter policy a camera pass attaches to each draw request.
// The host owns the mechanics of sorting, batching and instancing; this package only describes
// what the pipeline asks for.
package draw

import (
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// SortingCriteria is a set of ordering rules applied within a draw request.
type SortingCriteria uint32

const (
	// SortingLayer orders by sorting layer.
	SortingLayer SortingCriteria = 1 << iota
	// SortingRenderQueue orders by material render queue.
	SortingRenderQueue
	// SortingBackToFront orders far objects first.
	SortingBackToFront
	// SortingQuantizedFrontToBack orders near objects first using coarse distance buckets.
	SortingQuantizedFrontToBack
	// SortingOptimizeStateChanges groups objects sharing a material and shader.
	SortingOptimizeStateChanges
	// SortingCanvasOrder orders by UI canvas order.
	SortingCanvasOrder

	SortingNone SortingCriteria = 0

	// CommonOpaque is the ordering for opaque geometry.
	CommonOpaque = SortingLayer | SortingRenderQueue | SortingQuantizedFrontToBack | SortingOptimizeStateChanges | SortingCanvasOrder
	// CommonTransparent is the ordering for transparent geometry.
	CommonTransparent = SortingLayer | SortingRenderQueue | SortingBackToFront | SortingOptimizeStateChanges
)

// Has reports whether every flag in f is set.
func (c SortingCriteria) Has(f SortingCriteria) bool {
	return c&f == f
}

// PerObjectData selects the per-object data the host attaches to each drawn renderer.
type PerObjectData uint32

const (
	// PerObjectLightData attaches the light count affecting the object.
	PerObjectLightData PerObjectData = 1 << iota
	// PerObjectLightIndices attaches the indices of the lights affecting the object.
	PerObjectLightIndices

	PerObjectNone PerObjectData = 0
)

// Has reports whether every flag in f is set.
func (p PerObjectData) Has(f PerObjectData) bool {
	return p&f == f
}

// RenderQueueRange is an inclusive range of render queue values.
type RenderQueueRange struct {
	LowerBound int
	UpperBound int
}

var (
	// QueueOpaque covers opaque and alpha-tested geometry.
	QueueOpaque = RenderQueueRange{LowerBound: 0, UpperBound: material.RenderQueueGeometryLast}
	// QueueTransparent covers everything drawn after opaque geometry.
	QueueTransparent = RenderQueueRange{LowerBound: material.RenderQueueGeometryLast + 1, UpperBound: material.RenderQueueMax}
	// QueueAll covers every queue.
	QueueAll = RenderQueueRange{LowerBound: 0, UpperBound: material.RenderQueueMax}
)

// Contains reports whether a queue value falls in the range.
func (r RenderQueueRange) Contains(queue int) bool {
	return queue >= r.LowerBound && queue <= r.UpperBound
}

// DrawSettings describes how the host should draw the renderers a request selects.
type DrawSettings struct {
	// PassTags lists the shader passes drawn, in order. A renderer is drawn once per matching tag.
	PassTags []shader.TagID
	// Criteria orders renderers within the request.
	Criteria SortingCriteria
	// CameraPosition is the eye the distance-based criteria measure from.
	CameraPosition mgl32.Vec3
	// EnableDynamicBatching lets the host merge small meshes sharing a material.
	EnableDynamicBatching bool
	// EnableInstancing lets the host draw renderers sharing a mesh and material in one call.
	EnableInstancing bool
	// PerObjectData selects the data attached to each renderer.
	PerObjectData PerObjectData
	// OverrideMaterial replaces every renderer's material when set.
	OverrideMaterial material.Material
}

// NewDrawSettings creates settings drawing a single pass.
//
// Parameters:
//   - cameraPosition: the eye used for distance sorting
//   - tag: the first pass tag
//   - criteria: the sort criteria
//
// Returns:
//   - DrawSettings: the settings
func NewDrawSettings(cameraPosition mgl32.Vec3, tag shader.TagID, criteria SortingCriteria) DrawSettings {
	return DrawSettings{
		PassTags:       []shader.TagID{tag},
		Criteria:       criteria,
		CameraPosition: cameraPosition,
	}
}

// SetPassTag sets the pass tag at an index, growing the list when needed.
//
// Parameters:
//   - index: the position in PassTags
//   - tag: the pass tag
func (s *DrawSettings) SetPassTag(index int, tag shader.TagID) {
	for len(s.PassTags) <= index {
		s.PassTags = append(s.PassTags, "")
	}
	s.PassTags[index] = tag
}

// FilterSettings selects which renderers a draw request considers.
type FilterSettings struct {
	RenderQueueRange RenderQueueRange
	LayerMask        uint32
}

// NewFilterSettings creates a filter for a queue range over every layer.
//
// Parameters:
//   - r: the render queue range
//
// Returns:
//   - FilterSettings: the filter
func NewFilterSettings(r RenderQueueRange) FilterSettings {
	return FilterSettings{RenderQueueRange: r, LayerMask: ^uint32(0)}
}

// Drawer is the host entry point that executes draw requests.
type Drawer interface {
	// DrawRenderers draws the visible renderers selected by the filter with the given settings.
	//
	// Parameters:
	//   - results: the culling results of the current camera
	//   - settings: the draw settings
	//   - filter: the renderer filter
	DrawRenderers(results culling.Results, settings DrawSettings, filter FilterSettings)
}

// Issue sends one draw request to the host.
//
// Parameters:
//   - d: the host drawer
//   - results: the culling results of the current camera
//   - settings: the draw settings
//   - filter: the renderer filter
func Issue(d Drawer, results culling.Results, settings DrawSettings, filter FilterSettings) {
	d.DrawRenderers(results, settings, filter)
}
