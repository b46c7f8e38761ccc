package draw

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResults struct{}

func (stubResults) VisibleLights() []light.VisibleLight { return nil }
func (stubResults) VisibleRendererCount() int          { return 0 }
func (stubResults) LightIndexMap() []int               { return nil }
func (stubResults) SetLightIndexMap([]int)             {}

type recordingDrawer struct {
	settings []DrawSettings
	filters  []FilterSettings
}

func (r *recordingDrawer) DrawRenderers(_ culling.Results, s DrawSettings, f FilterSettings) {
	r.settings = append(r.settings, s)
	r.filters = append(r.filters, f)
}

func TestRenderQueueRanges(t *testing.T) {
	tests := []struct {
		queue       int
		opaque      bool
		transparent bool
	}{
		{material.RenderQueueBackground, true, false},
		{material.RenderQueueGeometry, true, false},
		{material.RenderQueueAlphaTest, true, false},
		{material.RenderQueueGeometryLast, true, false},
		{material.RenderQueueGeometryLast + 1, false, true},
		{material.RenderQueueTransparent, false, true},
		{material.RenderQueueOverlay, false, true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.opaque, QueueOpaque.Contains(tc.queue), "queue %d", tc.queue)
		assert.Equal(t, tc.transparent, QueueTransparent.Contains(tc.queue), "queue %d", tc.queue)
		assert.True(t, QueueAll.Contains(tc.queue))
	}
}

func TestSortingCriteria(t *testing.T) {
	assert.True(t, CommonOpaque.Has(SortingQuantizedFrontToBack))
	assert.False(t, CommonOpaque.Has(SortingBackToFront))
	assert.True(t, CommonTransparent.Has(SortingBackToFront))
	assert.False(t, CommonTransparent.Has(SortingQuantizedFrontToBack))
	assert.True(t, CommonTransparent.Has(SortingRenderQueue|SortingLayer))
}

func TestDrawSettings_SetPassTag(t *testing.T) {
	s := NewDrawSettings(mgl32.Vec3{}, shader.TagForwardBase, CommonOpaque)
	s.SetPassTag(2, shader.TagAlways)

	require.Len(t, s.PassTags, 3)
	assert.Equal(t, shader.TagForwardBase, s.PassTags[0])
	assert.Equal(t, shader.TagID(""), s.PassTags[1])
	assert.Equal(t, shader.TagAlways, s.PassTags[2])
}

func TestIssue_ForwardsOneRequest(t *testing.T) {
	d := &recordingDrawer{}
	s := NewDrawSettings(mgl32.Vec3{1, 2, 3}, shader.TagSRPDefaultUnlit, CommonTransparent)
	s.PerObjectData = PerObjectLightIndices | PerObjectLightData

	Issue(d, stubResults{}, s, NewFilterSettings(QueueTransparent))

	require.Len(t, d.settings, 1)
	assert.Equal(t, CommonTransparent, d.settings[0].Criteria)
	assert.True(t, d.settings[0].PerObjectData.Has(PerObjectLightIndices))
	assert.Equal(t, QueueTransparent, d.filters[0].RenderQueueRange)
	assert.Equal(t, ^uint32(0), d.filters[0].LayerMask)
}
