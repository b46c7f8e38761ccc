package render_pipeline

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/culling"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/draw"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
)

// diagnosticPass draws renderers whose shaders only carry legacy pass tags with the error material,
// so content the forward pass silently skips shows up magenta.
type diagnosticPass struct {
	errorMaterial material.Material
}

// newDiagnosticPass builds the pass and its error material. A missing error shader disables the
// pass for the lifetime of the pipeline.
func newDiagnosticPass(finder shader.Finder, logger common.Logger) *diagnosticPass {
	m, err := material.NewErrorMaterial(finder)
	if err != nil {
		logger.Warnf("diagnostic pass disabled: %v", err)
		return &diagnosticPass{}
	}
	return &diagnosticPass{errorMaterial: m}
}

// Enabled reports whether Execute issues a draw. A nil pass is disabled.
func (d *diagnosticPass) Enabled() bool {
	return d != nil && d.errorMaterial != nil
}

// Execute issues one opaque-range draw covering every legacy pass tag.
func (d *diagnosticPass) Execute(drawer draw.Drawer, cam camera.Camera, results culling.Results) {
	if !d.Enabled() {
		return
	}

	tags := shader.LegacyPassTags()
	settings := draw.NewDrawSettings(cam.Position(), tags[0], draw.SortingNone)
	for i, tag := range tags[1:] {
		settings.SetPassTag(i+1, tag)
	}
	settings.OverrideMaterial = d.errorMaterial

	draw.Issue(drawer, results, settings, draw.NewFilterSettings(draw.QueueOpaque))
}
