package material

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the RGBA color of the material.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithRenderQueue is an option builder that sets the render queue explicitly.
//
// Parameters:
//   - queue: the render queue, clamped to [0, RenderQueueMax]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the render queue option to a material
func WithRenderQueue(queue int) MaterialBuilderOption {
	return func(m *material) {
		m.renderQueue = min(max(queue, 0), RenderQueueMax)
	}
}

// WithHideFlags is an option builder that sets the editor visibility and save flags.
//
// Parameters:
//   - flags: the hide flags
//
// Returns:
//   - MaterialBuilderOption: a function that applies the hide flags option to a material
func WithHideFlags(flags HideFlags) MaterialBuilderOption {
	return func(m *material) {
		m.hideFlags = flags
	}
}

// WithInstancing is an option builder that allows renderers using the material to be drawn instanced.
//
// Parameters:
//   - enabled: true to allow instancing
//
// Returns:
//   - MaterialBuilderOption: a function that applies the instancing option to a material
func WithInstancing(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.enableInstancing = enabled
	}
}
