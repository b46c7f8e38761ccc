package scene

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshRendererBuilderOption is a functional option for configuring a MeshRenderer.
type MeshRendererBuilderOption func(*meshRenderer)

// WithRendererName sets the renderer's display name. Defaults to the mesh name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithRendererName(name string) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.name = name
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - x, y, z: the world position
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithPosition(x, y, z float32) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial world rotation.
//
// Parameters:
//   - q: the rotation
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithRotation(q mgl32.Quat) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.rotation = q.Normalize()
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - x, y, z: the scale factors
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithScale(x, y, z float32) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.scale = mgl32.Vec3{x, y, z}
	}
}

// WithLayer sets the culling layer, clamped to 31.
//
// Parameters:
//   - layer: the layer index
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithLayer(layer uint8) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.layer = min(layer, 31)
	}
}

// WithSortingOrder sets the sorting layer order.
//
// Parameters:
//   - order: the order, lower draws first
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithSortingOrder(order int) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.sortingOrder = order
	}
}

// WithEnabled sets whether the renderer starts enabled.
//
// Parameters:
//   - enabled: the initial state
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithEnabled(enabled bool) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		r.enabled = enabled
	}
}

// WithColor sets a per-renderer _Color override in a fresh property block.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - MeshRendererBuilderOption: option function to apply
func WithColor(c common.Color) MeshRendererBuilderOption {
	return func(r *meshRenderer) {
		if r.block == nil {
			r.block = material.NewPropertyBlock()
		}
		r.block.SetColor(material.PropertyColor, c)
	}
}
