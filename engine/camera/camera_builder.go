package camera

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithName sets the camera's name.
//
// Parameters:
//   - name: the camera name
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's name
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithKind sets what the camera renders for.
//
// Parameters:
//   - kind: the camera kind
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's kind
func WithKind(kind Kind) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.kind = kind
	}
}

// WithClearFlags sets what the camera clears before drawing.
//
// Parameters:
//   - flags: the clear flags
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's clear flags
func WithClearFlags(flags ClearFlags) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearFlags = flags
	}
}

// WithBackgroundColor sets the color used by ClearFlagsColor.
//
// Parameters:
//   - col: the background color
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's background color
func WithBackgroundColor(col common.Color) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.background = col
	}
}

// WithCullingMask restricts the camera to the given layers.
//
// Parameters:
//   - mask: the layer bit mask
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's culling mask
func WithCullingMask(mask uint32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.cullingMask = mask
	}
}

// WithDepth sets the camera's draw order.
//
// Parameters:
//   - depth: lower depths render first
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's depth
func WithDepth(depth float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.depth = depth
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithLookAt places the camera at eye looking at target. An attached controller overrides this on Update.
//
// Parameters:
//   - eye: the eye position
//   - target: the look-at point
//
// Returns:
//   - CameraBuilderOption: functional option to set the view
func WithLookAt(eye, target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.lookAt(eye, target)
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
