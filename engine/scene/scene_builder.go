package scene

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/camera"
	"github.com/Carmen-Shannon/oxy-srp/engine/light"
	"github.com/Carmen-Shannon/oxy-srp/engine/profiler"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithLogger sets the logger for culling diagnostics and submit failures.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger common.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBackend sets the backend submitted frames are executed on.
//
// Parameters:
//   - b: the backend
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackend(b Backend) SceneBuilderOption {
	return func(s *scene) {
		s.backend = b
	}
}

// WithProfiler routes command buffer sample markers to a profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) SceneBuilderOption {
	return func(s *scene) {
		s.profiler = p
	}
}

// WithRenderers adds initial renderers to the scene.
//
// Parameters:
//   - renderers: the renderers to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderers(renderers ...MeshRenderer) SceneBuilderOption {
	return func(s *scene) {
		for _, r := range renderers {
			if r != nil {
				s.renderers = append(s.renderers, r)
			}
		}
	}
}

// WithLights adds initial lights to the scene.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithCameras adds initial cameras to the scene.
//
// Parameters:
//   - cameras: the cameras to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameras(cameras ...camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		for _, c := range cameras {
			if c != nil {
				s.cameras = append(s.cameras, c)
			}
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines used to frustum cull renderers.
// Defaults to runtime.NumCPU()-1. Lower values reduce scheduling overhead for simple scenes.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}
