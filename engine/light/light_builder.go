package light

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation is an option builder that sets the orientation of the light.
//
// Parameters:
//   - q: the rotation applied to the +Z forward axis
//
// Returns:
//   - LightBuilderOption: a function that applies the rotation option to a lightImpl
func WithRotation(q mgl32.Quat) LightBuilderOption {
	return func(l *lightImpl) {
		l.rotation = q.Normalize()
	}
}

// WithDirection is an option builder that orients the light to shine along a direction.
// The direction is normalized before the rotation is derived.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.rotation = rotationTowards(mgl32.Vec3{x, y, z})
	}
}

// WithColor is an option builder that sets the color of the light.
//
// Parameters:
//   - c: the RGBA color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c common.Color) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the maximum attenuation distance for
// point and spot lights.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotAngle is an option builder that sets the full cone angle for spot lights.
//
// Parameters:
//   - deg: the full cone angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot angle option to a lightImpl
func WithSpotAngle(deg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.spotAngle = deg
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithLayerMask is an option builder that restricts the light to renderers on the given layers.
//
// Parameters:
//   - mask: the layer bit mask
//
// Returns:
//   - LightBuilderOption: a function that applies the layer mask option to a lightImpl
func WithLayerMask(mask uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.layerMask = mask
	}
}

// rotationTowards returns the rotation that turns +Z onto dir. A zero direction yields identity.
func rotationTowards(dir mgl32.Vec3) mgl32.Quat {
	if dir.Len() == 0 {
		return mgl32.QuatIdent()
	}
	dir = dir.Normalize()
	forward := mgl32.Vec3{0, 0, 1}
	// QuatBetweenVectors is unstable for opposite vectors
	if dir.Dot(forward) < -0.9999 {
		return mgl32.QuatRotate(mgl32.DegToRad(180), mgl32.Vec3{0, 1, 0})
	}
	return mgl32.QuatBetweenVectors(forward, dir)
}
