package light

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along its forward axis.
	// Attenuates with both distance and angle from the cone axis.
	LightTypeSpot

	// LightTypeArea represents a rectangular baked light. The forward pass has no realtime model for it,
	// so the packer leaves its slot empty.
	LightTypeArea
)

// String returns the name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "Directional"
	case LightTypePoint:
		return "Point"
	case LightTypeSpot:
		return "Spot"
	case LightTypeArea:
		return "Area"
	default:
		return "Unknown"
	}
}

// VisibleLight is the per-camera snapshot of a light that survived culling. It is produced by the host's
// cull step and only valid until the next camera is culled.
type VisibleLight struct {
	// Type selects which of the remaining fields are meaningful.
	Type LightType
	// FinalColor is the light color with intensity already applied.
	FinalColor common.Color
	// LocalToWorld is the light transform. Column 2 is the forward axis and column 3 the position.
	LocalToWorld mgl32.Mat4
	// Range is the attenuation distance for point and spot lights.
	Range float32
	// SpotAngle is the full cone angle of a spot light in degrees.
	SpotAngle float32
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType  LightType
	position   mgl32.Vec3
	rotation   mgl32.Quat
	color      common.Color
	intensity  float32
	lightRange float32
	spotAngle  float32
	enabled    bool
	layerMask  uint32
}

// Light defines the interface for a realtime light source owned by the scene.
//
// A light is oriented by a rotation: its forward axis is the rotated +Z axis and
// it shines along that axis. Type-specific properties (range for point and spot
// lights, cone angle for spot lights) are ignored for other types.
//
// The scene snapshots enabled lights into VisibleLight values during culling.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Rotation returns the orientation of the light.
	//
	// Returns:
	//   - mgl32.Quat: the rotation applied to the +Z forward axis
	Rotation() mgl32.Quat

	// Forward returns the normalized direction the light shines along.
	//
	// Returns:
	//   - mgl32.Vec3: the rotated +Z axis
	Forward() mgl32.Vec3

	// Color returns the RGBA color of the light.
	//
	// Returns:
	//   - common.Color: the color before intensity is applied
	Color() common.Color

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point and spot lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// SpotAngle returns the full cone angle in degrees for spot lights.
	//
	// Returns:
	//   - float32: the cone angle
	SpotAngle() float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are never reported as visible.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// LayerMask returns the renderer layers this light illuminates.
	//
	// Returns:
	//   - uint32: the layer bit mask
	LayerMask() uint32

	// LocalToWorld returns the light's transform built from its position and rotation.
	//
	// Returns:
	//   - mgl32.Mat4: the translation * rotation matrix
	LocalToWorld() mgl32.Mat4

	// Bounds returns the world-space sphere the light can affect. Directional lights report a zero radius.
	//
	// Returns:
	//   - common.BoundingSphere: the sphere centered on the light with its range as radius
	Bounds() common.BoundingSphere

	// ToVisibleLight snapshots the light for a camera pass.
	//
	// Returns:
	//   - VisibleLight: the snapshot with intensity folded into the color
	ToVisibleLight() VisibleLight

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the orientation of the light.
	//
	// Parameters:
	//   - q: the rotation, normalized before storing
	SetRotation(q mgl32.Quat)

	// SetDirection orients the light so it shines along the given direction.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGBA color of the light.
	//
	// Parameters:
	//   - c: the color
	SetColor(c common.Color)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotAngle sets the full cone angle for spot lights.
	//
	// Parameters:
	//   - deg: full cone angle in degrees
	SetSpotAngle(deg float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		rotation:   mgl32.QuatIdent(),
		color:      common.ColorWhite,
		intensity:  1.0,
		lightRange: 10.0,
		spotAngle:  30.0,
		enabled:    true,
		layerMask:  ^uint32(0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Rotation() mgl32.Quat {
	return l.rotation
}

func (l *lightImpl) Forward() mgl32.Vec3 {
	return l.rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) SpotAngle() float32 {
	return l.spotAngle
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) LayerMask() uint32 {
	return l.layerMask
}

func (l *lightImpl) LocalToWorld() mgl32.Mat4 {
	return mgl32.Translate3D(l.position.X(), l.position.Y(), l.position.Z()).Mul4(l.rotation.Mat4())
}

func (l *lightImpl) Bounds() common.BoundingSphere {
	if l.lightType == LightTypeDirectional {
		return common.BoundingSphere{Center: l.position}
	}
	return common.BoundingSphere{Center: l.position, Radius: l.lightRange}
}

func (l *lightImpl) ToVisibleLight() VisibleLight {
	return VisibleLight{
		Type:         l.lightType,
		FinalColor:   l.color.Scale(l.intensity),
		LocalToWorld: l.LocalToWorld(),
		Range:        l.lightRange,
		SpotAngle:    l.spotAngle,
	}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetRotation(q mgl32.Quat) {
	l.rotation = q.Normalize()
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.rotation = rotationTowards(mgl32.Vec3{x, y, z})
}

func (l *lightImpl) SetColor(c common.Color) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotAngle(deg float32) {
	l.spotAngle = deg
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
