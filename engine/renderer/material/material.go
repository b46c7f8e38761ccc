package material

import (
	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
	"github.com/google/uuid"
)

// Render queue values. Queues up to RenderQueueGeometryLast are drawn as opaque geometry.
const (
	RenderQueueBackground   = 1000
	RenderQueueGeometry     = 2000
	RenderQueueAlphaTest    = 2450
	RenderQueueGeometryLast = 2500
	RenderQueueTransparent  = 3000
	RenderQueueOverlay      = 4000
	RenderQueueMax          = 5000
)

// HideFlags control whether an object is visible to editors and whether it is saved with the scene.
type HideFlags uint32

const (
	HideFlagsNone         HideFlags = 0
	HideInHierarchy       HideFlags = 1 << 0
	HideInInspector       HideFlags = 1 << 1
	DontSaveInEditor      HideFlags = 1 << 2
	NotEditable           HideFlags = 1 << 3
	DontSaveInBuild       HideFlags = 1 << 4
	DontUnloadUnusedAsset HideFlags = 1 << 5

	// DontSave keeps the object out of every save path.
	DontSave = DontSaveInEditor | DontSaveInBuild | DontUnloadUnusedAsset
	// HideAndDontSave is DontSave plus hidden and locked in the editor.
	HideAndDontSave = HideInHierarchy | DontSave | NotEditable
)

// Has reports whether every bit of other is set.
func (f HideFlags) Has(other HideFlags) bool {
	return f&other == other
}

// material is the implementation of the Material interface.
type material struct {
	id               uuid.UUID
	name             string
	shader           shader.Shader
	baseColor        common.Color
	renderQueue      int
	hideFlags        HideFlags
	enableInstancing bool
}

// Material binds a shader to the surface values it is drawn with.
//
// The render queue decides whether the material is drawn with the opaque or the
// transparent queue range. When no queue is given it is derived from the base
// color alpha: fully opaque colors go to RenderQueueGeometry, everything else to
// RenderQueueTransparent.
type Material interface {
	// ID retrieves the unique identifier of the material.
	//
	// Returns:
	//   - uuid.UUID: the material id
	ID() uuid.UUID

	// Name retrieves the material name.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Shader retrieves the shader the material draws with.
	//
	// Returns:
	//   - shader.Shader: the shader, nil if none was set
	Shader() shader.Shader

	// BaseColor retrieves the RGBA color of the material.
	//
	// Returns:
	//   - common.Color: the base color
	BaseColor() common.Color

	// RenderQueue retrieves the render queue value.
	//
	// Returns:
	//   - int: the queue in [0, RenderQueueMax]
	RenderQueue() int

	// HideFlags retrieves the editor visibility and save flags.
	//
	// Returns:
	//   - HideFlags: the flags
	HideFlags() HideFlags

	// InstancingEnabled reports whether renderers using this material may be drawn instanced.
	//
	// Returns:
	//   - bool: true if the material allows GPU instancing
	InstancingEnabled() bool

	// SetBaseColor sets the RGBA color of the material.
	//
	// Parameters:
	//   - c: the color
	SetBaseColor(c common.Color)

	// SetRenderQueue sets the render queue value, clamped to [0, RenderQueueMax].
	//
	// Parameters:
	//   - queue: the render queue
	SetRenderQueue(queue int)

	// SetInstancingEnabled toggles GPU instancing for the material.
	//
	// Parameters:
	//   - enabled: true to allow instancing
	SetInstancingEnabled(enabled bool)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - s: the shader the material draws with
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(s shader.Shader, options ...MaterialBuilderOption) Material {
	m := &material{
		id:          uuid.New(),
		shader:      s,
		baseColor:   common.ColorWhite,
		renderQueue: -1,
	}
	if s != nil {
		m.name = s.Name()
	}
	for _, opt := range options {
		opt(m)
	}
	if m.renderQueue < 0 {
		m.renderQueue = RenderQueueGeometry
		if m.baseColor[3] < 1 {
			m.renderQueue = RenderQueueTransparent
		}
	}
	return m
}

func (m *material) ID() uuid.UUID {
	return m.id
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Shader() shader.Shader {
	return m.shader
}

func (m *material) BaseColor() common.Color {
	return m.baseColor
}

func (m *material) RenderQueue() int {
	return m.renderQueue
}

func (m *material) HideFlags() HideFlags {
	return m.hideFlags
}

func (m *material) InstancingEnabled() bool {
	return m.enableInstancing
}

func (m *material) SetBaseColor(c common.Color) {
	m.baseColor = c
}

func (m *material) SetRenderQueue(queue int) {
	m.renderQueue = min(max(queue, 0), RenderQueueMax)
}

func (m *material) SetInstancingEnabled(enabled bool) {
	m.enableInstancing = enabled
}
