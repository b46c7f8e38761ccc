package camera

// Kind identifies what a camera renders for.
type Kind int

const (
	// KindGame is a regular in-world camera.
	KindGame Kind = iota
	// KindSceneView is the editor scene view. Editor builds inject gizmo geometry before culling it.
	KindSceneView
	// KindPreview renders asset previews.
	KindPreview
	// KindReflection renders reflection probes.
	KindReflection
)

// String returns the name of the camera kind.
func (k Kind) String() string {
	switch k {
	case KindGame:
		return "Game"
	case KindSceneView:
		return "SceneView"
	case KindPreview:
		return "Preview"
	case KindReflection:
		return "Reflection"
	default:
		return "Unknown"
	}
}

// ClearFlags selects what a camera clears before drawing.
type ClearFlags int

const (
	// ClearFlagsSkybox clears depth and draws the skybox behind the scene.
	ClearFlagsSkybox ClearFlags = iota + 1
	// ClearFlagsColor clears depth and fills the target with the background color.
	ClearFlagsColor
	// ClearFlagsDepth clears depth only and keeps the previous color contents.
	ClearFlagsDepth
	// ClearFlagsNothing leaves both color and depth untouched.
	ClearFlagsNothing
)

// String returns the name of the clear flags value.
func (f ClearFlags) String() string {
	switch f {
	case ClearFlagsSkybox:
		return "Skybox"
	case ClearFlagsColor:
		return "Color"
	case ClearFlagsDepth:
		return "Depth"
	case ClearFlagsNothing:
		return "Nothing"
	default:
		return "Unknown"
	}
}

// ClearPolicy is the clear behavior derived from a camera's ClearFlags.
type ClearPolicy struct {
	DrawSkybox bool
	ClearDepth bool
	ClearColor bool
}

// Policy derives the clear behavior for the flags.
//
// Returns:
//   - ClearPolicy: skybox is drawn only for Skybox, depth is cleared for everything but Nothing,
//     color is cleared only for Color
func (f ClearFlags) Policy() ClearPolicy {
	return ClearPolicy{
		DrawSkybox: f == ClearFlagsSkybox,
		ClearDepth: f != ClearFlagsNothing,
		ClearColor: f == ClearFlagsColor,
	}
}
