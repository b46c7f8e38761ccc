package shader

import (
	"slices"
)

// Well-known shader names.
const (
	// NameUnlitColor draws the material or per-instance color without lighting.
	NameUnlitColor = "Unlit/Color"
	// NameLitDiffuse draws a diffuse surface lit by the visible-light arrays.
	NameLitDiffuse = "Lit/Diffuse"
	// NameLegacyDiffuse only carries the ForwardBase tag and is never drawn by the forward pass.
	NameLegacyDiffuse = "Legacy Shaders/Diffuse"
	// NameSkybox draws the procedural sky behind the scene.
	NameSkybox = "Skybox/Procedural"
	// NameInternalError paints unsupported renderers magenta.
	NameInternalError = "Hidden/InternalErrorShader"
)

// shader is the implementation of the Shader interface.
type shader struct {
	name               string
	source             string
	vertexEntry        string
	fragmentEntry      string
	passTags           []TagID
	supportsInstancing bool
}

// Shader describes a WGSL program and the passes it takes part in.
type Shader interface {
	// Name returns the unique shader name used for lookups.
	//
	// Returns:
	//   - string: the shader name
	Name() string

	// Source returns the WGSL source.
	//
	// Returns:
	//   - string: the WGSL source code, empty for shaders without a GPU program
	Source() string

	// VertexEntryPoint returns the vertex stage entry point name.
	//
	// Returns:
	//   - string: the entry point name
	VertexEntryPoint() string

	// FragmentEntryPoint returns the fragment stage entry point name.
	//
	// Returns:
	//   - string: the entry point name
	FragmentEntryPoint() string

	// PassTags returns the pass tags this shader carries.
	//
	// Returns:
	//   - []TagID: a copy of the tags
	PassTags() []TagID

	// HasPass reports whether the shader carries a pass tag.
	//
	// Parameters:
	//   - tag: the pass tag
	//
	// Returns:
	//   - bool: true if the tag is present
	HasPass(tag TagID) bool

	// SupportsInstancing reports whether the shader reads per-instance transforms and colors.
	//
	// Returns:
	//   - bool: true if instanced draws are allowed
	SupportsInstancing() bool
}

var _ Shader = &shader{}

// NewShader creates a Shader.
//
// Parameters:
//   - name: the unique shader name
//   - opts: variadic list of ShaderBuilderOption functions
//
// Returns:
//   - Shader: the new shader
func NewShader(name string, opts ...ShaderBuilderOption) Shader {
	s := &shader{
		name:          name,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *shader) Name() string {
	return s.name
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntry
}

func (s *shader) PassTags() []TagID {
	return slices.Clone(s.passTags)
}

func (s *shader) HasPass(tag TagID) bool {
	return slices.Contains(s.passTags, tag)
}

func (s *shader) SupportsInstancing() bool {
	return s.supportsInstancing
}
