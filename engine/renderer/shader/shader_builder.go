package shader

// ShaderBuilderOption is a function that configures a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithSource sets the WGSL source of the shader.
//
// Parameters:
//   - source: the WGSL code
//
// Returns:
//   - ShaderBuilderOption: a function that applies the source to a shader
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) {
		s.source = source
	}
}

// WithEntryPoints overrides the default vs_main / fs_main entry points.
//
// Parameters:
//   - vertex: the vertex entry point
//   - fragment: the fragment entry point
//
// Returns:
//   - ShaderBuilderOption: a function that applies the entry points to a shader
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntry = vertex
		s.fragmentEntry = fragment
	}
}

// WithPassTags sets the passes the shader takes part in.
//
// Parameters:
//   - tags: the pass tags
//
// Returns:
//   - ShaderBuilderOption: a function that applies the tags to a shader
func WithPassTags(tags ...TagID) ShaderBuilderOption {
	return func(s *shader) {
		s.passTags = append(s.passTags[:0], tags...)
	}
}

// WithInstancing marks the shader as reading per-instance data.
//
// Parameters:
//   - enabled: true if the shader supports instancing
//
// Returns:
//   - ShaderBuilderOption: a function that applies the instancing flag to a shader
func WithInstancing(enabled bool) ShaderBuilderOption {
	return func(s *shader) {
		s.supportsInstancing = enabled
	}
}
