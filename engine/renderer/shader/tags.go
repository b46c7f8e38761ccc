package shader

// TagID names a shader pass. A renderer is drawn by a pass only when its shader carries the pass tag.
type TagID string

const (
	// TagSRPDefaultUnlit is the pass tag drawn by the forward pipeline.
	TagSRPDefaultUnlit TagID = "SRPDefaultUnlit"

	// Legacy pass tags the forward pipeline does not draw. Renderers whose shaders only carry these
	// are flagged by the diagnostic pass.
	TagForwardBase  TagID = "ForwardBase"
	TagPrepassBase  TagID = "PrepassBase"
	TagAlways       TagID = "Always"
	TagVertex       TagID = "Vertex"
	TagVertexLMRGBM TagID = "VertexLMRGBM"
	TagVertexLM     TagID = "VertexLM"
)

// LegacyPassTags returns the legacy tags in the order the diagnostic pass issues them.
//
// Returns:
//   - []TagID: a fresh slice of the legacy tags
func LegacyPassTags() []TagID {
	return []TagID{
		TagForwardBase,
		TagPrepassBase,
		TagAlways,
		TagVertex,
		TagVertexLMRGBM,
		TagVertexLM,
	}
}
