package render_pipeline

// BuildMode is the capability level the pipeline runs with.
type BuildMode int

const (
	// BuildModeRelease renders the forward pass only.
	BuildModeRelease BuildMode = iota
	// BuildModeDevelopment adds the diagnostic pass.
	BuildModeDevelopment
	// BuildModeEditor adds the diagnostic pass and scene view geometry.
	BuildModeEditor
)

// String returns the name of the build mode.
func (m BuildMode) String() string {
	switch m {
	case BuildModeRelease:
		return "Release"
	case BuildModeDevelopment:
		return "Development"
	case BuildModeEditor:
		return "Editor"
	default:
		return "Unknown"
	}
}

// Diagnostics reports whether the diagnostic pass runs in this mode.
func (m BuildMode) Diagnostics() bool {
	return m == BuildModeDevelopment || m == BuildModeEditor
}

// Editor reports whether editor-only features are available.
func (m BuildMode) Editor() bool {
	return m == BuildModeEditor
}

// Config is the pipeline configuration. It is fixed when the pipeline is built.
type Config struct {
	DynamicBatching bool
	GPUInstancing   bool
	BuildMode       BuildMode
}
