package shader

import (
	_ "embed"
	"sync"
)

//go:embed assets/common.wgsl
var commonSource string

//go:embed assets/unlit_color.wgsl
var unlitColorSource string

//go:embed assets/lit_diffuse.wgsl
var litDiffuseSource string

//go:embed assets/internal_error.wgsl
var internalErrorSource string

//go:embed assets/skybox.wgsl
var skyboxSource string

// Finder resolves shaders by name.
type Finder interface {
	// Find looks up a shader.
	//
	// Parameters:
	//   - name: the shader name
	//
	// Returns:
	//   - Shader: the shader, nil when not found
	//   - bool: true if the shader exists
	Find(name string) (Shader, bool)
}

type registryImpl struct {
	mu      sync.RWMutex
	shaders map[string]Shader
}

// Registry is a name-keyed set of shaders.
type Registry interface {
	Finder

	// Register adds or replaces a shader under its name.
	//
	// Parameters:
	//   - s: the shader to register
	Register(s Shader)

	// Remove drops the shader with the given name, if present.
	//
	// Parameters:
	//   - name: the shader name
	Remove(name string)

	// Names returns every registered shader name.
	//
	// Returns:
	//   - []string: the names in no particular order
	Names() []string
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - Registry: the registry
func NewRegistry() Registry {
	return &registryImpl{shaders: make(map[string]Shader)}
}

// NewBuiltinRegistry creates a Registry holding the built-in shaders: the unlit and lit forward
// shaders, the legacy diffuse shader, the procedural skybox and the internal error shader.
//
// Returns:
//   - Registry: the populated registry
func NewBuiltinRegistry() Registry {
	r := NewRegistry()
	r.Register(NewShader(NameUnlitColor,
		WithSource(commonSource+unlitColorSource),
		WithPassTags(TagSRPDefaultUnlit),
		WithInstancing(true),
	))
	r.Register(NewShader(NameLitDiffuse,
		WithSource(commonSource+litDiffuseSource),
		WithPassTags(TagSRPDefaultUnlit),
		WithInstancing(true),
	))
	r.Register(NewShader(NameLegacyDiffuse,
		WithSource(commonSource+unlitColorSource),
		WithPassTags(TagForwardBase),
	))
	r.Register(NewShader(NameSkybox,
		WithSource(skyboxSource),
		WithEntryPoints("vs_sky", "fs_sky"),
	))
	r.Register(NewShader(NameInternalError,
		WithSource(commonSource+internalErrorSource),
		WithPassTags(TagAlways),
		WithInstancing(true),
	))
	return r
}

func (r *registryImpl) Find(name string) (Shader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.shaders[name]
	return s, ok
}

func (r *registryImpl) Register(s Shader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shaders[s.Name()] = s
}

func (r *registryImpl) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.shaders, name)
}

func (r *registryImpl) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.shaders))
	for n := range r.shaders {
		names = append(names, n)
	}
	return names
}
