package material

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-srp/common"
	"github.com/Carmen-Shannon/oxy-srp/engine/renderer/shader"
)

// ErrMissingFallbackShader is returned when the internal error shader cannot be resolved.
var ErrMissingFallbackShader = errors.New("fallback shader not found")

// NewErrorMaterial builds the material the diagnostic pass overrides unsupported renderers with.
// The material is hidden and never saved.
//
// Parameters:
//   - finder: the shader lookup
//
// Returns:
//   - Material: the error material
//   - error: ErrMissingFallbackShader wrapped with the shader name when the shader is unknown
func NewErrorMaterial(finder shader.Finder) (Material, error) {
	if finder == nil {
		return nil, fmt.Errorf("%s: %w", shader.NameInternalError, ErrMissingFallbackShader)
	}
	s, ok := finder.Find(shader.NameInternalError)
	if !ok {
		return nil, fmt.Errorf("%s: %w", shader.NameInternalError, ErrMissingFallbackShader)
	}
	return NewMaterial(s,
		WithName("Internal Error Material"),
		WithBaseColor(common.ColorMagenta),
		WithHideFlags(HideAndDontSave),
		WithRenderQueue(RenderQueueGeometry),
		WithInstancing(true),
	), nil
}
