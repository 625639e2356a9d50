package renderer

import (
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// RendererBuilderOption is a functional option used to configure a Renderer during construction.
type RendererBuilderOption func(*renderer)

// NewRenderer creates a new Renderer instance configured with the provided
// options. A backend is mandatory; omitting it panics. The fallback textures
// for unset material maps are created immediately on the backend.
//
// Parameters:
//   - options: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		shaders:     shader.NewCache(),
		pipelines:   map[string]pipeline.Pipeline{},
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		panic("renderer: a backend is required")
	}

	r.whiteTexture = texel(r.backend, "Fallback White", 255, 255, 255, 255)
	r.blackTexture = texel(r.backend, "Fallback Black", 0, 0, 0, 255)
	r.flatNormalTexture = texel(r.backend, "Fallback Flat Normal", 128, 128, 255, 255)

	return r
}

// WithBackend sets the GPU backend driving this renderer.
//
// Parameters:
//   - backend: the backend
//
// Returns:
//   - RendererBuilderOption: a function that sets the backend for this renderer
func WithBackend(backend Backend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithPresentMode sets the presentation mode applied on Resize.
//
// Parameters:
//   - mode: the presentation mode
//
// Returns:
//   - RendererBuilderOption: a function that sets the presentation mode for this renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}
