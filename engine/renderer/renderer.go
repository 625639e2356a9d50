// Package renderer ties the GPU backend, the shader variant cache and the
// pipeline registry together behind a single facade. Rendering techniques
// talk to a Renderer; only the backend implementation touches WebGPU.
package renderer

import (
	"fmt"
	"sync"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu sync.Mutex

	backend     Backend
	shaders     *shader.Cache
	pipelines   map[string]pipeline.Pipeline
	presentMode PresentMode

	whiteTexture      *binding.Texture
	blackTexture      *binding.Texture
	flatNormalTexture *binding.Texture
}

// Renderer is the facade every rendering technique draws through. It owns
// the pipeline registry, the shader variant cache and a set of single texel
// fallback textures for unset material maps.
type Renderer interface {
	// Backend returns the GPU backend for resource creation.
	//
	// Returns:
	//   - Backend: the backend
	Backend() Backend

	// Shaders returns the shared shader variant cache.
	//
	// Returns:
	//   - *shader.Cache: the cache
	Shaders() *shader.Cache

	// Pipeline returns the registered pipeline with the given key.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline, or nil if not registered
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines registers the given pipelines with the backend,
	// skipping keys that are already registered.
	//
	// Parameters:
	//   - pipelines: the pipelines to register
	RegisterPipelines(pipelines ...pipeline.Pipeline)

	// WhiteTexture returns a single white texel, the fallback for albedo
	// and gloss maps.
	WhiteTexture() *binding.Texture

	// BlackTexture returns a single black texel, the fallback for emissive
	// and similar additive maps.
	BlackTexture() *binding.Texture

	// FlatNormalTexture returns a single texel encoding an unperturbed
	// tangent-space normal, the fallback for normal maps.
	FlatNormalTexture() *binding.Texture

	// BeginFrame opens the next frame on the backend. A non-nil error means
	// the frame should be skipped, typically during a resize.
	//
	// Returns:
	//   - error: an error if the surface image could not be acquired
	BeginFrame() error

	// BeginPass opens a render pass described by desc.
	//
	// Parameters:
	//   - desc: the pass configuration
	//
	// Returns:
	//   - Pass: the pass encoder
	BeginPass(desc PassDescriptor) Pass

	// EndFrame submits and presents the current frame.
	EndFrame()

	// Resize reconfigures the surface for the new window size.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height uint32)

	// Release frees the renderer's own textures and the backend.
	Release()
}

var _ Renderer = &renderer{}

func (r *renderer) Backend() Backend {
	return r.backend
}

func (r *renderer) Shaders() *shader.Cache {
	return r.shaders
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pipelines[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if _, ok := r.pipelines[p.Key()]; ok {
			continue
		}

		r.backend.RegisterPipeline(p)
		r.pipelines[p.Key()] = p
	}
}

func (r *renderer) WhiteTexture() *binding.Texture {
	return r.whiteTexture
}

func (r *renderer) BlackTexture() *binding.Texture {
	return r.blackTexture
}

func (r *renderer) FlatNormalTexture() *binding.Texture {
	return r.flatNormalTexture
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) BeginPass(desc PassDescriptor) Pass {
	return r.backend.BeginPass(desc)
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		panic(fmt.Sprintf("renderer: invalid surface size %dx%d", width, height))
	}

	r.backend.ConfigureSurface(width, height, r.presentMode)
}

func (r *renderer) Release() {
	r.whiteTexture.Release()
	r.blackTexture.Release()
	r.flatNormalTexture.Release()
	r.backend.Release()
}

// texel creates a 1x1 texture of the given color, used as a fallback for
// material maps that are not set.
func texel(device binding.Device, label string, r, g, b, a byte) *binding.Texture {
	return device.CreateTexture(label, common.TextureKindQuad, common.FormatRGBA8, common.Sampler{}, 1, 1, []common.Image{
		{Pixels: []byte{r, g, b, a}, Width: 1, Height: 1},
	})
}
