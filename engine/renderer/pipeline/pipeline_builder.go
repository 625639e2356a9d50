package pipeline

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithKey sets the unique key for this pipeline.
//
// Parameters:
//   - key: the pipeline key used for caching and lookups
//
// Returns:
//   - PipelineBuilderOption: a function that sets the key for this pipeline
func WithKey(key string) PipelineBuilderOption {
	return func(p *pipeline) {
		p.key = key
	}
}

// WithProgram sets the compiled shader program for this pipeline.
//
// Parameters:
//   - program: the program providing vertex and fragment entry points
//
// Returns:
//   - PipelineBuilderOption: a function that sets the program for this pipeline
func WithProgram(program *shader.Program) PipelineBuilderOption {
	return func(p *pipeline) {
		p.program = program
	}
}

// WithColorFormats sets the color attachment formats for this pipeline, in
// attachment order. Pass none for a depth-only pipeline.
//
// Parameters:
//   - formats: the color target formats
//
// Returns:
//   - PipelineBuilderOption: a function that sets the color formats for this pipeline
func WithColorFormats(formats ...common.TextureFormat) PipelineBuilderOption {
	return func(p *pipeline) {
		p.colorFormats = formats
	}
}

// WithSurfaceColor marks this pipeline as rendering into the presentation
// surface. The backend substitutes its surface format for the color target
// and any formats set with WithColorFormats are ignored.
//
// Returns:
//   - PipelineBuilderOption: a function that marks the pipeline as surface-targeting
func WithSurfaceColor() PipelineBuilderOption {
	return func(p *pipeline) {
		p.surfaceColor = true
	}
}

// WithDepth sets whether this pipeline renders against a depth attachment.
//
// Parameters:
//   - enabled: true when the target carries a depth attachment
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth attachment expectation
func WithDepth(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.hasDepth = enabled
	}
}

// WithDepthTestEnabled sets whether depth testing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth testing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth test enabled state for this pipeline
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled sets whether depth writing is enabled for this pipeline.
//
// Parameters:
//   - enabled: a boolean indicating whether depth writing should be enabled
//
// Returns:
//   - PipelineBuilderOption: a function that sets the depth write enabled state for this pipeline
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlend sets the color blend mode for this pipeline.
//
// Parameters:
//   - blend: the blend mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the blend mode for this pipeline
func WithBlend(blend Blend) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blend = blend
	}
}

// WithCullMode sets which triangle faces are discarded by this pipeline.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: a function that sets the cull mode for this pipeline
func WithCullMode(mode CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}
