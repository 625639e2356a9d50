// Package pipeline describes fixed-function render state in backend-neutral
// form: which program draws, into which attachment formats, with which
// blend, cull and depth configuration. Backends translate a Pipeline into
// their native pipeline object once, at registration.
package pipeline

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// Blend selects how fragment output combines with the bound color target.
type Blend int

const (
	// BlendNone overwrites the target.
	BlendNone Blend = iota

	// BlendAdditive accumulates light contributions: source + destination.
	BlendAdditive

	// BlendMultiplicative accumulates log-encoded light contributions:
	// source * destination.
	BlendMultiplicative
)

// CullMode selects which triangle faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	key     string
	program *shader.Program

	colorFormats []common.TextureFormat
	surfaceColor bool
	hasDepth     bool

	depthTestEnabled  bool
	depthWriteEnabled bool
	blend             Blend
	cullMode          CullMode

	native any
}

// Pipeline defines the interface for a configured render pipeline. All
// configuration is fixed at construction; the native pipeline object is set
// once by the backend during registration and is the only mutable slot.
type Pipeline interface {
	// Key returns the unique key for this pipeline, used for caching and lookups.
	//
	// Returns:
	//   - string: the pipeline key
	Key() string

	// Program returns the compiled shader program this pipeline draws with.
	//
	// Returns:
	//   - *shader.Program: the program
	Program() *shader.Program

	// ColorFormats returns the formats of the color attachments this
	// pipeline renders into, in attachment order. Empty for depth-only
	// pipelines such as shadow passes.
	//
	// Returns:
	//   - []common.TextureFormat: the color target formats
	ColorFormats() []common.TextureFormat

	// SurfaceColor returns whether the pipeline renders into the presentation
	// surface instead of offscreen color attachments. When true the backend
	// substitutes its surface format and ColorFormats is ignored.
	//
	// Returns:
	//   - bool: true when the pipeline targets the surface
	SurfaceColor() bool

	// HasDepth returns whether the pipeline renders against a depth attachment.
	//
	// Returns:
	//   - bool: true when a depth attachment is expected
	HasDepth() bool

	// DepthTestEnabled returns whether fragments are tested against the
	// depth attachment.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether surviving fragments write their depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWriteEnabled() bool

	// BlendMode returns the color blend configuration.
	//
	// Returns:
	//   - Blend: the blend mode
	BlendMode() Blend

	// Cull returns which triangle faces are discarded.
	//
	// Returns:
	//   - CullMode: the cull mode
	Cull() CullMode

	// Native returns the backend's pipeline object, or nil before registration.
	// The caller is responsible for type asserting the returned value.
	//
	// Returns:
	//   - any: the native pipeline object
	Native() any

	// SetNative stores the backend's pipeline object. Called by backends
	// during registration.
	//
	// Parameters:
	//   - native: the native pipeline object
	SetNative(native any)
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new Pipeline instance configured with the provided
// options. A program and a key are mandatory; omitting either panics.
// Defaults describe an opaque geometry pass: depth test and write enabled,
// no blending, back-face culling, one RGBA8 color target plus depth.
//
// Parameters:
//   - options: variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(options ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		colorFormats:      []common.TextureFormat{common.FormatRGBA8},
		hasDepth:          true,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		blend:             BlendNone,
		cullMode:          CullBack,
	}
	for _, opt := range options {
		opt(p)
	}

	if p.key == "" {
		panic("pipeline: a key is required")
	}

	if p.program == nil {
		panic("pipeline: a program is required")
	}

	return p
}

func (p *pipeline) Key() string {
	return p.key
}

func (p *pipeline) Program() *shader.Program {
	return p.program
}

func (p *pipeline) ColorFormats() []common.TextureFormat {
	return p.colorFormats
}

func (p *pipeline) SurfaceColor() bool {
	return p.surfaceColor
}

func (p *pipeline) HasDepth() bool {
	return p.hasDepth
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendMode() Blend {
	return p.blend
}

func (p *pipeline) Cull() CullMode {
	return p.cullMode
}

func (p *pipeline) Native() any {
	return p.native
}

func (p *pipeline) SetNative(native any) {
	p.native = native
}
