package renderer

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
)

// PresentMode selects how frames are queued to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes presentation with the display refresh.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as fast as frames are produced.
	PresentModeUncapped
)

// PassDescriptor configures a single render pass within a frame.
type PassDescriptor struct {
	// Label names the pass in backend traces and error messages.
	Label string

	// Target is the offscreen target to render into, or nil for the
	// presentation surface.
	Target target.Target

	// LoadColor keeps the existing color attachment contents instead of
	// clearing them at pass start.
	LoadColor bool

	// LoadDepth keeps the existing depth attachment contents instead of
	// clearing them at pass start.
	LoadDepth bool

	// ClearColor is the clear value used for the surface; offscreen targets
	// carry their own per-attachment clear values.
	ClearColor common.Color
}

// Pass encodes draw commands into one render pass. Passes are obtained from
// Backend.BeginPass and must be closed with End before the next pass begins.
type Pass interface {
	// SetPipeline binds a registered pipeline for subsequent draws.
	//
	// Parameters:
	//   - p: the pipeline, previously passed to RegisterPipeline
	SetPipeline(p pipeline.Pipeline)

	// SetBindGroup binds a bind group at the given group index.
	//
	// Parameters:
	//   - group: the bind group index
	//   - bindGroup: the bind group to bind
	//   - dynamicOffsets: byte offsets for dynamic uniform entries, in
	//     binding order, or nil when the group has none
	SetBindGroup(group int, bindGroup *binding.BindGroup, dynamicOffsets []uint32)

	// SetVertexBuffer binds a vertex buffer at the given slot.
	//
	// Parameters:
	//   - slot: the vertex buffer slot
	//   - buffer: the buffer holding the attribute stream
	SetVertexBuffer(slot int, buffer *binding.Buffer)

	// SetIndexBuffer binds the index buffer for subsequent indexed draws.
	//
	// Parameters:
	//   - buffer: the buffer holding index data
	//   - format: the index element format
	SetIndexBuffer(buffer *binding.Buffer, format binding.IndexFormat)

	// DrawIndexed encodes one indexed draw of the given index count.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	DrawIndexed(indexCount uint32)

	// End closes the pass. No commands may be encoded afterwards.
	End()
}

// Backend abstracts the GPU API behind resource creation, pipeline
// registration and frame encoding. The WebGPU implementation does real GPU
// work; the rendertest package provides a recording fake for tests.
type Backend interface {
	binding.Device

	// ConfigureSurface sizes the presentation surface and its depth buffer.
	// Must be called before the first frame and again after window resizes.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	//   - mode: the presentation mode
	ConfigureSurface(width, height uint32, mode PresentMode)

	// SurfaceSize returns the current surface dimensions.
	//
	// Returns:
	//   - uint32: the surface width in pixels
	//   - uint32: the surface height in pixels
	SurfaceSize() (uint32, uint32)

	// RegisterPipeline compiles the pipeline's program and builds the native
	// pipeline object, storing it on the pipeline. Compilation failures are
	// configuration errors and panic with an annotated source excerpt.
	//
	// Parameters:
	//   - p: the pipeline to register
	RegisterPipeline(p pipeline.Pipeline)

	// BeginFrame acquires the surface image and opens the frame's command
	// encoder. Returns an error when the surface is temporarily unavailable,
	// such as during a resize; the caller should skip the frame.
	//
	// Returns:
	//   - error: an error if the surface image could not be acquired
	BeginFrame() error

	// BeginPass opens a render pass described by desc. The previous pass of
	// this frame must have been ended.
	//
	// Parameters:
	//   - desc: the pass configuration
	//
	// Returns:
	//   - Pass: the pass encoder
	BeginPass(desc PassDescriptor) Pass

	// EndFrame submits the frame's commands and presents the surface image.
	EndFrame()

	// Release frees the backend's own resources. Resources created through
	// the Device methods are owned by their callers.
	Release()
}
