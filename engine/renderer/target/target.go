// Package target manages offscreen render destinations: an ordered list of
// color attachments plus an optional depth attachment, all sized together.
package target

import (
	"fmt"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// target is the implementation of the Target interface.
type target struct {
	device binding.Device
	label  string
	width  uint32
	height uint32

	colorFormats []common.TextureFormat
	clearColors  []common.Color
	hasDepth     bool
	clearDepth   float32

	colors   []*binding.Texture
	depth    *binding.Texture
	disposed bool
}

// Target is a render destination owning its attachment textures. Every
// attachment always has the target's current size; Resize reallocates all of
// them together. A Target is disposed exactly once by its single owner;
// attachment textures handed out through Color and Depth stay owned by the
// Target and must not be released by callers.
type Target interface {
	// Label returns the debug label for this target.
	Label() string

	// Width returns the current attachment width in texels.
	Width() uint32

	// Height returns the current attachment height in texels.
	Height() uint32

	// Color returns the color attachment at the given index. Attachments
	// keep their index across Resize.
	//
	// Parameters:
	//   - index: the attachment position, in declaration order
	//
	// Returns:
	//   - *binding.Texture: the attachment texture
	Color(index int) *binding.Texture

	// Colors returns every color attachment in declaration order.
	Colors() []*binding.Texture

	// Depth returns the depth attachment, or nil when the target has none.
	Depth() *binding.Texture

	// ClearColor returns the clear value of the color attachment at the
	// given index.
	ClearColor(index int) common.Color

	// ClearDepth returns the depth clear value.
	ClearDepth() float32

	// Resize reallocates every attachment at the new size, preserving
	// format and order. Previous attachment textures are released; handles
	// obtained before the resize are stale afterwards. Zero dimensions panic.
	Resize(width, height uint32)

	// Dispose releases every attachment. Disposing twice panics.
	Dispose()
}

var _ Target = &target{}

// NewTarget creates a Target and allocates its attachments. At least one
// attachment (color or depth) and a non-zero size are required.
//
// Parameters:
//   - device: the resource device used to allocate attachment textures
//   - options: variadic list of TargetBuilderOption functions to configure the target
//
// Returns:
//   - Target: the initialized target with allocated attachments
func NewTarget(device binding.Device, options ...TargetBuilderOption) Target {
	t := &target{
		device:     device,
		label:      "target",
		clearDepth: 1.0,
	}
	for _, opt := range options {
		opt(t)
	}

	if len(t.colorFormats) == 0 && !t.hasDepth {
		panic(fmt.Sprintf("target %q has no attachments", t.label))
	}

	if t.width == 0 || t.height == 0 {
		panic(fmt.Sprintf("target %q has zero size", t.label))
	}

	t.allocate()

	return t
}

func (t *target) Label() string {
	return t.label
}

func (t *target) Width() uint32 {
	return t.width
}

func (t *target) Height() uint32 {
	return t.height
}

func (t *target) Color(index int) *binding.Texture {
	return t.colors[index]
}

func (t *target) Colors() []*binding.Texture {
	return t.colors
}

func (t *target) Depth() *binding.Texture {
	return t.depth
}

func (t *target) ClearColor(index int) common.Color {
	return t.clearColors[index]
}

func (t *target) ClearDepth() float32 {
	return t.clearDepth
}

func (t *target) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		panic(fmt.Sprintf("target %q resized to zero", t.label))
	}

	if t.disposed {
		panic(fmt.Sprintf("target %q resized after dispose", t.label))
	}

	if width == t.width && height == t.height {
		return
	}

	retiredColors := t.colors
	retiredDepth := t.depth

	t.width = width
	t.height = height
	t.allocate()

	for _, attachment := range retiredColors {
		attachment.Release()
	}

	if retiredDepth != nil {
		retiredDepth.Release()
	}
}

func (t *target) Dispose() {
	if t.disposed {
		panic(fmt.Sprintf("target %q disposed twice", t.label))
	}

	for _, attachment := range t.colors {
		attachment.Release()
	}

	if t.depth != nil {
		t.depth.Release()
	}

	t.colors = nil
	t.depth = nil
	t.disposed = true
}

// allocate creates every attachment at the current size and checks the
// results are consistent before any of them is used in a pass.
func (t *target) allocate() {
	sampler := common.Sampler{Magnify: common.FilterNearest, Minify: common.FilterNearest, Wrap: common.WrapClamp}

	t.colors = make([]*binding.Texture, len(t.colorFormats))
	for i, format := range t.colorFormats {
		t.colors[i] = t.device.CreateTexture(fmt.Sprintf("%s/color%d", t.label, i), common.TextureKindQuad, format, sampler, t.width, t.height, nil)
	}

	if t.hasDepth {
		t.depth = t.device.CreateTexture(t.label+"/depth", common.TextureKindQuad, common.FormatDepth16, sampler, t.width, t.height, nil)
	} else {
		t.depth = nil
	}

	for i, attachment := range t.colors {
		if attachment.Width != t.width || attachment.Height != t.height || attachment.Format != t.colorFormats[i] {
			panic(fmt.Sprintf("target %q attachment %d does not match the target size", t.label, i))
		}
	}

	if t.depth != nil && (t.depth.Width != t.width || t.depth.Height != t.height) {
		panic(fmt.Sprintf("target %q depth attachment does not match the target size", t.label))
	}
}
