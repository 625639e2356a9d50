package target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/rendertest"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
)

func newGeometryTarget(device *rendertest.Device) target.Target {
	return target.NewTarget(device,
		target.WithLabel("gbuffer"),
		target.WithSize(640, 480),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{A: 1}),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{R: 0.5, G: 0.5, A: 1}),
		target.WithDepthAttachment(1.0),
	)
}

func TestTargetAllocatesAttachments(t *testing.T) {
	device := rendertest.NewDevice()
	tg := newGeometryTarget(device)

	require.Len(t, tg.Colors(), 2)
	assert.Equal(t, uint32(640), tg.Width())
	assert.Equal(t, uint32(480), tg.Height())
	assert.Equal(t, common.FormatRGBA8, tg.Color(0).Format)
	assert.Equal(t, common.FormatDepth16, tg.Depth().Format)
	assert.Equal(t, float32(1.0), tg.ClearDepth())
	assert.Equal(t, common.Color{R: 0.5, G: 0.5, A: 1}, tg.ClearColor(1))
}

func TestTargetResizePreservesFormatsAndOrder(t *testing.T) {
	device := rendertest.NewDevice()
	tg := newGeometryTarget(device)

	retired := tg.Color(0)
	tg.Resize(1280, 720)

	require.Len(t, tg.Colors(), 2)
	assert.Equal(t, uint32(1280), tg.Width())
	assert.Equal(t, uint32(1280), tg.Color(0).Width)
	assert.Equal(t, uint32(720), tg.Color(1).Height)
	assert.Equal(t, common.FormatRGBA8, tg.Color(0).Format)
	assert.Equal(t, uint32(1280), tg.Depth().Width)

	// The pre-resize attachment was released, not recycled.
	assert.True(t, retired.Native == nil)
	assert.NotSame(t, retired, tg.Color(0))
}

func TestTargetResizeToSameSizeKeepsAttachments(t *testing.T) {
	device := rendertest.NewDevice()
	tg := newGeometryTarget(device)

	kept := tg.Color(0)
	tg.Resize(640, 480)
	assert.Same(t, kept, tg.Color(0))
}

func TestTargetResizeRejectsZero(t *testing.T) {
	device := rendertest.NewDevice()
	tg := newGeometryTarget(device)

	assert.Panics(t, func() { tg.Resize(0, 480) })
}

func TestTargetDisposeReleasesOnce(t *testing.T) {
	device := rendertest.NewDevice()
	tg := newGeometryTarget(device)

	tg.Dispose()
	for _, texture := range device.Textures {
		assert.True(t, texture.Released)
	}

	assert.Panics(t, func() { tg.Dispose() })
}

func TestTargetWithoutAttachmentsPanics(t *testing.T) {
	device := rendertest.NewDevice()

	assert.Panics(t, func() {
		target.NewTarget(device, target.WithSize(64, 64))
	})
}

func TestDepthOnlyTarget(t *testing.T) {
	device := rendertest.NewDevice()

	tg := target.NewTarget(device,
		target.WithLabel("shadow"),
		target.WithSize(1024, 1024),
		target.WithDepthAttachment(1.0),
	)

	assert.Empty(t, tg.Colors())
	require.NotNil(t, tg.Depth())
	assert.Equal(t, common.FormatDepth16, tg.Depth().Format)
}
