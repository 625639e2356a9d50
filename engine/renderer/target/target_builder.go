package target

import (
	"github.com/r3c/arcadejs-sub001/common"
)

// TargetBuilderOption is a function that configures a target instance during construction.
type TargetBuilderOption func(*target)

// WithLabel is an option builder that sets the debug label of the target.
//
// Parameters:
//   - label: the label used in attachment names and error messages
//
// Returns:
//   - TargetBuilderOption: a function that applies the label option to a target
func WithLabel(label string) TargetBuilderOption {
	return func(t *target) {
		t.label = label
	}
}

// WithSize is an option builder that sets the initial attachment size.
//
// Parameters:
//   - width: attachment width in texels
//   - height: attachment height in texels
//
// Returns:
//   - TargetBuilderOption: a function that applies the size option to a target
func WithSize(width, height uint32) TargetBuilderOption {
	return func(t *target) {
		t.width = width
		t.height = height
	}
}

// WithColorAttachment is an option builder that appends a color attachment.
// Attachment order follows option order and matches the pipeline's color
// format list.
//
// Parameters:
//   - format: the texture format of the attachment
//   - clear: the color the attachment is cleared to at pass begin
//
// Returns:
//   - TargetBuilderOption: a function that appends the attachment to a target
func WithColorAttachment(format common.TextureFormat, clear common.Color) TargetBuilderOption {
	return func(t *target) {
		t.colorFormats = append(t.colorFormats, format)
		t.clearColors = append(t.clearColors, clear)
	}
}

// WithDepthAttachment is an option builder that adds a depth attachment.
//
// Parameters:
//   - clearDepth: the depth value the attachment is cleared to at pass begin
//
// Returns:
//   - TargetBuilderOption: a function that adds the depth attachment to a target
func WithDepthAttachment(clearDepth float32) TargetBuilderOption {
	return func(t *target) {
		t.hasDepth = true
		t.clearDepth = clearDepth
	}
}
