package engine

import (
	"time"

	"github.com/r3c/arcadejs-sub001/engine/camera"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine
// during construction.
type EngineBuilderOption func(*engine)

// WithWindow sets a pre-configured window instead of letting the engine
// create a default one.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets a pre-configured renderer instead of letting the engine
// build one over the window surface. Useful for tests with a recording
// backend.
//
// Parameters:
//   - r: a pre-configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the engine's camera. The engine keeps the camera's aspect
// ratio in sync with the window framebuffer.
//
// Parameters:
//   - c: the camera instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithProfiling enables frame timing output to the log.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithFrameLimit caps the frame rate in frames per second. Pass 0 to uncap
// (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}
