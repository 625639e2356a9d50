// Package engine ties the window, the renderer and a rendering technique
// together into a frame loop. The application supplies a scene callback that
// assembles the frame's scene; the engine owns everything else.
package engine

import (
	"log"
	"time"

	"github.com/r3c/arcadejs-sub001/engine/camera"
	"github.com/r3c/arcadejs-sub001/engine/profiler"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/technique"
	"github.com/r3c/arcadejs-sub001/engine/scene"
	"github.com/r3c/arcadejs-sub001/engine/window"
)

// SceneCallback assembles the scene for one frame. It receives the frame
// delta time in seconds and returns the scene to render, or nil to skip the
// frame.
type SceneCallback func(deltaTime float32) *scene.Scene

// engine implements the Engine interface. The whole frame loop runs on the
// window's OS thread: GLFW event processing and WebGPU surface presentation
// both require it.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	tech     technique.Technique
	camera   camera.Camera

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameLimit time.Duration

	updateCallback func(deltaTime float32)
	sceneCallback  SceneCallback

	lastFrame time.Time
}

// Engine is the application entry point. It drives the window message loop
// and renders one frame per iteration through the configured technique.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer driving the GPU.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Camera returns the engine's camera, or nil when none is configured.
	//
	// Returns:
	//   - camera.Camera: the camera instance or nil
	Camera() camera.Camera

	// SetTechnique sets the rendering technique used for subsequent frames.
	// The previous technique, if any, is released.
	//
	// Parameters:
	//   - tech: the technique to render with
	SetTechnique(tech technique.Technique)

	// SetUpdateCallback registers a function called once per frame before the
	// scene is assembled. Use it for application logic and animation.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetUpdateCallback(callback func(deltaTime float32))

	// SetSceneCallback registers the function that assembles each frame's
	// scene. Without one, nothing is rendered.
	//
	// Parameters:
	//   - callback: the scene assembly function
	SetSceneCallback(callback SceneCallback)

	// EnableProfiler enables frame timing output to the log.
	EnableProfiler()

	// DisableProfiler disables frame timing output.
	DisableProfiler()

	// Run starts the frame loop. Blocks until the window closes, then
	// releases the technique, the renderer and the window.
	Run()

	// Quit asks the window to close; Run returns after the current frame.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine with the provided options. A window is created
// when none is supplied; the renderer and its WebGPU backend are built over
// the window surface. Must be called from the main goroutine.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.renderer == nil {
		backend := renderer.NewWGPUBackend(e.window.SurfaceDescriptor(), false)
		e.renderer = renderer.NewRenderer(renderer.WithBackend(backend))
	}
	e.renderer.Resize(uint32(e.window.Width()), uint32(e.window.Height()))

	if e.camera != nil {
		e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
	}

	e.window.SetResizeCallback(e.onResize)
	e.window.SetUpdateCallback(e.onFrame)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) SetTechnique(tech technique.Technique) {
	if e.tech != nil {
		e.tech.Release()
	}
	e.tech = tech
}

func (e *engine) SetUpdateCallback(callback func(deltaTime float32)) {
	e.updateCallback = callback
}

func (e *engine) SetSceneCallback(callback SceneCallback) {
	e.sceneCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.window.ProcessMessages()

	if e.tech != nil {
		e.tech.Release()
	}
	e.renderer.Release()
	if err := e.window.Close(); err != nil {
		log.Printf("engine: window close failed: %v", err)
	}
}

func (e *engine) Quit() {
	e.window.SetUpdateCallback(nil)
	_ = e.window.Close()
}

// onResize reconfigures the surface and render targets after the framebuffer
// changes size. Minimized windows report zero dimensions and are skipped.
func (e *engine) onResize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	e.renderer.Resize(uint32(width), uint32(height))
	if e.tech != nil {
		e.tech.Resize(uint32(width), uint32(height))
	}
	if e.camera != nil {
		e.camera.SetAspect(float32(width) / float32(height))
	}
}

// onFrame runs once per message loop iteration: update, assemble, render.
func (e *engine) onFrame() {
	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	if e.updateCallback != nil {
		e.updateCallback(dt)
	}

	if e.sceneCallback != nil && e.tech != nil {
		if s := e.sceneCallback(dt); s != nil {
			// A failed BeginFrame means the surface is mid-resize; skip the
			// frame and try again next iteration.
			if err := e.renderer.BeginFrame(); err == nil {
				e.tech.Render(s)
				e.renderer.EndFrame()
			}
		}
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}
