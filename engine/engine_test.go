package engine

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/rendertest"
	"github.com/r3c/arcadejs-sub001/engine/renderer/technique"
	"github.com/r3c/arcadejs-sub001/engine/scene"
	"github.com/r3c/arcadejs-sub001/engine/window"
)

// stubWindow drives a fixed number of frames through the engine's update
// callback without a real display.
type stubWindow struct {
	width    int
	height   int
	frames   int
	onUpdate func()
	onResize func(width, height int)
}

var _ window.Window = &stubWindow{}

func (w *stubWindow) SetUpdateCallback(callback func())                  { w.onUpdate = callback }
func (w *stubWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *stubWindow) SetScrollCallback(func(delta float32))              {}
func (w *stubWindow) SetKeyDownCallback(func(keyCode uint32))            {}
func (w *stubWindow) SetKeyUpCallback(func(keyCode uint32))              {}
func (w *stubWindow) SetMouseMoveCallback(func(x, y int32))              {}

func (w *stubWindow) SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y int32)) {
}

func (w *stubWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (w *stubWindow) IsRunning() bool                            { return w.frames > 0 }
func (w *stubWindow) Close() error                               { return nil }
func (w *stubWindow) Width() int                                 { return w.width }
func (w *stubWindow) Height() int                                { return w.height }

func (w *stubWindow) ProcessMessages() {
	for w.frames > 0 {
		w.frames--
		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func newEngineFixture(frames int) (*rendertest.Backend, *stubWindow, Engine) {
	backend := rendertest.NewBackend()
	backend.Width = 640
	backend.Height = 480

	win := &stubWindow{width: 640, height: 480, frames: frames}
	e := NewEngine(
		WithWindow(win),
		WithRenderer(renderer.NewRenderer(renderer.WithBackend(backend))),
	)
	return backend, win, e
}

func testScene(r renderer.Renderer) *scene.Scene {
	geometry := model.NewCube(1)
	geometry.Upload(r.Backend())

	mat := material.NewMaterial(
		material.WithName("test"),
		material.WithAlbedo(common.Color{R: 1, G: 1, B: 1, A: 1}),
	)
	root := model.NewNode(model.WithPrimitives(model.Primitive{Geometry: geometry, Material: mat}))

	return &scene.Scene{
		Projection: common.Perspective(1.2, 640.0/480.0, 0.1, 100),
		View:       common.Translation(common.Vector3{0, 0, -5}),
		Objects:    []scene.Object{{Transform: common.Identity4(), Root: root}},
	}
}

func TestEngineRendersOneFramePerIteration(t *testing.T) {
	backend, _, e := newEngineFixture(3)

	e.SetTechnique(technique.NewForward(e.Renderer()))
	s := testScene(e.Renderer())

	var updates int
	e.SetUpdateCallback(func(deltaTime float32) { updates++ })
	e.SetSceneCallback(func(deltaTime float32) *scene.Scene { return s })

	e.Run()

	assert.Equal(t, 3, updates)
	assert.Equal(t, 3, backend.Frames)
}

func TestEngineSkipsFrameWithoutScene(t *testing.T) {
	backend, _, e := newEngineFixture(2)

	e.SetTechnique(technique.NewForward(e.Renderer()))
	e.SetSceneCallback(func(deltaTime float32) *scene.Scene { return nil })

	e.Run()

	assert.Equal(t, 0, backend.Frames)
}

func TestEngineResizePropagates(t *testing.T) {
	backend, win, e := newEngineFixture(0)

	e.SetTechnique(technique.NewForward(e.Renderer()))

	require.NotNil(t, win.onResize)
	win.width = 800
	win.height = 600
	win.onResize(800, 600)

	assert.Equal(t, uint32(800), backend.Width)
	assert.Equal(t, uint32(600), backend.Height)
}

func TestEngineIgnoresMinimizedResize(t *testing.T) {
	backend, win, e := newEngineFixture(0)
	_ = e

	win.onResize(0, 0)

	assert.Equal(t, uint32(640), backend.Width)
	assert.Equal(t, uint32(480), backend.Height)
}
