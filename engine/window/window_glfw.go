package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW window handle plus the cursor position tracked
// across move events, so button callbacks can report where the click landed.
type glfwWindow struct {
	handle *glfw.Window

	cursorX int32
	cursorY int32
}

// newPlatformWindow creates the GLFW window and wires its event callbacks to
// the engineWindow callback fields. Must be called from the main goroutine;
// locks the calling goroutine to its OS thread because GLFW requires event
// processing on the thread that created the window.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}

	// The surface is driven by WebGPU, not an OpenGL context.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create glfw window: %w", err)
	}

	gw := &glfwWindow{handle: handle}
	w.internalWindow = gw

	// Track the framebuffer size rather than the window size so high-DPI
	// displays report the real pixel dimensions.
	fbWidth, fbHeight := handle.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	handle.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			if key == glfw.KeyEscape {
				handle.SetShouldClose(true)
				return
			}
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.onMouseButton == nil {
			return
		}
		mapped, ok := mapMouseButton(button)
		if !ok {
			return
		}
		w.onMouseButton(mapped, action == glfw.Press, gw.cursorX, gw.cursorY)
	})

	handle.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		gw.cursorX = int32(xpos)
		gw.cursorY = int32(ypos)
		if w.onMouseMove != nil {
			w.onMouseMove(gw.cursorX, gw.cursorY)
		}
	})

	return nil
}

func mapMouseButton(button glfw.MouseButton) (MouseButton, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle, true
	}
	return 0, false
}

// platformGetSurfaceDescriptor returns the WebGPU surface descriptor for the
// GLFW window, or nil when the window has not been created.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.handle == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

// platformProcessMessages pumps pending GLFW events. Returns false when the
// window handle is gone.
func platformProcessMessages(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.handle == nil {
		return false
	}
	glfw.PollEvents()
	return true
}

// platformIsRunningCheck reports whether the window is open and has not been
// asked to close.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.handle == nil {
		return false
	}
	return !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates GLFW.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok || gw.handle == nil {
		return nil
	}
	gw.handle.Destroy()
	gw.handle = nil
	glfw.Terminate()
	return nil
}
