package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/window"
)

// Controller owns camera positional state. The Camera reads position and
// target from its controller when computing the view matrix.
type Controller interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vector3: world-space camera position
	Position() common.Vector3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vector3: world-space target position
	Target() common.Vector3

	// SetTarget sets the look-at/pivot point. The camera position follows,
	// preserving the spherical offset.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target common.Vector3)

	// Rotate adjusts the orbit angles by the given deltas in radians.
	// Elevation is clamped so the camera never crosses the poles.
	//
	// Parameters:
	//   - azimuth: horizontal angle delta
	//   - elevation: vertical angle delta
	Rotate(azimuth, elevation float32)

	// Zoom adjusts the orbit radius. Positive delta moves closer to the
	// target; the radius is clamped to the configured bounds.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Attach wires the controller to a window's mouse input: left drag
	// rotates, scroll zooms.
	//
	// Parameters:
	//   - win: window to receive input from
	Attach(win window.Window)
}

// orbitController orbits a target point using spherical coordinates.
type orbitController struct {
	mu *sync.Mutex

	target    common.Vector3
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	maxElevation float32

	dragSensitivity float32
	zoomSpeed       float32

	dragging  bool
	dragLastX int32
	dragLastY int32
}

var _ Controller = &orbitController{}

// NewOrbitController creates a Controller that orbits the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewOrbitController(options ...ControllerBuilderOption) Controller {
	oc := &orbitController{
		mu: &sync.Mutex{},

		radius:    5.0,
		azimuth:   0,
		elevation: math32.Pi / 8,

		minRadius:    0.5,
		maxRadius:    100.0,
		maxElevation: math32.Pi/2 - 0.05,

		dragSensitivity: 0.005,
		zoomSpeed:       0.25,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *orbitController) Position() common.Vector3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position()
}

// position computes the camera position from the spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitController) position() common.Vector3 {
	sinAzim, cosAzim := math32.Sincos(oc.azimuth)
	sinElev, cosElev := math32.Sincos(oc.elevation)
	offset := common.Vector3{
		oc.radius * cosElev * sinAzim,
		oc.radius * sinElev,
		oc.radius * cosElev * cosAzim,
	}
	return common.Add3(oc.target, offset)
}

func (oc *orbitController) Target() common.Vector3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitController) SetTarget(target common.Vector3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
}

func (oc *orbitController) Rotate(azimuth, elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += azimuth
	oc.elevation = clamp(oc.elevation+elevation, -oc.maxElevation, oc.maxElevation)
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clamp(oc.radius-delta*oc.zoomSpeed*oc.radius, oc.minRadius, oc.maxRadius)
}

func (oc *orbitController) Attach(win window.Window) {
	win.SetMouseButtonCallback(func(button window.MouseButton, pressed bool, x, y int32) {
		if button != window.MouseButtonLeft {
			return
		}
		oc.mu.Lock()
		defer oc.mu.Unlock()
		oc.dragging = pressed
		oc.dragLastX = x
		oc.dragLastY = y
	})
	win.SetMouseMoveCallback(func(x, y int32) {
		oc.mu.Lock()
		if !oc.dragging {
			oc.mu.Unlock()
			return
		}
		dx := float32(x - oc.dragLastX)
		dy := float32(y - oc.dragLastY)
		oc.dragLastX = x
		oc.dragLastY = y
		sensitivity := oc.dragSensitivity
		oc.mu.Unlock()

		oc.Rotate(-dx*sensitivity, dy*sensitivity)
	})
	win.SetScrollCallback(func(delta float32) {
		oc.Zoom(delta)
	})
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
