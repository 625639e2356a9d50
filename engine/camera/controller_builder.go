package camera

import "github.com/r3c/arcadejs-sub001/common"

// ControllerBuilderOption is a functional option for configuring an orbit
// controller during construction.
type ControllerBuilderOption func(*orbitController)

// WithOrbitTarget sets the initial look-at/pivot point.
//
// Parameters:
//   - target: world-space coordinates
//
// Returns:
//   - ControllerBuilderOption: option to apply the target
func WithOrbitTarget(target common.Vector3) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.target = target
	}
}

// WithOrbitRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: distance from target
//
// Returns:
//   - ControllerBuilderOption: option to apply the radius
func WithOrbitRadius(radius float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.radius = radius
	}
}

// WithOrbitRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - ControllerBuilderOption: option to apply the bounds
func WithOrbitRadiusBounds(min, max float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithOrbitAngles sets the initial azimuth and elevation in radians.
//
// Parameters:
//   - azimuth: horizontal angle around the Y axis
//   - elevation: vertical angle from the horizontal plane
//
// Returns:
//   - ControllerBuilderOption: option to apply the angles
func WithOrbitAngles(azimuth, elevation float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
		oc.elevation = elevation
	}
}

// WithDragSensitivity sets the mouse drag sensitivity in radians per pixel.
//
// Parameters:
//   - sensitivity: radians per pixel of mouse movement
//
// Returns:
//   - ControllerBuilderOption: option to apply the sensitivity
func WithDragSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.dragSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the fraction of the current radius travelled per scroll
// step.
//
// Parameters:
//   - speed: zoom speed multiplier
//
// Returns:
//   - ControllerBuilderOption: option to apply the zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}
