// Package technique implements the engine's rendering strategies: a single
// pass forward renderer and two deferred variants that split geometry and
// lighting across intermediate targets. A technique owns its shader
// variants, pipelines and offscreen targets, and encodes one frame's passes
// from a scene description. Techniques expect to run between the renderer's
// BeginFrame and EndFrame calls.
package technique

import (
	_ "embed"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/scene"
)

//go:embed assets/forward.wgsl
var forwardTemplate string

//go:embed assets/shadow.wgsl
var shadowTemplate string

//go:embed assets/geometry.wgsl
var geometryTemplate string

//go:embed assets/light.wgsl
var lightTemplate string

//go:embed assets/material.wgsl
var materialTemplate string

//go:embed assets/composite.wgsl
var compositeTemplate string

// LightModel selects the shading equation used for direct lighting.
type LightModel int

const (
	// LightModelPhong is the classic Phong reflection model.
	LightModelPhong LightModel = iota

	// LightModelPhysical is a normalized Blinn-Phong approximation with
	// energy conservation. Only the forward technique supports it; the
	// deferred geometry buffers store Phong exponents.
	LightModelPhysical
)

// Per-variant light slot limits. Each slot is a pair of uniform bindings in
// the forward shader, so the cap keeps the per-stage uniform buffer count
// within device limits.
const (
	MaxDirectionalLights = 2
	MaxPointLights       = 2
)

// Technique encodes a scene into render passes. Render must run between the
// renderer's BeginFrame and EndFrame.
type Technique interface {
	// Render encodes all of the technique's passes for one frame.
	//
	// Parameters:
	//   - s: the scene to draw
	Render(s *scene.Scene)

	// Resize reallocates the technique's offscreen targets for a new
	// surface size. The renderer's own Resize must be called separately.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width uint32, height uint32)

	// Release frees the technique's shaders and targets.
	Release()
}

// viewDirection rotates a world-space direction into view space.
func viewDirection(view common.Matrix4, direction common.Vector3) common.Vector3 {
	v := common.MulVec4(view, common.Vector4{direction[0], direction[1], direction[2], 0})

	return common.Vector3{v[0], v[1], v[2]}
}

// viewPoint transforms a world-space position into view space.
func viewPoint(view common.Matrix4, point common.Vector3) common.Vector3 {
	v := common.MulVec4(view, common.Vector4{point[0], point[1], point[2], 1})

	return common.Vector3{v[0], v[1], v[2]}
}

// rejectPointShadows panics when a point light requests shadow mapping.
// Cube map shadow rendering is not implemented; directional lights are the
// only supported casters.
func rejectPointShadows(s *scene.Scene) {
	for _, l := range s.PointLights() {
		if l.CastsShadows() {
			panic("technique: point light shadow maps are not implemented")
		}
	}
}
