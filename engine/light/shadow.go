package light

import "github.com/r3c/arcadejs-sub001/common"

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture.
const ShadowMapResolution = 1024

// DefaultShadowHalfExtent is the default orthographic half-extent (in world
// units) used for the directional light shadow frustum. Controls how much of
// the scene around the origin is captured in the shadow map.
const DefaultShadowHalfExtent float32 = 10.0

// DefaultShadowNear is the default near plane for the directional light's
// orthographic shadow projection.
const DefaultShadowNear float32 = -10.0

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 20.0

// ShadowViewProjection derives the view-projection matrix for rendering a
// directional light's shadow map. The light looks at the origin from the
// opposite of its travel direction through an orthographic frustum of the
// given half extent.
//
// Parameters:
//   - l: the shadow-casting directional light
//   - halfExtent: the orthographic half-extent in world units
//   - near: the near plane distance
//   - far: the far plane distance
//
// Returns:
//   - common.Matrix4: the light's view-projection matrix
func ShadowViewProjection(l Light, halfExtent, near, far float32) common.Matrix4 {
	direction := common.Normalize3(l.Direction())

	up := common.Vector3{0, 1, 0}
	if direction[0] == 0 && direction[2] == 0 {
		up = common.Vector3{0, 0, 1}
	}

	view := common.LookAt(common.Scale3(direction, -1), common.Vector3{}, up)
	projection := common.Orthographic(-halfExtent, halfExtent, -halfExtent, halfExtent, near, far)

	return common.Mul4(projection, view)
}
