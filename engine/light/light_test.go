package light

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/r3c/arcadejs-sub001/common"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight()

	assert.Equal(t, LightTypeDirectional, l.Type())
	assert.Equal(t, common.Vector3{0, -1, 0}, l.Direction())
	assert.Equal(t, common.Color{R: 1, G: 1, B: 1, A: 1}, l.Color())
	assert.False(t, l.CastsShadows())
}

func TestNewLightPoint(t *testing.T) {
	l := NewLight(
		WithType(LightTypePoint),
		WithPosition(common.Vector3{1, 2, 3}),
		WithColor(common.Color{R: 0.5, G: 0.25, B: 1, A: 1}),
		WithRadius(7),
	)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, common.Vector3{1, 2, 3}, l.Position())
	assert.Equal(t, float32(7), l.Radius())
}

func TestShadowViewProjectionCentersOrigin(t *testing.T) {
	l := NewLight(
		WithDirection(common.Vector3{0, -1, 0}),
		WithCastsShadows(true),
	)

	vp := ShadowViewProjection(l, DefaultShadowHalfExtent, DefaultShadowNear, DefaultShadowFar)

	origin := common.MulVec4(vp, common.Vector4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin[0], 1e-5)
	assert.InDelta(t, 0, origin[1], 1e-5)
	assert.Greater(t, origin[2], float32(0))
	assert.Less(t, origin[2], float32(1))
}

func TestShadowViewProjectionDepthOrder(t *testing.T) {
	// Light travelling straight down: points higher up are closer to the
	// light and must land at a smaller depth.
	l := NewLight(WithDirection(common.Vector3{0, -1, 0}))

	vp := ShadowViewProjection(l, DefaultShadowHalfExtent, DefaultShadowNear, DefaultShadowFar)

	high := common.MulVec4(vp, common.Vector4{0, 5, 0, 1})
	low := common.MulVec4(vp, common.Vector4{0, -5, 0, 1})
	assert.Less(t, high[2], low[2])
}

func TestShadowViewProjectionSlantedDirection(t *testing.T) {
	l := NewLight(WithDirection(common.Vector3{-1, -2, -1}))

	vp := ShadowViewProjection(l, DefaultShadowHalfExtent, DefaultShadowNear, DefaultShadowFar)

	// Points inside the frustum map into clip bounds.
	p := common.MulVec4(vp, common.Vector4{2, 1, -3, 1})
	assert.InDelta(t, 0, p[0], 1.0)
	assert.InDelta(t, 0, p[1], 1.0)
	assert.GreaterOrEqual(t, p[2], float32(0))
	assert.LessOrEqual(t, p[2], float32(1))
}
