package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/r3c/arcadejs-sub001/common"
)

func TestOrbitControllerPositionFromAngles(t *testing.T) {
	ctrl := NewOrbitController(
		WithOrbitRadius(10),
		WithOrbitAngles(0, 0),
	)

	pos := ctrl.Position()
	assert.InDelta(t, 0, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[1], 1e-5)
	assert.InDelta(t, 10, pos[2], 1e-5)

	ctrl.Rotate(math32.Pi/2, 0)
	pos = ctrl.Position()
	assert.InDelta(t, 10, pos[0], 1e-5)
	assert.InDelta(t, 0, pos[2], 1e-5)
}

func TestOrbitControllerFollowsTarget(t *testing.T) {
	ctrl := NewOrbitController(
		WithOrbitRadius(3),
		WithOrbitAngles(0, 0),
	)
	ctrl.SetTarget(common.Vector3{5, 1, -2})

	pos := ctrl.Position()
	assert.InDelta(t, 5, pos[0], 1e-5)
	assert.InDelta(t, 1, pos[1], 1e-5)
	assert.InDelta(t, 1, pos[2], 1e-5)
}

func TestOrbitControllerClampsElevation(t *testing.T) {
	ctrl := NewOrbitController(WithOrbitRadius(5))

	ctrl.Rotate(0, 100)
	pos := ctrl.Position()
	assert.Less(t, pos[1], float32(5), "camera must stay below the pole")

	ctrl.Rotate(0, -200)
	pos = ctrl.Position()
	assert.Greater(t, pos[1], float32(-5), "camera must stay above the pole")
}

func TestOrbitControllerClampsRadius(t *testing.T) {
	ctrl := NewOrbitController(
		WithOrbitRadius(5),
		WithOrbitRadiusBounds(2, 8),
		WithOrbitAngles(0, 0),
	)

	for i := 0; i < 100; i++ {
		ctrl.Zoom(1)
	}
	assert.InDelta(t, 2, common.Length3(common.Sub3(ctrl.Position(), ctrl.Target())), 1e-4)

	for i := 0; i < 100; i++ {
		ctrl.Zoom(-1)
	}
	assert.InDelta(t, 8, common.Length3(common.Sub3(ctrl.Position(), ctrl.Target())), 1e-4)
}

func TestCameraViewLooksAtTarget(t *testing.T) {
	ctrl := NewOrbitController(
		WithOrbitRadius(4),
		WithOrbitAngles(0, 0),
	)
	cam := NewCamera(WithController(ctrl))

	view := cam.View()
	eye := common.MulVec4(view, common.Vector4{0, 0, 4, 1})
	assert.InDelta(t, 0, eye[0], 1e-5)
	assert.InDelta(t, 0, eye[1], 1e-5)
	assert.InDelta(t, 0, eye[2], 1e-5)

	target := common.MulVec4(view, common.Vector4{0, 0, 0, 1})
	assert.Less(t, target[2], float32(0), "target must be in front of the camera")
}

func TestCameraWithoutControllerIsIdentity(t *testing.T) {
	cam := NewCamera()
	assert.Equal(t, common.Identity4(), cam.View())
}

func TestCameraProjectionUsesSettings(t *testing.T) {
	cam := NewCamera(
		WithFov(common.DegreesToRadians(60)),
		WithAspect(2),
		WithClipPlanes(1, 50),
	)

	proj := cam.Projection()
	near := common.MulVec4(proj, common.Vector4{0, 0, -1, 1})
	far := common.MulVec4(proj, common.Vector4{0, 0, -50, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-5)
	assert.InDelta(t, 1, far[2]/far[3], 1e-5)
}
