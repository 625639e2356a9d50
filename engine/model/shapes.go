package model

import (
	"github.com/chewxy/math32"

	"github.com/r3c/arcadejs-sub001/common"
)

// NewCube builds an axis-aligned cube of the given edge length centered on
// the origin, with per-face normals, tangents and texture coordinates.
func NewCube(edge float32) *Geometry {
	h := edge / 2

	type face struct {
		normal  common.Vector3
		tangent common.Vector3
	}

	faces := []face{
		{normal: common.Vector3{0, 0, 1}, tangent: common.Vector3{1, 0, 0}},
		{normal: common.Vector3{0, 0, -1}, tangent: common.Vector3{-1, 0, 0}},
		{normal: common.Vector3{1, 0, 0}, tangent: common.Vector3{0, 0, -1}},
		{normal: common.Vector3{-1, 0, 0}, tangent: common.Vector3{0, 0, 1}},
		{normal: common.Vector3{0, 1, 0}, tangent: common.Vector3{1, 0, 0}},
		{normal: common.Vector3{0, -1, 0}, tangent: common.Vector3{1, 0, 0}},
	}

	points := make([]common.Vector3, 0, 24)
	normals := make([]common.Vector3, 0, 24)
	tangents := make([]common.Vector3, 0, 24)
	coordinates := make([]common.Vector2, 0, 24)
	indices := make([]uint16, 0, 36)

	for _, f := range faces {
		bitangent := common.Cross3(f.normal, f.tangent)
		base := uint16(len(points))

		for _, corner := range []common.Vector2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			point := common.Add3(
				common.Scale3(f.normal, h),
				common.Add3(common.Scale3(f.tangent, corner[0]*h), common.Scale3(bitangent, corner[1]*h)),
			)

			points = append(points, point)
			normals = append(normals, f.normal)
			tangents = append(tangents, f.tangent)
			coordinates = append(coordinates, common.Vector2{(corner[0] + 1) / 2, (corner[1] + 1) / 2})
		}

		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewGeometry(
		WithLabel("cube"),
		WithPoints(points),
		WithNormals(normals),
		WithTangents(tangents),
		WithCoordinates(coordinates),
		WithIndices16(indices),
	)
}

// NewScreenQuad builds a full-screen quad in normalized device coordinates,
// used by composition and directional light passes.
func NewScreenQuad() *Geometry {
	return NewGeometry(
		WithLabel("screen-quad"),
		WithPoints([]common.Vector3{
			{-1, -1, 0},
			{1, -1, 0},
			{1, 1, 0},
			{-1, 1, 0},
		}),
		WithCoordinates([]common.Vector2{
			{0, 1},
			{1, 1},
			{1, 0},
			{0, 0},
		}),
		WithIndices16([]uint16{0, 1, 2, 0, 2, 3}),
	)
}

// NewBillboardQuad builds a unit quad whose corners carry their offsets as
// texture coordinates, for shaders that expand it facing the camera. Point
// light passes scale it by the light radius. The winding is clockwise, so
// the camera-facing side is a back face and survives front-face culling.
func NewBillboardQuad() *Geometry {
	return NewGeometry(
		WithLabel("billboard-quad"),
		WithPoints([]common.Vector3{
			{-1, -1, 0},
			{1, -1, 0},
			{1, 1, 0},
			{-1, 1, 0},
		}),
		WithCoordinates([]common.Vector2{
			{-1, -1},
			{1, -1},
			{1, 1},
			{-1, 1},
		}),
		WithIndices16([]uint16{0, 2, 1, 0, 3, 2}),
	)
}

// NewSphere builds a UV sphere with the given number of latitude and
// longitude subdivisions. Normals point outward and texture coordinates wrap
// once around the equator and from pole to pole.
func NewSphere(radius float32, stacks int, slices int) *Geometry {
	if stacks < 2 || slices < 3 {
		panic("model: sphere needs at least 2 stacks and 3 slices")
	}

	points := make([]common.Vector3, 0, (stacks+1)*(slices+1))
	normals := make([]common.Vector3, 0, (stacks+1)*(slices+1))
	tangents := make([]common.Vector3, 0, (stacks+1)*(slices+1))
	coordinates := make([]common.Vector2, 0, (stacks+1)*(slices+1))

	for stack := 0; stack <= stacks; stack++ {
		phi := math32.Pi * float32(stack) / float32(stacks)
		sinPhi, cosPhi := math32.Sincos(phi)

		for slice := 0; slice <= slices; slice++ {
			theta := 2 * math32.Pi * float32(slice) / float32(slices)
			sinTheta, cosTheta := math32.Sincos(theta)

			normal := common.Vector3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}

			points = append(points, common.Scale3(normal, radius))
			normals = append(normals, normal)
			tangents = append(tangents, common.Vector3{-sinTheta, 0, cosTheta})
			coordinates = append(coordinates, common.Vector2{
				float32(slice) / float32(slices),
				float32(stack) / float32(stacks),
			})
		}
	}

	indices := make([]uint16, 0, stacks*slices*6)
	ring := slices + 1

	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			a := uint16(stack*ring + slice)
			b := uint16((stack+1)*ring + slice)

			if stack > 0 {
				indices = append(indices, a, b, a+1)
			}

			if stack < stacks-1 {
				indices = append(indices, a+1, b, b+1)
			}
		}
	}

	return NewGeometry(
		WithLabel("sphere"),
		WithPoints(points),
		WithNormals(normals),
		WithTangents(tangents),
		WithCoordinates(coordinates),
		WithIndices16(indices),
	)
}
