package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
)

func TestNewGeometryRequiresPoints(t *testing.T) {
	assert.Panics(t, func() {
		NewGeometry(WithIndices16([]uint16{0, 1, 2}))
	})
}

func TestNewGeometryRequiresIndices(t *testing.T) {
	assert.Panics(t, func() {
		NewGeometry(WithPoints([]common.Vector3{{0, 0, 0}}))
	})
}

func TestNewGeometryRejectsMismatchedStreams(t *testing.T) {
	assert.Panics(t, func() {
		NewGeometry(
			WithPoints([]common.Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}),
			WithNormals([]common.Vector3{{0, 0, 1}}),
			WithIndices16([]uint16{0, 1, 2}),
		)
	})
}

func TestNewCubeTopology(t *testing.T) {
	cube := NewCube(2)

	assert.Len(t, cube.points, 24, "4 vertices per face, 6 faces")
	assert.Len(t, cube.normals, 24)
	assert.Len(t, cube.tangents, 24)
	assert.Len(t, cube.coordinates, 24)
	assert.Equal(t, uint32(36), cube.IndexCount())

	// Every vertex sits on the surface of the cube.
	for _, p := range cube.points {
		onFace := false
		for i := 0; i < 3; i++ {
			if p[i] == 1 || p[i] == -1 {
				onFace = true
			}
			assert.LessOrEqual(t, p[i], float32(1))
			assert.GreaterOrEqual(t, p[i], float32(-1))
		}
		assert.True(t, onFace)
	}
}

func TestNewSphereTopology(t *testing.T) {
	sphere := NewSphere(2, 8, 12)

	require.NotEmpty(t, sphere.points)
	assert.Equal(t, len(sphere.points), len(sphere.normals))
	assert.Equal(t, len(sphere.points), len(sphere.coordinates))

	for i, p := range sphere.points {
		assert.InDelta(t, 2, common.Length3(p), 1e-4, "vertex %d must lie on the sphere", i)

		// Normals point radially outward.
		n := sphere.normals[i]
		assert.InDelta(t, 1, common.Length3(n), 1e-4)
		assert.InDelta(t, 2, common.Dot3(n, p), 1e-3)
	}

	// All indices reference valid vertices.
	for _, idx := range sphere.indices16 {
		assert.Less(t, int(idx), len(sphere.points))
	}
}

func TestNewScreenQuadCoversClipSpace(t *testing.T) {
	quad := NewScreenQuad()

	assert.Len(t, quad.points, 4)
	assert.Equal(t, uint32(6), quad.IndexCount())
	for _, p := range quad.points {
		assert.Contains(t, []float32{-1, 1}, p[0])
		assert.Contains(t, []float32{-1, 1}, p[1])
		assert.Equal(t, float32(0), p[2])
	}
}

func TestNodeHierarchy(t *testing.T) {
	geometry := NewCube(1)
	leaf := NewNode(
		WithTransform(common.Translation(common.Vector3{0, 1, 0})),
		WithPrimitives(Primitive{Geometry: geometry}),
	)
	root := NewNode(WithChildren(leaf))

	assert.Equal(t, common.Identity4(), root.Transform())
	assert.Empty(t, root.Primitives())
	require.Len(t, root.Children(), 1)
	assert.Len(t, root.Children()[0].Primitives(), 1)
}
