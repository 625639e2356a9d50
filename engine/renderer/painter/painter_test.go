package painter_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/painter"
	"github.com/r3c/arcadejs-sub001/engine/renderer/rendertest"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

const walkTemplate = `
@group(0) @binding(0) var<uniform> viewMatrix: mat4x4<f32>;

@group(1) @binding(0) var<uniform> modelMatrix: mat4x4<f32>;

@group(2) @binding(0) var<uniform> albedoFactor: vec4<f32>;

struct VertexInput {
	@location(0) position: vec3<f32>,
}

@vertex
fn vertexMain(input: VertexInput) -> @builtin(position) vec4<f32> {
	return viewMatrix * modelMatrix * vec4<f32>(input.position, 1.0);
}

@fragment
fn fragmentMain() -> @location(0) vec4<f32> {
	return albedoFactor;
}
`

type walkScene struct {
	view common.Matrix4
}

func buildWalkShader(t *testing.T, device *rendertest.Device) shader.Shader[walkScene, shader.MeshState] {
	t.Helper()

	program := shader.NewProgram("walk", walkTemplate, nil)
	s := shader.NewShader[walkScene, shader.MeshState](device, program)

	s.SetUniformPerScene(shader.UniformMatrix4, "viewMatrix", func(state walkScene) shader.Value {
		return shader.Matrix4Value(state.view)
	})
	s.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})
	s.SetUniformPerMaterial(shader.UniformVector4, "albedoFactor", func(mat material.Material) shader.Value {
		return shader.Vector4Value(mat.Albedo().Vec4())
	})
	s.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})

	return s
}

func buildLeaf(t *testing.T, device *rendertest.Device, transform common.Matrix4) model.Node {
	t.Helper()

	geometry := model.NewCube(1)
	geometry.Upload(device)

	mat := material.NewMaterial(material.WithName("leaf"))

	return model.NewNode(
		model.WithTransform(transform),
		model.WithPrimitives(model.Primitive{Geometry: geometry, Material: mat}),
	)
}

func TestDrawVisitsChildrenBeforeParent(t *testing.T) {
	device := rendertest.NewDevice()
	s := buildWalkShader(t, device)
	pass := rendertest.NewPass()

	child := buildLeaf(t, device, common.Translation(common.Vector3{0, 1, 0}))

	parentGeometry := model.NewCube(2)
	parentGeometry.Upload(device)
	parent := model.NewNode(
		model.WithPrimitives(model.Primitive{Geometry: parentGeometry, Material: material.NewMaterial(material.WithName("parent"))}),
		model.WithChildren(child),
	)

	s.BeginPass()
	s.ApplyScene(pass, walkScene{view: common.Identity4()})
	painter.Draw(pass, s, parent, common.Identity4(), common.Identity4())

	draws := 0
	for _, op := range pass.Ops {
		if op == "DrawIndexed 36" {
			draws++
		}
	}
	assert.Equal(t, 2, draws)
}

func TestDrawComposesParentTransforms(t *testing.T) {
	device := rendertest.NewDevice()
	s := buildWalkShader(t, device)
	pass := rendertest.NewPass()

	node := buildLeaf(t, device, common.Translation(common.Vector3{0, 0, 3}))
	parent := common.Translation(common.Vector3{1, 0, 0})

	s.BeginPass()
	s.ApplyScene(pass, walkScene{view: common.Identity4()})
	painter.Draw(pass, s, node, parent, common.Identity4())

	assert.Equal(t, 1, countDraws(pass.Ops))

	// The model matrix written for the draw carries both translations.
	data := device.UniformData("mesh/modelMatrix")
	require.GreaterOrEqual(t, len(data), 64)

	expected := common.Mul4(parent, common.Translation(common.Vector3{0, 0, 3}))
	for i := 12; i < 15; i++ {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		assert.Equal(t, expected[i], math.Float32frombits(bits))
	}
}

func countDraws(ops []string) int {
	count := 0
	for _, op := range ops {
		if len(op) >= 11 && op[:11] == "DrawIndexed" {
			count++
		}
	}

	return count
}
