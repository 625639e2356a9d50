package shader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/rendertest"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

const drawTemplate = `
@group(0) @binding(0) var<uniform> viewMatrix: mat4x4<f32>;

@group(1) @binding(0) var<uniform> modelMatrix: mat4x4<f32>;
@group(1) @binding(1) var<uniform> normalMatrix: mat3x3<f32>;

@group(2) @binding(0) var<uniform> albedoFactor: vec4<f32>;
@group(2) @binding(1) var albedoMap: texture_2d<f32>;
@group(2) @binding(2) var albedoMapSampler: sampler;
@group(2) @binding(3) var<uniform> albedoMapEnabled: f32;

struct VertexInput {
	@location(0) position: vec3<f32>,
	@location(1) coordinate: vec2<f32>,
}

struct VertexOutput {
	@builtin(position) position: vec4<f32>,
	@location(0) coordinate: vec2<f32>,
}

@vertex
fn vertexMain(input: VertexInput) -> VertexOutput {
	var output: VertexOutput;
	output.position = viewMatrix * modelMatrix * vec4<f32>(input.position, 1.0);
	output.coordinate = input.coordinate;
	return output;
}

@fragment
fn fragmentMain(input: VertexOutput) -> @location(0) vec4<f32> {
	var color = albedoFactor;
	if albedoMapEnabled > 0.5 {
		color = color * textureSample(albedoMap, albedoMapSampler, input.coordinate);
	}
	return color;
}
`

type testScene struct {
	view common.Matrix4
}

func buildTestShader(t *testing.T, device *rendertest.Device) (shader.Shader[testScene, shader.MeshState], *binding.Texture) {
	t.Helper()

	fallback := device.CreateTexture("white", common.TextureKindQuad, common.FormatRGBA8, common.Sampler{}, 1, 1, []common.Image{{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}})

	program := shader.NewProgram("draw", drawTemplate, nil)
	s := shader.NewShader[testScene, shader.MeshState](device, program)

	s.SetUniformPerScene(shader.UniformMatrix4, "viewMatrix", func(state testScene) shader.Value {
		return shader.Matrix4Value(state.view)
	})
	s.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})
	s.SetUniformPerMesh(shader.UniformMatrix3, "normalMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix3Value(state.Normal)
	})
	s.SetUniformPerMaterial(shader.UniformVector4, "albedoFactor", func(mat material.Material) shader.Value {
		return shader.Vector4Value(mat.Albedo().Vec4())
	})
	s.SetTexturePerMaterial("albedoMap", "albedoMapEnabled", common.Sampler{Magnify: common.FilterLinear, Minify: common.FilterLinear}, fallback, func(mat material.Material) *binding.Texture {
		return mat.AlbedoMap()
	})
	s.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	s.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})

	return s, fallback
}

func TestShaderRegistrationRejectsUnknownSymbols(t *testing.T) {
	device := rendertest.NewDevice()
	program := shader.NewProgram("draw", drawTemplate, nil)
	s := shader.NewShader[testScene, shader.MeshState](device, program)

	assert.Panics(t, func() {
		s.SetUniformPerScene(shader.UniformMatrix4, "missingMatrix", func(state testScene) shader.Value {
			return shader.Matrix4Value(common.Identity4())
		})
	})

	assert.Panics(t, func() {
		s.SetAttributePerGeometry("missingAttribute", func(geometry *model.Geometry) *binding.Buffer {
			return geometry.Points()
		})
	})
}

func TestShaderRegistrationRejectsSizeMismatch(t *testing.T) {
	device := rendertest.NewDevice()
	program := shader.NewProgram("draw", drawTemplate, nil)
	s := shader.NewShader[testScene, shader.MeshState](device, program)

	assert.Panics(t, func() {
		s.SetUniformPerScene(shader.UniformVector3, "viewMatrix", func(state testScene) shader.Value {
			return shader.Vector3Value(common.Vector3{})
		})
	})
}

func TestShaderBindingReplayOrder(t *testing.T) {
	device := rendertest.NewDevice()
	pass := rendertest.NewPass()

	s, _ := buildTestShader(t, device)
	mat := material.NewMaterial(material.WithAlbedo(common.Color{R: 1, G: 0, B: 0, A: 1}))
	quad := model.NewScreenQuad()

	s.BeginPass()
	s.ApplyScene(pass, testScene{view: common.Identity4()})
	s.ApplyMesh(pass, shader.MeshState{Model: common.Identity4(), Normal: common.Identity3()})
	s.ApplyMaterial(pass, mat)
	s.ApplyGeometry(pass, quad)
	pass.DrawIndexed(quad.IndexCount())

	require.Len(t, pass.Ops, 7)
	assert.Contains(t, pass.Ops[0], "SetBindGroup 0")
	assert.Contains(t, pass.Ops[1], "SetBindGroup 1")
	assert.Contains(t, pass.Ops[1], "offsets=[0 0]")
	assert.Contains(t, pass.Ops[2], "SetBindGroup 2")
	assert.Contains(t, pass.Ops[3], "SetVertexBuffer 0")
	assert.Contains(t, pass.Ops[4], "SetVertexBuffer 1")
	assert.Contains(t, pass.Ops[5], "SetIndexBuffer")
	assert.Equal(t, "DrawIndexed 6", pass.Ops[6])
}

func TestShaderMeshSlotsAdvancePerDraw(t *testing.T) {
	device := rendertest.NewDevice()
	pass := rendertest.NewPass()

	s, _ := buildTestShader(t, device)

	s.BeginPass()
	s.ApplyScene(pass, testScene{view: common.Identity4()})
	s.ApplyMesh(pass, shader.MeshState{Model: common.Translation(common.Vector3{1, 0, 0}), Normal: common.Identity3()})
	s.ApplyMesh(pass, shader.MeshState{Model: common.Translation(common.Vector3{2, 0, 0}), Normal: common.Identity3()})

	require.Len(t, pass.Ops, 3)
	assert.Contains(t, pass.Ops[1], "offsets=[0 0]")
	assert.Contains(t, pass.Ops[2], "offsets=[256 256]")

	// A new pass restarts slot allocation from the front of the arena.
	s.BeginPass()
	s.ApplyMesh(pass, shader.MeshState{Model: common.Identity4(), Normal: common.Identity3()})
	assert.Contains(t, pass.Ops[3], "offsets=[0 0]")
}

func TestShaderMaterialBlockBuiltOnce(t *testing.T) {
	device := rendertest.NewDevice()
	pass := rendertest.NewPass()

	s, _ := buildTestShader(t, device)
	mat := material.NewMaterial()

	s.BeginPass()
	s.ApplyScene(pass, testScene{view: common.Identity4()})
	s.ApplyMaterial(pass, mat)
	s.ApplyMaterial(pass, mat)

	count := 0
	for _, group := range device.BindGroups {
		if group.Layout.Group == shader.GroupMaterial {
			count++
		}
	}

	assert.Equal(t, 1, count)
}

func TestShaderMaterialTextureFallbackAndFlag(t *testing.T) {
	device := rendertest.NewDevice()
	pass := rendertest.NewPass()

	s, fallback := buildTestShader(t, device)

	bare := material.NewMaterial(material.WithName("bare"))
	s.ApplyMaterial(pass, bare)

	flag := device.UniformData("/albedoMapEnabled")
	assert.Equal(t, []byte{0, 0, 0, 0}, flag[:4])

	mapped := material.NewMaterial(
		material.WithName("mapped"),
		material.WithAlbedoMap(device.CreateTexture("brick", common.TextureKindQuad, common.FormatRGBA8, common.Sampler{}, 1, 1, []common.Image{{
			Pixels: []byte{128, 64, 32, 255},
			Width:  1,
			Height: 1,
		}})),
	)
	s.ApplyMaterial(pass, mapped)

	flag = device.UniformData("/albedoMapEnabled")
	assert.NotEqual(t, []byte{0, 0, 0, 0}, flag[:4])

	_ = fallback
}

func TestShaderMandatoryTextureWithoutFallbackPanics(t *testing.T) {
	device := rendertest.NewDevice()
	pass := rendertest.NewPass()

	program := shader.NewProgram("draw", drawTemplate, nil)
	s := shader.NewShader[testScene, shader.MeshState](device, program)

	s.SetTexturePerMaterial("albedoMap", "", common.Sampler{}, nil, func(mat material.Material) *binding.Texture {
		return mat.AlbedoMap()
	})

	assert.Panics(t, func() {
		s.ApplyMaterial(pass, material.NewMaterial())
	})
}
