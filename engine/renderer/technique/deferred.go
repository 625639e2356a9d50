package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/scene"
)

// Frame and draw state shared by the two deferred techniques. Both run a
// geometry pass that scatters surface attributes into offscreen targets,
// then accumulate lights by reading those targets back per screen pixel.

// geometryFrame is the scene state of a deferred geometry pass.
type geometryFrame struct {
	projection common.Matrix4
	view       common.Matrix4
}

// lightFrame is the scene state of a deferred light accumulation pass. The
// depth and normal buffers are read with textureLoad, so no samplers are
// involved.
type lightFrame struct {
	projection        common.Matrix4
	inverseProjection common.Matrix4
	viewport          common.Vector2
	depth             *binding.Texture
	normalSpecular    *binding.Texture
}

// lightDraw is the per-draw state of one light volume: a view-space
// direction for directional lights, a view-space position plus radius for
// point lights.
type lightDraw struct {
	vector common.Vector3
	color  common.Color
	radius float32
}

// newLightFrame derives the light pass state from the scene's projection
// and the geometry buffers.
func newLightFrame(s *scene.Scene, width uint32, height uint32, depth *binding.Texture, normalSpecular *binding.Texture) lightFrame {
	inverse, ok := common.Invert4(s.Projection)
	if !ok {
		inverse = common.Identity4()
	}

	return lightFrame{
		projection:        s.Projection,
		inverseProjection: inverse,
		viewport:          common.Vector2{float32(width), float32(height)},
		depth:             depth,
		normalSpecular:    normalSpecular,
	}
}

// bindGeometryShader wires a deferred geometry shader's bindings. The albedo
// flag matches the OUTPUT_ALBEDO variant directive.
func bindGeometryShader(r renderer.Renderer, sh shader.Shader[geometryFrame, shader.MeshState], albedo bool, normalMap bool, heightMap bool) {
	colorSampler := common.Sampler{Magnify: common.FilterLinear, Minify: common.FilterLinear, Mipmap: true, Wrap: common.WrapRepeat}

	sh.SetUniformPerScene(shader.UniformMatrix4, "projection", func(frame geometryFrame) shader.Value {
		return shader.Matrix4Value(frame.projection)
	})
	sh.SetUniformPerScene(shader.UniformMatrix4, "view", func(frame geometryFrame) shader.Value {
		return shader.Matrix4Value(frame.view)
	})

	sh.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})
	sh.SetUniformPerMesh(shader.UniformMatrix3, "normalMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix3Value(state.Normal)
	})

	if albedo {
		sh.SetUniformPerMaterial(shader.UniformVector4, "albedoFactor", func(mat material.Material) shader.Value {
			return shader.Vector4Value(mat.Albedo().Vec4())
		})
		sh.SetTexturePerMaterial("albedoMap", "albedoMapEnabled", colorSampler, r.WhiteTexture(), func(mat material.Material) *binding.Texture {
			return mat.AlbedoMap()
		})
	}

	sh.SetUniformPerMaterial(shader.UniformVector4, "glossFactor", func(mat material.Material) shader.Value {
		return shader.Vector4Value(mat.Gloss().Vec4())
	})
	sh.SetTexturePerMaterial("glossMap", "glossMapEnabled", colorSampler, r.WhiteTexture(), func(mat material.Material) *binding.Texture {
		return mat.GlossMap()
	})
	sh.SetUniformPerMaterial(shader.UniformScalar, "shininess", func(mat material.Material) shader.Value {
		return shader.ScalarValue(mat.Shininess())
	})

	if normalMap {
		sh.SetTexturePerMaterial("normalMap", "", colorSampler, r.FlatNormalTexture(), func(mat material.Material) *binding.Texture {
			return mat.NormalMap()
		})
	}

	if heightMap {
		sh.SetTexturePerMaterial("heightMap", "", colorSampler, r.BlackTexture(), func(mat material.Material) *binding.Texture {
			return mat.HeightMap()
		})
		sh.SetUniformPerMaterial(shader.UniformScalar, "heightParallaxScale", func(mat material.Material) shader.Value {
			return shader.ScalarValue(mat.HeightParallaxScale())
		})
		sh.SetUniformPerMaterial(shader.UniformScalar, "heightParallaxBias", func(mat material.Material) shader.Value {
			return shader.ScalarValue(mat.HeightParallaxBias())
		})
	}

	sh.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	sh.SetAttributePerGeometry("normal", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Normals()
	})
	sh.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})

	if normalMap || heightMap {
		sh.SetAttributePerGeometry("tangent", func(geometry *model.Geometry) *binding.Buffer {
			return geometry.Tangents()
		})
	}
}

// bindLightShader wires a deferred light shader's bindings for one light
// type. Per-light values travel through the dynamic per-draw buffer, so a
// single pass can accumulate any number of lights.
func bindLightShader(sh shader.Shader[lightFrame, lightDraw], point bool) {
	sh.SetUniformPerScene(shader.UniformMatrix4, "projection", func(frame lightFrame) shader.Value {
		return shader.Matrix4Value(frame.projection)
	})
	sh.SetUniformPerScene(shader.UniformMatrix4, "inverseProjection", func(frame lightFrame) shader.Value {
		return shader.Matrix4Value(frame.inverseProjection)
	})
	sh.SetUniformPerScene(shader.UniformVector2, "viewport", func(frame lightFrame) shader.Value {
		return shader.Vector2Value(frame.viewport)
	})
	sh.SetTexturePerScene("depthBuffer", common.Sampler{}, func(frame lightFrame) *binding.Texture {
		return frame.depth
	})
	sh.SetTexturePerScene("normalSpecularBuffer", common.Sampler{}, func(frame lightFrame) *binding.Texture {
		return frame.normalSpecular
	})

	if point {
		sh.SetUniformPerMesh(shader.UniformVector4, "lightPosition", func(draw lightDraw) shader.Value {
			return shader.Vector4Value(common.Vector4{draw.vector[0], draw.vector[1], draw.vector[2], draw.radius})
		})
	} else {
		sh.SetUniformPerMesh(shader.UniformVector4, "lightDirection", func(draw lightDraw) shader.Value {
			return shader.Vector4Value(common.Vector4{draw.vector[0], draw.vector[1], draw.vector[2], 0})
		})
	}

	sh.SetUniformPerMesh(shader.UniformVector4, "lightColor", func(draw lightDraw) shader.Value {
		return shader.Vector4Value(draw.color.Vec4())
	})

	sh.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	sh.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})
}

// drawLights encodes one draw per light through the given shader.
func drawLights(pass renderer.Pass, sh shader.Shader[lightFrame, lightDraw], frame lightFrame, geometry *model.Geometry, draws []lightDraw) {
	if len(draws) == 0 {
		return
	}

	sh.BeginPass()
	sh.ApplyScene(pass, frame)
	sh.ApplyGeometry(pass, geometry)

	for _, draw := range draws {
		sh.ApplyMesh(pass, draw)
		pass.DrawIndexed(geometry.IndexCount())
	}
}

// sceneLightDraws resolves the scene's lights into view-space draw states.
func sceneLightDraws(s *scene.Scene) (directional []lightDraw, point []lightDraw) {
	for _, l := range s.DirectionalLights() {
		directional = append(directional, lightDraw{
			vector: viewDirection(s.View, l.Direction()),
			color:  l.Color(),
		})
	}

	for _, l := range s.PointLights() {
		point = append(point, lightDraw{
			vector: viewPoint(s.View, l.Position()),
			color:  l.Color(),
			radius: l.Radius(),
		})
	}

	return directional, point
}
