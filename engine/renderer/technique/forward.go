package technique

import (
	"fmt"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/light"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/painter"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
	"github.com/r3c/arcadejs-sub001/engine/scene"
)

// forwardLight is one light slot resolved into view space.
type forwardLight struct {
	vector common.Vector3
	color  common.Color
	radius float32
}

// forwardFrame carries the per-frame scene state the forward shader reads.
type forwardFrame struct {
	projection   common.Matrix4
	view         common.Matrix4
	ambient      common.Color
	directional  []forwardLight
	point        []forwardLight
	shadowMatrix common.Matrix4
	shadowMap    *binding.Texture
}

// shadowFrame is the scene state of the depth-only shadow pass.
type shadowFrame struct {
	viewProjection common.Matrix4
}

type forward struct {
	r              renderer.Renderer
	clearColor     common.Color
	lightModel     LightModel
	ambient        bool
	specular       bool
	normalMap      bool
	heightMap      bool
	shadow         bool
	maxDirectional int
	maxPoint       int
	scenePipeline  pipeline.Pipeline
	sceneShader    shader.Shader[forwardFrame, shader.MeshState]
	shadowTarget   target.Target
	shadowPipeline pipeline.Pipeline
	shadowShader   shader.Shader[shadowFrame, shader.MeshState]
}

var _ Technique = &forward{}

func (f *forward) Render(s *scene.Scene) {
	rejectPointShadows(s)

	frame := f.assemble(s)

	if f.shadow {
		// The shadow pass always runs so the map clears to far depth when
		// no caster is present, which samples as fully lit.
		pass := f.r.BeginPass(renderer.PassDescriptor{Label: "shadow", Target: f.shadowTarget})
		pass.SetPipeline(f.shadowPipeline)

		f.shadowShader.BeginPass()
		f.shadowShader.ApplyScene(pass, shadowFrame{viewProjection: frame.shadowMatrix})

		if s.ShadowCaster() != nil {
			for _, object := range s.Objects {
				painter.Draw(pass, f.shadowShader, object.Root, object.Transform, s.View)
			}
		}

		pass.End()
	}

	pass := f.r.BeginPass(renderer.PassDescriptor{Label: "forward", ClearColor: f.clearColor})
	pass.SetPipeline(f.scenePipeline)

	f.sceneShader.BeginPass()
	f.sceneShader.ApplyScene(pass, frame)

	for _, object := range s.Objects {
		painter.Draw(pass, f.sceneShader, object.Root, object.Transform, s.View)
	}

	pass.End()
}

func (f *forward) Resize(width uint32, height uint32) {
	// The shadow map has a fixed resolution and the main pass draws
	// straight to the surface, so there is nothing to reallocate.
}

func (f *forward) Release() {
	f.sceneShader.Release()

	if f.shadow {
		f.shadowShader.Release()
		f.shadowTarget.Dispose()
	}
}

// assemble resolves scene lights into the shader's fixed slots, in view
// space. Lights beyond the configured slot counts are dropped.
func (f *forward) assemble(s *scene.Scene) forwardFrame {
	frame := forwardFrame{
		projection:   s.Projection,
		view:         s.View,
		ambient:      s.Ambient,
		shadowMatrix: common.Identity4(),
	}

	for _, l := range s.DirectionalLights() {
		if len(frame.directional) >= f.maxDirectional {
			break
		}

		frame.directional = append(frame.directional, forwardLight{
			vector: viewDirection(s.View, l.Direction()),
			color:  l.Color(),
		})
	}

	for _, l := range s.PointLights() {
		if len(frame.point) >= f.maxPoint {
			break
		}

		frame.point = append(frame.point, forwardLight{
			vector: viewPoint(s.View, l.Position()),
			color:  l.Color(),
			radius: l.Radius(),
		})
	}

	if f.shadow {
		frame.shadowMap = f.shadowTarget.Depth()

		if caster := s.ShadowCaster(); caster != nil {
			frame.shadowMatrix = light.ShadowViewProjection(
				caster,
				light.DefaultShadowHalfExtent,
				light.DefaultShadowNear,
				light.DefaultShadowFar,
			)
		}
	}

	return frame
}

// bindScene registers the forward shader's scene-frequency uniforms. Light
// slots past the scene's light count read zeroed values, which contribute no
// light.
func (f *forward) bindScene() {
	sh := f.sceneShader

	sh.SetUniformPerScene(shader.UniformMatrix4, "projection", func(frame forwardFrame) shader.Value {
		return shader.Matrix4Value(frame.projection)
	})
	sh.SetUniformPerScene(shader.UniformMatrix4, "view", func(frame forwardFrame) shader.Value {
		return shader.Matrix4Value(frame.view)
	})

	if f.ambient {
		sh.SetUniformPerScene(shader.UniformVector4, "ambientColor", func(frame forwardFrame) shader.Value {
			return shader.Vector4Value(frame.ambient.Vec4())
		})
	}

	for i := 0; i < f.maxDirectional; i++ {
		slot := i

		sh.SetUniformPerScene(shader.UniformVector4, fmt.Sprintf("directionalLight%dDirection", slot), func(frame forwardFrame) shader.Value {
			if slot < len(frame.directional) {
				v := frame.directional[slot].vector

				return shader.Vector4Value(common.Vector4{v[0], v[1], v[2], 0})
			}

			return shader.Vector4Value(common.Vector4{})
		})
		sh.SetUniformPerScene(shader.UniformVector4, fmt.Sprintf("directionalLight%dColor", slot), func(frame forwardFrame) shader.Value {
			if slot < len(frame.directional) {
				return shader.Vector4Value(frame.directional[slot].color.Vec4())
			}

			return shader.Vector4Value(common.Vector4{})
		})
	}

	for i := 0; i < f.maxPoint; i++ {
		slot := i

		sh.SetUniformPerScene(shader.UniformVector4, fmt.Sprintf("pointLight%dPosition", slot), func(frame forwardFrame) shader.Value {
			if slot < len(frame.point) {
				l := frame.point[slot]

				return shader.Vector4Value(common.Vector4{l.vector[0], l.vector[1], l.vector[2], l.radius})
			}

			return shader.Vector4Value(common.Vector4{})
		})
		sh.SetUniformPerScene(shader.UniformVector4, fmt.Sprintf("pointLight%dColor", slot), func(frame forwardFrame) shader.Value {
			if slot < len(frame.point) {
				return shader.Vector4Value(frame.point[slot].color.Vec4())
			}

			return shader.Vector4Value(common.Vector4{})
		})
	}

	if f.shadow {
		sh.SetUniformPerScene(shader.UniformMatrix4, "shadowProjection", func(frame forwardFrame) shader.Value {
			return shader.Matrix4Value(frame.shadowMatrix)
		})
		sh.SetTexturePerScene("shadowMap", common.Sampler{Magnify: common.FilterLinear, Minify: common.FilterLinear}, func(frame forwardFrame) *binding.Texture {
			return frame.shadowMap
		})
	}
}

func (f *forward) bindMesh() {
	f.sceneShader.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})
	f.sceneShader.SetUniformPerMesh(shader.UniformMatrix3, "normalMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix3Value(state.Normal)
	})
}

func (f *forward) bindMaterial() {
	sh := f.sceneShader
	colorSampler := common.Sampler{Magnify: common.FilterLinear, Minify: common.FilterLinear, Mipmap: true, Wrap: common.WrapRepeat}

	sh.SetUniformPerMaterial(shader.UniformVector4, "albedoFactor", func(mat material.Material) shader.Value {
		return shader.Vector4Value(mat.Albedo().Vec4())
	})
	sh.SetTexturePerMaterial("albedoMap", "albedoMapEnabled", colorSampler, f.r.WhiteTexture(), func(mat material.Material) *binding.Texture {
		return mat.AlbedoMap()
	})

	if f.specular {
		sh.SetUniformPerMaterial(shader.UniformVector4, "glossFactor", func(mat material.Material) shader.Value {
			return shader.Vector4Value(mat.Gloss().Vec4())
		})
		sh.SetTexturePerMaterial("glossMap", "glossMapEnabled", colorSampler, f.r.WhiteTexture(), func(mat material.Material) *binding.Texture {
			return mat.GlossMap()
		})
		sh.SetUniformPerMaterial(shader.UniformScalar, "shininess", func(mat material.Material) shader.Value {
			return shader.ScalarValue(mat.Shininess())
		})
	}

	if f.normalMap {
		sh.SetTexturePerMaterial("normalMap", "", colorSampler, f.r.FlatNormalTexture(), func(mat material.Material) *binding.Texture {
			return mat.NormalMap()
		})
	}

	if f.heightMap {
		sh.SetTexturePerMaterial("heightMap", "", colorSampler, f.r.BlackTexture(), func(mat material.Material) *binding.Texture {
			return mat.HeightMap()
		})
		sh.SetUniformPerMaterial(shader.UniformScalar, "heightParallaxScale", func(mat material.Material) shader.Value {
			return shader.ScalarValue(mat.HeightParallaxScale())
		})
		sh.SetUniformPerMaterial(shader.UniformScalar, "heightParallaxBias", func(mat material.Material) shader.Value {
			return shader.ScalarValue(mat.HeightParallaxBias())
		})
	}
}

func (f *forward) bindGeometry() {
	sh := f.sceneShader

	sh.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	sh.SetAttributePerGeometry("normal", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Normals()
	})
	sh.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})

	if f.normalMap || f.heightMap {
		sh.SetAttributePerGeometry("tangent", func(geometry *model.Geometry) *binding.Buffer {
			return geometry.Tangents()
		})
	}
}

func (f *forward) bindShadow() {
	f.shadowShader.SetUniformPerScene(shader.UniformMatrix4, "viewProjection", func(frame shadowFrame) shader.Value {
		return shader.Matrix4Value(frame.viewProjection)
	})
	f.shadowShader.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})
	f.shadowShader.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
}
