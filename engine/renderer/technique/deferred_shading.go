package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
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

// materialFrame is the scene state of the deferred shading material pass,
// which re-draws geometry combining accumulated light with surface colors.
type materialFrame struct {
	projection common.Matrix4
	view       common.Matrix4
	ambient    common.Color
	light      *binding.Texture
}

// deferredShading renders in three passes: surface attributes into a
// geometry buffer, light accumulation into an additive light buffer, then a
// material pass that re-draws the scene's geometry combining both.
type deferredShading struct {
	r                   renderer.Renderer
	ambient             bool
	specular            bool
	normalMap           bool
	heightMap           bool
	gbuffer             target.Target
	lightTarget         target.Target
	geometryPipeline    pipeline.Pipeline
	geometryShader      shader.Shader[geometryFrame, shader.MeshState]
	directionalPipeline pipeline.Pipeline
	directionalShader   shader.Shader[lightFrame, lightDraw]
	pointPipeline       pipeline.Pipeline
	pointShader         shader.Shader[lightFrame, lightDraw]
	materialPipeline    pipeline.Pipeline
	materialShader      shader.Shader[materialFrame, shader.MeshState]
	quad                *model.Geometry
	billboard           *model.Geometry
}

var _ Technique = &deferredShading{}

func (d *deferredShading) Render(s *scene.Scene) {
	rejectPointShadows(s)

	width, height := d.gbuffer.Width(), d.gbuffer.Height()
	frame := newLightFrame(s, width, height, d.gbuffer.Depth(), d.gbuffer.Color(1))
	directional, point := sceneLightDraws(s)

	pass := d.r.BeginPass(renderer.PassDescriptor{Label: "geometry", Target: d.gbuffer})
	pass.SetPipeline(d.geometryPipeline)

	d.geometryShader.BeginPass()
	d.geometryShader.ApplyScene(pass, geometryFrame{projection: s.Projection, view: s.View})

	for _, object := range s.Objects {
		painter.Draw(pass, d.geometryShader, object.Root, object.Transform, s.View)
	}

	pass.End()

	pass = d.r.BeginPass(renderer.PassDescriptor{Label: "light", Target: d.lightTarget})

	pass.SetPipeline(d.directionalPipeline)
	drawLights(pass, d.directionalShader, frame, d.quad, directional)

	pass.SetPipeline(d.pointPipeline)
	drawLights(pass, d.pointShader, frame, d.billboard, point)

	pass.End()

	pass = d.r.BeginPass(renderer.PassDescriptor{Label: "material"})
	pass.SetPipeline(d.materialPipeline)

	d.materialShader.BeginPass()
	d.materialShader.ApplyScene(pass, materialFrame{
		projection: s.Projection,
		view:       s.View,
		ambient:    s.Ambient,
		light:      d.lightTarget.Color(0),
	})

	for _, object := range s.Objects {
		painter.Draw(pass, d.materialShader, object.Root, object.Transform, s.View)
	}

	pass.End()
}

func (d *deferredShading) Resize(width uint32, height uint32) {
	d.gbuffer.Resize(width, height)
	d.lightTarget.Resize(width, height)
}

func (d *deferredShading) Release() {
	d.geometryShader.Release()
	d.directionalShader.Release()
	d.pointShader.Release()
	d.materialShader.Release()
	d.gbuffer.Dispose()
	d.lightTarget.Dispose()
	d.quad.Dispose()
	d.billboard.Dispose()
}

func (d *deferredShading) bindMaterial() {
	sh := d.materialShader
	colorSampler := common.Sampler{Magnify: common.FilterLinear, Minify: common.FilterLinear, Mipmap: true, Wrap: common.WrapRepeat}

	sh.SetUniformPerScene(shader.UniformMatrix4, "projection", func(frame materialFrame) shader.Value {
		return shader.Matrix4Value(frame.projection)
	})
	sh.SetUniformPerScene(shader.UniformMatrix4, "view", func(frame materialFrame) shader.Value {
		return shader.Matrix4Value(frame.view)
	})

	if d.ambient {
		sh.SetUniformPerScene(shader.UniformVector4, "ambientColor", func(frame materialFrame) shader.Value {
			return shader.Vector4Value(frame.ambient.Vec4())
		})
	}

	sh.SetTexturePerScene("lightBuffer", common.Sampler{}, func(frame materialFrame) *binding.Texture {
		return frame.light
	})

	sh.SetUniformPerMesh(shader.UniformMatrix4, "modelMatrix", func(state shader.MeshState) shader.Value {
		return shader.Matrix4Value(state.Model)
	})

	sh.SetUniformPerMaterial(shader.UniformVector4, "albedoFactor", func(mat material.Material) shader.Value {
		return shader.Vector4Value(mat.Albedo().Vec4())
	})
	sh.SetTexturePerMaterial("albedoMap", "albedoMapEnabled", colorSampler, d.r.WhiteTexture(), func(mat material.Material) *binding.Texture {
		return mat.AlbedoMap()
	})

	if d.specular {
		sh.SetUniformPerMaterial(shader.UniformVector4, "glossFactor", func(mat material.Material) shader.Value {
			return shader.Vector4Value(mat.Gloss().Vec4())
		})
		sh.SetTexturePerMaterial("glossMap", "glossMapEnabled", colorSampler, d.r.WhiteTexture(), func(mat material.Material) *binding.Texture {
			return mat.GlossMap()
		})
	}

	sh.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	sh.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})
}
