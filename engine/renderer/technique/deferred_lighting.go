package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/painter"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
	"github.com/r3c/arcadejs-sub001/engine/scene"
)

// compositeFrame is the scene state of the deferred lighting composition
// pass.
type compositeFrame struct {
	ambient common.Color
	light   *binding.Texture
}

// deferredLighting renders a minimal geometry buffer holding only packed
// normals and specular parameters, accumulates lights into a log-encoded
// buffer through multiplicative blending, then composes the result with a
// single fullscreen draw. Compared to deferred shading it halves the
// geometry buffer footprint at the cost of losing per-material albedo.
type deferredLighting struct {
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
	compositePipeline   pipeline.Pipeline
	compositeShader     shader.Shader[compositeFrame, shader.MeshState]
	quad                *model.Geometry
	billboard           *model.Geometry
}

var _ Technique = &deferredLighting{}

func (d *deferredLighting) Render(s *scene.Scene) {
	rejectPointShadows(s)

	width, height := d.gbuffer.Width(), d.gbuffer.Height()
	frame := newLightFrame(s, width, height, d.gbuffer.Depth(), d.gbuffer.Color(0))
	directional, point := sceneLightDraws(s)

	pass := d.r.BeginPass(renderer.PassDescriptor{Label: "geometry", Target: d.gbuffer})
	pass.SetPipeline(d.geometryPipeline)

	d.geometryShader.BeginPass()
	d.geometryShader.ApplyScene(pass, geometryFrame{projection: s.Projection, view: s.View})

	for _, object := range s.Objects {
		painter.Draw(pass, d.geometryShader, object.Root, object.Transform, s.View)
	}

	pass.End()

	// The light buffer clears to white, the encoding of zero, and each
	// light draw multiplies its own encoded contribution in.
	pass = d.r.BeginPass(renderer.PassDescriptor{Label: "light", Target: d.lightTarget})

	pass.SetPipeline(d.directionalPipeline)
	drawLights(pass, d.directionalShader, frame, d.quad, directional)

	pass.SetPipeline(d.pointPipeline)
	drawLights(pass, d.pointShader, frame, d.billboard, point)

	pass.End()

	pass = d.r.BeginPass(renderer.PassDescriptor{Label: "composite"})
	pass.SetPipeline(d.compositePipeline)

	d.compositeShader.BeginPass()
	d.compositeShader.ApplyScene(pass, compositeFrame{ambient: s.Ambient, light: d.lightTarget.Color(0)})
	d.compositeShader.ApplyGeometry(pass, d.quad)
	pass.DrawIndexed(d.quad.IndexCount())

	pass.End()
}

func (d *deferredLighting) Resize(width uint32, height uint32) {
	d.gbuffer.Resize(width, height)
	d.lightTarget.Resize(width, height)
}

func (d *deferredLighting) Release() {
	d.geometryShader.Release()
	d.directionalShader.Release()
	d.pointShader.Release()
	d.compositeShader.Release()
	d.gbuffer.Dispose()
	d.lightTarget.Dispose()
	d.quad.Dispose()
	d.billboard.Dispose()
}

func (d *deferredLighting) bindComposite() {
	sh := d.compositeShader

	if d.ambient {
		sh.SetUniformPerScene(shader.UniformVector4, "ambientColor", func(frame compositeFrame) shader.Value {
			return shader.Vector4Value(frame.ambient.Vec4())
		})
	}

	sh.SetTexturePerScene("lightBuffer", common.Sampler{}, func(frame compositeFrame) *binding.Texture {
		return frame.light
	})

	sh.SetAttributePerGeometry("position", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Points()
	})
	sh.SetAttributePerGeometry("coordinate", func(geometry *model.Geometry) *binding.Buffer {
		return geometry.Coordinates()
	})
}
