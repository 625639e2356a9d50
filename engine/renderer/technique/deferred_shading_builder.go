package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
)

// DeferredShadingBuilderOption configures the deferred shading technique
// during construction.
type DeferredShadingBuilderOption func(*deferredShading)

// NewDeferredShading builds the three pass deferred shading technique. Its
// geometry buffer stores albedo alongside packed normals and specular
// parameters, so the number of lights is independent of scene complexity.
// Lighting uses the Phong model; the packed exponent encoding does not carry
// enough range for the physical model.
//
// Parameters:
//   - r: the renderer supplying the device, shader cache and fallbacks
//   - options: configuration options
//
// Returns:
//   - Technique: the deferred shading technique.
func NewDeferredShading(r renderer.Renderer, options ...DeferredShadingBuilderOption) Technique {
	d := &deferredShading{
		r:        r,
		ambient:  true,
		specular: true,
	}

	for _, option := range options {
		option(d)
	}

	width, height := r.Backend().SurfaceSize()

	d.gbuffer = target.NewTarget(r.Backend(),
		target.WithLabel("Geometry Buffer"),
		target.WithSize(width, height),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{}),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{}),
		target.WithDepthAttachment(1.0),
	)
	d.lightTarget = target.NewTarget(r.Backend(),
		target.WithLabel("Light Buffer"),
		target.WithSize(width, height),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{}),
	)

	geometryProgram := r.Shaders().Variant("deferred-geometry", geometryTemplate, shader.Directives{
		"OUTPUT_ALBEDO":     1,
		"USE_NORMAL_MAP":    flag(d.normalMap),
		"USE_HEIGHT_MAP":    flag(d.heightMap),
		"USE_TANGENT_SPACE": flag(d.normalMap || d.heightMap),
	})
	directionalProgram := r.Shaders().Variant("deferred-light", lightTemplate, shader.Directives{
		"LIGHT_TYPE_POINT":   0,
		"USE_DIFFUSE":        1,
		"USE_SPECULAR":       flag(d.specular),
		"USE_PHYSICAL":       0,
		"USE_LIGHT_ENCODING": 0,
	})
	pointProgram := r.Shaders().Variant("deferred-light", lightTemplate, shader.Directives{
		"LIGHT_TYPE_POINT":   1,
		"USE_DIFFUSE":        1,
		"USE_SPECULAR":       flag(d.specular),
		"USE_PHYSICAL":       0,
		"USE_LIGHT_ENCODING": 0,
	})
	materialProgram := r.Shaders().Variant("deferred-material", materialTemplate, shader.Directives{
		"USE_AMBIENT":  flag(d.ambient),
		"USE_SPECULAR": flag(d.specular),
	})

	d.geometryPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-shading/geometry/"+geometryProgram.Key()),
		pipeline.WithProgram(geometryProgram),
		pipeline.WithColorFormats(common.FormatRGBA8, common.FormatRGBA8),
	)
	// Directional volumes cover the whole screen; point volumes are
	// camera-facing billboards culled on their front face so the light
	// survives the camera entering its radius.
	d.directionalPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-shading/directional/"+directionalProgram.Key()),
		pipeline.WithProgram(directionalProgram),
		pipeline.WithColorFormats(common.FormatRGBA8),
		pipeline.WithDepth(false),
		pipeline.WithBlend(pipeline.BlendAdditive),
		pipeline.WithCullMode(pipeline.CullNone),
	)
	d.pointPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-shading/point/"+pointProgram.Key()),
		pipeline.WithProgram(pointProgram),
		pipeline.WithColorFormats(common.FormatRGBA8),
		pipeline.WithDepth(false),
		pipeline.WithBlend(pipeline.BlendAdditive),
		pipeline.WithCullMode(pipeline.CullFront),
	)
	d.materialPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-shading/material/"+materialProgram.Key()),
		pipeline.WithProgram(materialProgram),
		pipeline.WithSurfaceColor(),
	)

	d.geometryShader = shader.NewShader[geometryFrame, shader.MeshState](r.Backend(), geometryProgram)
	d.directionalShader = shader.NewShader[lightFrame, lightDraw](r.Backend(), directionalProgram)
	d.pointShader = shader.NewShader[lightFrame, lightDraw](r.Backend(), pointProgram)
	d.materialShader = shader.NewShader[materialFrame, shader.MeshState](r.Backend(), materialProgram)

	bindGeometryShader(r, d.geometryShader, true, d.normalMap, d.heightMap)
	bindLightShader(d.directionalShader, false)
	bindLightShader(d.pointShader, true)
	d.bindMaterial()

	d.quad = model.NewScreenQuad()
	d.quad.Upload(r.Backend())
	d.billboard = model.NewBillboardQuad()
	d.billboard.Upload(r.Backend())

	r.RegisterPipelines(d.geometryPipeline, d.directionalPipeline, d.pointPipeline, d.materialPipeline)

	return d
}

// WithDeferredShadingAmbient is an option builder that toggles the ambient
// lighting term of the material pass. Enabled by default.
//
// Parameters:
//   - enabled: whether ambient lighting applies
//
// Returns:
//   - DeferredShadingBuilderOption: the option builder.
func WithDeferredShadingAmbient(enabled bool) DeferredShadingBuilderOption {
	return func(d *deferredShading) {
		d.ambient = enabled
	}
}

// WithDeferredShadingSpecular is an option builder that toggles specular
// accumulation. Enabled by default.
//
// Parameters:
//   - enabled: whether specular highlights apply
//
// Returns:
//   - DeferredShadingBuilderOption: the option builder.
func WithDeferredShadingSpecular(enabled bool) DeferredShadingBuilderOption {
	return func(d *deferredShading) {
		d.specular = enabled
	}
}

// WithDeferredShadingNormalMaps is an option builder that enables
// tangent-space normal mapping in the geometry pass.
//
// Returns:
//   - DeferredShadingBuilderOption: the option builder.
func WithDeferredShadingNormalMaps() DeferredShadingBuilderOption {
	return func(d *deferredShading) {
		d.normalMap = true
	}
}

// WithDeferredShadingHeightMaps is an option builder that enables parallax
// height mapping in the geometry pass.
//
// Returns:
//   - DeferredShadingBuilderOption: the option builder.
func WithDeferredShadingHeightMaps() DeferredShadingBuilderOption {
	return func(d *deferredShading) {
		d.heightMap = true
	}
}
