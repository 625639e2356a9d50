package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
)

// DeferredLightingBuilderOption configures the deferred lighting technique
// during construction.
type DeferredLightingBuilderOption func(*deferredLighting)

// NewDeferredLighting builds the deferred lighting technique. Lighting uses
// the Phong model, as in deferred shading.
//
// Parameters:
//   - r: the renderer supplying the device, shader cache and fallbacks
//   - options: configuration options
//
// Returns:
//   - Technique: the deferred lighting technique.
func NewDeferredLighting(r renderer.Renderer, options ...DeferredLightingBuilderOption) Technique {
	d := &deferredLighting{
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
		target.WithDepthAttachment(1.0),
	)
	// White is the multiplicative identity and encodes zero light.
	d.lightTarget = target.NewTarget(r.Backend(),
		target.WithLabel("Light Buffer"),
		target.WithSize(width, height),
		target.WithColorAttachment(common.FormatRGBA8, common.Color{R: 1, G: 1, B: 1, A: 1}),
	)

	geometryProgram := r.Shaders().Variant("deferred-geometry", geometryTemplate, shader.Directives{
		"OUTPUT_ALBEDO":     0,
		"USE_NORMAL_MAP":    flag(d.normalMap),
		"USE_HEIGHT_MAP":    flag(d.heightMap),
		"USE_TANGENT_SPACE": flag(d.normalMap || d.heightMap),
	})
	directionalProgram := r.Shaders().Variant("deferred-light", lightTemplate, shader.Directives{
		"LIGHT_TYPE_POINT":   0,
		"USE_DIFFUSE":        1,
		"USE_SPECULAR":       flag(d.specular),
		"USE_PHYSICAL":       0,
		"USE_LIGHT_ENCODING": 1,
	})
	pointProgram := r.Shaders().Variant("deferred-light", lightTemplate, shader.Directives{
		"LIGHT_TYPE_POINT":   1,
		"USE_DIFFUSE":        1,
		"USE_SPECULAR":       flag(d.specular),
		"USE_PHYSICAL":       0,
		"USE_LIGHT_ENCODING": 1,
	})
	compositeProgram := r.Shaders().Variant("deferred-composite", compositeTemplate, shader.Directives{
		"USE_AMBIENT": flag(d.ambient),
	})

	d.geometryPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-lighting/geometry/"+geometryProgram.Key()),
		pipeline.WithProgram(geometryProgram),
		pipeline.WithColorFormats(common.FormatRGBA8),
	)
	d.directionalPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-lighting/directional/"+directionalProgram.Key()),
		pipeline.WithProgram(directionalProgram),
		pipeline.WithColorFormats(common.FormatRGBA8),
		pipeline.WithDepth(false),
		pipeline.WithBlend(pipeline.BlendMultiplicative),
		pipeline.WithCullMode(pipeline.CullNone),
	)
	d.pointPipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-lighting/point/"+pointProgram.Key()),
		pipeline.WithProgram(pointProgram),
		pipeline.WithColorFormats(common.FormatRGBA8),
		pipeline.WithDepth(false),
		pipeline.WithBlend(pipeline.BlendMultiplicative),
		pipeline.WithCullMode(pipeline.CullFront),
	)
	d.compositePipeline = pipeline.NewPipeline(
		pipeline.WithKey("deferred-lighting/composite/"+compositeProgram.Key()),
		pipeline.WithProgram(compositeProgram),
		pipeline.WithSurfaceColor(),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
		pipeline.WithCullMode(pipeline.CullNone),
	)

	d.geometryShader = shader.NewShader[geometryFrame, shader.MeshState](r.Backend(), geometryProgram)
	d.directionalShader = shader.NewShader[lightFrame, lightDraw](r.Backend(), directionalProgram)
	d.pointShader = shader.NewShader[lightFrame, lightDraw](r.Backend(), pointProgram)
	d.compositeShader = shader.NewShader[compositeFrame, shader.MeshState](r.Backend(), compositeProgram)

	bindGeometryShader(r, d.geometryShader, false, d.normalMap, d.heightMap)
	bindLightShader(d.directionalShader, false)
	bindLightShader(d.pointShader, true)
	d.bindComposite()

	d.quad = model.NewScreenQuad()
	d.quad.Upload(r.Backend())
	d.billboard = model.NewBillboardQuad()
	d.billboard.Upload(r.Backend())

	r.RegisterPipelines(d.geometryPipeline, d.directionalPipeline, d.pointPipeline, d.compositePipeline)

	return d
}

// WithDeferredLightingAmbient is an option builder that toggles the ambient
// term of the composition pass. Enabled by default.
//
// Parameters:
//   - enabled: whether ambient lighting applies
//
// Returns:
//   - DeferredLightingBuilderOption: the option builder.
func WithDeferredLightingAmbient(enabled bool) DeferredLightingBuilderOption {
	return func(d *deferredLighting) {
		d.ambient = enabled
	}
}

// WithDeferredLightingSpecular is an option builder that toggles specular
// accumulation. Enabled by default.
//
// Parameters:
//   - enabled: whether specular highlights apply
//
// Returns:
//   - DeferredLightingBuilderOption: the option builder.
func WithDeferredLightingSpecular(enabled bool) DeferredLightingBuilderOption {
	return func(d *deferredLighting) {
		d.specular = enabled
	}
}

// WithDeferredLightingNormalMaps is an option builder that enables
// tangent-space normal mapping in the geometry pass.
//
// Returns:
//   - DeferredLightingBuilderOption: the option builder.
func WithDeferredLightingNormalMaps() DeferredLightingBuilderOption {
	return func(d *deferredLighting) {
		d.normalMap = true
	}
}

// WithDeferredLightingHeightMaps is an option builder that enables parallax
// height mapping in the geometry pass.
//
// Returns:
//   - DeferredLightingBuilderOption: the option builder.
func WithDeferredLightingHeightMaps() DeferredLightingBuilderOption {
	return func(d *deferredLighting) {
		d.heightMap = true
	}
}
