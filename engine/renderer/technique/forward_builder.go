package technique

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/light"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/renderer/target"
)

// ForwardBuilderOption configures the forward technique during construction.
type ForwardBuilderOption func(*forward)

// NewForward builds a single pass forward technique. The shader variant is
// fixed at construction from the configured features; scenes rendered with
// more lights than the configured slots silently drop the extras.
//
// Parameters:
//   - r: the renderer supplying the device, shader cache and fallbacks
//   - options: configuration options
//
// Returns:
//   - Technique: the forward technique.
func NewForward(r renderer.Renderer, options ...ForwardBuilderOption) Technique {
	f := &forward{
		r:              r,
		ambient:        true,
		specular:       true,
		maxDirectional: 1,
	}

	for _, option := range options {
		option(f)
	}

	if f.maxDirectional < 0 || f.maxDirectional > MaxDirectionalLights {
		panic("technique: directional light count out of range")
	}
	if f.maxPoint < 0 || f.maxPoint > MaxPointLights {
		panic("technique: point light count out of range")
	}
	if f.shadow && f.maxDirectional == 0 {
		panic("technique: shadow mapping requires a directional light slot")
	}

	directives := shader.Directives{
		"USE_AMBIENT":       flag(f.ambient),
		"USE_DIFFUSE":       1,
		"USE_SPECULAR":      flag(f.specular),
		"USE_NORMAL_MAP":    flag(f.normalMap),
		"USE_HEIGHT_MAP":    flag(f.heightMap),
		"USE_TANGENT_SPACE": flag(f.normalMap || f.heightMap),
		"USE_SHADOW":        flag(f.shadow),
		"USE_PHYSICAL":      flag(f.lightModel == LightModelPhysical),
		"HAS_DIRECTIONAL_0": flag(f.maxDirectional > 0),
		"HAS_DIRECTIONAL_1": flag(f.maxDirectional > 1),
		"HAS_POINT_0":       flag(f.maxPoint > 0),
		"HAS_POINT_1":       flag(f.maxPoint > 1),
	}

	program := r.Shaders().Variant("forward", forwardTemplate, directives)

	f.scenePipeline = pipeline.NewPipeline(
		pipeline.WithKey("forward/"+program.Key()),
		pipeline.WithProgram(program),
		pipeline.WithSurfaceColor(),
	)
	f.sceneShader = shader.NewShader[forwardFrame, shader.MeshState](r.Backend(), program)

	f.bindScene()
	f.bindMesh()
	f.bindMaterial()
	f.bindGeometry()

	pipelines := []pipeline.Pipeline{f.scenePipeline}

	if f.shadow {
		shadowProgram := r.Shaders().Variant("forward-shadow", shadowTemplate, nil)

		f.shadowTarget = target.NewTarget(r.Backend(),
			target.WithLabel("Shadow Map"),
			target.WithSize(light.ShadowMapResolution, light.ShadowMapResolution),
			target.WithDepthAttachment(1.0),
		)
		// Rendering back faces into the shadow map trades peter-panning
		// for acne on thin geometry.
		f.shadowPipeline = pipeline.NewPipeline(
			pipeline.WithKey("forward/shadow"),
			pipeline.WithProgram(shadowProgram),
			pipeline.WithColorFormats(),
			pipeline.WithCullMode(pipeline.CullFront),
		)
		f.shadowShader = shader.NewShader[shadowFrame, shader.MeshState](r.Backend(), shadowProgram)

		f.bindShadow()

		pipelines = append(pipelines, f.shadowPipeline)
	}

	r.RegisterPipelines(pipelines...)

	return f
}

// WithForwardLightModel is an option builder that selects the shading
// equation.
//
// Parameters:
//   - model: the light model
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardLightModel(model LightModel) ForwardBuilderOption {
	return func(f *forward) {
		f.lightModel = model
	}
}

// WithForwardClearColor is an option builder that sets the surface clear
// color. The default clears to opaque black.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardClearColor(color common.Color) ForwardBuilderOption {
	return func(f *forward) {
		f.clearColor = color
	}
}

// WithForwardAmbient is an option builder that toggles the ambient lighting
// term. Enabled by default.
//
// Parameters:
//   - enabled: whether ambient lighting applies
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardAmbient(enabled bool) ForwardBuilderOption {
	return func(f *forward) {
		f.ambient = enabled
	}
}

// WithForwardSpecular is an option builder that toggles the specular
// lighting term. Enabled by default.
//
// Parameters:
//   - enabled: whether specular highlights apply
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardSpecular(enabled bool) ForwardBuilderOption {
	return func(f *forward) {
		f.specular = enabled
	}
}

// WithForwardNormalMaps is an option builder that enables tangent-space
// normal mapping. Materials without a normal map fall back to an unperturbed
// surface.
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardNormalMaps() ForwardBuilderOption {
	return func(f *forward) {
		f.normalMap = true
	}
}

// WithForwardHeightMaps is an option builder that enables parallax height
// mapping.
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardHeightMaps() ForwardBuilderOption {
	return func(f *forward) {
		f.heightMap = true
	}
}

// WithForwardShadow is an option builder that enables directional shadow
// mapping. The first shadow-casting directional light in the scene becomes
// the caster.
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardShadow() ForwardBuilderOption {
	return func(f *forward) {
		f.shadow = true
	}
}

// WithForwardDirectionalLights is an option builder that sets the number of
// directional light slots, up to MaxDirectionalLights. Defaults to 1.
//
// Parameters:
//   - count: the slot count
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardDirectionalLights(count int) ForwardBuilderOption {
	return func(f *forward) {
		f.maxDirectional = count
	}
}

// WithForwardPointLights is an option builder that sets the number of point
// light slots, up to MaxPointLights. Defaults to 0.
//
// Parameters:
//   - count: the slot count
//
// Returns:
//   - ForwardBuilderOption: the option builder.
func WithForwardPointLights(count int) ForwardBuilderOption {
	return func(f *forward) {
		f.maxPoint = count
	}
}

func flag(enabled bool) int {
	if enabled {
		return 1
	}

	return 0
}
