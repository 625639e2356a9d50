package technique

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/light"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
	"github.com/r3c/arcadejs-sub001/engine/renderer/rendertest"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
	"github.com/r3c/arcadejs-sub001/engine/scene"
)

func compileVariant(t *testing.T, name string, template string, directives shader.Directives) {
	t.Helper()

	program := shader.NewProgram(name, template, directives)

	spirv, err := naga.Compile(program.Source())
	if err != nil {
		message := err.Error()
		if strings.Contains(message, "not yet implemented") || strings.Contains(message, "not supported") {
			t.Skipf("naga feature not available: %v", err)
		}
		t.Fatalf("variant %s failed to compile: %v", program.Key(), err)
	}

	require.NotEmpty(t, spirv)
}

func TestForwardVariantsCompile(t *testing.T) {
	base := shader.Directives{
		"USE_AMBIENT":       1,
		"USE_DIFFUSE":       1,
		"USE_SPECULAR":      1,
		"USE_NORMAL_MAP":    0,
		"USE_HEIGHT_MAP":    0,
		"USE_TANGENT_SPACE": 0,
		"USE_SHADOW":        0,
		"USE_PHYSICAL":      0,
		"HAS_DIRECTIONAL_0": 1,
		"HAS_DIRECTIONAL_1": 0,
		"HAS_POINT_0":       0,
		"HAS_POINT_1":       0,
	}

	variants := map[string]shader.Directives{
		"minimal": {"USE_AMBIENT": 0, "USE_SPECULAR": 0, "HAS_DIRECTIONAL_0": 0},
		"default": {},
		"mapped":  {"USE_NORMAL_MAP": 1, "USE_HEIGHT_MAP": 1, "USE_TANGENT_SPACE": 1},
		"shadow":  {"USE_SHADOW": 1},
		"full": {
			"USE_NORMAL_MAP": 1, "USE_HEIGHT_MAP": 1, "USE_TANGENT_SPACE": 1,
			"USE_SHADOW": 1, "USE_PHYSICAL": 1,
			"HAS_DIRECTIONAL_1": 1, "HAS_POINT_0": 1, "HAS_POINT_1": 1,
		},
	}

	for name, overrides := range variants {
		t.Run(name, func(t *testing.T) {
			directives := shader.Directives{}
			for key, value := range base {
				directives[key] = value
			}
			for key, value := range overrides {
				directives[key] = value
			}

			compileVariant(t, "forward", forwardTemplate, directives)
		})
	}
}

func TestShadowTemplateCompiles(t *testing.T) {
	compileVariant(t, "forward-shadow", shadowTemplate, nil)
}

func TestGeometryVariantsCompile(t *testing.T) {
	for name, albedo := range map[string]int{"albedo": 1, "bare": 0} {
		t.Run(name, func(t *testing.T) {
			compileVariant(t, "deferred-geometry", geometryTemplate, shader.Directives{
				"OUTPUT_ALBEDO":     albedo,
				"USE_NORMAL_MAP":    1,
				"USE_HEIGHT_MAP":    0,
				"USE_TANGENT_SPACE": 1,
			})
		})
	}
}

func TestLightVariantsCompile(t *testing.T) {
	for _, point := range []int{0, 1} {
		for _, encoded := range []int{0, 1} {
			compileVariant(t, "deferred-light", lightTemplate, shader.Directives{
				"LIGHT_TYPE_POINT":   point,
				"USE_DIFFUSE":        1,
				"USE_SPECULAR":       1,
				"USE_PHYSICAL":       0,
				"USE_LIGHT_ENCODING": encoded,
			})
		}
	}
}

func TestMaterialTemplateCompiles(t *testing.T) {
	compileVariant(t, "deferred-material", materialTemplate, shader.Directives{
		"USE_AMBIENT":  1,
		"USE_SPECULAR": 1,
	})
}

func TestCompositeTemplateCompiles(t *testing.T) {
	compileVariant(t, "deferred-composite", compositeTemplate, shader.Directives{"USE_AMBIENT": 1})
}

func newTestRenderer() (*rendertest.Backend, renderer.Renderer) {
	backend := rendertest.NewBackend()
	backend.Width = 640
	backend.Height = 480

	return backend, renderer.NewRenderer(renderer.WithBackend(backend))
}

func newTestScene(r renderer.Renderer, lights ...light.Light) *scene.Scene {
	geometry := model.NewCube(1)
	geometry.Upload(r.Backend())

	mat := material.NewMaterial(
		material.WithName("test"),
		material.WithAlbedo(common.Color{R: 1, G: 0.5, B: 0.25, A: 1}),
		material.WithShininess(30),
	)

	root := model.NewNode(model.WithPrimitives(model.Primitive{Geometry: geometry, Material: mat}))

	return &scene.Scene{
		Projection: common.Perspective(1.2, 640.0/480.0, 0.1, 100),
		View:       common.Translation(common.Vector3{0, 0, -5}),
		Ambient:    common.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		Lights:     lights,
		Objects: []scene.Object{
			{Transform: common.Identity4(), Root: root},
		},
	}
}

func countOps(ops []string, prefix string) int {
	count := 0
	for _, op := range ops {
		if strings.HasPrefix(op, prefix) {
			count++
		}
	}

	return count
}

func TestForwardRenderPassSequence(t *testing.T) {
	backend, r := newTestRenderer()

	technique := NewForward(r, WithForwardShadow(), WithForwardPointLights(1))
	s := newTestScene(r,
		light.NewLight(light.WithCastsShadows(true)),
		light.NewLight(light.WithType(light.LightTypePoint), light.WithPosition(common.Vector3{1, 2, 0}), light.WithRadius(3)),
	)

	require.NoError(t, r.BeginFrame())
	technique.Render(s)
	r.EndFrame()

	require.Len(t, backend.Passes, 2)

	shadowPass := backend.Pass("shadow")
	require.NotNil(t, shadowPass)
	assert.Equal(t, 1, countOps(shadowPass.Ops, "DrawIndexed"))
	assert.True(t, shadowPass.Ended)

	forwardPass := backend.Pass("forward")
	require.NotNil(t, forwardPass)
	assert.Equal(t, 1, countOps(forwardPass.Ops, "SetPipeline"))
	assert.Equal(t, 1, countOps(forwardPass.Ops, "DrawIndexed"))
	assert.True(t, forwardPass.Ended)
}

func TestForwardShadowPassClearsWithoutCaster(t *testing.T) {
	backend, r := newTestRenderer()

	technique := NewForward(r, WithForwardShadow())
	s := newTestScene(r, light.NewLight())

	require.NoError(t, r.BeginFrame())
	technique.Render(s)
	r.EndFrame()

	shadowPass := backend.Pass("shadow")
	require.NotNil(t, shadowPass)
	assert.Equal(t, 0, countOps(shadowPass.Ops, "DrawIndexed"))
}

func TestForwardDropsLightsBeyondSlots(t *testing.T) {
	_, r := newTestRenderer()

	technique := NewForward(r).(*forward)
	s := newTestScene(r, light.NewLight(), light.NewLight(), light.NewLight())

	frame := technique.assemble(s)

	assert.Len(t, frame.directional, 1)
	assert.Empty(t, frame.point)
}

func TestForwardRejectsPointLightShadows(t *testing.T) {
	_, r := newTestRenderer()

	technique := NewForward(r, WithForwardPointLights(1))
	s := newTestScene(r, light.NewLight(
		light.WithType(light.LightTypePoint),
		light.WithCastsShadows(true),
	))

	require.NoError(t, r.BeginFrame())
	assert.Panics(t, func() { technique.Render(s) })
}

func TestDeferredShadingPassSequence(t *testing.T) {
	backend, r := newTestRenderer()

	technique := NewDeferredShading(r)
	s := newTestScene(r,
		light.NewLight(),
		light.NewLight(light.WithType(light.LightTypePoint), light.WithPosition(common.Vector3{1, 0, 0}), light.WithRadius(2)),
		light.NewLight(light.WithType(light.LightTypePoint), light.WithPosition(common.Vector3{0, 1, 0}), light.WithRadius(2)),
	)

	require.NoError(t, r.BeginFrame())
	technique.Render(s)
	r.EndFrame()

	require.Len(t, backend.Passes, 3)
	assert.Equal(t, "geometry", backend.Passes[0].Label)
	assert.Equal(t, "light", backend.Passes[1].Label)
	assert.Equal(t, "material", backend.Passes[2].Label)

	lightPass := backend.Passes[1]
	assert.Equal(t, 2, countOps(lightPass.Ops, "SetPipeline"))
	assert.Equal(t, 3, countOps(lightPass.Ops, "DrawIndexed"))

	materialPass := backend.Passes[2]
	assert.Equal(t, 1, countOps(materialPass.Ops, "DrawIndexed"))
}

func TestDeferredShadingResizeReallocatesTargets(t *testing.T) {
	_, r := newTestRenderer()

	technique := NewDeferredShading(r).(*deferredShading)
	technique.Resize(800, 600)

	assert.Equal(t, uint32(800), technique.gbuffer.Width())
	assert.Equal(t, uint32(600), technique.gbuffer.Height())
	assert.Equal(t, uint32(800), technique.lightTarget.Width())
}

func TestDeferredLightingPassSequence(t *testing.T) {
	backend, r := newTestRenderer()

	technique := NewDeferredLighting(r)
	s := newTestScene(r, light.NewLight())

	require.NoError(t, r.BeginFrame())
	technique.Render(s)
	r.EndFrame()

	require.Len(t, backend.Passes, 3)
	assert.Equal(t, "geometry", backend.Passes[0].Label)
	assert.Equal(t, "light", backend.Passes[1].Label)
	assert.Equal(t, "composite", backend.Passes[2].Label)

	// One fullscreen draw resolves the whole frame.
	assert.Equal(t, 1, countOps(backend.Passes[2].Ops, "DrawIndexed"))
}

func TestDeferredLightingClearsLightBufferWhite(t *testing.T) {
	_, r := newTestRenderer()

	technique := NewDeferredLighting(r).(*deferredLighting)

	assert.Equal(t, common.Color{R: 1, G: 1, B: 1, A: 1}, technique.lightTarget.ClearColor(0))
}

func TestLightsSkipEmptyDrawLists(t *testing.T) {
	backend, r := newTestRenderer()

	technique := NewDeferredShading(r)
	s := newTestScene(r)

	require.NoError(t, r.BeginFrame())
	technique.Render(s)
	r.EndFrame()

	lightPass := backend.Passes[1]
	assert.Equal(t, 0, countOps(lightPass.Ops, "DrawIndexed"))
}
