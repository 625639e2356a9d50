package material

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// material is the implementation of the Material interface.
type material struct {
	name                string
	albedo              common.Color
	albedoMap           *binding.Texture
	emissive            common.Color
	emissiveMap         *binding.Texture
	gloss               common.Color
	glossMap            *binding.Texture
	heightMap           *binding.Texture
	heightParallaxBias  float32
	heightParallaxScale float32
	metalness           float32
	metalnessMap        *binding.Texture
	normalMap           *binding.Texture
	occlusionMap        *binding.Texture
	occlusionStrength   float32
	roughness           float32
	roughnessMap        *binding.Texture
	shininess           float32
}

// Material describes the surface of a primitive: factor values plus optional
// texture handles. All properties are fixed at construction; the binding
// layer relies on this immutability to write material uniforms only once per
// shader. Texture accessors return nil when no map was configured, letting a
// shader substitute its default texture and presence flag.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Albedo retrieves the base surface color, multiplied with the albedo
	// map when one is set.
	//
	// Returns:
	//   - common.Color: the albedo factor
	Albedo() common.Color

	// AlbedoMap retrieves the albedo texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the albedo map, or nil
	AlbedoMap() *binding.Texture

	// Emissive retrieves the self-illumination color.
	//
	// Returns:
	//   - common.Color: the emissive factor
	Emissive() common.Color

	// EmissiveMap retrieves the emissive texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the emissive map, or nil
	EmissiveMap() *binding.Texture

	// Gloss retrieves the specular reflection color.
	//
	// Returns:
	//   - common.Color: the gloss factor
	Gloss() common.Color

	// GlossMap retrieves the gloss texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the gloss map, or nil
	GlossMap() *binding.Texture

	// HeightMap retrieves the parallax height texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the height map, or nil
	HeightMap() *binding.Texture

	// HeightParallaxBias retrieves the constant offset applied to parallax
	// displacement.
	//
	// Returns:
	//   - float32: the parallax bias
	HeightParallaxBias() float32

	// HeightParallaxScale retrieves the strength of parallax displacement.
	//
	// Returns:
	//   - float32: the parallax scale
	HeightParallaxScale() float32

	// Metalness retrieves the metalness factor (0.0 = dielectric, 1.0 = metal).
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// MetalnessMap retrieves the metalness texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the metalness map, or nil
	MetalnessMap() *binding.Texture

	// NormalMap retrieves the tangent-space normal texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the normal map, or nil
	NormalMap() *binding.Texture

	// OcclusionMap retrieves the ambient occlusion texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the occlusion map, or nil
	OcclusionMap() *binding.Texture

	// OcclusionStrength retrieves how strongly the occlusion map darkens
	// ambient light (0.0 = ignored, 1.0 = full effect).
	//
	// Returns:
	//   - float32: the occlusion strength
	OcclusionStrength() float32

	// Roughness retrieves the roughness factor (0.0 = smooth, 1.0 = rough).
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// RoughnessMap retrieves the roughness texture, or nil if none is set.
	//
	// Returns:
	//   - *binding.Texture: the roughness map, or nil
	RoughnessMap() *binding.Texture

	// Shininess retrieves the Phong specular exponent.
	//
	// Returns:
	//   - float32: the shininess exponent
	Shininess() float32
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided
// options. Unset factors default to a plain white diffuse surface: white
// albedo and gloss, black emissive, shininess 30, full occlusion strength.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		albedo:              common.Color{R: 1, G: 1, B: 1, A: 1},
		emissive:            common.Color{R: 0, G: 0, B: 0, A: 1},
		gloss:               common.Color{R: 1, G: 1, B: 1, A: 1},
		heightParallaxBias:  0.0,
		heightParallaxScale: 0.0,
		metalness:           0.0,
		occlusionStrength:   1.0,
		roughness:           1.0,
		shininess:           30.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Albedo() common.Color {
	return m.albedo
}

func (m *material) AlbedoMap() *binding.Texture {
	return m.albedoMap
}

func (m *material) Emissive() common.Color {
	return m.emissive
}

func (m *material) EmissiveMap() *binding.Texture {
	return m.emissiveMap
}

func (m *material) Gloss() common.Color {
	return m.gloss
}

func (m *material) GlossMap() *binding.Texture {
	return m.glossMap
}

func (m *material) HeightMap() *binding.Texture {
	return m.heightMap
}

func (m *material) HeightParallaxBias() float32 {
	return m.heightParallaxBias
}

func (m *material) HeightParallaxScale() float32 {
	return m.heightParallaxScale
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) MetalnessMap() *binding.Texture {
	return m.metalnessMap
}

func (m *material) NormalMap() *binding.Texture {
	return m.normalMap
}

func (m *material) OcclusionMap() *binding.Texture {
	return m.occlusionMap
}

func (m *material) OcclusionStrength() float32 {
	return m.occlusionStrength
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) RoughnessMap() *binding.Texture {
	return m.roughnessMap
}

func (m *material) Shininess() float32 {
	return m.shininess
}
