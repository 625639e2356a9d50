package material

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithAlbedo is an option builder that sets the base surface color.
//
// Parameters:
//   - color: the albedo factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the albedo option to a material
func WithAlbedo(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.albedo = color
	}
}

// WithAlbedoMap is an option builder that sets the albedo texture.
//
// Parameters:
//   - texture: the albedo map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the albedo map option to a material
func WithAlbedoMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.albedoMap = texture
	}
}

// WithEmissive is an option builder that sets the self-illumination color.
//
// Parameters:
//   - color: the emissive factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = color
	}
}

// WithEmissiveMap is an option builder that sets the emissive texture.
//
// Parameters:
//   - texture: the emissive map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive map option to a material
func WithEmissiveMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.emissiveMap = texture
	}
}

// WithGloss is an option builder that sets the specular reflection color.
//
// Parameters:
//   - color: the gloss factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the gloss option to a material
func WithGloss(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.gloss = color
	}
}

// WithGlossMap is an option builder that sets the gloss texture.
//
// Parameters:
//   - texture: the gloss map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the gloss map option to a material
func WithGlossMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.glossMap = texture
	}
}

// WithHeightMap is an option builder that sets the parallax height texture
// together with its displacement parameters.
//
// Parameters:
//   - texture: the height map
//   - scale: the strength of parallax displacement
//   - bias: the constant offset applied to parallax displacement
//
// Returns:
//   - MaterialBuilderOption: a function that applies the height map option to a material
func WithHeightMap(texture *binding.Texture, scale float32, bias float32) MaterialBuilderOption {
	return func(m *material) {
		m.heightMap = texture
		m.heightParallaxScale = scale
		m.heightParallaxBias = bias
	}
}

// WithMetalness is an option builder that sets the metalness factor.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithMetalnessMap is an option builder that sets the metalness texture.
//
// Parameters:
//   - texture: the metalness map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness map option to a material
func WithMetalnessMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.metalnessMap = texture
	}
}

// WithNormalMap is an option builder that sets the tangent-space normal texture.
//
// Parameters:
//   - texture: the normal map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the normal map option to a material
func WithNormalMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.normalMap = texture
	}
}

// WithOcclusionMap is an option builder that sets the ambient occlusion
// texture and its strength.
//
// Parameters:
//   - texture: the occlusion map
//   - strength: how strongly the map darkens ambient light (0.0 to 1.0)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the occlusion option to a material
func WithOcclusionMap(texture *binding.Texture, strength float32) MaterialBuilderOption {
	return func(m *material) {
		m.occlusionMap = texture
		m.occlusionStrength = strength
	}
}

// WithRoughness is an option builder that sets the roughness factor.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithRoughnessMap is an option builder that sets the roughness texture.
//
// Parameters:
//   - texture: the roughness map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness map option to a material
func WithRoughnessMap(texture *binding.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.roughnessMap = texture
	}
}

// WithShininess is an option builder that sets the Phong specular exponent.
//
// Parameters:
//   - shininess: the shininess exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess option to a material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}
