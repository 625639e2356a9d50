package light

import "github.com/r3c/arcadejs-sub001/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a
	// position, attenuating with distance up to its radius.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     common.Vector3
	direction    common.Vector3
	color        common.Color
	radius       float32
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties return zero
// values when not applicable. Lights contribute per-draw uniforms during the
// lighting passes rather than living in a GPU-side list.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - common.Vector3: the position
	Position() common.Vector3

	// Direction returns the normalized direction the light travels in.
	// Meaningless for point lights.
	//
	// Returns:
	//   - common.Vector3: the normalized direction
	Direction() common.Vector3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Radius returns the maximum attenuation distance for point lights.
	// Beyond this distance the light contributes zero energy. Meaningless
	// for directional lights.
	//
	// Returns:
	//   - float32: the radius value
	Radius() float32

	// CastsShadows returns whether this light is eligible for shadow map
	// generation. Only directional lights support shadows.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool
}

var _ Light = &lightImpl{}

// NewLight creates a new Light instance configured with the provided options.
// Defaults describe a white directional light pointing straight down that
// casts no shadow.
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: LightTypeDirectional,
		direction: common.Vector3{0, -1, 0},
		color:     common.Color{R: 1, G: 1, B: 1, A: 1},
	}
	for _, option := range options {
		option(l)
	}

	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vector3 {
	return l.position
}

func (l *lightImpl) Direction() common.Vector3 {
	return l.direction
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Radius() float32 {
	return l.radius
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}
