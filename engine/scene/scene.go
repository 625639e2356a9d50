// Package scene describes one frame's worth of world state: the camera
// matrices, the ambient term, the light list and the objects to draw. A
// Scene is a plain value assembled fresh every frame and handed to a
// rendering technique; it owns nothing and holds no GPU state.
package scene

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/light"
	"github.com/r3c/arcadejs-sub001/engine/model"
)

// Object places a node hierarchy in the world.
type Object struct {
	// Transform positions the object's root node.
	Transform common.Matrix4

	// Root is the node hierarchy to draw.
	Root model.Node
}

// Scene is everything a technique needs to render one frame.
type Scene struct {
	// Projection is the camera projection matrix.
	Projection common.Matrix4

	// View is the camera view matrix.
	View common.Matrix4

	// Ambient is the scene-wide ambient light color.
	Ambient common.Color

	// Lights are the active light sources.
	Lights []light.Light

	// Objects are the world contents, drawn in slice order.
	Objects []Object
}

// DirectionalLights returns the directional lights in declaration order.
func (s *Scene) DirectionalLights() []light.Light {
	return s.lightsOfType(light.LightTypeDirectional)
}

// PointLights returns the point lights in declaration order.
func (s *Scene) PointLights() []light.Light {
	return s.lightsOfType(light.LightTypePoint)
}

func (s *Scene) lightsOfType(lightType light.LightType) []light.Light {
	var matched []light.Light
	for _, l := range s.Lights {
		if l.Type() == lightType {
			matched = append(matched, l)
		}
	}

	return matched
}

// ShadowCaster returns the first shadow-casting directional light, or nil
// when no light casts shadows.
func (s *Scene) ShadowCaster() light.Light {
	for _, l := range s.Lights {
		if l.Type() == light.LightTypeDirectional && l.CastsShadows() {
			return l
		}
	}

	return nil
}
