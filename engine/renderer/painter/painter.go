// Package painter walks node hierarchies and feeds each primitive through a
// shader in draw order. The painter holds no state of its own; transform
// accumulation happens on the stack during the walk.
package painter

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// Draw renders node and its children through s. Each node's transform
// composes onto parent, children draw before the node's own primitives, and
// every primitive gets its mesh state, material and geometry applied before
// its indexed draw. The view matrix feeds normal matrix derivation so
// normals come out in view space.
//
// Parameters:
//   - pass: the pass to encode into
//   - s: the shader to apply state through
//   - node: the hierarchy root
//   - parent: the accumulated parent transform
//   - view: the camera view matrix
func Draw[TScene any](pass shader.Pass, s shader.Shader[TScene, shader.MeshState], node model.Node, parent, view common.Matrix4) {
	transform := common.Mul4(parent, node.Transform())

	for _, child := range node.Children() {
		Draw(pass, s, child, transform, view)
	}

	for _, primitive := range node.Primitives() {
		s.ApplyMesh(pass, shader.MeshState{
			Model:  transform,
			Normal: common.NormalMatrix(view, transform),
		})
		s.ApplyMaterial(pass, primitive.Material)
		s.ApplyGeometry(pass, primitive.Geometry)
		pass.DrawIndexed(primitive.Geometry.IndexCount())
	}
}
