package model

import (
	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
)

// Primitive pairs a geometry with the material it is drawn with.
type Primitive struct {
	Geometry *Geometry
	Material material.Material
}

// node is the implementation of the Node interface.
type node struct {
	transform  common.Matrix4
	primitives []Primitive
	children   []Node
}

// Node is one element of a mesh hierarchy: a local transform, the primitives
// drawn at that transform, and child nodes whose transforms compose with it.
// Nodes are immutable after construction; the painter walks them read-only
// every frame.
type Node interface {
	// Transform retrieves the local transform relative to the parent node.
	//
	// Returns:
	//   - common.Matrix4: the local transform
	Transform() common.Matrix4

	// Primitives retrieves the geometry/material pairs drawn at this node.
	//
	// Returns:
	//   - []Primitive: the primitives, possibly empty
	Primitives() []Primitive

	// Children retrieves the child nodes.
	//
	// Returns:
	//   - []Node: the children, possibly empty
	Children() []Node
}

var _ Node = &node{}

// NewNode creates a new Node instance configured with the provided options.
// The transform defaults to identity.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: a new Node instance
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{transform: common.Identity4()}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Transform() common.Matrix4 {
	return n.transform
}

func (n *node) Primitives() []Primitive {
	return n.primitives
}

func (n *node) Children() []Node {
	return n.children
}
