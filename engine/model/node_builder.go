package model

import (
	"github.com/r3c/arcadejs-sub001/common"
)

// NodeBuilderOption is a function that configures a node instance during construction.
type NodeBuilderOption func(*node)

// WithTransform is an option builder that sets the local transform of the node.
//
// Parameters:
//   - transform: the transform relative to the parent node
//
// Returns:
//   - NodeBuilderOption: a function that applies the transform option to a node
func WithTransform(transform common.Matrix4) NodeBuilderOption {
	return func(n *node) {
		n.transform = transform
	}
}

// WithPrimitives is an option builder that sets the primitives drawn at the node.
//
// Parameters:
//   - primitives: the geometry/material pairs
//
// Returns:
//   - NodeBuilderOption: a function that applies the primitives option to a node
func WithPrimitives(primitives ...Primitive) NodeBuilderOption {
	return func(n *node) {
		n.primitives = primitives
	}
}

// WithChildren is an option builder that sets the child nodes.
//
// Parameters:
//   - children: the child nodes
//
// Returns:
//   - NodeBuilderOption: a function that applies the children option to a node
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		n.children = children
	}
}
