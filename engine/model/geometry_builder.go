package model

import (
	"github.com/r3c/arcadejs-sub001/common"
)

// GeometryBuilderOption is a function that configures a geometry instance during construction.
type GeometryBuilderOption func(*Geometry)

// WithLabel is an option builder that sets the debug label of the geometry.
//
// Parameters:
//   - label: the label used in buffer names and error messages
//
// Returns:
//   - GeometryBuilderOption: a function that applies the label option to a geometry
func WithLabel(label string) GeometryBuilderOption {
	return func(g *Geometry) {
		g.label = label
	}
}

// WithPoints is an option builder that sets the mandatory position stream.
//
// Parameters:
//   - points: one position per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the points option to a geometry
func WithPoints(points []common.Vector3) GeometryBuilderOption {
	return func(g *Geometry) {
		g.points = points
	}
}

// WithNormals is an option builder that sets the normal stream.
//
// Parameters:
//   - normals: one normal per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the normals option to a geometry
func WithNormals(normals []common.Vector3) GeometryBuilderOption {
	return func(g *Geometry) {
		g.normals = normals
	}
}

// WithTangents is an option builder that sets the tangent stream.
//
// Parameters:
//   - tangents: one tangent per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the tangents option to a geometry
func WithTangents(tangents []common.Vector3) GeometryBuilderOption {
	return func(g *Geometry) {
		g.tangents = tangents
	}
}

// WithCoordinates is an option builder that sets the texture coordinate stream.
//
// Parameters:
//   - coordinates: one UV pair per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the coordinates option to a geometry
func WithCoordinates(coordinates []common.Vector2) GeometryBuilderOption {
	return func(g *Geometry) {
		g.coordinates = coordinates
	}
}

// WithTints is an option builder that sets the vertex color stream.
//
// Parameters:
//   - tints: one RGBA color per vertex
//
// Returns:
//   - GeometryBuilderOption: a function that applies the tints option to a geometry
func WithTints(tints []common.Vector4) GeometryBuilderOption {
	return func(g *Geometry) {
		g.tints = tints
	}
}

// WithIndices16 is an option builder that sets a 16-bit index stream.
//
// Parameters:
//   - indices: triangle list indices
//
// Returns:
//   - GeometryBuilderOption: a function that applies the index option to a geometry
func WithIndices16(indices []uint16) GeometryBuilderOption {
	return func(g *Geometry) {
		g.indices16 = indices
	}
}

// WithIndices32 is an option builder that sets a 32-bit index stream.
//
// Parameters:
//   - indices: triangle list indices
//
// Returns:
//   - GeometryBuilderOption: a function that applies the index option to a geometry
func WithIndices32(indices []uint32) GeometryBuilderOption {
	return func(g *Geometry) {
		g.indices32 = indices
	}
}
