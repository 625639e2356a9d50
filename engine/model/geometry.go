// Package model holds the mesh-side input of the renderer: geometry vertex
// streams with lazily created GPU buffers, and the node hierarchy pairing
// geometries with materials under local transforms.
package model

import (
	"fmt"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// Geometry is one indexed vertex stream set. The CPU-side arrays are fixed
// at construction; GPU buffers are created lazily on the first draw and
// freed through Dispose. Optional streams (normals, tangents, coordinates,
// tints) stay nil when absent, a shader that requires one panics at draw
// time naming the missing attribute.
type Geometry struct {
	label       string
	points      []common.Vector3
	normals     []common.Vector3
	tangents    []common.Vector3
	coordinates []common.Vector2
	tints       []common.Vector4
	indices16   []uint16
	indices32   []uint32

	pointBuffer      *binding.Buffer
	normalBuffer     *binding.Buffer
	tangentBuffer    *binding.Buffer
	coordinateBuffer *binding.Buffer
	tintBuffer       *binding.Buffer
	indexBuffer      *binding.Buffer
	uploaded         bool
}

// NewGeometry creates a Geometry from the provided options. Points and
// indices are mandatory; every optional stream must match the point count.
// Inconsistent input panics, geometry is built once at load time and a bad
// mesh is unrecoverable.
//
// Parameters:
//   - options: variadic list of GeometryBuilderOption functions configuring the streams
//
// Returns:
//   - *Geometry: the initialized geometry, not yet uploaded
func NewGeometry(options ...GeometryBuilderOption) *Geometry {
	g := &Geometry{label: "geometry"}
	for _, opt := range options {
		opt(g)
	}

	if len(g.points) == 0 {
		panic(fmt.Sprintf("model: geometry %q has no points", g.label))
	}

	if len(g.indices16) == 0 && len(g.indices32) == 0 {
		panic(fmt.Sprintf("model: geometry %q has no indices", g.label))
	}

	count := len(g.points)
	check := func(name string, length int) {
		if length != 0 && length != count {
			panic(fmt.Sprintf("model: geometry %q stream %s has %d entries for %d points", g.label, name, length, count))
		}
	}

	check("normals", len(g.normals))
	check("tangents", len(g.tangents))
	check("coordinates", len(g.coordinates))
	check("tints", len(g.tints))

	return g
}

// Label returns the debug label of the geometry.
func (g *Geometry) Label() string {
	return g.label
}

// Upload creates the GPU buffers for every present stream. Idempotent;
// subsequent calls are no-ops.
func (g *Geometry) Upload(device binding.Device) {
	if g.uploaded {
		return
	}

	g.pointBuffer = device.CreateVertexBuffer(g.label+"/points", common.SliceToBytes(g.points))
	if len(g.normals) > 0 {
		g.normalBuffer = device.CreateVertexBuffer(g.label+"/normals", common.SliceToBytes(g.normals))
	}
	if len(g.tangents) > 0 {
		g.tangentBuffer = device.CreateVertexBuffer(g.label+"/tangents", common.SliceToBytes(g.tangents))
	}
	if len(g.coordinates) > 0 {
		g.coordinateBuffer = device.CreateVertexBuffer(g.label+"/coordinates", common.SliceToBytes(g.coordinates))
	}
	if len(g.tints) > 0 {
		g.tintBuffer = device.CreateVertexBuffer(g.label+"/tints", common.SliceToBytes(g.tints))
	}

	if len(g.indices16) > 0 {
		g.indexBuffer = device.CreateIndexBuffer(g.label+"/indices", common.SliceToBytes(g.indices16))
	} else {
		g.indexBuffer = device.CreateIndexBuffer(g.label+"/indices", common.SliceToBytes(g.indices32))
	}

	g.uploaded = true
}

// Points returns the position buffer, or nil before Upload.
func (g *Geometry) Points() *binding.Buffer {
	return g.pointBuffer
}

// Normals returns the normal buffer, or nil when absent or before Upload.
func (g *Geometry) Normals() *binding.Buffer {
	return g.normalBuffer
}

// Tangents returns the tangent buffer, or nil when absent or before Upload.
func (g *Geometry) Tangents() *binding.Buffer {
	return g.tangentBuffer
}

// Coordinates returns the texture coordinate buffer, or nil when absent or
// before Upload.
func (g *Geometry) Coordinates() *binding.Buffer {
	return g.coordinateBuffer
}

// Tints returns the vertex color buffer, or nil when absent or before Upload.
func (g *Geometry) Tints() *binding.Buffer {
	return g.tintBuffer
}

// Indices returns the index buffer, or nil before Upload.
func (g *Geometry) Indices() *binding.Buffer {
	return g.indexBuffer
}

// IndexFormat returns the element format of the index buffer.
func (g *Geometry) IndexFormat() binding.IndexFormat {
	if len(g.indices16) > 0 {
		return binding.IndexUint16
	}

	return binding.IndexUint32
}

// IndexCount returns the number of indices to draw.
func (g *Geometry) IndexCount() uint32 {
	if len(g.indices16) > 0 {
		return uint32(len(g.indices16))
	}

	return uint32(len(g.indices32))
}

// Dispose frees the GPU buffers. Disposing before Upload is a no-op; a
// disposed geometry uploads again on its next draw.
func (g *Geometry) Dispose() {
	if !g.uploaded {
		return
	}

	for _, buffer := range []*binding.Buffer{g.pointBuffer, g.normalBuffer, g.tangentBuffer, g.coordinateBuffer, g.tintBuffer, g.indexBuffer} {
		if buffer != nil {
			buffer.Release()
		}
	}

	g.pointBuffer = nil
	g.normalBuffer = nil
	g.tangentBuffer = nil
	g.coordinateBuffer = nil
	g.tintBuffer = nil
	g.indexBuffer = nil
	g.uploaded = false
}
