// Package binding holds the GPU-side resources a shader draws from: buffer,
// texture and sampler handles, the backend-neutral layout description parsed
// from shader source, and the Block type grouping those resources into one
// bind group per binding frequency (scene, mesh, material).
//
// Handles wrap the backend's native objects behind an `any` field so that the
// same types flow through the WebGPU backend and the recording test backend.
// Ownership is single: whoever created a handle releases it, exactly once.
package binding

import "github.com/r3c/arcadejs-sub001/common"

// ResourceKind classifies a shader resource declaration.
type ResourceKind int

const (
	// ResourceUniformBuffer is a var<uniform> declaration backed by a buffer.
	ResourceUniformBuffer ResourceKind = iota

	// ResourceTexture2D is a sampled 2D color texture.
	ResourceTexture2D

	// ResourceTextureCube is a sampled cube map texture.
	ResourceTextureCube

	// ResourceTextureDepth is a sampled (non-filtering) depth texture.
	ResourceTextureDepth

	// ResourceSampler is a filtering sampler.
	ResourceSampler

	// ResourceSamplerComparison is a comparison sampler used for shadow maps.
	ResourceSamplerComparison
)

// VertexFormat is the set of vertex attribute formats the engine feeds from
// geometry buffers.
type VertexFormat int

const (
	VertexFloat32x2 VertexFormat = iota
	VertexFloat32x3
	VertexFloat32x4
)

// IndexFormat is the element type of an index buffer.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// ByteSize returns the per-index byte size of the format.
func (f IndexFormat) ByteSize() uint64 {
	if f == IndexUint16 {
		return 2
	}

	return 4
}

// ByteSize returns the per-vertex byte size of the format.
func (f VertexFormat) ByteSize() uint64 {
	switch f {
	case VertexFloat32x2:
		return 8
	case VertexFloat32x3:
		return 12
	case VertexFloat32x4:
		return 16
	default:
		return 0
	}
}

// LayoutEntry is one resource declaration inside a bind group, in
// backend-neutral form.
type LayoutEntry struct {
	// Binding is the @binding index within the group.
	Binding int

	// Var is the WGSL variable name, used to resolve symbols at registration.
	Var string

	// Kind classifies the resource.
	Kind ResourceKind

	// MinSize is the byte size of the bound type for buffer entries.
	MinSize uint64

	// Dynamic marks uniform buffers addressed through per-draw dynamic offsets.
	Dynamic bool
}

// Layout describes one bind group: its index and its entries sorted by
// binding index.
type Layout struct {
	Group   int
	Entries []LayoutEntry
}

// VertexInput is one vertex attribute declaration, fed from its own buffer
// slot so geometry streams bind independently.
type VertexInput struct {
	// Name is the field name inside the WGSL vertex input struct.
	Name string

	// Location is the @location index.
	Location int

	// Slot is the vertex buffer slot the attribute is fed from.
	Slot int

	// Format is the attribute format.
	Format VertexFormat
}

// Buffer is a GPU buffer handle.
type Buffer struct {
	// Native is the backend's buffer object.
	Native any

	// Size is the buffer capacity in bytes.
	Size uint64

	release func()
}

// Texture is a GPU texture handle together with its default view.
type Texture struct {
	// Native is the backend's texture object.
	Native any

	// NativeView is the backend's view over the whole texture.
	NativeView any

	Kind   common.TextureKind
	Format common.TextureFormat
	Width  uint32
	Height uint32

	release func()
}

// Sampler is a GPU sampler handle.
type Sampler struct {
	// Native is the backend's sampler object.
	Native any

	Desc common.Sampler

	release func()
}

// BindGroup is a GPU bind group handle.
type BindGroup struct {
	// Native is the backend's bind group object.
	Native any

	release func()
}

// NewBuffer wraps a native buffer handle. Called by backends only.
func NewBuffer(native any, size uint64, release func()) *Buffer {
	return &Buffer{Native: native, Size: size, release: release}
}

// NewTexture wraps a native texture handle. Called by backends only.
func NewTexture(native, view any, kind common.TextureKind, format common.TextureFormat, width, height uint32, release func()) *Texture {
	return &Texture{
		Native:     native,
		NativeView: view,
		Kind:       kind,
		Format:     format,
		Width:      width,
		Height:     height,
		release:    release,
	}
}

// NewSampler wraps a native sampler handle. Called by backends only.
func NewSampler(native any, desc common.Sampler, release func()) *Sampler {
	return &Sampler{Native: native, Desc: desc, release: release}
}

// NewBindGroup wraps a native bind group handle. Called by backends only.
func NewBindGroup(native any, release func()) *BindGroup {
	return &BindGroup{Native: native, release: release}
}

// Release frees the GPU buffer. Releasing twice is a programming error and panics.
func (b *Buffer) Release() {
	if b.release == nil {
		panic("binding: buffer released twice")
	}
	b.release()
	b.release = nil
	b.Native = nil
}

// Release frees the GPU texture and its view. Releasing twice panics.
func (t *Texture) Release() {
	if t.release == nil {
		panic("binding: texture released twice")
	}
	t.release()
	t.release = nil
	t.Native = nil
	t.NativeView = nil
}

// Release frees the GPU sampler. Releasing twice panics.
func (s *Sampler) Release() {
	if s.release == nil {
		panic("binding: sampler released twice")
	}
	s.release()
	s.release = nil
	s.Native = nil
}

// Release frees the GPU bind group. Releasing twice panics.
func (g *BindGroup) Release() {
	if g.release == nil {
		panic("binding: bind group released twice")
	}
	g.release()
	g.release = nil
	g.Native = nil
}

// Resources collects the concrete handles bound to a Layout's entries, keyed
// by binding index. Buffer entries may carry an explicit range size when the
// underlying buffer is a dynamic-offset arena larger than one slot.
type Resources struct {
	Buffers     map[int]*Buffer
	BufferSizes map[int]uint64
	Textures    map[int]*Texture
	Samplers    map[int]*Sampler
}

// Device is the narrow resource-creation surface the binding, shader and
// target layers need from a backend. The WebGPU backend implements it for
// real GPU work and the rendertest backend implements it for tests. All
// failure modes below are unrecoverable configuration errors and panic.
type Device interface {
	// CreateUniformBuffer allocates a zeroed uniform buffer of the given size.
	CreateUniformBuffer(label string, size uint64) *Buffer

	// CreateVertexBuffer uploads vertex data with a static usage hint.
	CreateVertexBuffer(label string, data []byte) *Buffer

	// CreateIndexBuffer uploads index data with a static usage hint.
	CreateIndexBuffer(label string, data []byte) *Buffer

	// WriteBuffer writes data into buf at the given byte offset.
	WriteBuffer(buf *Buffer, offset uint64, data []byte)

	// CreateTexture creates a texture of the given kind and format. Quad
	// textures take zero images (uninitialized storage for render targets)
	// or one. Cube textures require exactly six equally sized face images.
	// Mip levels are generated only when sampler.Mipmap is set and both
	// dimensions are powers of two.
	CreateTexture(label string, kind common.TextureKind, format common.TextureFormat, sampler common.Sampler, width, height uint32, images []common.Image) *Texture

	// CreateSampler creates a sampler; comparison selects a depth-compare
	// sampler for shadow map lookups.
	CreateSampler(label string, desc common.Sampler, comparison bool) *Sampler

	// CreateBindGroup creates a bind group binding res to layout's entries.
	// Every entry must be satisfied; a missing resource panics.
	CreateBindGroup(label string, layout Layout, res Resources) *BindGroup
}
