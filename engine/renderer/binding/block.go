package binding

import (
	"fmt"
)

// slotStride is the byte stride between dynamic-offset uniform slots.
// WebGPU requires dynamic offsets to be multiples of the device's uniform
// offset alignment; 256 is the WebGPU default and an upper bound for every
// uniform this engine writes.
const slotStride = 256

// initialSlotCapacity is the number of per-draw slots a dynamic block starts
// with. The arena grows between draws when a frame exceeds it.
const initialSlotCapacity = 256

// block is the implementation of the Block interface.
type block struct {
	label  string
	layout Layout
	device Device

	// buffers holds one uniform buffer per buffer entry, keyed by binding index.
	buffers map[int]*Buffer
	// textures holds texture views bound to texture entries, keyed by binding index.
	textures map[int]*Texture
	// samplers holds samplers bound to sampler entries, keyed by binding index.
	samplers map[int]*Sampler

	bindGroup *BindGroup

	// dynamic blocks allocate a fresh uniform slot per draw call.
	dynamic  bool
	capacity int
	cursor   int
}

// Block owns the GPU resources backing one bind group of a shader: one
// uniform buffer per buffer entry plus the texture views and samplers its
// layout declares. Static blocks (per-scene, per-material) write uniforms at
// offset zero; dynamic blocks (per-mesh) hand out a fresh 256-byte slot per
// draw call so every draw in a pass reads its own values.
type Block interface {
	// Label returns the debug label for this block.
	Label() string

	// Layout returns the bind group layout this block was built from.
	Layout() Layout

	// Buffer returns the uniform buffer for a binding index, or nil.
	Buffer(bindingIndex int) *Buffer

	// SetTexture binds a texture view to a texture entry. Must be called for
	// every texture entry before Finalize.
	SetTexture(bindingIndex int, t *Texture)

	// SetSampler binds a sampler to a sampler entry. Must be called for
	// every sampler entry before Finalize.
	SetSampler(bindingIndex int, s *Sampler)

	// Finalize creates the bind group. Panics when a texture or sampler
	// entry was left unbound.
	Finalize()

	// BindGroup returns the bind group, or nil before Finalize.
	BindGroup() *BindGroup

	// Write writes uniform data at offset zero of a buffer entry. Used by
	// static blocks.
	Write(bindingIndex int, data []byte)

	// WriteSlot writes uniform data into the current dynamic slot of a
	// buffer entry. Valid only after AllocSlot within the same draw.
	WriteSlot(bindingIndex int, data []byte)

	// BeginFrame resets the dynamic slot cursor. Called once per pass.
	BeginFrame()

	// AllocSlot reserves the next dynamic slot for the coming draw call,
	// growing the arena when the frame exhausts it. Panics on a static block.
	AllocSlot()

	// DynamicOffsets returns the byte offsets for the current slot, one per
	// dynamic buffer entry in binding order. Empty for static blocks.
	DynamicOffsets() []uint32

	// Release frees every GPU resource the block created. Textures and
	// samplers set from outside stay with their owners.
	Release()
}

var _ Block = &block{}

// NewBlock creates a Block for one bind group layout, allocating a uniform
// buffer per buffer entry. When dynamic is set, buffer entries are allocated
// as slot arenas addressed with per-draw dynamic offsets.
//
// Parameters:
//   - device: the resource device used for all GPU allocations
//   - label: debug label prefix for created resources
//   - layout: the bind group layout to back
//   - dynamic: whether buffer entries use per-draw dynamic offsets
//
// Returns:
//   - Block: the initialized block, with texture/sampler entries still unbound
func NewBlock(device Device, label string, layout Layout, dynamic bool) Block {
	b := &block{
		label:    label,
		layout:   layout,
		device:   device,
		buffers:  make(map[int]*Buffer),
		textures: make(map[int]*Texture),
		samplers: make(map[int]*Sampler),
		dynamic:  dynamic,
		capacity: initialSlotCapacity,
		cursor:   -1,
	}

	for _, entry := range layout.Entries {
		if entry.Kind != ResourceUniformBuffer {
			continue
		}
		size := entry.MinSize
		if dynamic {
			size = slotStride * uint64(b.capacity)
		}
		buf := device.CreateUniformBuffer(fmt.Sprintf("%s/%s", label, entry.Var), size)
		b.buffers[entry.Binding] = buf
	}

	return b
}

func (b *block) Label() string {
	return b.label
}

func (b *block) Layout() Layout {
	return b.layout
}

func (b *block) Buffer(bindingIndex int) *Buffer {
	return b.buffers[bindingIndex]
}

func (b *block) SetTexture(bindingIndex int, t *Texture) {
	b.textures[bindingIndex] = t
}

func (b *block) SetSampler(bindingIndex int, s *Sampler) {
	b.samplers[bindingIndex] = s
}

func (b *block) Finalize() {
	for _, entry := range b.layout.Entries {
		switch entry.Kind {
		case ResourceTexture2D, ResourceTextureCube, ResourceTextureDepth:
			if b.textures[entry.Binding] == nil {
				panic(fmt.Sprintf("binding: block %q has no texture bound for %q (binding %d)", b.label, entry.Var, entry.Binding))
			}
		case ResourceSampler, ResourceSamplerComparison:
			if b.samplers[entry.Binding] == nil {
				panic(fmt.Sprintf("binding: block %q has no sampler bound for %q (binding %d)", b.label, entry.Var, entry.Binding))
			}
		}
	}

	b.bindGroup = b.device.CreateBindGroup(b.label, b.layout, b.resources())
}

func (b *block) BindGroup() *BindGroup {
	return b.bindGroup
}

func (b *block) Write(bindingIndex int, data []byte) {
	buf := b.buffers[bindingIndex]
	if buf == nil {
		panic(fmt.Sprintf("binding: block %q has no buffer at binding %d", b.label, bindingIndex))
	}
	b.device.WriteBuffer(buf, 0, data)
}

func (b *block) WriteSlot(bindingIndex int, data []byte) {
	if b.cursor < 0 {
		panic(fmt.Sprintf("binding: block %q WriteSlot before AllocSlot", b.label))
	}
	buf := b.buffers[bindingIndex]
	if buf == nil {
		panic(fmt.Sprintf("binding: block %q has no buffer at binding %d", b.label, bindingIndex))
	}
	b.device.WriteBuffer(buf, uint64(b.cursor)*slotStride, data)
}

func (b *block) BeginFrame() {
	b.cursor = -1
}

func (b *block) AllocSlot() {
	if !b.dynamic {
		panic(fmt.Sprintf("binding: block %q is static, AllocSlot is invalid", b.label))
	}
	b.cursor++
	if b.cursor >= b.capacity {
		b.grow()
	}
}

func (b *block) DynamicOffsets() []uint32 {
	if !b.dynamic {
		return nil
	}
	offsets := make([]uint32, 0, len(b.buffers))
	for _, entry := range b.layout.Entries {
		if entry.Kind == ResourceUniformBuffer {
			offsets = append(offsets, uint32(b.cursor)*slotStride)
		}
	}
	return offsets
}

// grow doubles the arena, reallocating every buffer entry and the bind
// group. Draws already encoded keep referencing the retired resources, which
// the backend keeps alive until the GPU is done with them.
func (b *block) grow() {
	b.capacity *= 2

	retiredBuffers := b.buffers
	retiredGroup := b.bindGroup

	b.buffers = make(map[int]*Buffer, len(retiredBuffers))
	for _, entry := range b.layout.Entries {
		if entry.Kind != ResourceUniformBuffer {
			continue
		}
		buf := b.device.CreateUniformBuffer(fmt.Sprintf("%s/%s", b.label, entry.Var), slotStride*uint64(b.capacity))
		b.buffers[entry.Binding] = buf
	}
	b.bindGroup = b.device.CreateBindGroup(b.label, b.layout, b.resources())

	for _, buf := range retiredBuffers {
		buf.Release()
	}
	if retiredGroup != nil {
		retiredGroup.Release()
	}
}

func (b *block) resources() Resources {
	sizes := make(map[int]uint64, len(b.buffers))
	for _, entry := range b.layout.Entries {
		if entry.Kind != ResourceUniformBuffer {
			continue
		}
		size := entry.MinSize
		if size == 0 {
			size = slotStride
		}
		sizes[entry.Binding] = size
	}
	return Resources{
		Buffers:     b.buffers,
		BufferSizes: sizes,
		Textures:    b.textures,
		Samplers:    b.samplers,
	}
}

func (b *block) Release() {
	for _, buf := range b.buffers {
		buf.Release()
	}
	b.buffers = map[int]*Buffer{}
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
}

// SlotStride is the byte distance between two dynamic uniform slots,
// exported for backends that validate dynamic offsets.
func SlotStride() uint64 {
	return slotStride
}
