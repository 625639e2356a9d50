// Package rendertest provides recording fakes for the renderer's backend
// surfaces. The fakes allocate no GPU resources; they hand out inspectable
// handles and keep an ordered log of every call, so binding, pass-sequencing
// and lifetime behavior can be asserted without a GPU.
package rendertest

import (
	"fmt"
	"strings"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// FakeBuffer is the native object behind buffers created by Device. Data
// mirrors every write, so tests can inspect uniform contents byte for byte.
type FakeBuffer struct {
	Label    string
	Data     []byte
	Released bool
}

// FakeTexture is the native object behind textures created by Device.
type FakeTexture struct {
	Label    string
	Kind     common.TextureKind
	Format   common.TextureFormat
	Width    uint32
	Height   uint32
	Images   []common.Image
	Released bool
}

// FakeSampler is the native object behind samplers created by Device.
type FakeSampler struct {
	Label      string
	Desc       common.Sampler
	Comparison bool
	Released   bool
}

// FakeBindGroup is the native object behind bind groups created by Device.
type FakeBindGroup struct {
	Label     string
	Layout    binding.Layout
	Resources binding.Resources
	Released  bool
}

// Device implements binding.Device over in-memory objects, recording every
// call in order.
type Device struct {
	// Log holds one formatted line per device call, in call order.
	Log []string

	// Buffers, Textures, Samplers and BindGroups hold every object ever
	// created, including released ones.
	Buffers    []*FakeBuffer
	Textures   []*FakeTexture
	Samplers   []*FakeSampler
	BindGroups []*FakeBindGroup
}

var _ binding.Device = &Device{}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) record(format string, args ...any) {
	d.Log = append(d.Log, fmt.Sprintf(format, args...))
}

func (d *Device) CreateUniformBuffer(label string, size uint64) *binding.Buffer {
	d.record("CreateUniformBuffer %s size=%d", label, size)

	fake := &FakeBuffer{Label: label, Data: make([]byte, size)}
	d.Buffers = append(d.Buffers, fake)

	return binding.NewBuffer(fake, size, func() { fake.Released = true })
}

func (d *Device) CreateVertexBuffer(label string, data []byte) *binding.Buffer {
	d.record("CreateVertexBuffer %s size=%d", label, len(data))

	fake := &FakeBuffer{Label: label, Data: append([]byte(nil), data...)}
	d.Buffers = append(d.Buffers, fake)

	return binding.NewBuffer(fake, uint64(len(data)), func() { fake.Released = true })
}

func (d *Device) CreateIndexBuffer(label string, data []byte) *binding.Buffer {
	d.record("CreateIndexBuffer %s size=%d", label, len(data))

	fake := &FakeBuffer{Label: label, Data: append([]byte(nil), data...)}
	d.Buffers = append(d.Buffers, fake)

	return binding.NewBuffer(fake, uint64(len(data)), func() { fake.Released = true })
}

func (d *Device) WriteBuffer(buf *binding.Buffer, offset uint64, data []byte) {
	fake := buf.Native.(*FakeBuffer)
	d.record("WriteBuffer %s offset=%d size=%d", fake.Label, offset, len(data))

	if offset+uint64(len(data)) > uint64(len(fake.Data)) {
		panic(fmt.Sprintf("rendertest: write past end of buffer %s", fake.Label))
	}

	copy(fake.Data[offset:], data)
}

func (d *Device) CreateTexture(label string, kind common.TextureKind, format common.TextureFormat, sampler common.Sampler, width, height uint32, images []common.Image) *binding.Texture {
	d.record("CreateTexture %s %dx%d", label, width, height)

	fake := &FakeTexture{Label: label, Kind: kind, Format: format, Width: width, Height: height, Images: images}
	d.Textures = append(d.Textures, fake)

	return binding.NewTexture(fake, fake, kind, format, width, height, func() { fake.Released = true })
}

func (d *Device) CreateSampler(label string, desc common.Sampler, comparison bool) *binding.Sampler {
	d.record("CreateSampler %s comparison=%v", label, comparison)

	fake := &FakeSampler{Label: label, Desc: desc, Comparison: comparison}
	d.Samplers = append(d.Samplers, fake)

	return binding.NewSampler(fake, desc, func() { fake.Released = true })
}

func (d *Device) CreateBindGroup(label string, layout binding.Layout, res binding.Resources) *binding.BindGroup {
	d.record("CreateBindGroup %s group=%d", label, layout.Group)

	for _, entry := range layout.Entries {
		switch entry.Kind {
		case binding.ResourceUniformBuffer:
			if res.Buffers[entry.Binding] == nil {
				panic(fmt.Sprintf("rendertest: bind group %s misses buffer %q", label, entry.Var))
			}
		case binding.ResourceTexture2D, binding.ResourceTextureCube, binding.ResourceTextureDepth:
			if res.Textures[entry.Binding] == nil {
				panic(fmt.Sprintf("rendertest: bind group %s misses texture %q", label, entry.Var))
			}
		case binding.ResourceSampler, binding.ResourceSamplerComparison:
			if res.Samplers[entry.Binding] == nil {
				panic(fmt.Sprintf("rendertest: bind group %s misses sampler %q", label, entry.Var))
			}
		}
	}

	fake := &FakeBindGroup{Label: label, Layout: layout, Resources: res}
	d.BindGroups = append(d.BindGroups, fake)

	return binding.NewBindGroup(fake, func() { fake.Released = true })
}

// UniformData returns the current bytes of the uniform buffer whose label
// ends with the given suffix. Fails the lookup with a panic when no such
// buffer exists, tests pass known labels.
func (d *Device) UniformData(labelSuffix string) []byte {
	for i := len(d.Buffers) - 1; i >= 0; i-- {
		if strings.HasSuffix(d.Buffers[i].Label, labelSuffix) {
			return d.Buffers[i].Data
		}
	}

	panic(fmt.Sprintf("rendertest: no buffer labeled *%s", labelSuffix))
}
