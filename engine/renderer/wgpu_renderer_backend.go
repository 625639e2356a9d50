package renderer

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
	"github.com/r3c/arcadejs-sub001/engine/renderer/shader"
)

// wgpuBackend is the WebGPU implementation of the Backend interface.
type wgpuBackend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	surfaceWidth  uint32
	surfaceHeight uint32

	surfaceDepthTexture *wgpu.Texture
	surfaceDepthView    *wgpu.TextureView

	// layoutCache shares wgpu bind group layouts between pipeline layouts and
	// bind group creation; both must reference the same object for a layout
	// to be compatible.
	layoutCache map[string]*wgpu.BindGroupLayout

	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView

	mipPool worker.DynamicWorkerPool
}

var _ Backend = &wgpuBackend{}

// NewWGPUBackend creates a Backend driving a WebGPU device over the given
// surface. Initialization pins the calling goroutine to its OS thread, as
// required by the underlying windowing and GPU libraries. Adapter or device
// acquisition failures are unrecoverable and panic.
//
// Parameters:
//   - surfaceDescriptor: the window surface to present into
//   - forceFallbackAdapter: request the software fallback adapter
//
// Returns:
//   - Backend: the configured backend
func NewWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) Backend {
	runtime.LockOSThread()

	b := &wgpuBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		layoutCache: map[string]*wgpu.BindGroupLayout{},
		mipPool:     worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 16, 1*time.Second),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = adapter

	// Every uniform variable binds its own buffer, so the WebGPU default of 12
	// uniform buffers per stage is too tight for the lit shaders.
	limits := wgpu.DefaultLimits()
	limits.MaxUniformBuffersPerShaderStage = 24

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = device
	b.queue = device.GetQueue()

	return b
}

func (b *wgpuBackend) ConfigureSurface(width, height uint32, mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	presentMode := wgpu.PresentModeFifo
	if mode == PresentModeUncapped {
		presentMode = wgpu.PresentModeImmediate
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       width,
		Height:      height,
		PresentMode: presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.surfaceWidth = width
	b.surfaceHeight = height

	// The surface depth buffer matches offscreen depth attachments so the
	// same pipelines can draw to either.
	if b.surfaceDepthView != nil {
		b.surfaceDepthView.Release()
		b.surfaceDepthTexture.Release()
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Surface Depth Texture",
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth16Unorm,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	b.surfaceDepthTexture = depthTexture
	b.surfaceDepthView = depthView
}

func (b *wgpuBackend) SurfaceSize() (uint32, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.surfaceWidth, b.surfaceHeight
}

func (b *wgpuBackend) CreateUniformBuffer(label string, size uint64) *binding.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}

	return binding.NewBuffer(buf, size, buf.Release)
}

func (b *wgpuBackend) CreateVertexBuffer(label string, data []byte) *binding.Buffer {
	return b.createStaticBuffer(label, data, wgpu.BufferUsageVertex)
}

func (b *wgpuBackend) CreateIndexBuffer(label string, data []byte) *binding.Buffer {
	return b.createStaticBuffer(label, data, wgpu.BufferUsageIndex)
}

func (b *wgpuBackend) createStaticBuffer(label string, data []byte, usage wgpu.BufferUsage) *binding.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	b.queue.WriteBuffer(buf, 0, data)

	return binding.NewBuffer(buf, uint64(len(data)), buf.Release)
}

func (b *wgpuBackend) WriteBuffer(buf *binding.Buffer, offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(buf.Native.(*wgpu.Buffer), offset, data)
}

func (b *wgpuBackend) CreateTexture(label string, kind common.TextureKind, format common.TextureFormat, sampler common.Sampler, width, height uint32, images []common.Image) *binding.Texture {
	layers := uint32(1)
	if kind == common.TextureKindCube {
		if len(images) != 6 {
			panic(fmt.Sprintf("texture %s: cube textures require 6 face images, got %d", label, len(images)))
		}
		layers = 6
	} else if len(images) > 1 {
		panic(fmt.Sprintf("texture %s: quad textures take at most 1 image, got %d", label, len(images)))
	}

	// Mip chains are generated on the CPU before uploading; non power of two
	// textures stay at a single level.
	mipLevels := uint32(1)
	var chains [][]common.Image
	if len(images) > 0 && sampler.Mipmap && common.IsPowerOfTwo(width) && common.IsPowerOfTwo(height) {
		chains = mipChains(images, b.mipPool)
		mipLevels = uint32(len(chains[0]))
	} else if len(images) > 0 {
		chains = make([][]common.Image, len(images))
		for i, image := range images {
			chains[i] = []common.Image{image}
		}
	}

	usage := wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst
	if len(images) == 0 {
		// No pixel data means the texture is a render target.
		usage = wgpu.TextureUsageTextureBinding | wgpu.TextureUsageRenderAttachment
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: layers,
		},
		MipLevelCount: mipLevels,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        textureFormat(format),
		Usage:         usage,
	})
	if err != nil {
		panic(err)
	}

	for layer, chain := range chains {
		for level, image := range chain {
			b.queue.WriteTexture(
				&wgpu.ImageCopyTexture{
					Texture:  texture,
					MipLevel: uint32(level),
					Origin:   wgpu.Origin3D{Z: uint32(layer)},
					Aspect:   wgpu.TextureAspectAll,
				},
				image.Pixels,
				&wgpu.TextureDataLayout{
					Offset:       0,
					BytesPerRow:  image.Width * 4,
					RowsPerImage: image.Height,
				},
				&wgpu.Extent3D{
					Width:              image.Width,
					Height:             image.Height,
					DepthOrArrayLayers: 1,
				},
			)
		}
	}

	viewDimension := wgpu.TextureViewDimension2D
	if kind == common.TextureKindCube {
		viewDimension = wgpu.TextureViewDimensionCube
	}
	view, err := texture.CreateView(&wgpu.TextureViewDescriptor{
		Label:           label,
		Format:          textureFormat(format),
		Dimension:       viewDimension,
		BaseMipLevel:    0,
		MipLevelCount:   mipLevels,
		BaseArrayLayer:  0,
		ArrayLayerCount: layers,
		Aspect:          wgpu.TextureAspectAll,
	})
	if err != nil {
		panic(err)
	}

	return binding.NewTexture(texture, view, kind, format, width, height, func() {
		view.Release()
		texture.Release()
	})
}

func (b *wgpuBackend) CreateSampler(label string, desc common.Sampler, comparison bool) *binding.Sampler {
	b.mu.Lock()
	defer b.mu.Unlock()

	mipmapFilter := wgpu.MipmapFilterModeNearest
	if desc.Mipmap {
		mipmapFilter = wgpu.MipmapFilterModeLinear
	}

	compare := wgpu.CompareFunctionUndefined
	if comparison {
		compare = wgpu.CompareFunctionLess
	}

	sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  addressMode(desc.Wrap),
		AddressModeV:  addressMode(desc.Wrap),
		AddressModeW:  addressMode(desc.Wrap),
		MagFilter:     filterMode(desc.Magnify),
		MinFilter:     filterMode(desc.Minify),
		MipmapFilter:  mipmapFilter,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
		Compare:       compare,
	})
	if err != nil {
		panic(err)
	}

	return binding.NewSampler(sampler, desc, sampler.Release)
}

func (b *wgpuBackend) CreateBindGroup(label string, layout binding.Layout, res binding.Resources) *binding.BindGroup {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make([]wgpu.BindGroupEntry, len(layout.Entries))
	for i, entry := range layout.Entries {
		switch entry.Kind {
		case binding.ResourceUniformBuffer:
			buf, ok := res.Buffers[entry.Binding]
			if !ok {
				panic(fmt.Sprintf("bind group %s: missing buffer for binding %d (%s)", label, entry.Binding, entry.Var))
			}
			size := res.BufferSizes[entry.Binding]
			if size == 0 {
				size = buf.Size
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: uint32(entry.Binding),
				Buffer:  buf.Native.(*wgpu.Buffer),
				Offset:  0,
				Size:    size,
			}

		case binding.ResourceTexture2D, binding.ResourceTextureCube, binding.ResourceTextureDepth:
			texture, ok := res.Textures[entry.Binding]
			if !ok {
				panic(fmt.Sprintf("bind group %s: missing texture for binding %d (%s)", label, entry.Binding, entry.Var))
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding:     uint32(entry.Binding),
				TextureView: texture.NativeView.(*wgpu.TextureView),
			}

		case binding.ResourceSampler, binding.ResourceSamplerComparison:
			sampler, ok := res.Samplers[entry.Binding]
			if !ok {
				panic(fmt.Sprintf("bind group %s: missing sampler for binding %d (%s)", label, entry.Binding, entry.Var))
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: uint32(entry.Binding),
				Sampler: sampler.Native.(*wgpu.Sampler),
			}

		default:
			panic(fmt.Sprintf("bind group %s: unhandled resource kind %d", label, entry.Kind))
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  b.bindGroupLayout(layout),
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}

	return binding.NewBindGroup(bindGroup, bindGroup.Release)
}

// bindGroupLayout returns the cached wgpu layout for the given declaration,
// creating it on first use. Callers must hold b.mu.
func (b *wgpuBackend) bindGroupLayout(layout binding.Layout) *wgpu.BindGroupLayout {
	key := layoutKey(layout)
	if cached, ok := b.layoutCache[key]; ok {
		return cached
	}

	entries := make([]wgpu.BindGroupLayoutEntry, len(layout.Entries))
	for i, entry := range layout.Entries {
		layoutEntry := wgpu.BindGroupLayoutEntry{
			Binding:    uint32(entry.Binding),
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
		}

		switch entry.Kind {
		case binding.ResourceUniformBuffer:
			layoutEntry.Buffer.Type = wgpu.BufferBindingTypeUniform
			layoutEntry.Buffer.HasDynamicOffset = entry.Dynamic
			layoutEntry.Buffer.MinBindingSize = entry.MinSize
		case binding.ResourceTexture2D:
			layoutEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			layoutEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case binding.ResourceTextureCube:
			layoutEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
			layoutEntry.Texture.ViewDimension = wgpu.TextureViewDimensionCube
		case binding.ResourceTextureDepth:
			layoutEntry.Texture.SampleType = wgpu.TextureSampleTypeDepth
			layoutEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		case binding.ResourceSampler:
			layoutEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
		case binding.ResourceSamplerComparison:
			layoutEntry.Sampler.Type = wgpu.SamplerBindingTypeComparison
		default:
			panic(fmt.Sprintf("bind group layout: unhandled resource kind %d", entry.Kind))
		}

		entries[i] = layoutEntry
	}

	created, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   key,
		Entries: entries,
	})
	if err != nil {
		panic(err)
	}
	b.layoutCache[key] = created

	return created
}

// layoutKey builds a cache key identifying a layout's structure. Variable
// names are excluded so shaders sharing a group shape share the layout.
func layoutKey(layout binding.Layout) string {
	parts := make([]string, 0, len(layout.Entries))
	for _, entry := range layout.Entries {
		parts = append(parts, fmt.Sprintf("%d:%d:%d:%t", entry.Binding, entry.Kind, entry.MinSize, entry.Dynamic))
	}
	sort.Strings(parts)

	return strings.Join(parts, ",")
}

func (b *wgpuBackend) RegisterPipeline(p pipeline.Pipeline) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if p.Native() != nil {
		return
	}

	program := p.Program()

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: program.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: program.Source(),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("pipeline %s: shader compilation failed:\n%s", p.Key(), shader.AnnotateCompileError(program.Source(), err.Error())))
	}

	// Pipeline layouts index groups contiguously; groups the program never
	// declares get an empty placeholder layout.
	maxGroup := -1
	for group := 0; group < 4; group++ {
		if _, ok := program.Layout(group); ok {
			maxGroup = group
		}
	}
	bindGroupLayouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for group := 0; group <= maxGroup; group++ {
		layout, ok := program.Layout(group)
		if !ok {
			layout = binding.Layout{Group: group}
		}
		bindGroupLayouts[group] = b.bindGroupLayout(layout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.Key(),
		BindGroupLayouts: bindGroupLayouts,
	})
	if err != nil {
		panic(err)
	}

	inputs := program.VertexInputs()
	vertexLayouts := make([]wgpu.VertexBufferLayout, len(inputs))
	for _, input := range inputs {
		vertexLayouts[input.Slot] = wgpu.VertexBufferLayout{
			ArrayStride: input.Format.ByteSize(),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         vertexFormat(input.Format),
					Offset:         0,
					ShaderLocation: uint32(input.Location),
				},
			},
		}
	}

	var fragment *wgpu.FragmentState
	if program.FragmentEntry() != "" {
		fragment = &wgpu.FragmentState{
			Module:     module,
			EntryPoint: program.FragmentEntry(),
			Targets:    b.colorTargets(p),
		}
	}

	var depthStencil *wgpu.DepthStencilState
	if p.HasDepth() {
		depthCompare := wgpu.CompareFunctionLess
		if !p.DepthTestEnabled() {
			depthCompare = wgpu.CompareFunctionAlways
		}
		depthStencil = &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth16Unorm,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:    p.Key(),
		Layout:   pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: program.VertexEntry(),
			Buffers:    vertexLayouts,
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode(p.Cull()),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthStencil,
	})
	if err != nil {
		panic(err)
	}

	p.SetNative(created)
}

// colorTargets builds color target states for a pipeline. Callers must hold
// b.mu.
func (b *wgpuBackend) colorTargets(p pipeline.Pipeline) []wgpu.ColorTargetState {
	var formats []wgpu.TextureFormat
	if p.SurfaceColor() {
		formats = []wgpu.TextureFormat{b.surfaceFormat}
	} else {
		for _, format := range p.ColorFormats() {
			formats = append(formats, textureFormat(format))
		}
	}

	targets := make([]wgpu.ColorTargetState, len(formats))
	for i, format := range formats {
		targets[i] = wgpu.ColorTargetState{
			Format:    format,
			Blend:     blendState(p.BlendMode()),
			WriteMask: wgpu.ColorWriteMaskAll,
		}
	}

	return targets
}

func (b *wgpuBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuBackend) BeginPass(desc PassDescriptor) Pass {
	b.mu.Lock()
	defer b.mu.Unlock()

	colorLoadOp := wgpu.LoadOpClear
	if desc.LoadColor {
		colorLoadOp = wgpu.LoadOpLoad
	}
	depthLoadOp := wgpu.LoadOpClear
	if desc.LoadDepth {
		depthLoadOp = wgpu.LoadOpLoad
	}

	var colorAttachments []wgpu.RenderPassColorAttachment
	var depthAttachment *wgpu.RenderPassDepthStencilAttachment

	if desc.Target == nil {
		colorAttachments = []wgpu.RenderPassColorAttachment{
			{
				View:    b.frameView,
				LoadOp:  colorLoadOp,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(desc.ClearColor.R),
					G: float64(desc.ClearColor.G),
					B: float64(desc.ClearColor.B),
					A: float64(desc.ClearColor.A),
				},
			},
		}
		depthAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            b.surfaceDepthView,
			DepthLoadOp:     depthLoadOp,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		}
	} else {
		for i, color := range desc.Target.Colors() {
			clear := desc.Target.ClearColor(i)
			colorAttachments = append(colorAttachments, wgpu.RenderPassColorAttachment{
				View:    color.NativeView.(*wgpu.TextureView),
				LoadOp:  colorLoadOp,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(clear.R),
					G: float64(clear.G),
					B: float64(clear.B),
					A: float64(clear.A),
				},
			})
		}
		if depth := desc.Target.Depth(); depth != nil {
			depthAttachment = &wgpu.RenderPassDepthStencilAttachment{
				View:            depth.NativeView.(*wgpu.TextureView),
				DepthLoadOp:     depthLoadOp,
				DepthStoreOp:    wgpu.StoreOpStore,
				DepthClearValue: desc.Target.ClearDepth(),
			}
		}
	}

	encoder := b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:                  desc.Label,
		ColorAttachments:       colorAttachments,
		DepthStencilAttachment: depthAttachment,
	})

	return &wgpuPass{encoder: encoder}
}

func (b *wgpuBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err == nil {
		b.queue.Submit(commandBuffer)
		commandBuffer.Release()
		b.surface.Present()
	}

	b.frameEncoder.Release()
	b.frameView.Release()
	b.frameSurface.Release()
	b.frameEncoder = nil
	b.frameView = nil
	b.frameSurface = nil
}

func (b *wgpuBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceDepthView != nil {
		b.surfaceDepthView.Release()
		b.surfaceDepthTexture.Release()
		b.surfaceDepthView = nil
		b.surfaceDepthTexture = nil
	}
	for _, layout := range b.layoutCache {
		layout.Release()
	}
	b.layoutCache = map[string]*wgpu.BindGroupLayout{}

	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}

// wgpuPass wraps a wgpu render pass encoder behind the Pass interface.
type wgpuPass struct {
	encoder *wgpu.RenderPassEncoder
}

var _ Pass = &wgpuPass{}

func (p *wgpuPass) SetPipeline(pl pipeline.Pipeline) {
	p.encoder.SetPipeline(pl.Native().(*wgpu.RenderPipeline))
}

func (p *wgpuPass) SetBindGroup(group int, bindGroup *binding.BindGroup, dynamicOffsets []uint32) {
	p.encoder.SetBindGroup(uint32(group), bindGroup.Native.(*wgpu.BindGroup), dynamicOffsets)
}

func (p *wgpuPass) SetVertexBuffer(slot int, buffer *binding.Buffer) {
	p.encoder.SetVertexBuffer(uint32(slot), buffer.Native.(*wgpu.Buffer), 0, wgpu.WholeSize)
}

func (p *wgpuPass) SetIndexBuffer(buffer *binding.Buffer, format binding.IndexFormat) {
	indexFormat := wgpu.IndexFormatUint16
	if format == binding.IndexUint32 {
		indexFormat = wgpu.IndexFormatUint32
	}
	p.encoder.SetIndexBuffer(buffer.Native.(*wgpu.Buffer), indexFormat, 0, wgpu.WholeSize)
}

func (p *wgpuPass) DrawIndexed(indexCount uint32) {
	p.encoder.DrawIndexed(indexCount, 1, 0, 0, 0)
}

func (p *wgpuPass) End() {
	p.encoder.End()
	p.encoder.Release()
}

func textureFormat(format common.TextureFormat) wgpu.TextureFormat {
	switch format {
	case common.FormatRGBA8:
		return wgpu.TextureFormatRGBA8Unorm
	case common.FormatDepth16:
		return wgpu.TextureFormatDepth16Unorm
	default:
		panic(fmt.Sprintf("unhandled texture format %d", format))
	}
}

func vertexFormat(format binding.VertexFormat) wgpu.VertexFormat {
	switch format {
	case binding.VertexFloat32x2:
		return wgpu.VertexFormatFloat32x2
	case binding.VertexFloat32x3:
		return wgpu.VertexFormatFloat32x3
	case binding.VertexFloat32x4:
		return wgpu.VertexFormatFloat32x4
	default:
		panic(fmt.Sprintf("unhandled vertex format %d", format))
	}
}

func addressMode(wrap common.WrapMode) wgpu.AddressMode {
	switch wrap {
	case common.WrapClamp:
		return wgpu.AddressModeClampToEdge
	case common.WrapRepeat:
		return wgpu.AddressModeRepeat
	case common.WrapMirror:
		return wgpu.AddressModeMirrorRepeat
	default:
		panic(fmt.Sprintf("unhandled wrap mode %d", wrap))
	}
}

func filterMode(filter common.FilterMode) wgpu.FilterMode {
	switch filter {
	case common.FilterNearest:
		return wgpu.FilterModeNearest
	case common.FilterLinear:
		return wgpu.FilterModeLinear
	default:
		panic(fmt.Sprintf("unhandled filter mode %d", filter))
	}
}

func cullMode(mode pipeline.CullMode) wgpu.CullMode {
	switch mode {
	case pipeline.CullNone:
		return wgpu.CullModeNone
	case pipeline.CullBack:
		return wgpu.CullModeBack
	case pipeline.CullFront:
		return wgpu.CullModeFront
	default:
		panic(fmt.Sprintf("unhandled cull mode %d", mode))
	}
}

func blendState(blend pipeline.Blend) *wgpu.BlendState {
	switch blend {
	case pipeline.BlendNone:
		return nil
	case pipeline.BlendAdditive:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
			},
		}
	case pipeline.BlendMultiplicative:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorDst,
				DstFactor: wgpu.BlendFactorZero,
			},
			Alpha: wgpu.BlendComponent{
				Operation: wgpu.BlendOperationAdd,
				SrcFactor: wgpu.BlendFactorDst,
				DstFactor: wgpu.BlendFactorZero,
			},
		}
	default:
		panic(fmt.Sprintf("unhandled blend mode %d", blend))
	}
}
