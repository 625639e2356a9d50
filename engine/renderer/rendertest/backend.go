package rendertest

import (
	"github.com/r3c/arcadejs-sub001/engine/renderer"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
)

// Backend is a recording implementation of renderer.Backend. Every pass
// begun within a frame is kept with its descriptor, so technique tests can
// assert the pass sequence and each pass's encoded commands.
type Backend struct {
	*Device

	// Width and Height mirror the last ConfigureSurface call.
	Width  uint32
	Height uint32

	// Registered lists pipeline keys in registration order.
	Registered []string

	// Frames counts completed BeginFrame/EndFrame cycles.
	Frames int

	// Passes collects every pass of the current or last frame, reset on
	// BeginFrame.
	Passes []*Pass

	// Descriptors holds the descriptor each pass in Passes was begun with.
	Descriptors []renderer.PassDescriptor

	inFrame bool
}

var _ renderer.Backend = &Backend{}

func NewBackend() *Backend {
	return &Backend{Device: NewDevice()}
}

func (b *Backend) ConfigureSurface(width, height uint32, mode renderer.PresentMode) {
	b.Width = width
	b.Height = height
	b.record("ConfigureSurface %dx%d", width, height)
}

func (b *Backend) SurfaceSize() (uint32, uint32) {
	return b.Width, b.Height
}

func (b *Backend) RegisterPipeline(p pipeline.Pipeline) {
	if p.Native() != nil {
		return
	}

	p.SetNative(p.Key())
	b.Registered = append(b.Registered, p.Key())
	b.record("RegisterPipeline %s", p.Key())
}

func (b *Backend) BeginFrame() error {
	if b.inFrame {
		panic("rendertest: frame already begun")
	}

	b.inFrame = true
	b.Passes = nil
	b.Descriptors = nil
	b.record("BeginFrame")

	return nil
}

func (b *Backend) BeginPass(desc renderer.PassDescriptor) renderer.Pass {
	if !b.inFrame {
		panic("rendertest: pass begun outside a frame")
	}
	if n := len(b.Passes); n > 0 && !b.Passes[n-1].Ended {
		panic("rendertest: previous pass not ended")
	}

	targetLabel := "surface"
	if desc.Target != nil {
		targetLabel = desc.Target.Label()
	}
	b.record("BeginPass %s -> %s", desc.Label, targetLabel)

	pass := &Pass{Label: desc.Label}
	b.Passes = append(b.Passes, pass)
	b.Descriptors = append(b.Descriptors, desc)

	return pass
}

func (b *Backend) EndFrame() {
	if !b.inFrame {
		panic("rendertest: frame not begun")
	}

	b.inFrame = false
	b.Frames++
	b.record("EndFrame")
}

func (b *Backend) Release() {
	b.record("Release")
}

// Pass returns the recorded pass with the given label, or nil.
func (b *Backend) Pass(label string) *Pass {
	for _, pass := range b.Passes {
		if pass.Label == label {
			return pass
		}
	}

	return nil
}
