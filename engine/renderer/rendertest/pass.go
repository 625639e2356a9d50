package rendertest

import (
	"fmt"

	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/pipeline"
)

// Pass records draw-encoding calls in order. It satisfies the shader and
// painter pass surfaces, so binding replay order can be asserted directly
// against Ops.
type Pass struct {
	// Label is the pass label, set when the pass comes from a Backend.
	Label string

	// Ops holds one formatted line per call, in call order.
	Ops []string

	// Ended reports whether End was called.
	Ended bool
}

func NewPass() *Pass {
	return &Pass{}
}

func (p *Pass) record(format string, args ...any) {
	p.Ops = append(p.Ops, fmt.Sprintf(format, args...))
}

func (p *Pass) SetBindGroup(group int, bindGroup *binding.BindGroup, dynamicOffsets []uint32) {
	label := "<nil>"
	if bindGroup != nil {
		label = bindGroup.Native.(*FakeBindGroup).Label
	}

	if len(dynamicOffsets) > 0 {
		p.record("SetBindGroup %d %s offsets=%v", group, label, dynamicOffsets)
		return
	}

	p.record("SetBindGroup %d %s", group, label)
}

func (p *Pass) SetVertexBuffer(slot int, buffer *binding.Buffer) {
	p.record("SetVertexBuffer %d %s", slot, buffer.Native.(*FakeBuffer).Label)
}

func (p *Pass) SetIndexBuffer(buffer *binding.Buffer, format binding.IndexFormat) {
	p.record("SetIndexBuffer %s", buffer.Native.(*FakeBuffer).Label)
}

func (p *Pass) SetPipeline(pl pipeline.Pipeline) {
	p.record("SetPipeline %s", pl.Key())
}

func (p *Pass) DrawIndexed(indexCount uint32) {
	p.record("DrawIndexed %d", indexCount)
}

func (p *Pass) End() {
	if p.Ended {
		panic("rendertest: pass ended twice")
	}

	p.Ended = true
}
