package shader

import (
	"fmt"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/model"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
	"github.com/r3c/arcadejs-sub001/engine/renderer/material"
)

// Bind group indices by update frequency. Shader templates must declare
// their resources in these groups for the binding lists to resolve.
const (
	// GroupScene holds state written once per pass: camera matrices, lights,
	// previously rendered targets.
	GroupScene = 0

	// GroupMesh holds state written once per drawn mesh: model and normal
	// matrices, through dynamic-offset slots.
	GroupMesh = 1

	// GroupMaterial holds state written once per material: factor uniforms,
	// textures and samplers.
	GroupMaterial = 2
)

// Pass is the draw-encoding surface a shader needs while applying its
// bindings. The renderer's render pass implements it.
type Pass interface {
	// SetBindGroup binds a bind group at the given group index.
	SetBindGroup(group int, bindGroup *binding.BindGroup, dynamicOffsets []uint32)

	// SetVertexBuffer binds a vertex buffer to the given slot.
	SetVertexBuffer(slot int, buffer *binding.Buffer)

	// SetIndexBuffer binds the index buffer for subsequent draws.
	SetIndexBuffer(buffer *binding.Buffer, format binding.IndexFormat)

	// DrawIndexed issues an indexed draw over the bound buffers.
	DrawIndexed(indexCount uint32)
}

// MeshState is the per-mesh input of a draw call, computed by the painter
// while walking the scene graph.
type MeshState struct {
	// Model transforms mesh-local positions into world space.
	Model common.Matrix4

	// Normal transforms mesh-local normals into view space.
	Normal common.Matrix3
}

// Shader pairs a compiled program with four ordered binding lists. Each list
// holds closures that read a typed value from the corresponding state object
// (scene, mesh, material, geometry) and write it to the program's uniforms
// or vertex inputs. Declaration order is fixed at registration and replayed
// identically for every draw call.
//
// Symbols are resolved against the program's reflected layout at
// registration time; registering a name the program does not declare panics
// immediately, surfacing shader/source mismatches at construction rather
// than silently skipping writes at draw time.
type Shader[TScene, TMesh any] interface {
	// Program returns the compiled program variant this shader binds.
	Program() *Program

	// SetUniformPerScene registers a scene-frequency uniform binding.
	//
	// Parameters:
	//   - kind: the uniform value kind, checked against the declared WGSL type
	//   - name: the uniform variable name in group 0
	//   - get: extractor producing the value from the scene state
	SetUniformPerScene(kind UniformKind, name string, get func(state TScene) Value)

	// SetTexturePerScene registers a scene-frequency texture binding, with a
	// sampler bound to the paired "<name>Sampler" variable when the program
	// declares one. The extractor must return a non-nil texture; scene
	// textures (shadow maps, geometry buffers) have no fallback.
	//
	// Parameters:
	//   - name: the texture variable name in group 0
	//   - desc: sampler configuration for the paired sampler variable
	//   - get: extractor producing the texture from the scene state
	SetTexturePerScene(name string, desc common.Sampler, get func(state TScene) *binding.Texture)

	// SetUniformPerMesh registers a mesh-frequency uniform binding, written
	// into a fresh dynamic slot for every drawn mesh.
	SetUniformPerMesh(kind UniformKind, name string, get func(state TMesh) Value)

	// SetUniformPerMaterial registers a material-frequency uniform binding.
	// Material state is immutable, so the value is written once when the
	// material is first drawn with this shader.
	SetUniformPerMaterial(kind UniformKind, name string, get func(mat material.Material) Value)

	// SetTexturePerMaterial registers a material-frequency texture binding.
	// When the extractor returns nil the fallback texture is bound instead;
	// a nil fallback makes the texture mandatory and a material without it
	// panics at draw time. When flag names a scalar uniform in group 2, it
	// receives 1 when the material provides the texture and 0 otherwise.
	//
	// Parameters:
	//   - name: the texture variable name in group 2
	//   - flag: scalar uniform receiving texture presence, or "" for none
	//   - desc: sampler configuration for the paired sampler variable
	//   - fallback: texture bound when the material has none, or nil
	//   - get: extractor producing the texture from the material
	SetTexturePerMaterial(name string, flag string, desc common.Sampler, fallback *binding.Texture, get func(mat material.Material) *binding.Texture)

	// SetAttributePerGeometry registers a vertex attribute binding, resolved
	// by field name against the program's vertex input struct.
	SetAttributePerGeometry(name string, get func(geometry *model.Geometry) *binding.Buffer)

	// BeginPass resets the per-mesh slot cursor. Call once before applying
	// bindings for a pass.
	BeginPass()

	// ApplyScene writes scene-frequency uniforms and binds group 0. Call
	// once per pass, before any mesh is applied.
	ApplyScene(pass Pass, state TScene)

	// ApplyMesh allocates a per-draw slot, writes mesh-frequency uniforms
	// into it and binds group 1 with the slot's dynamic offsets.
	ApplyMesh(pass Pass, state TMesh)

	// ApplyMaterial binds group 2 for the material, building its block on
	// first use with this shader.
	ApplyMaterial(pass Pass, mat material.Material)

	// ApplyGeometry binds the registered vertex buffers and the index
	// buffer. Must immediately precede the draw call.
	ApplyGeometry(pass Pass, geometry *model.Geometry)

	// Release frees every GPU resource the shader created. Textures passed
	// in from outside stay with their owners.
	Release()
}

type sceneUniform[TScene any] struct {
	binding int
	name    string
	get     func(state TScene) Value
}

type sceneTexture[TScene any] struct {
	binding int
	name    string
	get     func(state TScene) *binding.Texture
}

type meshUniform[TMesh any] struct {
	binding int
	name    string
	get     func(state TMesh) Value
}

type materialUniform struct {
	binding int
	name    string
	get     func(mat material.Material) Value
}

type materialTexture struct {
	binding     int
	flagBinding int
	name        string
	sampler     *binding.Sampler
	fallback    *binding.Texture
	get         func(mat material.Material) *binding.Texture
}

type attributeBinding struct {
	slot int
	name string
	get  func(geometry *model.Geometry) *binding.Buffer
}

// shaderImpl is the implementation of the Shader interface.
type shaderImpl[TScene, TMesh any] struct {
	device  binding.Device
	program *Program

	sceneUniforms []sceneUniform[TScene]
	sceneTextures []sceneTexture[TScene]
	sceneBlock    binding.Block
	sceneBound    map[int]*binding.Texture
	sceneReady    bool

	meshUniforms []meshUniform[TMesh]
	meshBlock    binding.Block
	meshReady    bool

	materialUniforms []materialUniform
	materialTextures []materialTexture
	materialBlocks   map[material.Material]binding.Block
	materialLayout   binding.Layout
	hasMaterialGroup bool

	attributes []attributeBinding

	samplers []*binding.Sampler
}

var _ Shader[any, MeshState] = &shaderImpl[any, MeshState]{}

// NewShader creates a Shader over a compiled program. Binding lists start
// empty; register them before the first Apply call.
//
// Parameters:
//   - device: the resource device backing the shader's bind groups
//   - program: the compiled program variant to bind
//
// Returns:
//   - Shader[TScene]: the initialized shader
func NewShader[TScene, TMesh any](device binding.Device, program *Program) Shader[TScene, TMesh] {
	s := &shaderImpl[TScene, TMesh]{
		device:         device,
		program:        program,
		sceneBound:     map[int]*binding.Texture{},
		materialBlocks: map[material.Material]binding.Block{},
	}

	if layout, ok := program.Layout(GroupScene); ok {
		s.sceneBlock = binding.NewBlock(device, program.Key()+"/scene", layout, false)
	}

	if layout, ok := program.Layout(GroupMesh); ok {
		s.meshBlock = binding.NewBlock(device, program.Key()+"/mesh", layout, true)
	}

	if layout, ok := program.Layout(GroupMaterial); ok {
		s.materialLayout = layout
		s.hasMaterialGroup = true
	}

	return s
}

func (s *shaderImpl[TScene, TMesh]) Program() *Program {
	return s.program
}

func (s *shaderImpl[TScene, TMesh]) SetUniformPerScene(kind UniformKind, name string, get func(state TScene) Value) {
	entry := s.resolveUniform(GroupScene, kind, name)
	s.sceneUniforms = append(s.sceneUniforms, sceneUniform[TScene]{binding: entry.Binding, name: name, get: get})
}

func (s *shaderImpl[TScene, TMesh]) SetTexturePerScene(name string, desc common.Sampler, get func(state TScene) *binding.Texture) {
	entry := s.resolveTexture(GroupScene, name)
	s.sceneTextures = append(s.sceneTextures, sceneTexture[TScene]{binding: entry.Binding, name: name, get: get})
	s.bindSampler(s.sceneBlock, GroupScene, name, desc)
}

func (s *shaderImpl[TScene, TMesh]) SetUniformPerMesh(kind UniformKind, name string, get func(state TMesh) Value) {
	entry := s.resolveUniform(GroupMesh, kind, name)
	s.meshUniforms = append(s.meshUniforms, meshUniform[TMesh]{binding: entry.Binding, name: name, get: get})
}

func (s *shaderImpl[TScene, TMesh]) SetUniformPerMaterial(kind UniformKind, name string, get func(mat material.Material) Value) {
	entry := s.resolveUniform(GroupMaterial, kind, name)
	s.materialUniforms = append(s.materialUniforms, materialUniform{binding: entry.Binding, name: name, get: get})
}

func (s *shaderImpl[TScene, TMesh]) SetTexturePerMaterial(name string, flag string, desc common.Sampler, fallback *binding.Texture, get func(mat material.Material) *binding.Texture) {
	entry := s.resolveTexture(GroupMaterial, name)

	flagBinding := -1
	if flag != "" {
		flagEntry := s.resolveUniform(GroupMaterial, UniformScalar, flag)
		flagBinding = flagEntry.Binding
	}

	sampler := s.createSampler(GroupMaterial, name, desc)
	s.materialTextures = append(s.materialTextures, materialTexture{
		binding:     entry.Binding,
		flagBinding: flagBinding,
		name:        name,
		sampler:     sampler,
		fallback:    fallback,
		get:         get,
	})
}

func (s *shaderImpl[TScene, TMesh]) SetAttributePerGeometry(name string, get func(geometry *model.Geometry) *binding.Buffer) {
	for _, input := range s.program.VertexInputs() {
		if input.Name == name {
			s.attributes = append(s.attributes, attributeBinding{slot: input.Slot, name: name, get: get})
			return
		}
	}

	panic(fmt.Sprintf("shader %s: no vertex input named %q", s.program.Key(), name))
}

func (s *shaderImpl[TScene, TMesh]) BeginPass() {
	if s.meshBlock != nil {
		s.meshBlock.BeginFrame()
	}
}

func (s *shaderImpl[TScene, TMesh]) ApplyScene(pass Pass, state TScene) {
	if s.sceneBlock == nil {
		return
	}

	rebuild := !s.sceneReady
	for _, t := range s.sceneTextures {
		texture := t.get(state)
		if texture == nil {
			panic(fmt.Sprintf("shader %s: scene texture %q is nil", s.program.Key(), t.name))
		}

		if s.sceneBound[t.binding] != texture {
			s.sceneBlock.SetTexture(t.binding, texture)
			s.sceneBound[t.binding] = texture
			rebuild = true
		}
	}

	if rebuild {
		retired := s.sceneBlock.BindGroup()
		s.sceneBlock.Finalize()
		s.sceneReady = true

		if retired != nil {
			retired.Release()
		}
	}

	for _, u := range s.sceneUniforms {
		s.sceneBlock.Write(u.binding, u.get(state).bytes())
	}

	pass.SetBindGroup(GroupScene, s.sceneBlock.BindGroup(), nil)
}

func (s *shaderImpl[TScene, TMesh]) ApplyMesh(pass Pass, state TMesh) {
	if s.meshBlock == nil {
		return
	}

	if !s.meshReady {
		s.meshBlock.Finalize()
		s.meshReady = true
	}

	s.meshBlock.AllocSlot()
	for _, u := range s.meshUniforms {
		s.meshBlock.WriteSlot(u.binding, u.get(state).bytes())
	}

	pass.SetBindGroup(GroupMesh, s.meshBlock.BindGroup(), s.meshBlock.DynamicOffsets())
}

func (s *shaderImpl[TScene, TMesh]) ApplyMaterial(pass Pass, mat material.Material) {
	if !s.hasMaterialGroup {
		return
	}

	block, ok := s.materialBlocks[mat]
	if !ok {
		block = s.buildMaterialBlock(mat)
		s.materialBlocks[mat] = block
	}

	pass.SetBindGroup(GroupMaterial, block.BindGroup(), nil)
}

func (s *shaderImpl[TScene, TMesh]) ApplyGeometry(pass Pass, geometry *model.Geometry) {
	geometry.Upload(s.device)

	for _, a := range s.attributes {
		buffer := a.get(geometry)
		if buffer == nil {
			panic(fmt.Sprintf("shader %s: geometry has no stream for attribute %q", s.program.Key(), a.name))
		}

		pass.SetVertexBuffer(a.slot, buffer)
	}

	pass.SetIndexBuffer(geometry.Indices(), geometry.IndexFormat())
}

// buildMaterialBlock creates and fills the group 2 block for a material.
// Materials are immutable, so uniforms and textures are written exactly once.
func (s *shaderImpl[TScene, TMesh]) buildMaterialBlock(mat material.Material) binding.Block {
	block := binding.NewBlock(s.device, s.program.Key()+"/material", s.materialLayout, false)

	type flagWrite struct {
		binding int
		present bool
	}

	flags := []flagWrite{}
	for _, t := range s.materialTextures {
		texture := t.get(mat)
		present := texture != nil
		if texture == nil {
			texture = t.fallback
		}

		if texture == nil {
			panic(fmt.Sprintf("shader %s: material provides no texture for %q and no fallback is configured", s.program.Key(), t.name))
		}

		block.SetTexture(t.binding, texture)
		block.SetSampler(samplerBinding(s.materialLayout, t.name), t.sampler)

		if t.flagBinding >= 0 {
			flags = append(flags, flagWrite{binding: t.flagBinding, present: present})
		}
	}

	block.Finalize()

	for _, u := range s.materialUniforms {
		block.Write(u.binding, u.get(mat).bytes())
	}

	for _, f := range flags {
		value := float32(0)
		if f.present {
			value = 1
		}

		block.Write(f.binding, ScalarValue(value).bytes())
	}

	return block
}

func (s *shaderImpl[TScene, TMesh]) Release() {
	if s.sceneBlock != nil {
		s.sceneBlock.Release()
	}

	if s.meshBlock != nil {
		s.meshBlock.Release()
	}

	for _, block := range s.materialBlocks {
		block.Release()
	}
	s.materialBlocks = map[material.Material]binding.Block{}

	for _, sampler := range s.samplers {
		sampler.Release()
	}
	s.samplers = nil
}

func (s *shaderImpl[TScene, TMesh]) resolveUniform(group int, kind UniformKind, name string) binding.LayoutEntry {
	entry, ok := s.program.reflection.entry(group, name)
	if !ok {
		panic(fmt.Sprintf("shader %s: no uniform named %q in group %d", s.program.Key(), name, group))
	}

	if entry.Kind != binding.ResourceUniformBuffer {
		panic(fmt.Sprintf("shader %s: %q in group %d is not a uniform buffer", s.program.Key(), name, group))
	}

	if size := kind.byteSize(); size != entry.MinSize {
		panic(fmt.Sprintf("shader %s: uniform %q is %d bytes in source but the binding writes %d", s.program.Key(), name, entry.MinSize, size))
	}

	return entry
}

func (s *shaderImpl[TScene, TMesh]) resolveTexture(group int, name string) binding.LayoutEntry {
	entry, ok := s.program.reflection.entry(group, name)
	if !ok {
		panic(fmt.Sprintf("shader %s: no texture named %q in group %d", s.program.Key(), name, group))
	}

	switch entry.Kind {
	case binding.ResourceTexture2D, binding.ResourceTextureCube, binding.ResourceTextureDepth:
		return entry
	default:
		panic(fmt.Sprintf("shader %s: %q in group %d is not a texture", s.program.Key(), name, group))
	}
}

// bindSampler creates the sampler paired with a texture variable and binds
// it into the given block, when the program declares "<name>Sampler".
func (s *shaderImpl[TScene, TMesh]) bindSampler(block binding.Block, group int, name string, desc common.Sampler) {
	sampler := s.createSampler(group, name, desc)
	if sampler == nil {
		return
	}

	entry, _ := s.program.reflection.entry(group, name+"Sampler")
	block.SetSampler(entry.Binding, sampler)
}

func (s *shaderImpl[TScene, TMesh]) createSampler(group int, name string, desc common.Sampler) *binding.Sampler {
	entry, ok := s.program.reflection.entry(group, name+"Sampler")
	if !ok {
		return nil
	}

	comparison := entry.Kind == binding.ResourceSamplerComparison
	sampler := s.device.CreateSampler(fmt.Sprintf("%s/%sSampler", s.program.Key(), name), desc, comparison)
	s.samplers = append(s.samplers, sampler)

	return sampler
}

func samplerBinding(layout binding.Layout, name string) int {
	for _, entry := range layout.Entries {
		if entry.Var == name+"Sampler" {
			return entry.Binding
		}
	}

	panic(fmt.Sprintf("no sampler declared for texture %q", name))
}
