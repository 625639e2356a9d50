package shader

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/r3c/arcadejs-sub001/common"
	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

var (
	structRegex        = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	structFieldRegex   = regexp.MustCompile(`(?:@location\((\d+)\)\s*)?(?:@builtin\((\w+)\)\s*)?(\w+)\s*:\s*([\w<>,\s]+?)\s*[,\n}]`)
	bindGroupVarRegex  = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(<[^>]*>)?\s+(\w+)\s*:\s*([\w<>,\s]+?)\s*;`)
	vertexEntryRegex   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)\s*\(\s*\w+\s*:\s*(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
	blockCommentRegex  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRegex   = regexp.MustCompile(`//[^\n]*`)
)

type primitiveLayout struct {
	size  uint64
	align uint64
}

var primitiveLayouts = map[string]primitiveLayout{
	"f32":         {4, 4},
	"i32":         {4, 4},
	"u32":         {4, 4},
	"vec2<f32>":   {8, 8},
	"vec2<i32>":   {8, 8},
	"vec2<u32>":   {8, 8},
	"vec3<f32>":   {12, 16},
	"vec4<f32>":   {16, 16},
	"mat3x3<f32>": {48, 16},
	"mat4x4<f32>": {64, 16},
}

// reflection is the binding interface recovered from a processed WGSL
// source: one layout per bind group, the vertex input fields, and the entry
// point names.
type reflection struct {
	layouts       map[int]binding.Layout
	vertexInputs  []binding.VertexInput
	vertexEntry   string
	fragmentEntry string
}

// entry resolves a resource variable by group and name.
func (r *reflection) entry(group int, name string) (binding.LayoutEntry, bool) {
	layout, ok := r.layouts[group]
	if !ok {
		return binding.LayoutEntry{}, false
	}

	for _, e := range layout.Entries {
		if e.Var == name {
			return e, true
		}
	}

	return binding.LayoutEntry{}, false
}

// reflectSource parses a processed WGSL source and recovers its binding
// interface. The parser is regex-based and only understands the subset of
// WGSL the engine's templates use: struct declarations, @group/@binding
// resource variables and @vertex/@fragment entry points.
func reflectSource(source string) (*reflection, error) {
	stripped := lineCommentRegex.ReplaceAllString(blockCommentRegex.ReplaceAllString(source, ""), "")

	structs, err := parseStructs(stripped)
	if err != nil {
		return nil, err
	}

	layouts, err := parseBindGroups(stripped, structs)
	if err != nil {
		return nil, err
	}

	r := &reflection{layouts: layouts}

	vertexMatch := vertexEntryRegex.FindStringSubmatch(stripped)
	if vertexMatch == nil {
		return nil, fmt.Errorf("no @vertex entry point found")
	}

	r.vertexEntry = vertexMatch[1]
	r.vertexInputs, err = parseVertexInputs(structs, vertexMatch[2])
	if err != nil {
		return nil, err
	}

	// Depth-only programs, such as shadow passes, have no fragment stage.
	if fragmentMatch := fragmentEntryRegex.FindStringSubmatch(stripped); fragmentMatch != nil {
		r.fragmentEntry = fragmentMatch[1]
	}

	return r, nil
}

type structField struct {
	name     string
	typeName string
	location int
	builtin  string
}

func parseStructs(source string) (map[string][]structField, error) {
	structs := map[string][]structField{}

	for _, match := range structRegex.FindAllStringSubmatch(source, -1) {
		name, body := match[1], match[2]

		fields := []structField{}
		for _, fieldMatch := range structFieldRegex.FindAllStringSubmatch(body+"\n", -1) {
			field := structField{
				name:     fieldMatch[3],
				typeName: normalizeType(fieldMatch[4]),
				location: -1,
				builtin:  fieldMatch[2],
			}

			if fieldMatch[1] != "" {
				location, err := strconv.Atoi(fieldMatch[1])
				if err != nil {
					return nil, fmt.Errorf("struct %s field %s: bad location", name, field.name)
				}

				field.location = location
			}

			fields = append(fields, field)
		}

		structs[name] = fields
	}

	return structs, nil
}

func parseBindGroups(source string, structs map[string][]structField) (map[int]binding.Layout, error) {
	layouts := map[int]binding.Layout{}

	for _, match := range bindGroupVarRegex.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(match[1])
		slot, _ := strconv.Atoi(match[2])
		addressSpace := strings.Trim(match[3], "<>")
		name := match[4]
		typeName := normalizeType(match[5])

		kind, err := classifyResource(addressSpace, typeName)
		if err != nil {
			return nil, fmt.Errorf("resource %s: %w", name, err)
		}

		entry := binding.LayoutEntry{Binding: slot, Var: name, Kind: kind}
		if kind == binding.ResourceUniformBuffer {
			size, err := typeSize(typeName, structs)
			if err != nil {
				return nil, fmt.Errorf("uniform %s: %w", name, err)
			}

			entry.MinSize = size

			// Per-mesh uniforms are sub-allocated from a shared buffer and
			// bound with dynamic offsets.
			entry.Dynamic = group == GroupMesh
		}

		layout := layouts[group]
		layout.Group = group
		layout.Entries = append(layout.Entries, entry)
		layouts[group] = layout
	}

	for group, layout := range layouts {
		sort.Slice(layout.Entries, func(i, j int) bool {
			return layout.Entries[i].Binding < layout.Entries[j].Binding
		})
		layouts[group] = layout
	}

	return layouts, nil
}

func parseVertexInputs(structs map[string][]structField, inputStruct string) ([]binding.VertexInput, error) {
	fields, ok := structs[inputStruct]
	if !ok {
		return nil, fmt.Errorf("vertex input struct %s not declared", inputStruct)
	}

	inputs := []binding.VertexInput{}
	for _, field := range fields {
		if field.builtin != "" {
			continue
		}

		if field.location < 0 {
			return nil, fmt.Errorf("vertex input field %s has no @location", field.name)
		}

		format, err := vertexFormat(field.typeName)
		if err != nil {
			return nil, fmt.Errorf("vertex input field %s: %w", field.name, err)
		}

		inputs = append(inputs, binding.VertexInput{
			Name:     field.name,
			Location: field.location,
			Format:   format,
		})
	}

	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Location < inputs[j].Location })

	for i := range inputs {
		inputs[i].Slot = i
	}

	return inputs, nil
}

func classifyResource(addressSpace string, typeName string) (binding.ResourceKind, error) {
	if addressSpace != "" {
		space := strings.Split(addressSpace, ",")[0]
		if space != "uniform" {
			return 0, fmt.Errorf("unsupported address space %q", space)
		}

		return binding.ResourceUniformBuffer, nil
	}

	switch {
	case typeName == "sampler":
		return binding.ResourceSampler, nil
	case typeName == "sampler_comparison":
		return binding.ResourceSamplerComparison, nil
	case typeName == "texture_depth_2d":
		return binding.ResourceTextureDepth, nil
	case strings.HasPrefix(typeName, "texture_2d<"):
		return binding.ResourceTexture2D, nil
	case strings.HasPrefix(typeName, "texture_cube<"):
		return binding.ResourceTextureCube, nil
	default:
		return 0, fmt.Errorf("unsupported resource type %q", typeName)
	}
}

// typeSize computes the WGSL uniform byte size of a primitive, array or
// struct type, following the uniform address space layout rules.
func typeSize(typeName string, structs map[string][]structField) (uint64, error) {
	size, _, err := typeLayout(typeName, structs)

	return size, err
}

func typeLayout(typeName string, structs map[string][]structField) (uint64, uint64, error) {
	if layout, ok := primitiveLayouts[typeName]; ok {
		return layout.size, layout.align, nil
	}

	if strings.HasPrefix(typeName, "array<") {
		inner := strings.TrimSuffix(strings.TrimPrefix(typeName, "array<"), ">")
		comma := strings.LastIndex(inner, ",")
		if comma < 0 {
			return 0, 0, fmt.Errorf("runtime-sized array %q not supported in uniforms", typeName)
		}

		count, err := strconv.Atoi(strings.TrimSpace(inner[comma+1:]))
		if err != nil {
			return 0, 0, fmt.Errorf("bad array count in %q", typeName)
		}

		elementSize, elementAlign, err := typeLayout(strings.TrimSpace(inner[:comma]), structs)
		if err != nil {
			return 0, 0, err
		}

		stride := common.AlignUp(elementSize, max(elementAlign, 16))

		return stride * uint64(count), max(elementAlign, 16), nil
	}

	fields, ok := structs[typeName]
	if !ok {
		return 0, 0, fmt.Errorf("unknown type %q", typeName)
	}

	var offset, structAlign uint64
	for _, field := range fields {
		fieldSize, fieldAlign, err := typeLayout(field.typeName, structs)
		if err != nil {
			return 0, 0, fmt.Errorf("field %s: %w", field.name, err)
		}

		offset = common.AlignUp(offset, fieldAlign) + fieldSize
		structAlign = max(structAlign, fieldAlign)
	}

	structAlign = max(structAlign, 16)

	return common.AlignUp(offset, structAlign), structAlign, nil
}

func vertexFormat(typeName string) (binding.VertexFormat, error) {
	switch typeName {
	case "vec2<f32>":
		return binding.VertexFloat32x2, nil
	case "vec3<f32>":
		return binding.VertexFloat32x3, nil
	case "vec4<f32>":
		return binding.VertexFloat32x4, nil
	default:
		return 0, fmt.Errorf("unsupported vertex attribute type %q", typeName)
	}
}

func normalizeType(typeName string) string {
	return strings.Join(strings.Fields(typeName), "")
}
