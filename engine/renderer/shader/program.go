package shader

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/r3c/arcadejs-sub001/engine/renderer/binding"
)

// Program is one compiled variant of a shader template: the preprocessed
// WGSL source together with the binding interface reflected from it.
// Programs are immutable once built and safe for concurrent use.
type Program struct {
	key        string
	source     string
	reflection *reflection
}

// Key identifies the template and directive set this variant was built from.
func (p *Program) Key() string { return p.key }

// Source returns the preprocessed WGSL source.
func (p *Program) Source() string { return p.source }

// VertexEntry returns the @vertex entry point name.
func (p *Program) VertexEntry() string { return p.reflection.vertexEntry }

// FragmentEntry returns the @fragment entry point name.
func (p *Program) FragmentEntry() string { return p.reflection.fragmentEntry }

// Layout returns the resource layout of the given bind group, or false when
// the source declares no resources in that group.
func (p *Program) Layout(group int) (binding.Layout, bool) {
	layout, ok := p.reflection.layouts[group]

	return layout, ok
}

// VertexInputs returns the vertex attributes of the program, ordered by
// location. Each attribute is fed from its own vertex buffer slot.
func (p *Program) VertexInputs() []binding.VertexInput {
	return p.reflection.vertexInputs
}

// NewProgram preprocesses a template with the given directives and reflects
// the result. It panics when the template cannot be processed or parsed,
// broken templates are a build defect rather than a runtime condition.
//
// Parameters:
//   - name: the template name, used in variant keys and error messages.
//   - template: the template WGSL source.
//   - directives: the directive set for this variant, may be nil.
//
// Returns:
//   - *Program: the compiled variant.
func NewProgram(name string, template string, directives Directives) *Program {
	source, err := Preprocess(template, directives)
	if err != nil {
		panic(fmt.Sprintf("shader %s: %v", name, err))
	}

	reflection, err := reflectSource(source)
	if err != nil {
		panic(fmt.Sprintf("shader %s: %v", name, err))
	}

	return &Program{
		key:        variantKey(name, directives),
		source:     source,
		reflection: reflection,
	}
}

// Cache deduplicates program variants. Two requests with the same template
// name and directive set share one Program.
type Cache struct {
	mu       sync.Mutex
	programs map[uint64]*Program
}

func NewCache() *Cache {
	return &Cache{programs: map[uint64]*Program{}}
}

// Variant returns the program for the given template and directive set,
// building it on first use.
func (c *Cache) Variant(name string, template string, directives Directives) *Program {
	key := variantHash(name, directives)

	c.mu.Lock()
	defer c.mu.Unlock()

	if program, ok := c.programs[key]; ok {
		return program
	}

	program := NewProgram(name, template, directives)
	c.programs[key] = program

	return program
}

func variantKey(name string, directives Directives) string {
	var sb strings.Builder
	sb.WriteString(name)
	for _, directive := range directives.names() {
		fmt.Fprintf(&sb, ",%s=%d", directive, directives[directive])
	}

	return sb.String()
}

func variantHash(name string, directives Directives) uint64 {
	h := fnv.New64a()
	h.Write([]byte(variantKey(name, directives)))

	return h.Sum64()
}

var errorLineRegex = regexp.MustCompile(`:(\d+):\d+`)

const errorWindowRadius = 2

// AnnotateCompileError appends a numbered window of the offending source
// lines to a shader compilation error message, when the message carries a
// line:column position. Messages without a position are returned unchanged.
func AnnotateCompileError(source string, message string) string {
	match := errorLineRegex.FindStringSubmatch(message)
	if match == nil {
		return message
	}

	lineNo, err := strconv.Atoi(match[1])
	if err != nil {
		return message
	}

	lines := strings.Split(source, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return message
	}

	first := max(lineNo-errorWindowRadius, 1)
	last := min(lineNo+errorWindowRadius, len(lines))

	var sb strings.Builder
	sb.WriteString(message)
	sb.WriteString("\n")

	for i := first; i <= last; i++ {
		marker := "  "
		if i == lineNo {
			marker = "> "
		}

		fmt.Fprintf(&sb, "%s%4d | %s\n", marker, i, lines[i-1])
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
