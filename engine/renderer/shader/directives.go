package shader

import (
	"fmt"
	"sort"
	"strings"
)

// Directives are compile-time switches for a shader template. Each directive
// becomes a WGSL constant prepended to the processed source, and may also
// gate lines through //#if blocks.
type Directives map[string]int

// clone returns a copy so a cached program cannot observe later mutation.
func (d Directives) clone() Directives {
	out := make(Directives, len(d))
	for name, value := range d {
		out[name] = value
	}
	return out
}

// names returns the directive names in sorted order.
func (d Directives) names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const maxIncludeDepth = 8

var snippets = map[string]string{}

// RegisterSnippet makes a named WGSL fragment available to //#include
// lines in shader templates. Registering the same name twice panics, the
// registry is meant to be filled once at package init.
func RegisterSnippet(name string, source string) {
	if _, ok := snippets[name]; ok {
		panic(fmt.Sprintf("shader snippet %q registered twice", name))
	}

	snippets[name] = source
}

// Preprocess expands a shader template into compilable WGSL source.
//
// Three line-based forms are handled:
//   - //#include <name> is replaced by the registered snippet of that name.
//   - //#if NAME, //#else and //#endif keep or drop the enclosed lines
//     depending on whether the NAME directive has a non-zero value.
//   - every directive is emitted as a "const NAME: i32 = value;" line at the
//     top of the output, in name order, so templates can also branch on
//     directive values at shader runtime.
//
// Parameters:
//   - source: the template source.
//   - directives: the directive set for this variant.
//
// Returns:
//   - string: the processed WGSL source.
//   - error: non-nil when an include is unknown, a condition names an
//     undeclared directive, or //#if / //#endif lines are unbalanced.
func Preprocess(source string, directives Directives) (string, error) {
	expanded, err := expandIncludes(source, 0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, name := range directives.names() {
		fmt.Fprintf(&sb, "const %s: i32 = %d;\n", name, directives[name])
	}

	type frame struct {
		active bool
		taken  bool
	}

	stack := []frame{}
	active := func() bool {
		for _, f := range stack {
			if !f.active {
				return false
			}
		}
		return true
	}

	for lineNo, line := range strings.Split(expanded, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "//#if "):
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "//#if "))
			value, ok := directives[name]
			if !ok {
				return "", fmt.Errorf("line %d: condition on undeclared directive %q", lineNo+1, name)
			}

			stack = append(stack, frame{active: value != 0, taken: value != 0})
		case trimmed == "//#else":
			if len(stack) == 0 {
				return "", fmt.Errorf("line %d: //#else without //#if", lineNo+1)
			}

			top := &stack[len(stack)-1]
			top.active = !top.taken
		case trimmed == "//#endif":
			if len(stack) == 0 {
				return "", fmt.Errorf("line %d: //#endif without //#if", lineNo+1)
			}

			stack = stack[:len(stack)-1]
		default:
			if active() {
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		}
	}

	if len(stack) != 0 {
		return "", fmt.Errorf("unterminated //#if block")
	}

	return sb.String(), nil
}

func expandIncludes(source string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("shader includes nested deeper than %d levels", maxIncludeDepth)
	}

	var sb strings.Builder
	for lineNo, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "//#include") {
			sb.WriteString(line)
			sb.WriteString("\n")
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(trimmed, "//#include"))
		name = strings.Trim(name, "<>")

		snippet, ok := snippets[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown shader snippet %q", lineNo+1, name)
		}

		expanded, err := expandIncludes(snippet, depth+1)
		if err != nil {
			return "", err
		}

		sb.WriteString(expanded)
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
