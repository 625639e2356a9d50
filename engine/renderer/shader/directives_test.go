package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocessEmitsDirectiveConstantsSorted(t *testing.T) {
	source := "fn main() {}"

	processed, err := Preprocess(source, Directives{"ZETA": 2, "ALPHA": 0})
	require.NoError(t, err)

	lines := strings.Split(processed, "\n")
	assert.Equal(t, "const ALPHA: i32 = 0;", lines[0])
	assert.Equal(t, "const ZETA: i32 = 2;", lines[1])
	assert.Contains(t, processed, "fn main() {}")
}

func TestPreprocessConditionals(t *testing.T) {
	source := strings.Join([]string{
		"//#if LIGHTS",
		"lit line",
		"//#else",
		"unlit line",
		"//#endif",
		"always",
	}, "\n")

	on, err := Preprocess(source, Directives{"LIGHTS": 1})
	require.NoError(t, err)
	assert.Contains(t, on, "lit line")
	assert.NotContains(t, on, "unlit line")
	assert.Contains(t, on, "always")

	off, err := Preprocess(source, Directives{"LIGHTS": 0})
	require.NoError(t, err)
	assert.NotContains(t, off, "lit line")
	assert.Contains(t, off, "unlit line")
}

func TestPreprocessNestedConditionals(t *testing.T) {
	source := strings.Join([]string{
		"//#if OUTER",
		"//#if INNER",
		"both",
		"//#endif",
		"outer only",
		"//#endif",
	}, "\n")

	processed, err := Preprocess(source, Directives{"OUTER": 1, "INNER": 0})
	require.NoError(t, err)
	assert.NotContains(t, processed, "both")
	assert.Contains(t, processed, "outer only")

	processed, err = Preprocess(source, Directives{"OUTER": 0, "INNER": 1})
	require.NoError(t, err)
	assert.NotContains(t, processed, "both")
	assert.NotContains(t, processed, "outer only")
}

func TestPreprocessRejectsUndeclaredDirective(t *testing.T) {
	_, err := Preprocess("//#if MISSING\nx\n//#endif", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING")
}

func TestPreprocessRejectsUnbalancedBlocks(t *testing.T) {
	_, err := Preprocess("//#if A\nx", Directives{"A": 1})
	require.Error(t, err)

	_, err = Preprocess("//#endif", nil)
	require.Error(t, err)

	_, err = Preprocess("//#else", nil)
	require.Error(t, err)
}

func TestPreprocessIncludesSnippet(t *testing.T) {
	RegisterSnippet("test-helper", "fn helper() -> f32 { return 1.0; }")

	processed, err := Preprocess("//#include <test-helper>\nfn main() {}", nil)
	require.NoError(t, err)
	assert.Contains(t, processed, "fn helper()")
	assert.Contains(t, processed, "fn main()")
}

func TestPreprocessRejectsUnknownSnippet(t *testing.T) {
	_, err := Preprocess("//#include <no-such-snippet>", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-snippet")
}
