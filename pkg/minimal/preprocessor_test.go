package minimal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreprocess_AddsSemicolons(t *testing.T) {
	out, err := Preprocess([]string{"<#> x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"<#> x;"}, out)
}

func TestPreprocess_SplitsOnSemicolon(t *testing.T) {
	out, err := Preprocess([]string{"<#> x := 1; <#> y := 2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"<#> x := 1;", "<#> y := 2;"}, out)
}

func TestPreprocess_CollapsesEmptyFragments(t *testing.T) {
	out, err := Preprocess([]string{";;<#> x;;;"})
	require.NoError(t, err)
	assert.Equal(t, []string{"<#> x;"}, out)
}

func TestPreprocess_TrimsWhitespace(t *testing.T) {
	out, err := Preprocess([]string{"   <#> x   "})
	require.NoError(t, err)
	assert.Equal(t, []string{"<#> x;"}, out)
}

func TestPreprocess_CommentLinesPassThroughUntouched(t *testing.T) {
	out, err := Preprocess([]string{"//a comment, with; a semicolon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"//a comment, with; a semicolon"}, out)
}

func TestPreprocess_NoSemicolonAfterSuffixBytes(t *testing.T) {
	for _, suffix := range strings.Split(noSemicolonAfter, "") {
		line := "foo" + suffix
		out, err := Preprocess([]string{line})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, line, out[0], "fragment ending in %q must not get a trailing semicolon", suffix)
	}
}

func TestPreprocess_ExactBlockTerminatorsAreLeftAlone(t *testing.T) {
	for _, exact := range noSemicolonExact {
		out, err := Preprocess([]string{exact})
		require.NoError(t, err)
		assert.Equal(t, []string{exact}, out)
	}
}

func TestPreprocess_LineTooLong(t *testing.T) {
	_, err := Preprocess([]string{strings.Repeat("x", maxLineLength+1)})
	require.Error(t, err)
	var preErr *PreprocessError
	require.True(t, errors.As(err, &preErr))
	assert.Equal(t, StatusLineTooLong, preErr.Status)
	assert.Equal(t, 1, preErr.Line)
}

func TestPreprocess_CannotAddDelimiter(t *testing.T) {
	_, err := Preprocess([]string{strings.Repeat("x", maxLineLength)})
	require.Error(t, err)
	var preErr *PreprocessError
	require.True(t, errors.As(err, &preErr))
	assert.Equal(t, StatusCannotAddDelimiter, preErr.Status)
}

func TestPreprocess_EmptyInput(t *testing.T) {
	_, err := Preprocess(nil)
	assert.ErrorIs(t, err, StatusFileEmpty)
}

func TestPreprocess_LineNumberInError(t *testing.T) {
	lines := []string{"<#> x", strings.Repeat("y", maxLineLength+1)}
	_, err := Preprocess(lines)
	require.Error(t, err)
	var preErr *PreprocessError
	require.True(t, errors.As(err, &preErr))
	assert.Equal(t, 2, preErr.Line)
}
