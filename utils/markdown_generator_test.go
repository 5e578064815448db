package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown_ColorsDiffLinesInsideFences(t *testing.T) {
	isCodeBlock = false

	var buf bytes.Buffer
	content := "Report intro\n```go\n+added line\n-removed line\nfunc kept() {}\n```\n"
	require.NoError(t, renderMarkdown(&buf, content, "go", "dracula"))

	out := buf.String()
	assert.Contains(t, out, "\x1b[92m+added line\n\x1b[0m")
	assert.Contains(t, out, "\x1b[91m-removed line\n\x1b[0m")
}

func TestRenderMarkdown_DiffPrefixesOutsideFencesAreNotColored(t *testing.T) {
	isCodeBlock = false

	var buf bytes.Buffer
	content := "+ a markdown list item, not a diff\n- another one\n"
	require.NoError(t, renderMarkdown(&buf, content, "markdown", "dracula"))

	out := buf.String()
	assert.NotContains(t, out, "\x1b[92m+ a markdown list item")
	assert.NotContains(t, out, "\x1b[91m- another one")
}

func TestRenderMarkdown_FenceStateSpansChunks(t *testing.T) {
	isCodeBlock = false

	var buf bytes.Buffer
	require.NoError(t, renderMarkdown(&buf, "```diff\n", "diff", "dracula"))
	require.NoError(t, renderMarkdown(&buf, "+still inside the fence\n", "diff", "dracula"))
	require.NoError(t, renderMarkdown(&buf, "```\n", "diff", "dracula"))

	assert.Contains(t, buf.String(), "\x1b[92m+still inside the fence\n\x1b[0m")
	assert.False(t, isCodeBlock, "closing fence resets the state")
}
