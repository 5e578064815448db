package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSupportedLanguage(t *testing.T) {
	assert.Equal(t, "go", GetSupportedLanguage("cmd/app/main.go"))
	assert.Equal(t, "typescript", GetSupportedLanguage("src/Button.TSX"))
	assert.Equal(t, "javascript", GetSupportedLanguage("lib/index.mjs"))
	assert.Equal(t, "csharp", GetSupportedLanguage("Program.cs"))
	assert.Equal(t, "", GetSupportedLanguage("README.md"))
	assert.Equal(t, "", GetSupportedLanguage("Makefile"))
}

func TestDetectLanguageFromCodeBlock(t *testing.T) {
	assert.Equal(t, "go", DetectLanguageFromCodeBlock("Some text\n```go\nfunc main() {}\n```"))
	assert.Equal(t, "typescript", DetectLanguageFromCodeBlock("  ```typescript\nconst x = 1;"))
	assert.Equal(t, "markdown", DetectLanguageFromCodeBlock("```\nplain block\n```"))
	assert.Equal(t, "markdown", DetectLanguageFromCodeBlock("no fences here"))
}
