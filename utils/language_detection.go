package utils

import (
	"path"
	"strings"
)

var extensionLanguages = map[string]string{
	".go":    "go",
	".cs":    "csharp",
	".py":    "python",
	".java":  "java",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".kt":    "kotlin",
	".swift": "swift",
}

// GetSupportedLanguage maps a file path to its language name, or "" when unknown.
func GetSupportedLanguage(filePath string) string {
	ext := strings.ToLower(path.Ext(filePath))
	return extensionLanguages[ext]
}

// DetectLanguageFromCodeBlock returns the language of the first fenced code
// block in a markdown chunk, defaulting to markdown.
func DetectLanguageFromCodeBlock(content string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			language := strings.TrimPrefix(trimmed, "```")
			if language != "" {
				return language
			}
		}
	}
	return "markdown"
}
