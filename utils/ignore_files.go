package utils

import (
	"path"
	"strings"
)

// Directories that never contain hand-written source worth analyzing.
var defaultIgnoredDirs = []string{
	".git", ".github", ".idea", ".vscode",
	"node_modules", "vendor", "dist", "build", "out", "target",
	"__pycache__", "coverage", "bin", "obj",
}

// Lock and generated files fetched trees commonly contain.
var defaultIgnoredFiles = []string{
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb",
	"go.sum", "Cargo.lock", "composer.lock", "Gemfile.lock", "poetry.lock",
	".DS_Store",
}

// Binary and media extensions that cannot be analyzed as text.
var defaultIgnoredExtensions = []string{
	".png", ".jpg", ".jpeg", ".gif", ".ico", ".svg", ".webp", ".bmp",
	".woff", ".woff2", ".ttf", ".otf", ".eot",
	".mp3", ".mp4", ".wav", ".avi", ".mov", ".webm",
	".zip", ".gz", ".tar", ".rar", ".7z",
	".pdf", ".exe", ".dll", ".so", ".dylib", ".bin", ".wasm",
	".min.js", ".min.css", ".map",
}

// IsDefaultIgnored reports whether a repo-relative path should be excluded
// from fetching based on the default ignore patterns.
func IsDefaultIgnored(relativePath string) bool {
	relativePath = strings.ReplaceAll(relativePath, "\\", "/")

	for _, segment := range strings.Split(path.Dir(relativePath), "/") {
		for _, dir := range defaultIgnoredDirs {
			if segment == dir {
				return true
			}
		}
	}

	base := path.Base(relativePath)
	for _, file := range defaultIgnoredFiles {
		if base == file {
			return true
		}
	}

	lower := strings.ToLower(base)
	for _, ext := range defaultIgnoredExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	return false
}
