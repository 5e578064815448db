package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDefaultIgnored(t *testing.T) {
	ignored := []string{
		"node_modules/react/index.js",
		"src/node_modules/lib/a.js",
		".git/config",
		"dist/bundle.js",
		"package-lock.json",
		"docs/assets/logo.png",
		"fonts/inter.woff2",
		"app/static/app.min.js",
		"vendor/github.com/pkg/errors/errors.go",
		"release/build.zip",
	}
	for _, path := range ignored {
		assert.True(t, IsDefaultIgnored(path), "expected %q to be ignored", path)
	}

	kept := []string{
		"src/index.ts",
		"README.md",
		"package.json",
		"cmd/app/main.go",
		"Dockerfile",
		"internal/builder/build.go",
		"src/components/Button.tsx",
	}
	for _, path := range kept {
		assert.False(t, IsDefaultIgnored(path), "expected %q to be kept", path)
	}
}

func TestIsDefaultIgnored_NormalizesWindowsSeparators(t *testing.T) {
	assert.True(t, IsDefaultIgnored(`node_modules\react\index.js`))
	assert.False(t, IsDefaultIgnored(`src\index.ts`))
}
