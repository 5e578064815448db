package code_analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeFile_UnsupportedLanguageFallsBack(t *testing.T) {
	summary := SummarizeFile("docs/notes.txt", []byte("first line of notes\nsecond line\n"))

	assert.Equal(t, "docs/notes.txt\nfirst line of notes", summary)
}

func TestSummarizeFile_GoDeclarations(t *testing.T) {
	source := []byte("package calc\n\ntype Adder struct{}\n\nfunc (a Adder) Add(x, y int) int {\n\treturn x + y\n}\n\nfunc New() Adder {\n\treturn Adder{}\n}\n")

	summary := SummarizeFile("calc/calc.go", source)

	assert.Contains(t, summary, "calc/calc.go")
	assert.Contains(t, summary, "type: Adder")
	assert.Contains(t, summary, "method: Add")
	assert.Contains(t, summary, "function: New")
	assert.NotContains(t, summary, "return x + y")
}
