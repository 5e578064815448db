package code_analyzer

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/embed_data"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/utils"
)

// SummarizeFile extracts the declarations of a source file using Tree-sitter,
// producing a compact stand-in for the raw content in analysis prompts.
// Unsupported languages fall back to the path and first line.
func SummarizeFile(filePath string, sourceCode []byte) string {
	var lang *sitter.Language
	var query []byte

	switch utils.GetSupportedLanguage(filePath) {
	case "csharp":
		lang = csharp.GetLanguage()
		query = embed_data.CSharpQuery
	case "go":
		lang = golang.GetLanguage()
		query = embed_data.GoQuery
	case "python":
		lang = python.GetLanguage()
		query = embed_data.PythonQuery
	case "java":
		lang = java.GetLanguage()
		query = embed_data.JavaQuery
	case "javascript":
		lang = javascript.GetLanguage()
		query = embed_data.JavascriptQuery
	case "typescript":
		lang = typescript.GetLanguage()
		query = embed_data.TypescriptQuery
	default:
		lines := strings.Split(string(sourceCode), "\n")
		return fmt.Sprintf("%s\n%s", filePath, lines[0])
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree := parser.Parse(nil, sourceCode)

	queries := make(map[string]string)
	if err := json.Unmarshal(query, &queries); err != nil {
		log.Fatalf("failed to parse embedded query JSON: %v", err)
	}

	elements := []string{filePath}
	for tag, queryStr := range queries {
		compiled, err := sitter.NewQuery([]byte(queryStr), lang)
		if err != nil {
			log.Fatalf("failed to compile query: %v", err)
		}

		cursor := sitter.NewQueryCursor()
		cursor.Exec(compiled, tree.RootNode())

		for {
			match, ok := cursor.NextMatch()
			if !ok {
				break
			}
			for _, capture := range match.Captures {
				elements = append(elements, fmt.Sprintf("%s: %s", tag, capture.Node.Content(sourceCode)))
			}
		}
	}

	return strings.Join(elements, "\n")
}
