package code_analyzer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_analyzer/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/embed_data"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
)

// MaxSelectedFiles bounds how many files one run sends to the model.
const MaxSelectedFiles = 50

// CodeAnalyzer builds model prompts from fetched repository files.
// ContextMode controls how file contents enter the analysis prompt:
// "full" sends raw contents, "compact" sends tree-sitter summaries.
type CodeAnalyzer struct {
	ContextMode string
}

// NewCodeAnalyzer initializes a new CodeAnalyzer.
func NewCodeAnalyzer(contextMode string) contracts.ICodeAnalyzer {
	if contextMode == "" {
		contextMode = "full"
	}
	return &CodeAnalyzer{ContextMode: contextMode}
}

// BuildSelectionPrompt asks the model to pick the most relevant files from
// the newline-joined path list.
func (analyzer *CodeAnalyzer) BuildSelectionPrompt(files []models.SourceFile) (string, string) {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.Path)
	}

	userInput := fmt.Sprintf("## Repository file paths\n\n%s", strings.Join(paths, "\n"))
	return string(embed_data.SelectionPrompt), userInput
}

// ParseSelectedPaths extracts the selected path list from the model response
// and filters the fetched files down to it, preserving the model's order.
// A response without a usable array falls back to the first files fetched.
func (analyzer *CodeAnalyzer) ParseSelectedPaths(response string, files []models.SourceFile) []models.SourceFile {
	byPath := make(map[string]models.SourceFile, len(files))
	for _, file := range files {
		byPath[file.Path] = file
	}

	var selected []models.SourceFile
	for _, path := range extractPathArray(response) {
		if file, known := byPath[path]; known {
			selected = append(selected, file)
			if len(selected) == MaxSelectedFiles {
				break
			}
		}
	}

	if len(selected) == 0 {
		selected = files
		if len(selected) > MaxSelectedFiles {
			selected = selected[:MaxSelectedFiles]
		}
	}

	return selected
}

// extractPathArray finds the first JSON array of strings in a possibly
// fenced or otherwise noisy model response. Bracketed spans that are not
// string arrays (e.g. markdown links in surrounding prose) are skipped.
func extractPathArray(response string) []string {
	re := regexp.MustCompile(`(?s)\[.*?\]`)
	for _, match := range re.FindAllString(response, -1) {
		var paths []string
		if err := json.Unmarshal([]byte(match), &paths); err != nil {
			continue
		}
		return paths
	}
	return nil
}

// BuildAnalysisPrompt wraps the selected file contents with FILE markers and
// asks for the architecture report.
func (analyzer *CodeAnalyzer) BuildAnalysisPrompt(files []models.SourceFile) (string, string) {
	userInput := fmt.Sprintf("## Selected repository files\n\n%s", analyzer.wrapFiles(files))
	return string(embed_data.AnalysisPrompt), userInput
}

// BuildReimplementationPrompt sends the original files plus the analysis
// report and asks for the one-object-per-line re-implementation stream.
func (analyzer *CodeAnalyzer) BuildReimplementationPrompt(files []models.SourceFile, analysis string) (string, string) {
	userInput := fmt.Sprintf("## Original repository files\n\n%s\n\n______\n\n## Architecture report\n\n%s",
		rawWrapFiles(files), analysis)
	return string(embed_data.ReimplementationPrompt), userInput
}

// wrapFiles delimits each file with FILE markers, summarizing contents in
// compact mode. Re-implementation always gets raw contents.
func (analyzer *CodeAnalyzer) wrapFiles(files []models.SourceFile) string {
	if analyzer.ContextMode != "compact" {
		return rawWrapFiles(files)
	}

	wrapped := make([]string, 0, len(files))
	for _, file := range files {
		wrapped = append(wrapped, wrapFile(file.Path, SummarizeFile(file.Path, []byte(file.Content))))
	}
	return strings.Join(wrapped, "\n\n")
}

func rawWrapFiles(files []models.SourceFile) string {
	wrapped := make([]string, 0, len(files))
	for _, file := range files {
		wrapped = append(wrapped, wrapFile(file.Path, file.Content))
	}
	return strings.Join(wrapped, "\n\n")
}

func wrapFile(path string, content string) string {
	return fmt.Sprintf("// FILE: %s\n%s\n// END OF FILE: %s", path, content, path)
}
