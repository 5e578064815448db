package contracts

import (
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
)

// ICodeAnalyzer builds the prompts for the three model calls of a run and
// parses the relevance-selection response. Each Build method returns the
// system prompt and the user input for the chat provider.
type ICodeAnalyzer interface {
	BuildSelectionPrompt(files []models.SourceFile) (prompt string, userInput string)
	ParseSelectedPaths(response string, files []models.SourceFile) []models.SourceFile
	BuildAnalysisPrompt(files []models.SourceFile) (prompt string, userInput string)
	BuildReimplementationPrompt(files []models.SourceFile, analysis string) (prompt string, userInput string)
}
