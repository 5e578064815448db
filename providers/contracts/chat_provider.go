package contracts

import (
	"context"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/models"
)

// IChatAIProvider streams a chat completion for the given user input and
// system prompt. The returned channel is closed when the stream ends.
type IChatAIProvider interface {
	ChatCompletionRequest(ctx context.Context, userInput string, prompt string) <-chan models.StreamResponse
}
