package code_reimplementer

import (
	"log"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
	provider_models "github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/models"
)

// Consume drives a chat provider stream through the parser, invoking onFile
// for every completed record in arrival order. It returns the accumulated
// records when the stream ends; a non-nil error means the stream itself
// failed (per-object parse failures never do). Residual buffer content at
// stream end is discarded without error.
func Consume(responseChan <-chan provider_models.StreamResponse, onFile func(models.ReimplementedFile)) ([]models.ReimplementedFile, error) {
	parser := NewStreamParser()
	var records []models.ReimplementedFile

	for response := range responseChan {
		if response.Err != nil {
			return records, response.Err
		}
		if response.Done {
			break
		}

		for _, record := range parser.Feed(response.Content) {
			records = append(records, record)
			if onFile != nil {
				onFile(record)
			}
		}
	}

	if residual := parser.Finish(); residual != "" {
		log.Printf("Warning: discarding %d bytes of incomplete stream residue", len(residual))
	}

	return records, nil
}
