package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/models"
	openai_models "github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/openai/models"
	contracts2 "github.com/Hazy142/AI-GitHub-Repo-Analyzer/token_management/contracts"
)

// OpenAIConfig implements the chat provider interface for OpenAI-compatible APIs.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	Temperature     *float32
	ApiKey          string
	TokenManagement contracts2.ITokenManagement
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
)

// NewOpenAIChatProvider initializes a new OpenAI-compatible provider.
func NewOpenAIChatProvider(config *OpenAIConfig) contracts.IChatAIProvider {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &OpenAIConfig{
		BaseURL:         baseURL,
		Model:           config.Model,
		Temperature:     config.Temperature,
		ApiKey:          config.ApiKey,
		TokenManagement: config.TokenManagement,
	}
}

func (openAIProvider *OpenAIConfig) ChatCompletionRequest(ctx context.Context, userInput string, prompt string) <-chan models.StreamResponse {
	responseChan := make(chan models.StreamResponse)

	go func() {
		defer close(responseChan)

		reqBody := openai_models.OpenAIChatCompletionRequest{
			Model: openAIProvider.Model,
			Messages: []openai_models.Message{
				{Role: "system", Content: prompt},
				{Role: "user", Content: userInput},
			},
			Stream:        true,
			Temperature:   openAIProvider.Temperature,
			StreamOptions: &openai_models.StreamOptions{IncludeUsage: true},
		}

		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error marshalling request body: %v", err)}
			return
		}

		req, err := http.NewRequestWithContext(ctx, "POST", fmt.Sprintf("%s/chat/completions", openAIProvider.BaseURL), bytes.NewBuffer(jsonData))
		if err != nil {
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error creating request: %v", err)}
			return
		}

		req.Header.Set("Content-Type", "application/json")
		if openAIProvider.ApiKey != "" {
			req.Header.Set("Authorization", "Bearer "+openAIProvider.ApiKey)
		}

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("request canceled: %v", err)}
				return
			}
			responseChan <- models.StreamResponse{Err: fmt.Errorf("error sending request: %v", err)}
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			var apiError models.AIError
			if err := json.Unmarshal(body, &apiError); err != nil {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)}
				return
			}

			responseChan <- models.StreamResponse{Err: fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)}
			return
		}

		reader := bufio.NewReader(resp.Body)

		// Stream processing: SSE lines prefixed with "data: ", terminated by "[DONE]".
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					break
				}
				responseChan <- models.StreamResponse{Err: fmt.Errorf("error reading stream: %v", err)}
				return
			}

			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			payload := strings.TrimPrefix(line, "data: ")
			if payload == "[DONE]" {
				responseChan <- models.StreamResponse{Done: true}
				return
			}

			var response openai_models.OpenAIChatCompletionResponse
			if err := json.Unmarshal([]byte(payload), &response); err != nil {
				responseChan <- models.StreamResponse{Err: fmt.Errorf("error unmarshalling chunk: %v", err)}
				return
			}

			if response.Usage != nil && response.Usage.PromptTokens > 0 {
				openAIProvider.TokenManagement.UsedTokens(response.Usage.PromptTokens, response.Usage.CompletionTokens)
			}

			if len(response.Choices) > 0 && response.Choices[0].Delta.Content != "" {
				responseChan <- models.StreamResponse{Content: response.Choices[0].Delta.Content}
			}
		}

		// EOF without an explicit [DONE] marker still ends the stream cleanly.
		responseChan <- models.StreamResponse{Done: true}
	}()

	return responseChan
}
