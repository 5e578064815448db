package providers

import (
	"fmt"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/ollama"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/openai"
	contracts2 "github.com/Hazy142/AI-GitHub-Repo-Analyzer/token_management/contracts"
)

// AIProviderConfig represents the configuration for the chat AI provider.
type AIProviderConfig struct {
	Provider    string   `mapstructure:"provider"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	Stream      bool     `mapstructure:"stream"`
	Temperature *float32 `mapstructure:"temperature"`
	ApiKey      string   `mapstructure:"api_key"`
	ApiVersion  string   `mapstructure:"api_version"`
}

// ChatProviderFactory creates a chat provider based on the configured provider name.
func ChatProviderFactory(config *AIProviderConfig, tokenManagement contracts2.ITokenManagement) (contracts.IChatAIProvider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai", "openrouter", "deepseek":
		return openai.NewOpenAIChatProvider(&openai.OpenAIConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			ApiKey:          config.ApiKey,
			TokenManagement: tokenManagement,
		}), nil
	case "ollama":
		return ollama.NewOllamaChatProvider(&ollama.OllamaConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			Temperature:     config.Temperature,
			TokenManagement: tokenManagement,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", config.Provider)
	}
}
