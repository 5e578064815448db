package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers"
)

// Config represents the structure of the configuration file.
type Config struct {
	Version          string                      `mapstructure:"version"`
	Theme            string                      `mapstructure:"theme"`
	ContextMode      string                      `mapstructure:"context_mode"`
	Output           string                      `mapstructure:"output"`
	GitHub           *GitHubConfig               `mapstructure:"github"`
	AIProviderConfig *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

// GitHubConfig holds the repository source API settings.
type GitHubConfig struct {
	APIBase          string `mapstructure:"api_base"`
	Token            string `mapstructure:"token"`
	MaxRetries       int    `mapstructure:"max_retries"`
	RetryBaseDelayMs int    `mapstructure:"retry_base_delay_ms"`
	FetchBatchSize   int    `mapstructure:"fetch_batch_size"`
	MaxFileSize      int64  `mapstructure:"max_file_size"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:     "1.0.0",
	Theme:       "dracula",
	ContextMode: "full",
	Output:      "",
	GitHub: &GitHubConfig{
		APIBase:          "https://api.github.com",
		Token:            "",
		MaxRetries:       3,
		RetryBaseDelayMs: 500,
		FetchBatchSize:   20,
		MaxFileSize:      100 * 1024,
	},
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:    "openai",
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4o",
		Stream:      true,
		Temperature: nil,
		ApiKey:      "",
		ApiVersion:  "",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("repoai-config")
		viper.AddConfigPath(cwd)

		// Support both JSON and YAML formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// Defaults, env vars and flags still apply without a file.
				fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("context_mode", DefaultConfig.ContextMode)
	viper.SetDefault("output", DefaultConfig.Output)
	viper.SetDefault("github.api_base", DefaultConfig.GitHub.APIBase)
	viper.SetDefault("github.token", DefaultConfig.GitHub.Token)
	viper.SetDefault("github.max_retries", DefaultConfig.GitHub.MaxRetries)
	viper.SetDefault("github.retry_base_delay_ms", DefaultConfig.GitHub.RetryBaseDelayMs)
	viper.SetDefault("github.fetch_batch_size", DefaultConfig.GitHub.FetchBatchSize)
	viper.SetDefault("github.max_file_size", DefaultConfig.GitHub.MaxFileSize)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.stream", DefaultConfig.AIProviderConfig.Stream)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
	viper.SetDefault("ai_provider_config.api_version", DefaultConfig.AIProviderConfig.ApiVersion)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("context_mode", "CONTEXT_MODE")
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.api_key", "API_KEY")
	_ = viper.BindEnv("ai_provider_config.api_version", "API_VERSION")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("theme", rootCmd.PersistentFlags().Lookup("theme"))
	_ = viper.BindPFlag("context_mode", rootCmd.PersistentFlags().Lookup("context_mode"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("github.token", rootCmd.PersistentFlags().Lookup("github_token"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("ai_provider_config.api_version", rootCmd.PersistentFlags().Lookup("api_version"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Set customize theme for rendering the streamed report. (e.g., 'dracula', 'light', 'dark')")
	rootCmd.PersistentFlags().String("context_mode", DefaultConfig.ContextMode, "How file contents enter the analysis prompt: 'full' (raw contents) or 'compact' (declaration summaries)")
	rootCmd.PersistentFlags().StringP("output", "o", DefaultConfig.Output, "Path of the output zip archive (default '<repo>-modernized.zip')")
	rootCmd.PersistentFlags().String("github_token", DefaultConfig.GitHub.Token, "GitHub access token used for repository API calls (raises rate limits)")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// AI Provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI provider (e.g., 'openai', 'openrouter', 'ollama')")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of AI Provider (e.g., default is 'https://api.openai.com/v1').")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for chat completions, such as 'gpt-4o'.")
	rootCmd.PersistentFlags().Float32("temperature", 0, "Adjusts the AI model's creativity (0-1, default 0.2).")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the AI service provider.")
	rootCmd.PersistentFlags().String("api_version", DefaultConfig.AIProviderConfig.ApiVersion, "The API version used to authenticate with the chat AI service provider.")
}
