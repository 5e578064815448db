package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_analyzer"
	analyzer_contracts "github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_analyzer/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/config"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers"
	provider_contracts "github.com/Hazy142/AI-GitHub-Repo-Analyzer/providers/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher"
	fetcher_contracts "github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/session"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/token_management"
	token_contracts "github.com/Hazy142/AI-GitHub-Repo-Analyzer/token_management/contracts"
)

// RootDependencies holds the wired collaborators shared by all subcommands.
type RootDependencies struct {
	Config              *config.Config
	Cwd                 string
	Fetcher             fetcher_contracts.IRepoFetcher
	Analyzer            analyzer_contracts.ICodeAnalyzer
	CurrentChatProvider provider_contracts.IChatAIProvider
	TokenManagement     token_contracts.ITokenManagement
	Session             *session.Session
}

var rootCmd = &cobra.Command{
	Use:   "repoai",
	Short: "AI-powered GitHub repository analyzer and modernizer.",
	Long: `repoai points at a public GitHub repository, fetches its source tree,
asks an AI model to select the most relevant files, produces an architecture
and code-quality report, streams back a modernized re-implementation of every
selected file and packages the result into a zip archive.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Println(config.DefaultConfig.Version)
			return
		}
		_ = cmd.Help()
	},
}

// handleRootCommand loads configuration and wires the shared dependencies.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		return nil
	}

	// Best-effort .env loading so tokens need not live in the shell profile.
	_ = godotenv.Load()

	rootDependencies := &RootDependencies{Cwd: cwd}
	rootDependencies.Config = config.LoadConfigs(cmd.Root(), cwd)
	rootDependencies.TokenManagement = token_management.NewTokenManager()

	chatProvider, err := providers.ChatProviderFactory(rootDependencies.Config.AIProviderConfig, rootDependencies.TokenManagement)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return nil
	}
	rootDependencies.CurrentChatProvider = chatProvider

	githubConfig := rootDependencies.Config.GitHub
	rootDependencies.Fetcher = repo_fetcher.NewGitHubFetcher(&repo_fetcher.GitHubFetcherConfig{
		APIBase:        githubConfig.APIBase,
		Token:          githubConfig.Token,
		MaxRetries:     githubConfig.MaxRetries,
		RetryBaseDelay: time.Duration(githubConfig.RetryBaseDelayMs) * time.Millisecond,
		BatchSize:      githubConfig.FetchBatchSize,
		MaxFileSize:    githubConfig.MaxFileSize,
	})

	rootDependencies.Analyzer = code_analyzer.NewCodeAnalyzer(rootDependencies.Config.ContextMode)
	rootDependencies.Session = session.NewSession()

	return rootDependencies
}

// Execute runs the root command.
func Execute() {
	config.InitFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}
