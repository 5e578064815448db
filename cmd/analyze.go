package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/archiver"
	reimplementer "github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer"
	reimplementer_models "github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/session"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/utils"
)

// AnalyzeCmd: repoai analyze
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repository]",
	Short: "Analyze and modernize a public GitHub repository.",
	Long: `The 'analyze' subcommand runs the full pipeline against a repository:
fetch the source tree, let the AI select the most relevant files, stream an
architecture and code-quality report, stream a modernized re-implementation of
every selected file and offer the result as a zip archive for download.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		if rootDependencies == nil {
			return
		}

		repoRef := ""
		if len(args) > 0 {
			repoRef = args[0]
		}

		handleAnalyzeCommand(rootDependencies, repoRef)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func handleAnalyzeCommand(rootDependencies *RootDependencies, repoRef string) {

	// Input errors are reported before any stage starts.
	owner, name, err := repo_fetcher.ParseRepoRef(repoRef)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go utils.GracefulShutdown(ctx, cancel, func() {
		rootDependencies.TokenManagement.ClearToken()
	})

	reader := bufio.NewReader(os.Stdin)
	sess := rootDependencies.Session
	sess.Start()

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	failStage := func(stage session.Stage, err error) {
		sess.Fail(stage, err)
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
	}

	// Stage 1: fetch the repository tree and blob contents.
	_ = sess.BeginStage(session.StageFetch)
	spinnerFetch, _ := spinner.Start(fmt.Sprintf("Fetching %s/%s...", owner, name))

	repo, err := rootDependencies.Fetcher.GetRepository(ctx, owner, name)
	if err != nil {
		spinnerFetch.Stop()
		failStage(session.StageFetch, err)
		return
	}

	entries, err := rootDependencies.Fetcher.GetTree(ctx, repo)
	if err != nil {
		spinnerFetch.Stop()
		failStage(session.StageFetch, err)
		return
	}

	files, err := rootDependencies.Fetcher.GetSourceFiles(ctx, repo, entries)
	if err != nil {
		spinnerFetch.Stop()
		failStage(session.StageFetch, err)
		return
	}

	spinnerFetch.Stop()
	sess.Repository = repo
	sess.Files = files
	_ = sess.CompleteStage(session.StageFetch)
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Fetched %d files from %s (%s)", len(files), repo.FullName(), repo.DefaultBranch)))

	// Stage 2: let the model pick the relevant subset.
	_ = sess.BeginStage(session.StageSelect)
	spinnerSelect, _ := spinner.Start("Selecting relevant files...")

	selectionPrompt, selectionInput := rootDependencies.Analyzer.BuildSelectionPrompt(files)
	selectionResponse, err := collectResponse(ctx, rootDependencies, selectionInput, selectionPrompt)
	if err != nil {
		spinnerSelect.Stop()
		failStage(session.StageSelect, err)
		return
	}

	sess.SelectedFiles = rootDependencies.Analyzer.ParseSelectedPaths(selectionResponse, files)
	spinnerSelect.Stop()
	_ = sess.CompleteStage(session.StageSelect)
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Selected %d relevant files", len(sess.SelectedFiles))))

	// Stage 3: stream the architecture report, rendering it as it arrives.
	_ = sess.BeginStage(session.StageAnalyze)

	analysisPrompt, analysisInput := rootDependencies.Analyzer.BuildAnalysisPrompt(sess.SelectedFiles)
	if estimated := rootDependencies.TokenManagement.EstimateTokens(analysisInput); estimated > 100_000 {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("Warning: large context (~%d tokens), consider --context_mode compact", estimated)))
	}

	var analysisBuilder strings.Builder
	responseChan := rootDependencies.CurrentChatProvider.ChatCompletionRequest(ctx, analysisInput, analysisPrompt)

	for response := range responseChan {
		if response.Err != nil {
			failStage(session.StageAnalyze, response.Err)
			return
		}
		if response.Done {
			break
		}

		analysisBuilder.WriteString(response.Content)

		language := utils.DetectLanguageFromCodeBlock(response.Content)
		if err := utils.RenderAndPrintMarkdownWithContext(ctx, response.Content, language, rootDependencies.Config.Theme); err != nil {
			failStage(session.StageAnalyze, err)
			return
		}
	}

	sess.Analysis = analysisBuilder.String()
	_ = sess.CompleteStage(session.StageAnalyze)

	// Stage 4: stream the re-implementation and parse it incrementally.
	_ = sess.BeginStage(session.StageReimplement)
	spinnerReimplement, _ := spinner.Start("Re-implementing files...")

	reimplementationPrompt, reimplementationInput := rootDependencies.Analyzer.BuildReimplementationPrompt(sess.SelectedFiles, sess.Analysis)
	streamChan := rootDependencies.CurrentChatProvider.ChatCompletionRequest(ctx, reimplementationInput, reimplementationPrompt)

	records, err := reimplementer.Consume(streamChan, func(file reimplementer_models.ReimplementedFile) {
		spinnerReimplement.UpdateText(fmt.Sprintf("Re-implemented %s", file.Path))
	})
	if err != nil {
		spinnerReimplement.Stop()
		failStage(session.StageReimplement, err)
		return
	}

	spinnerReimplement.Stop()
	sess.Reimplemented = records
	_ = sess.CompleteStage(session.StageReimplement)
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Re-implemented %d files", len(records))))

	// Stage 5: package the result for download.
	_ = sess.BeginStage(session.StageReady)

	archivePath := rootDependencies.Config.Output
	if archivePath == "" {
		archivePath = fmt.Sprintf("%s-modernized.zip", repo.Name)
	}

	_ = sess.CompleteStage(session.StageReady)

	promptAccepted, err := utils.ConfirmPrompt(fmt.Sprintf("Save archive to %s?", archivePath), reader)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting user prompt: %v", err)))
	} else if promptAccepted {
		if err := archiver.SaveArchive(archivePath, sess.Reimplemented); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error writing archive: %v", err)))
		} else {
			fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✔️ Archive saved to %s", archivePath)))
		}
	} else {
		fmt.Println(lipgloss.Yellow.Render("Archive skipped."))
	}

	rootDependencies.TokenManagement.DisplayTokens(
		rootDependencies.Config.AIProviderConfig.Provider,
		rootDependencies.Config.AIProviderConfig.Model,
	)
}

// collectResponse drains a full (non-rendered) chat completion into a string.
func collectResponse(ctx context.Context, rootDependencies *RootDependencies, userInput string, prompt string) (string, error) {
	responseChan := rootDependencies.CurrentChatProvider.ChatCompletionRequest(ctx, userInput, prompt)

	var messageBuilder strings.Builder
	for response := range responseChan {
		if response.Err != nil {
			return "", response.Err
		}
		if response.Done {
			break
		}
		messageBuilder.WriteString(response.Content)
	}

	return messageBuilder.String(), nil
}
