package utils

import (
	"context"
	"fmt"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
)

// GracefulShutdown waits for the context to be cancelled (e.g. SIGINT/SIGTERM),
// runs the cleanup callback and confirms the shutdown to the user.
func GracefulShutdown(ctx context.Context, cancel context.CancelFunc, onShutdown func()) {
	<-ctx.Done()

	onShutdown()
	cancel()

	fmt.Println(lipgloss.Yellow.Render("\n🔄 Shutting down..."))
}
