package contracts

import (
	"context"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
)

// IRepoFetcher resolves a repository, walks its file tree and downloads blob contents.
type IRepoFetcher interface {
	GetRepository(ctx context.Context, owner string, name string) (*models.Repository, error)
	GetTree(ctx context.Context, repo *models.Repository) ([]models.TreeEntry, error)
	GetSourceFiles(ctx context.Context, repo *models.Repository, entries []models.TreeEntry) ([]models.SourceFile, error)
}
