package repo_fetcher

import "errors"

// Permanent fetch failures. Each maps to a distinct user-facing message and
// is never retried.
var (
	ErrRepoNotFound    = errors.New("repository not found - check the owner/repo spelling and that the repository is public")
	ErrUnauthorized    = errors.New("unauthorized - the provided GitHub token was rejected")
	ErrRateLimited     = errors.New("GitHub API rate limit exceeded - provide a GITHUB_TOKEN or try again later")
	ErrNoReadableFiles = errors.New("repository contains no readable source files")
)
