package repo_fetcher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/contracts"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/utils"
)

const (
	defaultAPIBase     = "https://api.github.com"
	defaultBatchSize   = 20
	defaultMaxRetries  = 3
	defaultRetryDelay  = 500 * time.Millisecond
	defaultMaxFileSize = 100 * 1024
	blobCacheSize      = 512
)

// errSkipFile marks a per-file failure that skips the file instead of failing the run.
var errSkipFile = errors.New("skip file")

// GitHubFetcherConfig configures the GitHub repository fetcher.
type GitHubFetcherConfig struct {
	APIBase        string
	Token          string
	MaxRetries     int
	RetryBaseDelay time.Duration
	BatchSize      int
	MaxFileSize    int64
}

// GitHubFetcher fetches repository metadata, trees and blob contents from the
// GitHub REST API. Transient failures are retried with exponential backoff;
// permanent failures surface immediately as typed errors.
type GitHubFetcher struct {
	apiBase        string
	token          string
	maxRetries     int
	retryBaseDelay time.Duration
	batchSize      int
	maxFileSize    int64

	client    *http.Client
	blobCache *lru.Cache[string, string]
	sleep     func(time.Duration)
}

// NewGitHubFetcher initializes a new GitHub fetcher.
func NewGitHubFetcher(config *GitHubFetcherConfig) contracts.IRepoFetcher {
	apiBase := config.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	maxRetries := config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryBaseDelay := config.RetryBaseDelay
	if retryBaseDelay <= 0 {
		retryBaseDelay = defaultRetryDelay
	}
	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	maxFileSize := config.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}

	// Session-scoped blob cache keyed by content-address, so a tree that
	// references the same blob twice downloads it once.
	blobCache, _ := lru.New[string, string](blobCacheSize)

	return &GitHubFetcher{
		apiBase:        apiBase,
		token:          config.Token,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
		batchSize:      batchSize,
		maxFileSize:    maxFileSize,
		client:         &http.Client{Timeout: 60 * time.Second},
		blobCache:      blobCache,
		sleep:          time.Sleep,
	}
}

// GetRepository resolves the repository and its default branch.
func (fetcher *GitHubFetcher) GetRepository(ctx context.Context, owner string, name string) (*models.Repository, error) {
	var details struct {
		DefaultBranch string `json:"default_branch"`
	}

	url := fmt.Sprintf("%s/repos/%s/%s", fetcher.apiBase, owner, name)
	if err := fetcher.getJSON(ctx, url, &details); err != nil {
		return nil, err
	}

	if details.DefaultBranch == "" {
		details.DefaultBranch = "main"
	}

	return &models.Repository{Owner: owner, Name: name, DefaultBranch: details.DefaultBranch}, nil
}

// GetTree returns the blob entries of the recursive repository tree, filtered
// by the default ignore patterns and the per-file size cap.
func (fetcher *GitHubFetcher) GetTree(ctx context.Context, repo *models.Repository) ([]models.TreeEntry, error) {
	var tree struct {
		Tree      []models.TreeEntry `json:"tree"`
		Truncated bool               `json:"truncated"`
	}

	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", fetcher.apiBase, repo.Owner, repo.Name, repo.DefaultBranch)
	if err := fetcher.getJSON(ctx, url, &tree); err != nil {
		return nil, err
	}

	if tree.Truncated {
		log.Printf("Warning: tree listing for %s is truncated, some files will be missing", repo.FullName())
	}

	var entries []models.TreeEntry
	for _, entry := range tree.Tree {
		if entry.Type != "blob" {
			continue
		}
		if utils.IsDefaultIgnored(entry.Path) {
			continue
		}
		// Skip files over the size cap to keep prompts bounded.
		if entry.Size > fetcher.maxFileSize {
			continue
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, ErrNoReadableFiles
	}

	return entries, nil
}

// GetSourceFiles downloads and decodes the blob content of every entry.
// Downloads are issued in fixed-size batches that are jointly awaited, which
// bounds peak concurrent outbound connections. Undecodable blobs are skipped;
// transport failures abort the fetch. Files whose decoded content duplicates
// an earlier file (same fingerprint under a different path) are dropped, so
// copied sources don't enter the prompts twice.
func (fetcher *GitHubFetcher) GetSourceFiles(ctx context.Context, repo *models.Repository, entries []models.TreeEntry) ([]models.SourceFile, error) {
	fetched := make([]*models.SourceFile, len(entries))
	failures := make([]error, len(entries))

	for start := 0; start < len(entries); start += fetcher.batchSize {
		end := min(start+fetcher.batchSize, len(entries))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				entry := entries[i]
				content, err := fetcher.fetchBlob(ctx, repo, entry.SHA)
				if err != nil {
					if errors.Is(err, errSkipFile) {
						log.Printf("Warning: skipping %s: %v", entry.Path, err)
						return
					}
					failures[i] = fmt.Errorf("fetching %s: %w", entry.Path, err)
					return
				}

				fetched[i] = &models.SourceFile{
					Path:        entry.Path,
					Content:     content,
					SHA:         entry.SHA,
					Fingerprint: xxh3.HashString(content),
				}
			}(i)
		}
		wg.Wait()

		for i := start; i < end; i++ {
			if failures[i] != nil {
				return nil, failures[i]
			}
		}
	}

	var files []models.SourceFile
	seen := make(map[uint64]string)
	for _, file := range fetched {
		if file == nil {
			continue
		}
		if original, dup := seen[file.Fingerprint]; dup {
			log.Printf("Warning: skipping %s: duplicate content of %s", file.Path, original)
			continue
		}
		seen[file.Fingerprint] = file.Path
		files = append(files, *file)
	}

	if len(files) == 0 {
		return nil, ErrNoReadableFiles
	}

	return files, nil
}

// fetchBlob downloads one blob by content-address and returns its decoded text.
func (fetcher *GitHubFetcher) fetchBlob(ctx context.Context, repo *models.Repository, sha string) (string, error) {
	if cached, found := fetcher.blobCache.Get(sha); found {
		return cached, nil
	}

	var blob struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}

	url := fmt.Sprintf("%s/repos/%s/%s/git/blobs/%s", fetcher.apiBase, repo.Owner, repo.Name, sha)
	if err := fetcher.getJSON(ctx, url, &blob); err != nil {
		return "", err
	}

	if blob.Encoding != "base64" {
		return "", fmt.Errorf("%w: unexpected blob encoding %q", errSkipFile, blob.Encoding)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("%w: undecodable base64 content: %v", errSkipFile, err)
	}

	content := string(decoded)
	fetcher.blobCache.Add(sha, content)

	return content, nil
}

// getJSON performs a GET with bounded retries and decodes the JSON response.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; permanent statuses map to typed errors with zero retries.
func (fetcher *GitHubFetcher) getJSON(ctx context.Context, url string, out any) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return fmt.Errorf("error creating request: %v", err)
		}

		req.Header.Set("Accept", "application/vnd.github+json")
		if fetcher.token != "" {
			req.Header.Set("Authorization", "Bearer "+fetcher.token)
		}

		resp, err := fetcher.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("network error: %v", err)
		} else {
			switch {
			case resp.StatusCode == http.StatusOK:
				defer resp.Body.Close()
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return fmt.Errorf("error decoding response: %v", err)
				}
				return nil
			case resp.StatusCode == http.StatusNotFound:
				drain(resp)
				return ErrRepoNotFound
			case resp.StatusCode == http.StatusUnauthorized:
				drain(resp)
				return ErrUnauthorized
			case resp.StatusCode == http.StatusForbidden:
				drain(resp)
				return ErrRateLimited
			case resp.StatusCode >= 500:
				drain(resp)
				lastErr = fmt.Errorf("server error: status %d", resp.StatusCode)
			default:
				drain(resp)
				return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
			}
		}

		if attempt >= fetcher.maxRetries {
			return fmt.Errorf("request failed after %d attempts: %w", attempt+1, lastErr)
		}

		fetcher.sleep(fetcher.retryBaseDelay << attempt)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
