package repo_fetcher

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/repo_fetcher/models"
)

// newTestFetcher wires a fetcher against a test server with recorded sleeps
// instead of real backoff waits.
func newTestFetcher(serverURL string, sleeps *[]time.Duration) *GitHubFetcher {
	fetcher := NewGitHubFetcher(&GitHubFetcherConfig{
		APIBase:        serverURL,
		MaxRetries:     3,
		RetryBaseDelay: 500 * time.Millisecond,
		BatchSize:      2,
	}).(*GitHubFetcher)

	fetcher.sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return fetcher
}

func TestGetRepository_NotFoundIsImmediate(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	_, err := fetcher.GetRepository(context.Background(), "octo", "missing")

	assert.ErrorIs(t, err, ErrRepoNotFound)
	assert.Equal(t, int32(1), requests.Load(), "permanent errors must not be retried")
	assert.Empty(t, sleeps)
}

func TestGetRepository_UnauthorizedAndRateLimited(t *testing.T) {
	for status, want := range map[int]error{
		http.StatusUnauthorized: ErrUnauthorized,
		http.StatusForbidden:    ErrRateLimited,
	} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		var sleeps []time.Duration
		fetcher := newTestFetcher(server.URL, &sleeps)

		_, err := fetcher.GetRepository(context.Background(), "octo", "repo")
		assert.ErrorIs(t, err, want)
		assert.Empty(t, sleeps)

		server.Close()
	}
}

func TestGetRepository_RetriesTransientWithGrowingBackoff(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"default_branch": "develop"})
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	repo, err := fetcher.GetRepository(context.Background(), "octo", "flaky")

	require.NoError(t, err)
	assert.Equal(t, "develop", repo.DefaultBranch)
	assert.Equal(t, int32(3), requests.Load())
	require.Len(t, sleeps, 2, "exactly two backoff waits")
	assert.Greater(t, sleeps[1], sleeps[0], "second wait must be longer than the first")
}

func TestGetRepository_ExhaustedRetriesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	_, err := fetcher.GetRepository(context.Background(), "octo", "down")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Len(t, sleeps, 3)
}

func TestGetTree_FiltersIgnoredAndOversizedEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tree": []map[string]any{
				{"path": "src/index.ts", "type": "blob", "sha": "s1", "size": 120},
				{"path": "node_modules/lib/index.js", "type": "blob", "sha": "s2", "size": 80},
				{"path": "logo.png", "type": "blob", "sha": "s3", "size": 50},
				{"path": "src", "type": "tree", "sha": "s4", "size": 0},
				{"path": "big.ts", "type": "blob", "sha": "s5", "size": 200 * 1024},
				{"path": "README.md", "type": "blob", "sha": "s6", "size": 30},
			},
		})
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	entries, err := fetcher.GetTree(context.Background(), &models.Repository{Owner: "octo", Name: "repo", DefaultBranch: "main"})

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "src/index.ts", entries[0].Path)
	assert.Equal(t, "README.md", entries[1].Path)
}

func TestGetTree_EmptyRepositoryFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"tree": []map[string]any{}})
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	_, err := fetcher.GetTree(context.Background(), &models.Repository{Owner: "octo", Name: "empty", DefaultBranch: "main"})

	assert.ErrorIs(t, err, ErrNoReadableFiles)
}

func TestGetSourceFiles_DecodesBlobsAndSkipsBadOnes(t *testing.T) {
	var blobRequests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		blobRequests.Add(1)
		sha := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]

		switch sha {
		case "bad":
			_ = json.NewEncoder(w).Encode(map[string]string{"content": "!!! not base64 !!!", "encoding": "base64"})
		default:
			content := base64.StdEncoding.EncodeToString([]byte("content of " + sha + "\n"))
			// GitHub wraps base64 payloads across lines.
			wrapped := content[:4] + "\n" + content[4:]
			_ = json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "encoding": "base64"})
		}
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	repo := &models.Repository{Owner: "octo", Name: "repo", DefaultBranch: "main"}
	entries := []models.TreeEntry{
		{Path: "a.ts", Type: "blob", SHA: "s1"},
		{Path: "broken.ts", Type: "blob", SHA: "bad"},
		{Path: "b.ts", Type: "blob", SHA: "s2"},
	}

	files, err := fetcher.GetSourceFiles(context.Background(), repo, entries)

	require.NoError(t, err)
	require.Len(t, files, 2, "undecodable blob is skipped, not fatal")
	assert.Equal(t, "a.ts", files[0].Path)
	assert.Equal(t, "content of s1\n", files[0].Content)
	assert.Equal(t, "b.ts", files[1].Path)
	assert.NotZero(t, files[0].Fingerprint)
	assert.NotEqual(t, files[0].Fingerprint, files[1].Fingerprint)
}

func TestGetSourceFiles_DropsDuplicateContent(t *testing.T) {
	contentBySHA := map[string]string{
		"s1": "shared helper\n",
		"s2": "unique content\n",
		"s3": "shared helper\n",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sha := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		encoded := base64.StdEncoding.EncodeToString([]byte(contentBySHA[sha]))
		_ = json.NewEncoder(w).Encode(map[string]string{"content": encoded, "encoding": "base64"})
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	repo := &models.Repository{Owner: "octo", Name: "repo", DefaultBranch: "main"}
	entries := []models.TreeEntry{
		{Path: "lib/helper.ts", Type: "blob", SHA: "s1"},
		{Path: "src/main.ts", Type: "blob", SHA: "s2"},
		{Path: "vendored/helper.ts", Type: "blob", SHA: "s3"},
		{Path: "lib/helper-again.ts", Type: "blob", SHA: "s1"},
	}

	files, err := fetcher.GetSourceFiles(context.Background(), repo, entries)

	require.NoError(t, err)
	require.Len(t, files, 2, "same bytes under other paths are fetched once")
	assert.Equal(t, "lib/helper.ts", files[0].Path)
	assert.Equal(t, "src/main.ts", files[1].Path)
}

func TestGetSourceFiles_TransportFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	var sleeps []time.Duration
	fetcher := newTestFetcher(server.URL, &sleeps)

	repo := &models.Repository{Owner: "octo", Name: "repo", DefaultBranch: "main"}
	entries := []models.TreeEntry{{Path: "a.ts", Type: "blob", SHA: fmt.Sprintf("s%d", 1)}}

	_, err := fetcher.GetSourceFiles(context.Background(), repo, entries)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching a.ts")
}
