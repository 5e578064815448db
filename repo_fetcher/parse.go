package repo_fetcher

import (
	"fmt"
	"strings"
)

// ParseRepoRef resolves a user-supplied repository reference to owner and
// name. Accepted forms: "owner/repo", "github.com/owner/repo" and full
// https GitHub URLs with an optional ".git" suffix.
func ParseRepoRef(input string) (owner string, name string, err error) {
	ref := strings.TrimSpace(input)
	ref = strings.TrimPrefix(ref, "https://")
	ref = strings.TrimPrefix(ref, "http://")
	ref = strings.TrimPrefix(ref, "www.")
	ref = strings.TrimPrefix(ref, "github.com/")
	ref = strings.TrimSuffix(ref, ".git")
	ref = strings.Trim(ref, "/")

	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository reference %q - expected owner/repo or a GitHub URL", input)
	}

	return parts[0], parts[1], nil
}
