package models

// Repository identifies a GitHub repository and its resolved default branch.
type Repository struct {
	Owner         string
	Name          string
	DefaultBranch string
}

// FullName returns the owner/name form of the repository.
func (r *Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// TreeEntry is one blob entry of the recursive repository tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int64  `json:"size"`
}

// SourceFile holds the decoded content of one fetched repository file.
// Immutable once created; Path is unique within one fetch.
type SourceFile struct {
	Path        string
	Content     string
	SHA         string
	Fingerprint uint64
}
