package models

// ReimplementedFile is one {path, content} record produced by the
// re-implementation stream. Records accumulate in arrival order and
// duplicate paths are kept as-is.
type ReimplementedFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}
