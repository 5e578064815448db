package archiver

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
)

// WriteArchive writes one zip entry per record, in insertion order, with the
// record path as entry name and the content as raw bytes.
func WriteArchive(w io.Writer, files []models.ReimplementedFile) error {
	zipWriter := zip.NewWriter(w)

	for _, file := range files {
		name := sanitizeEntryName(file.Path)
		if name == "" {
			continue
		}

		entry, err := zipWriter.Create(name)
		if err != nil {
			return fmt.Errorf("creating archive entry %s: %w", name, err)
		}
		if _, err := entry.Write([]byte(file.Content)); err != nil {
			return fmt.Errorf("writing archive entry %s: %w", name, err)
		}
	}

	return zipWriter.Close()
}

// SaveArchive writes the archive to a file on disk.
func SaveArchive(archivePath string, files []models.ReimplementedFile) error {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}

	if err := WriteArchive(out, files); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// sanitizeEntryName keeps entry names relative and free of traversal segments.
func sanitizeEntryName(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	for strings.HasPrefix(name, "../") {
		name = strings.TrimPrefix(name, "../")
	}
	if name == "." || name == ".." {
		return ""
	}
	return name
}
