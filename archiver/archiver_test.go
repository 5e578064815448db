package archiver

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/code_reimplementer/models"
)

func readEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, entry := range reader.File {
		rc, err := entry.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[entry.Name] = string(content)
	}
	return entries
}

func TestWriteArchive_PreservesContentAndOrder(t *testing.T) {
	files := []models.ReimplementedFile{
		{Path: "src/index.ts", Content: "export {};\n"},
		{Path: "src/api/github.ts", Content: "// client\n"},
		{Path: "README.md", Content: "# Modernized\n"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, files))

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, reader.File, 3)

	for i, file := range files {
		assert.Equal(t, file.Path, reader.File[i].Name)
	}

	entries := readEntries(t, buf.Bytes())
	assert.Equal(t, "// client\n", entries["src/api/github.ts"])
}

func TestWriteArchive_SanitizesEntryNames(t *testing.T) {
	files := []models.ReimplementedFile{
		{Path: "/abs/path.ts", Content: "a"},
		{Path: "../../escape.ts", Content: "b"},
		{Path: "src\\win\\style.ts", Content: "c"},
		{Path: "src/./clean/../kept.ts", Content: "d"},
		{Path: "..", Content: "dropped"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArchive(&buf, files))

	entries := readEntries(t, buf.Bytes())
	assert.Equal(t, map[string]string{
		"abs/path.ts":      "a",
		"escape.ts":        "b",
		"src/win/style.ts": "c",
		"src/kept.ts":      "d",
	}, entries)
}

func TestSaveArchive_RoundTripsThroughDisk(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "repo-modernized.zip")
	files := []models.ReimplementedFile{{Path: "main.ts", Content: "console.log(1);\n"}}

	require.NoError(t, SaveArchive(archivePath, files))

	data, err := os.ReadFile(archivePath)
	require.NoError(t, err)

	entries := readEntries(t, data)
	assert.Equal(t, "console.log(1);\n", entries["main.ts"])
}
