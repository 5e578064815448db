package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

var isCodeBlock = false

// RenderAndPrintMarkdown renders one chunk of streamed markdown to stdout,
// syntax-highlighting fenced code with the detected language. Diff lines
// inside a fence are colored directly instead of highlighted.
func RenderAndPrintMarkdown(content string, language string, theme string) error {
	return renderMarkdown(os.Stdout, content, language, theme)
}

func renderMarkdown(w io.Writer, content string, language string, theme string) error {
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			isCodeBlock = !isCodeBlock
		}

		if isCodeBlock && strings.HasPrefix(line, "+") {
			fmt.Fprint(w, "\x1b[92m"+line+"\x1b[0m")
			continue
		}
		if isCodeBlock && strings.HasPrefix(line, "-") {
			fmt.Fprint(w, "\x1b[91m"+line+"\x1b[0m")
			continue
		}

		if err := quick.Highlight(w, line, language, "terminal256", theme); err != nil {
			return err
		}
	}

	return nil
}

// RenderAndPrintMarkdownWithContext renders streamed markdown with cancellation support.
func RenderAndPrintMarkdownWithContext(ctx context.Context, content string, language string, theme string) error {
	select {
	case <-ctx.Done():
		fmt.Printf("\n\n🔄 Output interrupted...\n")
		return ctx.Err()
	default:
	}

	return RenderAndPrintMarkdown(content, language, theme)
}
