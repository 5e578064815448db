package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
)

// ConfirmPrompt asks the user a yes/no question and returns the answer.
// Empty input and EOF count as no.
func ConfirmPrompt(question string, reader *bufio.Reader) (bool, error) {
	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s [y/N]: ", question)))

	answer, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading input: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
