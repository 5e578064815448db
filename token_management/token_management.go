package token_management

import (
	"fmt"

	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/constants/lipgloss"
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/token_management/contracts"
)

// tokenManager accumulates token usage across the model calls of one run.
type tokenManager struct {
	usedToken       int
	usedInputToken  int
	usedOutputToken int
}

// charsPerToken is the rough ratio used when the provider reports no usage.
const charsPerToken = 4

// NewTokenManager creates a new token manager.
func NewTokenManager() contracts.ITokenManagement {
	return &tokenManager{}
}

// UsedTokens accumulates provider-reported token counts for the session.
func (tm *tokenManager) UsedTokens(inputToken int, outputToken int) {
	tm.usedInputToken += inputToken
	tm.usedOutputToken += outputToken
	tm.usedToken += inputToken + outputToken
}

// EstimateTokens approximates the token count of a text.
func (tm *tokenManager) EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + charsPerToken - 1) / charsPerToken
}

func (tm *tokenManager) DisplayTokens(chatProviderName string, chatModel string) {
	tokenInfo := fmt.Sprintf("Token Used: %d (Input: %d, Output: %d) - Provider: %s - Model: %s",
		tm.usedToken, tm.usedInputToken, tm.usedOutputToken, chatProviderName, chatModel)

	tokenBox := lipgloss.BoxStyle.Render(tokenInfo)
	fmt.Println(tokenBox)
}

func (tm *tokenManager) GetCurrentTokenUsage() (total int, input int, output int) {
	return tm.usedToken, tm.usedInputToken, tm.usedOutputToken
}

// ClearToken resets the token usage for the session.
func (tm *tokenManager) ClearToken() {
	tm.usedToken = 0
	tm.usedInputToken = 0
	tm.usedOutputToken = 0
}
