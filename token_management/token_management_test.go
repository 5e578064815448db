package token_management

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_AccumulatesAndClears(t *testing.T) {
	tm := NewTokenManager()

	tm.UsedTokens(100, 40)
	tm.UsedTokens(20, 5)

	total, input, output := tm.GetCurrentTokenUsage()
	assert.Equal(t, 165, total)
	assert.Equal(t, 120, input)
	assert.Equal(t, 45, output)

	tm.ClearToken()

	total, input, output = tm.GetCurrentTokenUsage()
	assert.Zero(t, total)
	assert.Zero(t, input)
	assert.Zero(t, output)
}

func TestTokenManager_EstimateTokens(t *testing.T) {
	tm := NewTokenManager()

	assert.Equal(t, 0, tm.EstimateTokens(""))
	assert.Equal(t, 1, tm.EstimateTokens("abc"))
	assert.Equal(t, 1, tm.EstimateTokens("abcd"))
	assert.Equal(t, 2, tm.EstimateTokens("abcde"))
}
