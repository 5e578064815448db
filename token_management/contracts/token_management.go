package contracts

type ITokenManagement interface {
	UsedTokens(inputToken int, outputToken int)
	EstimateTokens(text string) int
	DisplayTokens(chatProviderName string, chatModel string)
	GetCurrentTokenUsage() (total int, input int, output int)
	ClearToken()
}
