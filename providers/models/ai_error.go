package models

// AIError is the error envelope returned by chat completion APIs.
type AIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type,omitempty"`
	} `json:"error"`
}
