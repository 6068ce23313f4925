package services

import (
	"context"
	"encoding/json"
)

// ChatMessage is one turn of a chat-style LLM request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMClient abstracts the language model so analysis services are testable
// with canned responses.
type LLMClient interface {
	// GenerateCompletion sends chat messages and returns the model's text.
	GenerateCompletion(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error)

	// GenerateJSONCompletion sends a single prompt expecting a JSON reply
	// and returns the validated raw JSON.
	GenerateJSONCompletion(ctx context.Context, prompt string) (json.RawMessage, error)
}
