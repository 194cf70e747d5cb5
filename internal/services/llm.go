package services

import (
	"context"
	"strings"
)

// GenerateRequest is a single narrative generation call: opaque system
// instructions, an opaque user message, and sampling parameters.
type GenerateRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// LLMService defines the interface for interacting with an LLM provider.
type LLMService interface {
	// InitModel initializes the LLM model on startup.
	InitModel(ctx context.Context, modelName string) error

	// Generate produces narrative text for the given request.
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// terminalPunctuation are the suffixes that mark generated text as
// complete. Anything else is treated as a mid-sentence cutoff.
var terminalPunctuation = []string{".", "!", "?", `"`, "'", "...", ":"}

// EnsureCompleteSentence appends an ellipsis when generated text does not
// end in sentence-final punctuation, signalling truncation to the player
// without fabricating content.
func EnsureCompleteSentence(text string) string {
	trimmed := strings.TrimRight(text, " \t\n\r")
	if trimmed == "" {
		return text
	}
	for _, p := range terminalPunctuation {
		if strings.HasSuffix(trimmed, p) {
			return text
		}
	}
	return trimmed + "..."
}
