package llm

import (
	"context"
	"fmt"
)

// Client interface for LLM API interactions
type Client interface {
	// ChatCompletion sends a non-streaming chat completion request
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// StatusError is returned when the provider answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}
