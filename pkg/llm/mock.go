package llm

import (
	"context"
	"sync"
)

// MockClient implements the Client interface for testing
type MockClient struct {
	mu sync.Mutex

	// ChatFunc allows customizing the behavior
	ChatFunc func(context.Context, ChatRequest) (*ChatResponse, error)

	// Tracking for assertions
	ChatCalls []ChatRequest
}

// NewMockClient creates a new mock client with default behavior
func NewMockClient() *MockClient {
	return &MockClient{
		ChatCalls: make([]ChatRequest, 0),
	}
}

// ChatCompletion implements Client.ChatCompletion
func (m *MockClient) ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}

	return TextResponse("This is a mock response."), nil
}

// TextResponse builds a single-choice response carrying content
func TextResponse(content string) *ChatResponse {
	return &ChatResponse{
		ID:      "mock-response-1",
		Object:  "chat.completion",
		Created: 1234567890,
		Choices: []Choice{
			{
				Message:      ChatMessage{Role: RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
		Usage: Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

// Reset clears the call history
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatCalls = make([]ChatRequest, 0)
}

// GetChatCallCount returns the number of chat calls made
func (m *MockClient) GetChatCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls)
}

// LastCall returns the most recent request
func (m *MockClient) LastCall() (ChatRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ChatCalls) == 0 {
		return ChatRequest{}, false
	}
	return m.ChatCalls[len(m.ChatCalls)-1], true
}
