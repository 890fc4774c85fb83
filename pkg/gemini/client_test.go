package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/themobileprof/mindguard-be/pkg/llm"
)

func TestToGeminiRequest(t *testing.T) {
	req := llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: llm.RoleSystem, Content: "persona"},
			{Role: llm.RoleUser, Content: "hi"},
			{Role: llm.RoleAssistant, Content: "hello"},
			{Role: llm.RoleUser, Content: "help"},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
		TopP:        0.9,
	}

	got := toGeminiRequest(req)

	if got.SystemInstruction == nil || got.SystemInstruction.Parts[0].Text != "persona" {
		t.Fatalf("expected system instruction, got %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(got.Contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, c := range got.Contents {
		if c.Role != wantRoles[i] {
			t.Errorf("content %d: role = %s, want %s", i, c.Role, wantRoles[i])
		}
	}
	if got.GenerationConfig.TopP != 0.9 || got.GenerationConfig.MaxOutputTokens != 1000 {
		t.Errorf("unexpected generation config %+v", got.GenerationConfig)
	}
}

func TestHTTPClient_ChatCompletion(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantErr     bool
		wantContent string
	}{
		{
			name:       "success",
			statusCode: http.StatusOK,
			body: `{
				"candidates": [{"content": {"parts": [{"text": "I'm "}, {"text": "listening."}]}, "finishReason": "STOP"}],
				"usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 3, "totalTokenCount": 7}
			}`,
			wantContent: "I'm listening.",
		},
		{
			name:       "error status",
			statusCode: http.StatusForbidden,
			body:       `{"error": {"message": "bad key"}}`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/gemini-test:generateContent" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("x-goog-api-key") != "key" {
					t.Errorf("missing api key header")
				}
				var body geminiRequest
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode request: %v", err)
				}
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHTTPClient(Config{APIKey: "key", BaseURL: server.URL, Model: "gemini-test"})
			resp, err := client.ChatCompletion(context.Background(), llm.ChatRequest{
				Messages: []llm.ChatMessage{{Role: llm.RoleUser, Content: "hi"}},
			})

			if tt.wantErr {
				var statusErr *llm.StatusError
				if !errors.As(err, &statusErr) {
					t.Fatalf("expected StatusError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			content, ok := resp.Content()
			if !ok || content != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
			if resp.Usage.TotalTokens != 7 {
				t.Errorf("total tokens = %d, want 7", resp.Usage.TotalTokens)
			}
		})
	}
}
