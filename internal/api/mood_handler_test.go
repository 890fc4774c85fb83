package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/mindguard-be/internal/db"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

type mockMoodStore struct {
	entries   []db.MoodEntry
	emotions  []db.Emotion
	err       error
	lastUser  string
	lastLimit int
}

func (m *mockMoodStore) SaveMoodEntry(ctx context.Context, e *db.MoodEntry) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "m-new"
	e.CreatedAt = time.Now()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *mockMoodStore) GetMoodHistory(ctx context.Context, userID string, limit int) ([]db.MoodEntry, error) {
	m.lastUser, m.lastLimit = userID, limit
	return m.entries, m.err
}

func (m *mockMoodStore) SaveEmotion(ctx context.Context, e *db.Emotion) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "e-new"
	e.CreatedAt = time.Now()
	m.emotions = append(m.emotions, *e)
	return nil
}

func (m *mockMoodStore) GetEmotionHistory(ctx context.Context, userID string, limit int) ([]db.Emotion, error) {
	m.lastUser, m.lastLimit = userID, limit
	return m.emotions, m.err
}

func newMoodRouter(store MoodStore) *gin.Engine {
	return NewRouter(Deps{
		JWTSecret:          testSecret,
		RateLimitPerMinute: 1000,
		Chat:               &mockChatService{},
		Classifier:         risk.NewClassifier(),
		Moods:              store,
	})
}

func TestMoodHandler_CreateMoodEntry(t *testing.T) {
	tests := []struct {
		name         string
		body         interface{}
		wantCode     int
		wantAnalysis string
	}{
		{"score with note", gin.H{"moodScore": 3, "text": "I feel sad and tired"}, http.StatusCreated, "negative"},
		{"score only", gin.H{"moodScore": 8}, http.StatusCreated, ""},
		{"score too low", gin.H{"moodScore": 0}, http.StatusBadRequest, ""},
		{"score too high", gin.H{"moodScore": 11}, http.StatusBadRequest, ""},
		{"invalid json", "{", http.StatusBadRequest, ""},
	}

	auth := authHeader(t, "user-1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockMoodStore{}
			r := newMoodRouter(store)

			w := do(t, r, http.MethodPost, "/api/mood", auth, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantCode != http.StatusCreated {
				return
			}

			var got db.MoodEntry
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got.ID != "m-new" || store.entries[0].UserID != "user-1" {
				t.Errorf("unexpected entry %+v", got)
			}
			switch {
			case tt.wantAnalysis == "" && got.TextAnalysis != nil:
				t.Errorf("expected no text analysis, got %+v", got.TextAnalysis)
			case tt.wantAnalysis != "" && (got.TextAnalysis == nil || got.TextAnalysis.Label != tt.wantAnalysis):
				t.Errorf("text analysis = %+v, want label %s", got.TextAnalysis, tt.wantAnalysis)
			}
		})
	}
}

func TestMoodHandler_History(t *testing.T) {
	store := &mockMoodStore{
		entries:  []db.MoodEntry{{ID: "m-1", UserID: "user-1", MoodScore: 6}},
		emotions: []db.Emotion{{ID: "e-1", UserID: "user-1", Emotion: "calm", Confidence: 0.9}},
	}
	r := newMoodRouter(store)
	auth := authHeader(t, "user-1")

	w := do(t, r, http.MethodGet, "/api/mood/history", auth, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"moodScore":6`) {
		t.Fatalf("mood history: %d %s", w.Code, w.Body.String())
	}
	if store.lastLimit != defaultMoodLimit || store.lastUser != "user-1" {
		t.Errorf("unexpected query user=%q limit=%d", store.lastUser, store.lastLimit)
	}

	w = do(t, r, http.MethodGet, "/api/emotions/history?limit=5", auth, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"emotion":"calm"`) {
		t.Fatalf("emotion history: %d %s", w.Code, w.Body.String())
	}
	if store.lastLimit != 5 {
		t.Errorf("limit = %d, want 5", store.lastLimit)
	}

	empty := newMoodRouter(&mockMoodStore{})
	w = do(t, empty, http.MethodGet, "/api/mood/history", auth, nil)
	if !strings.Contains(w.Body.String(), `"entries":[]`) {
		t.Errorf("expected empty array, got %s", w.Body.String())
	}
}

func TestMoodHandler_CreateEmotion(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{"valid", gin.H{"emotion": " Sad ", "confidence": 0.7}, http.StatusCreated},
		{"zero confidence", gin.H{"emotion": "neutral", "confidence": 0}, http.StatusCreated},
		{"missing confidence", gin.H{"emotion": "sad"}, http.StatusBadRequest},
		{"confidence above one", gin.H{"emotion": "sad", "confidence": 1.5}, http.StatusBadRequest},
		{"missing emotion", gin.H{"confidence": 0.5}, http.StatusBadRequest},
	}

	auth := authHeader(t, "user-1")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockMoodStore{}
			w := do(t, newMoodRouter(store), http.MethodPost, "/api/emotions", auth, tt.body)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.name == "valid" && store.emotions[0].Emotion != "sad" {
				t.Errorf("emotion = %q, want normalized \"sad\"", store.emotions[0].Emotion)
			}
		})
	}
}

func TestMoodHandler_Errors(t *testing.T) {
	auth := authHeader(t, "user-1")

	t.Run("persistence disabled", func(t *testing.T) {
		r := newMoodRouter(nil)
		for _, path := range []string{"/api/mood/history", "/api/emotions/history"} {
			if w := do(t, r, http.MethodGet, path, auth, nil); w.Code != http.StatusServiceUnavailable {
				t.Errorf("%s: status = %d, want 503", path, w.Code)
			}
		}
		if w := do(t, r, http.MethodPost, "/api/mood", auth, gin.H{"moodScore": 5}); w.Code != http.StatusServiceUnavailable {
			t.Errorf("POST /api/mood: status = %d, want 503", w.Code)
		}
	})

	t.Run("database error", func(t *testing.T) {
		r := newMoodRouter(&mockMoodStore{err: errors.New("db down")})
		if w := do(t, r, http.MethodPost, "/api/mood", auth, gin.H{"moodScore": 5}); w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
		if w := do(t, r, http.MethodGet, "/api/emotions/history", auth, nil); w.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", w.Code)
		}
	})

	t.Run("requires auth", func(t *testing.T) {
		r := newMoodRouter(&mockMoodStore{})
		if w := do(t, r, http.MethodGet, "/api/mood/history", "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}
