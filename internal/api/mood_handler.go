package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/mindguard-be/internal/api/middleware"
	"github.com/themobileprof/mindguard-be/internal/db"
	"github.com/themobileprof/mindguard-be/internal/sentiment"
)

const defaultMoodLimit = 50

// MoodStore persists mood check-ins and emotion samples
type MoodStore interface {
	SaveMoodEntry(ctx context.Context, e *db.MoodEntry) error
	GetMoodHistory(ctx context.Context, userID string, limit int) ([]db.MoodEntry, error)
	SaveEmotion(ctx context.Context, e *db.Emotion) error
	GetEmotionHistory(ctx context.Context, userID string, limit int) ([]db.Emotion, error)
}

// MoodHandler logs a user's mood and emotion data
type MoodHandler struct {
	db MoodStore
}

// NewMoodHandler creates a handler. database may be nil, in which case
// every route answers 503.
func NewMoodHandler(database MoodStore) *MoodHandler {
	return &MoodHandler{db: database}
}

// RegisterRoutes mounts the handler on an authenticated group
func (h *MoodHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/mood", h.CreateMoodEntry)
	r.GET("/mood/history", h.MoodHistory)
	r.POST("/emotions", h.CreateEmotion)
	r.GET("/emotions/history", h.EmotionHistory)
}

// MoodEntryRequest is the body of POST /api/mood
type MoodEntryRequest struct {
	MoodScore int    `json:"moodScore" binding:"required,min=1,max=10"`
	Text      string `json:"text"`
}

func (h *MoodHandler) CreateMoodEntry(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req MoodEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &db.MoodEntry{
		UserID:    middleware.GetUserID(c),
		MoodScore: req.MoodScore,
		Text:      strings.TrimSpace(req.Text),
	}
	if entry.Text != "" {
		score := sentiment.Score(entry.Text)
		entry.TextAnalysis = &db.TextAnalysis{Score: score, Label: sentiment.Label(score)}
	}

	if err := h.db.SaveMoodEntry(c.Request.Context(), entry); err != nil {
		log.Printf("Failed to save mood entry: user=%s err=%v", entry.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save mood entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *MoodHandler) MoodHistory(c *gin.Context) {
	if !h.available(c) {
		return
	}

	entries, err := h.db.GetMoodHistory(c.Request.Context(), middleware.GetUserID(c), moodLimit(c))
	if err != nil {
		log.Printf("Failed to get mood history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch mood history"})
		return
	}
	if entries == nil {
		entries = []db.MoodEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// EmotionRequest is the body of POST /api/emotions
type EmotionRequest struct {
	Emotion    string   `json:"emotion" binding:"required"`
	Confidence *float64 `json:"confidence" binding:"required,min=0,max=1"`
}

func (h *MoodHandler) CreateEmotion(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req EmotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emotion := &db.Emotion{
		UserID:     middleware.GetUserID(c),
		Emotion:    strings.ToLower(strings.TrimSpace(req.Emotion)),
		Confidence: *req.Confidence,
	}
	if err := h.db.SaveEmotion(c.Request.Context(), emotion); err != nil {
		log.Printf("Failed to save emotion: user=%s err=%v", emotion.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save emotion data"})
		return
	}

	c.JSON(http.StatusCreated, emotion)
}

func (h *MoodHandler) EmotionHistory(c *gin.Context) {
	if !h.available(c) {
		return
	}

	emotions, err := h.db.GetEmotionHistory(c.Request.Context(), middleware.GetUserID(c), moodLimit(c))
	if err != nil {
		log.Printf("Failed to get emotion history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch emotion history"})
		return
	}
	if emotions == nil {
		emotions = []db.Emotion{}
	}

	c.JSON(http.StatusOK, gin.H{"emotions": emotions})
}

func (h *MoodHandler) available(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Mood tracking is not enabled"})
		return false
	}
	return true
}

func moodLimit(c *gin.Context) int {
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxListLimit {
		return l
	}
	return defaultMoodLimit
}
