package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/mindguard-be/internal/api/middleware"
	"github.com/themobileprof/mindguard-be/internal/chat"
	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/risk"
	"github.com/themobileprof/mindguard-be/internal/sentiment"
)

// ChatService answers messages. *chat.Service implements it.
type ChatService interface {
	HandleMessage(ctx context.Context, req chat.Request) (*chat.Reply, error)
	Forget(ctx context.Context, userID string) error
}

// RiskClassifier assigns risk tiers. *risk.Classifier implements it.
type RiskClassifier interface {
	Classify(message string, sentiment *float64) risk.Tier
	HasCrisisLanguage(message string) bool
}

// ChatHandler exposes the companion pipeline over REST
type ChatHandler struct {
	service    ChatService
	classifier RiskClassifier
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service ChatService, classifier RiskClassifier) *ChatHandler {
	return &ChatHandler{service: service, classifier: classifier}
}

// RegisterRoutes mounts the handler on an authenticated group
func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.DELETE("/chat/history", h.ClearHistory)
	r.POST("/sentiment", h.Sentiment)
	r.POST("/risk", h.Risk)
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string                 `json:"message"`
	Context *companion.UserContext `json:"context"`
}

// Chat answers one message
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.service.HandleMessage(c.Request.Context(), chat.Request{
		UserID:  middleware.GetUserID(c),
		Message: req.Message,
		Profile: req.Context,
	})
	switch {
	case errors.Is(err, chat.ErrMessageTooLong), errors.Is(err, chat.ErrMissingUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("Chat failed: request=%s err=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// ClearHistory drops the cached history for the caller
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	if err := h.service.Forget(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		log.Printf("Failed to clear history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear history"})
		return
	}
	c.Status(http.StatusNoContent)
}

// SentimentRequest is the body of POST /api/sentiment
type SentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Sentiment scores text without routing it
func (h *ChatHandler) Sentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := sentiment.Score(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"score": score,
		"label": sentiment.Label(score),
	})
}

// RiskRequest is the body of POST /api/risk. Sentiment is scored from the
// message when omitted.
type RiskRequest struct {
	Message   string   `json:"message" binding:"required"`
	Sentiment *float64 `json:"sentiment"`
}

// Risk classifies a message without routing it
func (h *ChatHandler) Risk(c *gin.Context) {
	var req RiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := req.Sentiment
	if score == nil {
		s := sentiment.Score(req.Message)
		score = &s
	}

	c.JSON(http.StatusOK, gin.H{
		"riskLevel":      h.classifier.Classify(req.Message, score),
		"crisisLanguage": h.classifier.HasCrisisLanguage(req.Message),
		"sentiment":      *score,
	})
}
