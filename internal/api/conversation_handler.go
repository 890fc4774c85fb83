package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/mindguard-be/internal/api/middleware"
	"github.com/themobileprof/mindguard-be/internal/db"
	"github.com/themobileprof/mindguard-be/internal/fallback"
	"github.com/themobileprof/mindguard-be/internal/privacy"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ConversationStore is the conversation log plus the crisis alerts raised
// against it
type ConversationStore interface {
	GetRecentConversations(ctx context.Context, userID string, limit int) ([]db.Conversation, error)
	GetConversation(ctx context.Context, userID, id string) (*db.Conversation, error)
	GetCrisisAlerts(ctx context.Context, userID string, limit int) ([]db.CrisisAlert, error)
	SaveCrisisAlert(ctx context.Context, a *db.CrisisAlert) error
}

// ConversationHandler serves a user's own conversation log and crisis alerts
type ConversationHandler struct {
	db ConversationStore
}

// NewConversationHandler creates a handler. database may be nil when
// persistence is disabled; every route then answers 503.
func NewConversationHandler(database ConversationStore) *ConversationHandler {
	return &ConversationHandler{db: database}
}

// RegisterRoutes mounts the handler on an authenticated group
func (h *ConversationHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/conversations", h.ListConversations)
	r.GET("/conversations/:id", h.GetConversation)
	r.GET("/crisis/alerts", h.ListCrisisAlerts)
	r.POST("/crisis/alerts", h.RaiseCrisisAlert)
}

func (h *ConversationHandler) ListConversations(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID := middleware.GetUserID(c)

	conversations, err := h.db.GetRecentConversations(c.Request.Context(), userID, parseLimit(c))
	if err != nil {
		log.Printf("Failed to get conversations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}
	if conversations == nil {
		conversations = []db.Conversation{}
	}

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *ConversationHandler) GetConversation(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID := middleware.GetUserID(c)

	conv, err := h.db.GetConversation(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}
	if err != nil {
		log.Printf("Failed to get conversation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}

	c.JSON(http.StatusOK, conv)
}

func (h *ConversationHandler) ListCrisisAlerts(c *gin.Context) {
	if !h.available(c) {
		return
	}
	userID := middleware.GetUserID(c)

	alerts, err := h.db.GetCrisisAlerts(c.Request.Context(), userID, parseLimit(c))
	if err != nil {
		log.Printf("Failed to get crisis alerts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve crisis alerts"})
		return
	}
	if alerts == nil {
		alerts = []db.CrisisAlert{}
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// CrisisAlertRequest is the body of POST /api/crisis/alerts
type CrisisAlertRequest struct {
	RiskLevel string `json:"riskLevel" binding:"required,oneof=low medium high"`
	Message   string `json:"message"`
}

// RaiseCrisisAlert records an alert the user asked for themselves
func (h *ConversationHandler) RaiseCrisisAlert(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req CrisisAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tier := risk.ParseTier(req.RiskLevel)
	alert := &db.CrisisAlert{
		UserID:    middleware.GetUserID(c),
		RiskLevel: tier.String(),
		TriggerData: db.TriggerData{
			Message:   privacy.SanitizeForLogging(req.Message),
			Emergency: fallback.IsEmergency(tier),
			Manual:    true,
		},
	}
	log.Printf("🚨 Crisis alert raised by user: user=%s tier=%s", alert.UserID, tier)

	if err := h.db.SaveCrisisAlert(c.Request.Context(), alert); err != nil {
		log.Printf("Failed to save crisis alert: user=%s err=%v", alert.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send crisis alert"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Crisis alert sent successfully",
		"alertId":   alert.ID,
		"timestamp": alert.CreatedAt,
	})
}

func (h *ConversationHandler) available(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Conversation history is not enabled"})
		return false
	}
	return true
}

func parseLimit(c *gin.Context) int {
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxListLimit {
		return l
	}
	return defaultListLimit
}
