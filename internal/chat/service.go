// Package chat runs one user message through the companion pipeline and
// takes care of the bookkeeping around it: history, persistence and crisis
// alerts.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/db"
	"github.com/themobileprof/mindguard-be/internal/fallback"
	"github.com/themobileprof/mindguard-be/internal/history"
	"github.com/themobileprof/mindguard-be/internal/metrics"
	"github.com/themobileprof/mindguard-be/internal/privacy"
	"github.com/themobileprof/mindguard-be/internal/risk"
	"github.com/themobileprof/mindguard-be/internal/router"
	"github.com/themobileprof/mindguard-be/internal/sentiment"
)

// MaxMessageLength is the longest message accepted, in runes
const MaxMessageLength = 4000

// historyDepth is how many turns are loaded for a user who didn't send any
const historyDepth = history.DefaultLimit

var (
	ErrMissingUser    = errors.New("user id is required")
	ErrMessageTooLong = fmt.Errorf("message exceeds %d characters", MaxMessageLength)
	errNoPersistence  = errors.New("persistence disabled")
)

// RouterInterface produces replies. *router.Router implements it.
type RouterInterface interface {
	Respond(ctx context.Context, req router.Request) companion.Result
}

// DBInterface is the slice of the database the service writes to
type DBInterface interface {
	SaveConversation(ctx context.Context, c *db.Conversation) error
	GetRecentConversations(ctx context.Context, userID string, limit int) ([]db.Conversation, error)
	SaveCrisisAlert(ctx context.Context, a *db.CrisisAlert) error
}

// Request is one incoming message. Profile is optional; when it carries no
// history, recent turns are loaded from the cache or the database.
type Request struct {
	UserID  string
	Message string
	Profile *companion.UserContext
}

// Reply is the routed result plus what the service computed around it
type Reply struct {
	companion.Result
	ConversationID string  `json:"conversationId,omitempty"`
	Sentiment      float64 `json:"sentiment"`
	SentimentLabel string  `json:"sentimentLabel"`
}

// Service handles chat messages independent of transport
type Service struct {
	router  RouterInterface
	db      DBInterface
	history history.Store
	metrics *metrics.Collector
}

// NewService creates a chat service. database and m may be nil.
func NewService(r RouterInterface, database DBInterface, hist history.Store, m *metrics.Collector) *Service {
	if hist == nil {
		hist = history.NewMemoryStore(history.DefaultLimit)
	}
	return &Service{
		router:  r,
		db:      database,
		history: hist,
		metrics: m,
	}
}

// HandleMessage scores, routes and records one message. It only fails on
// invalid input: storage problems are logged and the reply is still returned.
func (s *Service) HandleMessage(ctx context.Context, req Request) (*Reply, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, ErrMissingUser
	}
	if utf8.RuneCountInString(req.Message) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	log.Printf("Processing message: userID=%s, length=%d", req.UserID, len(req.Message))
	if privacy.ContainsPII(req.Message) {
		log.Printf("Warning: Potential PII detected in message from user=%s", req.UserID)
	}

	score := sentiment.Score(req.Message)
	uc := s.withHistory(ctx, req)

	result := s.router.Respond(ctx, router.Request{
		Message:   req.Message,
		UserID:    req.UserID,
		Context:   uc,
		Sentiment: &score,
	})

	reply := &Reply{
		Result:         result,
		Sentiment:      score,
		SentimentLabel: sentiment.Label(score),
	}

	tier := result.Metadata.RiskLevel
	log.Printf("Reply ready: user=%s tier=%s source=%s intervention=%s",
		req.UserID, tier, result.Metadata.Source, result.Metadata.Intervention)

	id, err := s.saveConversation(ctx, req, result, score)
	if err != nil && !errors.Is(err, errNoPersistence) {
		log.Printf("Failed to save conversation: user=%s err=%v", req.UserID, err)
	}
	reply.ConversationID = id

	if tier.AtLeast(risk.Medium) {
		s.raiseAlert(ctx, req, result, score)
	}

	if err := s.history.Append(ctx, req.UserID,
		companion.Turn{IsUser: true, Message: req.Message},
		companion.Turn{IsUser: false, Response: result.Response},
	); err != nil {
		log.Printf("Failed to cache history: user=%s err=%v", req.UserID, err)
	}

	return reply, nil
}

// Forget drops the cached history for a user
func (s *Service) Forget(ctx context.Context, userID string) error {
	return s.history.Clear(ctx, userID)
}

// withHistory returns a copy of the request profile with conversation
// history filled in when the caller didn't supply any.
func (s *Service) withHistory(ctx context.Context, req Request) *companion.UserContext {
	uc := &companion.UserContext{}
	if req.Profile != nil {
		*uc = *req.Profile
	}
	if len(uc.ConversationHistory) > 0 {
		return uc
	}

	turns, err := s.history.Recent(ctx, req.UserID, historyDepth)
	if err != nil {
		log.Printf("History cache unavailable: user=%s err=%v", req.UserID, err)
	}
	if len(turns) == 0 && s.db != nil {
		turns = s.loadFromDB(ctx, req.UserID)
	}
	uc.ConversationHistory = turns
	return uc
}

func (s *Service) loadFromDB(ctx context.Context, userID string) []companion.Turn {
	convs, err := s.db.GetRecentConversations(ctx, userID, historyDepth/2)
	if err != nil {
		log.Printf("Failed to load conversations: user=%s err=%v", userID, err)
		return nil
	}

	turns := make([]companion.Turn, 0, 2*len(convs))
	for _, c := range convs {
		turns = append(turns,
			companion.Turn{IsUser: true, Message: c.Message},
			companion.Turn{IsUser: false, Response: c.Response},
		)
	}

	// Warm the cache so the next message skips the database
	if len(turns) > 0 {
		if err := s.history.Append(ctx, userID, turns...); err != nil {
			log.Printf("Failed to warm history cache: user=%s err=%v", userID, err)
		}
	}
	return turns
}

func (s *Service) saveConversation(ctx context.Context, req Request, result companion.Result, score float64) (string, error) {
	if s.db == nil {
		return "", errNoPersistence
	}

	conv := &db.Conversation{
		UserID:         req.UserID,
		Message:        req.Message,
		Response:       result.Response,
		SentimentScore: &score,
		RiskLevel:      result.Metadata.RiskLevel.String(),
		Intervention:   string(result.Metadata.Intervention),
		Personality:    string(result.Metadata.Personality),
	}
	if err := s.db.SaveConversation(ctx, conv); err != nil {
		return "", err
	}
	return conv.ID, nil
}

func (s *Service) raiseAlert(ctx context.Context, req Request, result companion.Result, score float64) {
	tier := result.Metadata.RiskLevel
	emergency := fallback.IsEmergency(tier)
	s.metrics.RecordCrisisAlert(tier.String())
	if emergency {
		log.Printf("🚨 Emergency crisis alert: user=%s tier=%s message=%q",
			req.UserID, tier, privacy.SanitizeForLogging(req.Message))
	} else {
		log.Printf("Crisis alert: user=%s tier=%s message=%q",
			req.UserID, tier, privacy.SanitizeForLogging(req.Message))
	}

	if s.db == nil {
		return
	}

	alert := &db.CrisisAlert{
		UserID:    req.UserID,
		RiskLevel: tier.String(),
		TriggerData: db.TriggerData{
			Message:      privacy.SanitizeForLogging(req.Message),
			Sentiment:    &score,
			Intervention: string(result.Metadata.Intervention),
			Emergency:    emergency,
		},
	}
	if err := s.db.SaveCrisisAlert(ctx, alert); err != nil {
		log.Printf("Failed to save crisis alert: user=%s err=%v", req.UserID, err)
	}
}
