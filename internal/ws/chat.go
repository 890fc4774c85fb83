package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/themobileprof/mindguard-be/internal/api/middleware"
	"github.com/themobileprof/mindguard-be/internal/chat"
	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

// ChatService answers messages. *chat.Service implements it.
type ChatService interface {
	HandleMessage(ctx context.Context, req chat.Request) (*chat.Reply, error)
}

// ChatHandler handles WebSocket chat connections
type ChatHandler struct {
	service           ChatService
	jwtSecret         string
	messagesPerMinute int
	metrics           *metrics.Collector
	upgrader          websocket.Upgrader
}

// NewChatHandler creates a new chat handler
func NewChatHandler(service ChatService, jwtSecret string, messagesPerMinute int, m *metrics.Collector) *ChatHandler {
	if messagesPerMinute <= 0 {
		messagesPerMinute = 30
	}
	return &ChatHandler{
		service:           service,
		jwtSecret:         jwtSecret,
		messagesPerMinute: messagesPerMinute,
		metrics:           m,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// AllowOrigins lets browsers on the given origins open connections. Without
// it only same-host browser origins are accepted. Clients that send no
// Origin header are always accepted.
func (h *ChatHandler) AllowOrigins(origins []string) *ChatHandler {
	policy := middleware.NewOriginPolicy(origins)
	h.upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		ok, _ := policy.Allows(origin)
		return ok
	}
	return h
}

// IncomingMessage represents a message from the client
type IncomingMessage struct {
	Message string                 `json:"message"`
	Context *companion.UserContext `json:"context,omitempty"`
}

// OutgoingMessage represents a message to the client
type OutgoingMessage struct {
	Type    string      `json:"type"` // "connected", "reply", "error"
	Content string      `json:"content,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HandleChat handles WebSocket chat connections
func (h *ChatHandler) HandleChat(c *gin.Context) {
	// Validate JWT from query parameter or header
	token := middleware.TokenFromRequest(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	userID := claims.User()

	// Upgrade to WebSocket
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	h.metrics.ConnectionOpened()
	defer h.metrics.ConnectionClosed()

	log.Printf("WebSocket connected: user=%s conn=%s", userID, connID)
	defer log.Printf("WebSocket disconnected: user=%s conn=%s", userID, connID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s := &session{conn: conn}
	done := make(chan struct{})
	defer close(done)
	go s.keepAlive(done)

	s.send(OutgoingMessage{Type: "connected", Data: gin.H{"connectionId": connID}})

	limiter := middleware.NewWebSocketLimiter(h.messagesPerMinute)

	// Frames are read on their own goroutine so a disconnect cancels ctx
	// even while a reply is being generated.
	incoming := make(chan []byte, 1)
	go func() {
		defer close(incoming)
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("WebSocket error: conn=%s err=%v", connID, err)
				}
				return
			}
			select {
			case incoming <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	for data := range incoming {
		var msg IncomingMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(OutgoingMessage{Type: "error", Content: "Invalid message format"})
			continue
		}

		if !limiter.Allow() {
			s.send(OutgoingMessage{Type: "error", Content: "Rate limit exceeded. Please slow down."})
			continue
		}

		reply, err := h.service.HandleMessage(ctx, chat.Request{
			UserID:  userID,
			Message: msg.Message,
			Profile: msg.Context,
		})
		if err != nil {
			log.Printf("Error processing message: conn=%s err=%v", connID, err)
			s.send(OutgoingMessage{Type: "error", Content: err.Error()})
			continue
		}
		if ctx.Err() != nil {
			return
		}

		if err := s.send(OutgoingMessage{Type: "reply", Data: reply}); err != nil {
			log.Printf("WebSocket write error: conn=%s err=%v", connID, err)
			return
		}
	}
}

// session serializes writes: gorilla connections allow one concurrent writer
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) send(msg OutgoingMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(msg)
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *session) keepAlive(done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
