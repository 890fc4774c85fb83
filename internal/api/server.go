package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/mindguard-be/internal/api/middleware"
	"github.com/themobileprof/mindguard-be/internal/metrics"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Deps are the pieces NewRouter wires together. Metrics, Conversations,
// Moods, Checks and WebSocket are optional.
type Deps struct {
	JWTSecret          string
	RateLimitPerMinute int
	AllowedOrigins     []string
	Chat               ChatService
	Classifier         RiskClassifier
	Conversations      ConversationStore
	Moods              MoodStore
	Metrics            *metrics.Collector
	Checks             map[string]HealthCheck
	WebSocket          gin.HandlerFunc
}

// NewRouter builds the HTTP routes
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(d.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())
	if d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
	}

	perMinute := d.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 100
	}
	router.Use(middleware.PerIP(middleware.PerMinute(perMinute), perMinute))

	router.GET("/health", healthHandler(d.Checks))
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	protected := router.Group("/api")
	protected.Use(middleware.JWTAuth(d.JWTSecret))
	protected.Use(middleware.PerUser(middleware.PerMinute(perMinute), perMinute))
	NewChatHandler(d.Chat, d.Classifier).RegisterRoutes(protected)
	NewConversationHandler(d.Conversations).RegisterRoutes(protected)
	NewMoodHandler(d.Moods).RegisterRoutes(protected)

	if d.WebSocket != nil {
		router.GET("/ws/chat", d.WebSocket)
	}

	return router
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := "healthy"
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = "unavailable"
				status = "degraded"
				continue
			}
			results[name] = "ok"
		}

		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"time":   time.Now().Unix(),
			"checks": results,
		})
	}
}
