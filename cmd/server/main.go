package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/themobileprof/mindguard-be/internal/api"
	"github.com/themobileprof/mindguard-be/internal/chat"
	"github.com/themobileprof/mindguard-be/internal/circuitbreaker"
	"github.com/themobileprof/mindguard-be/internal/config"
	"github.com/themobileprof/mindguard-be/internal/db"
	"github.com/themobileprof/mindguard-be/internal/history"
	"github.com/themobileprof/mindguard-be/internal/metrics"
	"github.com/themobileprof/mindguard-be/internal/remote"
	"github.com/themobileprof/mindguard-be/internal/risk"
	"github.com/themobileprof/mindguard-be/internal/router"
	"github.com/themobileprof/mindguard-be/internal/ws"
	"github.com/themobileprof/mindguard-be/pkg/gemini"
	"github.com/themobileprof/mindguard-be/pkg/groq"
	"github.com/themobileprof/mindguard-be/pkg/llm"
)

const (
	historyTTL          = 7 * 24 * time.Hour
	wsMessagesPerMinute = 30
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	collector := metrics.NewCollector()
	checks := map[string]api.HealthCheck{}

	// Persistence is optional; replies never wait on it
	var (
		database      *db.DB
		chatStore     chat.DBInterface
		conversations api.ConversationStore
		moods         api.MoodStore
	)
	if cfg.DatabaseURL != "" {
		database, err = db.New(db.Config{
			URL:             cfg.DatabaseURL,
			MaxConnections:  25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = database.Migrate(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		chatStore = database
		conversations = database
		moods = database
		checks["database"] = database.PingContext
		log.Println("✅ Database connected")
	} else {
		log.Println("⚠️  DATABASE_URL not set, conversation logging disabled")
	}

	// History cache: Redis when configured, else in-process
	var hist history.Store
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := history.DialRedis(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()

		hist = history.NewRedisStore(client, cfg.HistoryLimit, historyTTL)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Println("✅ Redis history cache connected")
	} else {
		hist = history.NewMemoryStore(cfg.HistoryLimit)
		log.Println("✅ In-memory history cache initialized")
	}

	opts := []router.Option{router.WithMetrics(collector)}
	if provider, model := newProvider(cfg); provider != nil {
		breaker := circuitbreaker.NewCircuitBreaker(
			cfg.BreakerMaxFailures,
			cfg.BreakerReset,
			circuitbreaker.WithStateChange(func(from, to circuitbreaker.State) {
				log.Printf("Circuit breaker: %s -> %s", from, to)
				collector.SetBreakerState(int(to))
			}),
		)
		generator := remote.NewClient(provider, breaker, collector, remote.Config{
			Model:   model,
			Timeout: cfg.AITimeout,
			Window:  cfg.HistoryWindow,
		})
		opts = append(opts, router.WithGenerator(generator))
		log.Printf("✅ Remote replies enabled: provider=%s model=%s", cfg.LLMProvider, model)
	} else {
		log.Println("✅ Local pattern replies only (no LLM provider configured)")
	}

	responder := router.New(opts...)
	chatService := chat.NewService(responder, chatStore, hist, collector)
	chatHandler := ws.NewChatHandler(chatService, cfg.JWTSecret, wsMessagesPerMinute, collector).
		AllowOrigins(cfg.CORSAllowedOrigins)

	engine := api.NewRouter(api.Deps{
		JWTSecret:          cfg.JWTSecret,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		Chat:               chatService,
		Classifier:         risk.NewClassifier(),
		Conversations:      conversations,
		Moods:              moods,
		Metrics:            collector,
		Checks:             checks,
		WebSocket:          chatHandler.HandleChat,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
		log.Printf("📝 API endpoints:")
		log.Printf("   POST   /api/chat")
		log.Printf("   DELETE /api/chat/history")
		log.Printf("   POST   /api/sentiment")
		log.Printf("   POST   /api/risk")
		log.Printf("   GET    /api/conversations")
		log.Printf("   GET    /api/conversations/:id")
		log.Printf("   GET    /api/crisis/alerts")
		log.Printf("   POST   /api/crisis/alerts")
		log.Printf("   POST   /api/mood")
		log.Printf("   GET    /api/mood/history")
		log.Printf("   POST   /api/emotions")
		log.Printf("   GET    /api/emotions/history")
		log.Printf("   GET    /health")
		log.Printf("   GET    /metrics")
		log.Printf("   WS     /ws/chat")
		log.Printf("")
		log.Printf("Press Ctrl+C to stop")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newProvider returns the configured LLM client and its model name, or nil
// when remote replies are disabled.
func newProvider(cfg *config.Config) (llm.Client, string) {
	switch cfg.LLMProvider {
	case config.ProviderGroq:
		c := groq.NewHTTPClient(groq.Config{
			APIKey:  cfg.GroqAPIKey,
			BaseURL: cfg.GroqBaseURL,
			Model:   cfg.GroqModel,
			Timeout: cfg.AITimeout,
		})
		return c, c.Model()
	case config.ProviderGemini:
		c := gemini.NewHTTPClient(gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.AITimeout,
		})
		return c, c.Model()
	default:
		return nil, ""
	}
}
