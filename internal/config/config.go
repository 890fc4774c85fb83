// Package config reads service settings from the environment, loading a
// .env file first when one exists.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider names
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
	ProviderNone   = "none"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Config holds every setting the server needs
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	LLMProvider  string
	GroqAPIKey   string
	GroqBaseURL  string
	GroqModel    string
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	RedisURL      string
	HistoryLimit  int
	HistoryWindow int

	BreakerMaxFailures int
	BreakerReset       time.Duration

	RateLimitPerMinute int

	// CORSAllowedOrigins are the browser origins allowed to call the API
	CORSAllowedOrigins []string
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:         env("PORT", "8080"),
		DatabaseURL:  env("DATABASE_URL", ""),
		JWTSecret:    env("JWT_SECRET", ""),
		GroqAPIKey:   env("GROQ_API_KEY", ""),
		GroqBaseURL:  env("GROQ_BASE_URL", ""),
		GroqModel:    env("GROQ_MODEL", ""),
		GeminiAPIKey: env("GEMINI_API_KEY", ""),
		GeminiModel:  env("GEMINI_MODEL", ""),
		RedisURL:     env("REDIS_URL", ""),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	var err error
	if cfg.AITimeout, err = parseDuration(env("AI_TIMEOUT", "15s"), "AI_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.BreakerReset, err = parseDuration(env("BREAKER_RESET", "1m"), "BREAKER_RESET"); err != nil {
		return nil, err
	}
	if cfg.HistoryLimit, err = parsePositive(env("HISTORY_LIMIT", "20"), "HISTORY_LIMIT"); err != nil {
		return nil, err
	}
	if cfg.HistoryWindow, err = parsePositive(env("HISTORY_WINDOW", "6"), "HISTORY_WINDOW"); err != nil {
		return nil, err
	}
	if cfg.BreakerMaxFailures, err = parsePositive(env("BREAKER_MAX_FAILURES", "5"), "BREAKER_MAX_FAILURES"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = parsePositive(env("RATE_LIMIT_PER_MINUTE", "100"), "RATE_LIMIT_PER_MINUTE"); err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = splitList(env("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))

	provider := strings.ToLower(env("LLM_PROVIDER", ""))
	switch provider {
	case "":
		provider = defaultProvider(cfg)
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, errors.New("GROQ_API_KEY is required when LLM_PROVIDER=groq")
		}
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderNone:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
	}
	cfg.LLMProvider = provider

	return cfg, nil
}

// RemoteEnabled reports whether replies may come from an LLM provider
func (c *Config) RemoteEnabled() bool {
	return c.LLMProvider != ProviderNone
}

func defaultProvider(cfg *Config) string {
	switch {
	case cfg.GroqAPIKey != "":
		return ProviderGroq
	case cfg.GeminiAPIKey != "":
		return ProviderGemini
	default:
		return ProviderNone
	}
}

func parseDuration(v, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, v)
	}
	return d, nil
}

func parsePositive(v, key string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, v)
	}
	return n, nil
}

// splitList parses a comma-separated setting, dropping blanks
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
