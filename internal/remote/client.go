// Package remote generates replies through an LLM provider.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	"github.com/themobileprof/mindguard-be/internal/circuitbreaker"
	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/guidance"
	"github.com/themobileprof/mindguard-be/internal/metrics"
	"github.com/themobileprof/mindguard-be/internal/prompt"
	"github.com/themobileprof/mindguard-be/internal/risk"
	"github.com/themobileprof/mindguard-be/pkg/llm"
)

// Sampling parameters sent with every request
const (
	Temperature = 0.7
	MaxTokens   = 1000
	TopP        = 0.9
)

const emptyReplyText = "I'm here to support you. Could you tell me more about what's on your mind?"

// ErrEmptyReply is returned when the provider answers without any choices
var ErrEmptyReply = errors.New("provider returned no choices")

// Config holds remote client settings
type Config struct {
	Model   string
	Timeout time.Duration // Default: 15s
	Window  int           // Default: prompt.MaxHistoryWindow
}

// Client produces replies from an llm.Client behind a circuit breaker
type Client struct {
	llm     llm.Client
	builder *prompt.Builder
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Collector
	model   string
	timeout time.Duration
	now     func() time.Time
}

// NewClient creates a remote client. breaker and m may be nil.
func NewClient(provider llm.Client, breaker *circuitbreaker.CircuitBreaker, m *metrics.Collector, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		llm:     provider,
		builder: prompt.NewBuilder(cfg.Window),
		breaker: breaker,
		metrics: m,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		now:     time.Now,
	}
}

// Generate asks the provider for a reply. Errors are returned unchanged in
// kind so the caller can fall back; the returned Result is only valid when
// err is nil.
func (c *Client) Generate(ctx context.Context, message string, uc *companion.UserContext, tier risk.Tier) (companion.Result, error) {
	start := c.now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := llm.ChatRequest{
		Model:       c.model,
		Messages:    c.builder.BuildMessages(message, uc, tier),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		TopP:        TopP,
	}

	var resp *llm.ChatResponse
	call := func() error {
		var err error
		resp, err = c.llm.ChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if _, ok := resp.Content(); !ok {
			return ErrEmptyReply
		}
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Call(call)
	} else {
		err = call()
	}

	elapsed := c.now().Sub(start)
	c.metrics.ObserveRemote(elapsed)

	if err != nil {
		return companion.Result{}, fmt.Errorf("failed to generate remote reply: %w", err)
	}

	content, _ := resp.Content()
	text := strings.TrimSpace(content)
	if text == "" {
		text = emptyReplyText
	}

	intervention, personality := AnalyzeReply(text)

	log.Printf("Remote reply: tier=%s intervention=%s personality=%s elapsed=%s tokens=%d",
		tier, intervention, personality, elapsed, resp.Usage.TotalTokens)

	return companion.Result{
		Response: text,
		Metadata: companion.Metadata{
			Personality:       personality,
			Intervention:      intervention,
			RiskLevel:         tier,
			FollowUpQuestions: guidance.FollowUpQuestions(intervention),
			SuggestedActions:  guidance.SuggestedActions(tier, intervention),
			ProcessingTime:    durationMillis(elapsed),
			Source:            companion.SourceRemote,
		},
	}, nil
}

// FailureReason buckets a Generate error for logs and metrics
func FailureReason(err error) string {
	var statusErr *llm.StatusError
	var netErr net.Error

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, ErrEmptyReply):
		return "empty"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case strings.Contains(err.Error(), "failed to decode"):
		return "decode"
	default:
		return "error"
	}
}

// durationMillis reports d in milliseconds, never exactly zero so a remote
// reply can always be told apart from the fallback.
func durationMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if ms <= 0 {
		return 0.001
	}
	return ms
}
