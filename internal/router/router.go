// Package router turns one user message into a reply: it classifies risk,
// then asks the remote provider or the local pattern library.
package router

import (
	"context"
	"log"
	"time"

	"github.com/themobileprof/mindguard-be/internal/companion"
	"github.com/themobileprof/mindguard-be/internal/fallback"
	"github.com/themobileprof/mindguard-be/internal/guidance"
	"github.com/themobileprof/mindguard-be/internal/metrics"
	"github.com/themobileprof/mindguard-be/internal/patterns"
	"github.com/themobileprof/mindguard-be/internal/privacy"
	"github.com/themobileprof/mindguard-be/internal/remote"
	"github.com/themobileprof/mindguard-be/internal/risk"
)

// Generator produces a reply remotely. remote.Client implements it.
type Generator interface {
	Generate(ctx context.Context, message string, uc *companion.UserContext, tier risk.Tier) (companion.Result, error)
}

// Request is one message to answer
type Request struct {
	Message   string
	UserID    string
	Context   *companion.UserContext
	Sentiment *float64
}

// Router answers messages. Respond never fails.
type Router struct {
	classifier *risk.Classifier
	library    *patterns.Library
	generator  Generator
	rnd        patterns.Rand
	metrics    *metrics.Collector
	now        func() time.Time
}

// Option configures a Router
type Option func(*Router)

// WithGenerator enables the remote path
func WithGenerator(g Generator) Option {
	return func(r *Router) { r.generator = g }
}

// WithRand overrides the randomness source used for local replies
func WithRand(rnd patterns.Rand) Option {
	return func(r *Router) { r.rnd = rnd }
}

// WithMetrics records classifications and reply sources
func WithMetrics(m *metrics.Collector) Option {
	return func(r *Router) { r.metrics = m }
}

// New creates a router with the built-in classifier and pattern library
func New(opts ...Option) *Router {
	r := &Router{
		classifier: risk.NewClassifier(),
		library:    patterns.NewLibrary(),
		rnd:        patterns.DefaultRand,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Classify exposes the risk classifier
func (r *Router) Classify(message string, sentiment *float64) risk.Tier {
	return r.classifier.Classify(message, sentiment)
}

// Respond classifies the message and produces a reply. The reply's risk
// level is always the locally classified tier.
func (r *Router) Respond(ctx context.Context, req Request) (result companion.Result) {
	tier := r.classifier.Classify(req.Message, req.Sentiment)
	r.metrics.RecordRisk(tier.String())

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Router panic recovered: user=%s err=%v", req.UserID, rec)
			result = fallback.ForTier(tier)
		}
		result.Metadata.RiskLevel = tier
		r.metrics.RecordResponse(string(result.Metadata.Source), string(result.Metadata.Intervention))
	}()

	if r.generator != nil {
		return r.respondRemote(ctx, req, tier)
	}
	return r.respondLocal(req, tier)
}

func (r *Router) respondRemote(ctx context.Context, req Request, tier risk.Tier) companion.Result {
	result, err := r.generator.Generate(ctx, req.Message, req.Context, tier)
	if err != nil {
		reason := remote.FailureReason(err)
		r.metrics.RecordFallback(reason)
		log.Printf("Remote generation failed, using fallback: user=%s tier=%s reason=%s err=%s",
			req.UserID, tier, reason, privacy.SanitizeForLogging(err.Error()))
		return fallback.ForTier(tier)
	}
	return result
}

func (r *Router) respondLocal(req Request, tier risk.Tier) companion.Result {
	start := r.now()
	uc := req.Context

	var (
		text         string
		intervention companion.Intervention
		personality  companion.Personality
		source       companion.Source
		technique    string
		followUps    []string
		actions      []string
	)

	if rule, ok := r.library.Select(req.Message); ok {
		text = rule.Pick(tier, r.rnd)
		text = patterns.Personalize(text, uc, r.rnd)
		text = rule.AppendTip(text, r.rnd)
		intervention = rule.Intervention
		personality = rule.PersonalityFor(uc)
		technique = rule.Technique
		source = companion.SourcePattern
		followUps = rule.FollowUpQuestions()
		actions = rule.SuggestedActions(tier)
	} else {
		reply, found := patterns.Reply{}, false
		if req.Sentiment != nil {
			reply, found = patterns.SentimentReply(*req.Sentiment, uc, r.rnd)
		}
		if !found {
			reply, found = patterns.HistoryCheckIn(uc, r.rnd)
		}
		if !found {
			reply = patterns.AdaptiveDefault(uc, r.rnd)
		}
		text = reply.Text
		intervention = reply.Intervention
		personality = reply.Personality
		source = reply.Source
		followUps = guidance.FollowUpQuestions(intervention)
		actions = guidance.SuggestedActions(tier, intervention)
	}

	return companion.Result{
		Response: text,
		Metadata: companion.Metadata{
			Personality:       personality,
			Intervention:      intervention,
			RiskLevel:         tier,
			FollowUpQuestions: followUps,
			SuggestedActions:  actions,
			ProcessingTime:    elapsedMillis(r.now().Sub(start)),
			Source:            source,
			Technique:         technique,
		},
	}
}

// elapsedMillis keeps local replies distinguishable from the fallback,
// which always reports zero.
func elapsedMillis(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	if ms <= 0 {
		return 0.001
	}
	return ms
}
