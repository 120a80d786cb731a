package llm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"digital.vasic.debate/internal/models"
)

// GenerateRequest is one gateway invocation: a rendered prompt plus the
// expected response mode.
type GenerateRequest struct {
	Role         models.Role
	SystemPrompt string
	Prompt       string
	Mode         models.ResponseMode
	Params       models.ModelParameters
}

// Gateway wraps a provider with the retry policy. Transient failures are
// contained here; callers only ever see permanent failures.
type Gateway struct {
	provider Provider
	retry    RetryConfig
	logger   *logrus.Logger
	metrics  *Metrics
}

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(config RetryConfig) GatewayOption {
	return func(g *Gateway) { g.retry = config }
}

// WithMetrics attaches call metrics.
func WithMetrics(m *Metrics) GatewayOption {
	return func(g *Gateway) { g.metrics = m }
}

// NewGateway creates a gateway around a provider.
func NewGateway(provider Provider, logger *logrus.Logger, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider: provider,
		retry:    DefaultRetryConfig(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate performs one reasoning call and returns the raw text content.
// Structured-mode requests ask the provider for a JSON object; parsing the
// payload is the caller's responsibility.
func (g *Gateway) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	llmReq := &models.LLMRequest{
		ID:           uuid.New().String(),
		SystemPrompt: req.SystemPrompt,
		Messages:     []models.Message{{Role: "user", Content: req.Prompt}},
		ModelParams:  req.Params,
		ResponseMode: req.Mode,
		CreatedAt:    time.Now(),
	}

	start := time.Now()
	resp, result, err := ExecuteWithRetry(ctx, g.retry, func() (*models.LLMResponse, error) {
		return g.provider.Complete(ctx, llmReq)
	})

	if g.metrics != nil {
		g.metrics.observe(g.provider.Name(), result, err, time.Since(start))
	}

	entry := g.logger.WithFields(logrus.Fields{
		"provider": g.provider.Name(),
		"role":     req.Role,
		"mode":     req.Mode,
		"attempts": result.Attempts,
	})
	if err != nil {
		entry.WithError(err).Warn("reasoning call failed")
		return "", err
	}
	entry.WithFields(logrus.Fields{
		"tokens_used": resp.TokensUsed,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("reasoning call completed")

	return resp.Content, nil
}

// Metrics tracks gateway call outcomes.
type Metrics struct {
	calls    *prometheus.CounterVec
	retries  prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics registers gateway metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "debate_gateway_calls_total",
			Help: "Reasoning calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "debate_gateway_retries_total",
			Help: "Retry attempts beyond the first call.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "debate_gateway_call_duration_seconds",
			Help:    "Reasoning call duration including retries.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
	reg.MustRegister(m.calls, m.retries, m.duration)
	return m
}

func (m *Metrics) observe(provider string, result *RetryResult, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.calls.WithLabelValues(provider, outcome).Inc()
	if result != nil && result.Attempts > 1 {
		m.retries.Add(float64(result.Attempts - 1))
	}
	m.duration.Observe(elapsed.Seconds())
}
