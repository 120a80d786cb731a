package llm

import (
	"context"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.debate/internal/models"
)

type fakeProvider struct {
	steps []func() (*models.LLMResponse, error)
	calls int
	last  *models.LLMRequest
}

func (f *fakeProvider) Complete(_ context.Context, req *models.LLMRequest) (*models.LLMResponse, error) {
	f.last = req
	idx := f.calls
	f.calls++
	if idx >= len(f.steps) {
		idx = len(f.steps) - 1
	}
	return f.steps[idx]()
}

func (f *fakeProvider) Name() string       { return "fake" }
func (f *fakeProvider) HealthCheck() error { return nil }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestGateway_Generate(t *testing.T) {
	provider := &fakeProvider{steps: []func() (*models.LLMResponse, error){
		func() (*models.LLMResponse, error) {
			return &models.LLMResponse{Content: "hello"}, nil
		},
	}}

	gw := NewGateway(provider, quietLogger())

	content, err := gw.Generate(context.Background(), GenerateRequest{
		Role:         models.RoleModerator,
		SystemPrompt: "system",
		Prompt:       "introduce",
		Mode:         models.ResponseModeText,
	})

	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	require.NotNil(t, provider.last)
	assert.Equal(t, "system", provider.last.SystemPrompt)
	assert.Equal(t, models.ResponseModeText, provider.last.ResponseMode)
	require.Len(t, provider.last.Messages, 1)
	assert.Equal(t, "introduce", provider.last.Messages[0].Content)
}

func TestGateway_RetriesTransientThenSucceeds(t *testing.T) {
	provider := &fakeProvider{steps: []func() (*models.LLMResponse, error){
		func() (*models.LLMResponse, error) { return nil, Transient("fake", "timeout", nil) },
		func() (*models.LLMResponse, error) { return nil, Transient("fake", "timeout", nil) },
		func() (*models.LLMResponse, error) { return &models.LLMResponse{Content: "late"}, nil },
	}}

	gw := NewGateway(provider, quietLogger(), WithRetryConfig(fastRetryConfig(3)))

	content, err := gw.Generate(context.Background(), GenerateRequest{Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "late", content)
	assert.Equal(t, 3, provider.calls)
}

func TestGateway_PermanentNotRetried(t *testing.T) {
	provider := &fakeProvider{steps: []func() (*models.LLMResponse, error){
		func() (*models.LLMResponse, error) { return nil, Permanent("fake", "unauthorized", nil) },
	}}

	gw := NewGateway(provider, quietLogger(), WithRetryConfig(fastRetryConfig(3)))

	_, err := gw.Generate(context.Background(), GenerateRequest{Prompt: "p"})

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.Equal(t, 1, provider.calls)
}

func TestGateway_MetricsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	provider := &fakeProvider{steps: []func() (*models.LLMResponse, error){
		func() (*models.LLMResponse, error) { return &models.LLMResponse{Content: "ok"}, nil },
	}}

	gw := NewGateway(provider, quietLogger(), WithMetrics(metrics))
	_, err := gw.Generate(context.Background(), GenerateRequest{Prompt: "p"})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "debate_gateway_calls_total")
	assert.Contains(t, names, "debate_gateway_call_duration_seconds")
}
