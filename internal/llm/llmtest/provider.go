// Package llmtest provides scripted providers for exercising the debate
// engine without a live model endpoint.
package llmtest

import (
	"context"
	"sync"
	"time"

	"digital.vasic.debate/internal/llm"
	"digital.vasic.debate/internal/models"
)

// Step is one scripted provider outcome: either a content payload or an error.
type Step struct {
	Content string
	Err     error
}

// ScriptedProvider replays a fixed sequence of responses and records every
// request it receives. When the script runs out it repeats the last step,
// or answers with Fallback when set.
type ScriptedProvider struct {
	ProviderName string
	Fallback     string

	mu       sync.Mutex
	script   []Step
	requests []*models.LLMRequest
	calls    int
}

// NewScriptedProvider creates a provider that replays the given steps.
func NewScriptedProvider(steps ...Step) *ScriptedProvider {
	return &ScriptedProvider{ProviderName: "scripted", script: steps}
}

// Responses is shorthand for a script of plain successful contents.
func Responses(contents ...string) *ScriptedProvider {
	steps := make([]Step, len(contents))
	for i, c := range contents {
		steps[i] = Step{Content: c}
	}
	return NewScriptedProvider(steps...)
}

// Append adds steps to the end of the script.
func (p *ScriptedProvider) Append(steps ...Step) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.script = append(p.script, steps...)
}

// Complete replays the next scripted step.
func (p *ScriptedProvider) Complete(_ context.Context, req *models.LLMRequest) (*models.LLMResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)
	idx := p.calls
	p.calls++

	var step Step
	switch {
	case idx < len(p.script):
		step = p.script[idx]
	case p.Fallback != "":
		step = Step{Content: p.Fallback}
	case len(p.script) > 0:
		step = p.script[len(p.script)-1]
	default:
		step = Step{Content: "scripted response"}
	}

	if step.Err != nil {
		return nil, step.Err
	}
	return &models.LLMResponse{
		ID:           "scripted-response",
		RequestID:    req.ID,
		ProviderName: p.Name(),
		Content:      step.Content,
		FinishReason: "stop",
		CreatedAt:    time.Now(),
	}, nil
}

// Name identifies the provider.
func (p *ScriptedProvider) Name() string {
	if p.ProviderName != "" {
		return p.ProviderName
	}
	return "scripted"
}

// HealthCheck always succeeds.
func (p *ScriptedProvider) HealthCheck() error { return nil }

// Calls reports how many requests the provider has served.
func (p *ScriptedProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Requests returns the recorded requests in order.
func (p *ScriptedProvider) Requests() []*models.LLMRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*models.LLMRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

var _ llm.Provider = (*ScriptedProvider)(nil)
