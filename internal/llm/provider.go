// Package llm implements the reasoning call gateway: a provider-agnostic
// interface for invoking a language model, an OpenAI-compatible HTTP
// provider, and the retry policy that keeps transient faults invisible
// to callers.
package llm

import (
	"context"

	"digital.vasic.debate/internal/models"
)

// Provider is the call contract every LLM backend satisfies.
type Provider interface {
	// Complete performs one reasoning call. Implementations return a
	// *CallError classified as transient or permanent.
	Complete(ctx context.Context, req *models.LLMRequest) (*models.LLMResponse, error)
	// Name identifies the provider in logs and errors.
	Name() string
	// HealthCheck verifies the provider is reachable and configured.
	HealthCheck() error
}
