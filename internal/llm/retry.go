package llm

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"digital.vasic.debate/internal/models"
)

// RetryConfig defines retry behavior for reasoning calls.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (0 = no retries).
	MaxRetries int `yaml:"max_retries"`
	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration `yaml:"initial_delay"`
	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration `yaml:"max_delay"`
	// Multiplier is the factor by which the delay grows after each retry.
	Multiplier float64 `yaml:"multiplier"`
	// JitterFactor adds randomness to delays (0.0-1.0).
	JitterFactor float64 `yaml:"jitter_factor"`
}

// DefaultRetryConfig returns the default policy: up to 3 attempts total
// with exponential backoff between them.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   2,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}
}

// RetryResult reports how a retried call went.
type RetryResult struct {
	Attempts   int
	TotalDelay time.Duration
	LastError  error
}

// RetryableFunc is a reasoning call that can be retried.
type RetryableFunc func() (*models.LLMResponse, error)

// ExecuteWithRetry runs fn until it succeeds, fails permanently, or the
// retry budget is exhausted. Only transient call errors are retried.
// An exhausted budget surfaces the last error; the caller treats it as
// unrecoverable.
func ExecuteWithRetry(ctx context.Context, config RetryConfig, fn RetryableFunc) (*models.LLMResponse, *RetryResult, error) {
	var zero *models.LLMResponse
	result := &RetryResult{}
	delay := config.InitialDelay

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result.Attempts = attempt + 1

		select {
		case <-ctx.Done():
			result.LastError = ctx.Err()
			return zero, result, fmt.Errorf("cancelled before attempt %d: %w", attempt+1, ctx.Err())
		default:
		}

		val, err := fn()
		if err == nil {
			return val, result, nil
		}
		result.LastError = err

		if !IsTransient(err) || attempt >= config.MaxRetries {
			return zero, result, err
		}

		jittered := addJitter(delay, config.JitterFactor)
		select {
		case <-ctx.Done():
			result.LastError = ctx.Err()
			return zero, result, fmt.Errorf("cancelled during backoff: %w", ctx.Err())
		case <-time.After(jittered):
			result.TotalDelay += jittered
		}

		delay = time.Duration(float64(delay) * config.Multiplier)
		if delay > config.MaxDelay {
			delay = config.MaxDelay
		}
	}

	return zero, result, fmt.Errorf("max retries exceeded: %w", result.LastError)
}

// addJitter spreads a delay by up to factor in either direction. Jitter does
// not require cryptographic randomness.
func addJitter(d time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return d
	}
	jitterRange := float64(d) * factor
	jitter := (rand.Float64() - 0.5) * 2 * jitterRange // #nosec G404
	result := time.Duration(float64(d) + jitter)
	if result < 0 {
		result = 0
	}
	return result
}
