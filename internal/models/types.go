package models

import "time"

// ResponseMode selects how the provider is asked to shape its output.
type ResponseMode string

const (
	// ResponseModeText requests free-form text.
	ResponseModeText ResponseMode = "text"
	// ResponseModeStructured requests a JSON object payload.
	ResponseModeStructured ResponseMode = "structured"
)

// LLMRequest is a single reasoning call handed to a provider.
type LLMRequest struct {
	ID           string          `json:"id"`
	SystemPrompt string          `json:"system_prompt,omitempty"`
	Messages     []Message       `json:"messages"`
	ModelParams  ModelParameters `json:"model_params"`
	ResponseMode ResponseMode    `json:"response_mode"`
	CreatedAt    time.Time       `json:"created_at"`
}

// LLMResponse is the provider's answer to an LLMRequest.
type LLMResponse struct {
	ID           string    `json:"id"`
	RequestID    string    `json:"request_id"`
	ProviderName string    `json:"provider_name"`
	Content      string    `json:"content"`
	TokensUsed   int       `json:"tokens_used"`
	ResponseTime int64     `json:"response_time"`
	FinishReason string    `json:"finish_reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// Message is one turn of a chat-shaped request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelParameters defines generation parameters for a reasoning call.
type ModelParameters struct {
	Model         string   `json:"model" yaml:"model"`
	Temperature   float64  `json:"temperature" yaml:"temperature"`
	MaxTokens     int      `json:"max_tokens" yaml:"max_tokens"`
	TopP          float64  `json:"top_p" yaml:"top_p"`
	StopSequences []string `json:"stop_sequences,omitempty" yaml:"stop_sequences,omitempty"`
}
