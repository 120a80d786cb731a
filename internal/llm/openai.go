package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"digital.vasic.debate/internal/models"
)

const defaultRequestTimeout = 120 * time.Second

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint
// (DeepSeek, DashScope, OpenRouter, vLLM, ...). Structured responses use the
// json_object response format.
type OpenAIProvider struct {
	name       string
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	Stop           []string        `json:"stop,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewOpenAIProvider creates a provider for an OpenAI-compatible endpoint.
// baseURL is the full chat completions URL.
func NewOpenAIProvider(name, apiKey, baseURL, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:    name,
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: defaultRequestTimeout,
		},
	}
}

// Name identifies the provider in logs and errors.
func (p *OpenAIProvider) Name() string { return p.name }

// HealthCheck verifies required configuration is present.
func (p *OpenAIProvider) HealthCheck() error {
	if p.apiKey == "" {
		return Permanent(p.name, "missing API key", nil)
	}
	if p.baseURL == "" {
		return Permanent(p.name, "missing base URL", nil)
	}
	return nil
}

// Complete performs one chat completion call. Failures are classified into
// transient and permanent call errors by status code.
func (p *OpenAIProvider) Complete(ctx context.Context, req *models.LLMRequest) (*models.LLMResponse, error) {
	startTime := time.Now()

	payload, err := json.Marshal(p.convertRequest(req))
	if err != nil {
		return nil, Permanent(p.name, "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, Permanent(p.name, "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Transient(p.name, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &CallError{
			Kind:       KindForStatusCode(resp.StatusCode),
			Provider:   p.name,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 512),
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, Permanent(p.name, "failed to parse response", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, Permanent(p.name, "response contained no choices", nil)
	}

	return &models.LLMResponse{
		ID:           chatResp.ID,
		RequestID:    req.ID,
		ProviderName: p.name,
		Content:      chatResp.Choices[0].Message.Content,
		TokensUsed:   chatResp.Usage.TotalTokens,
		ResponseTime: time.Since(startTime).Milliseconds(),
		FinishReason: chatResp.Choices[0].FinishReason,
		CreatedAt:    time.Now(),
	}, nil
}

func (p *OpenAIProvider) convertRequest(req *models.LLMRequest) chatRequest {
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	for _, msg := range req.Messages {
		messages = append(messages, chatMessage{Role: msg.Role, Content: msg.Content})
	}

	out := chatRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: req.ModelParams.Temperature,
		MaxTokens:   req.ModelParams.MaxTokens,
		TopP:        req.ModelParams.TopP,
		Stop:        req.ModelParams.StopSequences,
	}
	if req.ModelParams.Model != "" {
		out.Model = req.ModelParams.Model
	}
	if req.ResponseMode == models.ResponseModeStructured {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
