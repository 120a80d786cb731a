package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.debate/internal/models"
)

func chatCompletionBody(content string) map[string]any {
	return map[string]any{
		"id":    "chatcmpl-test",
		"model": "test-model",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 8,
			"total_tokens":      20,
		},
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(chatCompletionBody("The motion stands."))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("deepseek", "test-key", server.URL, "deepseek-chat")

	resp, err := provider.Complete(context.Background(), &models.LLMRequest{
		ID:           "req-1",
		SystemPrompt: "You are a debater.",
		Messages:     []models.Message{{Role: "user", Content: "Open the debate."}},
		ModelParams:  models.ModelParameters{Temperature: 0.7, MaxTokens: 400},
		ResponseMode: models.ResponseModeText,
	})

	require.NoError(t, err)
	assert.Equal(t, "The motion stands.", resp.Content)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "deepseek", resp.ProviderName)
	assert.Equal(t, 20, resp.TokensUsed)

	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "You are a debater.", gotBody.Messages[0].Content)
	assert.Nil(t, gotBody.ResponseFormat)
}

func TestOpenAIProvider_StructuredMode(t *testing.T) {
	var gotBody chatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(chatCompletionBody(`{"logic": 80}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("deepseek", "test-key", server.URL, "deepseek-chat")

	_, err := provider.Complete(context.Background(), &models.LLMRequest{
		ID:           "req-2",
		Messages:     []models.Message{{Role: "user", Content: "Score this."}},
		ResponseMode: models.ResponseModeStructured,
	})

	require.NoError(t, err)
	require.NotNil(t, gotBody.ResponseFormat)
	assert.Equal(t, "json_object", gotBody.ResponseFormat.Type)
}

func TestOpenAIProvider_TransientStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	provider := NewOpenAIProvider("deepseek", "test-key", server.URL, "deepseek-chat")

	_, err := provider.Complete(context.Background(), &models.LLMRequest{ID: "req-3"})

	require.Error(t, err)
	assert.True(t, IsTransient(err))

	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusServiceUnavailable, ce.StatusCode)
}

func TestOpenAIProvider_PermanentStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	provider := NewOpenAIProvider("deepseek", "bad-key", server.URL, "deepseek-chat")

	_, err := provider.Complete(context.Background(), &models.LLMRequest{ID: "req-4"})

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.False(t, IsTransient(err))
}

func TestOpenAIProvider_HealthCheck(t *testing.T) {
	assert.Error(t, NewOpenAIProvider("p", "", "http://example.test", "m").HealthCheck())
	assert.Error(t, NewOpenAIProvider("p", "key", "", "m").HealthCheck())
	assert.NoError(t, NewOpenAIProvider("p", "key", "http://example.test", "m").HealthCheck())
}
