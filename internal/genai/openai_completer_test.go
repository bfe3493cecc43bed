package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	Stream bool `json:"stream"`
}

func completionServer(t *testing.T, status int, body string, captured *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const completionOK = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "llama-3.3-70b-versatile",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "Halo, ada yang bisa dibantu?"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
}`

func TestNewOpenAICompleter_NilWithEmptyKey(t *testing.T) {
	t.Parallel()
	c, err := newOpenAICompleter(Config{Provider: ProviderGroq})
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewOpenAICompleter_Defaults(t *testing.T) {
	t.Parallel()
	c, err := newOpenAICompleter(Config{Provider: ProviderGroq, APIKey: "test-key"})
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "llama-3.3-70b-versatile", c.model)
	assert.Equal(t, ProviderGroq, c.Provider())
}

func TestNewOpenAICompleter_UnsupportedProvider(t *testing.T) {
	t.Parallel()
	_, err := newOpenAICompleter(Config{Provider: ProviderGemini, APIKey: "test-key"})
	assert.Error(t, err)
}

func TestOpenAICompleter_Complete(t *testing.T) {
	t.Parallel()
	var req chatRequest
	srv := completionServer(t, http.StatusOK, completionOK, &req)

	c, err := newOpenAICompleter(Config{Provider: ProviderGroq, APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	got, err := c.Complete(context.Background(), "system prompt", "halo")
	require.NoError(t, err)
	assert.Equal(t, "Halo, ada yang bisa dibantu?", got)

	assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
	assert.False(t, req.Stream)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "system prompt", req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "halo", req.Messages[1].Content)
}

func TestOpenAICompleter_ModelOverride(t *testing.T) {
	t.Parallel()
	var req chatRequest
	srv := completionServer(t, http.StatusOK, completionOK, &req)

	c, err := newOpenAICompleter(Config{Provider: ProviderGroq, APIKey: "test-key", Model: "llama-3.1-8b-instant", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "llama-3.1-8b-instant", req.Model)
}

func TestOpenAICompleter_Unauthorized(t *testing.T) {
	t.Parallel()
	srv := completionServer(t, http.StatusUnauthorized,
		`{"error": {"message": "Invalid API Key", "type": "invalid_request_error", "code": "invalid_api_key"}}`, nil)

	c, err := newOpenAICompleter(Config{Provider: ProviderGroq, APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Equal(t, LabelAuth, Classify(err))
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	t.Parallel()
	srv := completionServer(t, http.StatusOK,
		`{"id": "x", "object": "chat.completion", "created": 0, "model": "m", "choices": []}`, nil)

	c, err := newOpenAICompleter(Config{Provider: ProviderGroq, APIKey: "test-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
