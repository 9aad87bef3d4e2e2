package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/domain"
)

func testClient(url string) Client {
	return NewClient(&config.Config{
		ChatAPIURL:      url,
		ChatAPIKey:      "test-key",
		ChatModel:       "deepseek-chat",
		ChatMaxTokens:   1000,
		ChatTemperature: 0.7,
	})
}

func TestComplete_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.False(t, req.Stream)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "hi!"}},
			},
		})
	}))
	defer srv.Close()

	reply, err := testClient(srv.URL).Complete(context.Background(), []domain.ChatMessage{
		{Role: "user", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi!", reply)
}

func TestComplete_UpstreamAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUpstreamAuth)
}

func TestComplete_UpstreamRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUpstreamRateLimited)
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Complete(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
