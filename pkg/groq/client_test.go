package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "INTERVIEW"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.BaseURL = server.URL

	reply, err := client.ChatCompletion(context.Background(), "classify this", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "INTERVIEW", reply)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 10, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "classify this", gotReq.Messages[0].Content)
}

func TestChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "")
	client.BaseURL = server.URL

	_, err := client.ChatCompletion(context.Background(), "prompt", 0, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "")
	client.BaseURL = server.URL

	_, err := client.ChatCompletion(context.Background(), "prompt", 0, 10)
	assert.Error(t, err)
}

func TestChatCompletionWithoutKey(t *testing.T) {
	client := NewClient("", "")
	assert.False(t, client.Configured())

	_, err := client.ChatCompletion(context.Background(), "prompt", 0, 10)
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
