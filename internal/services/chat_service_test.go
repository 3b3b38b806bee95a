package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClientReply(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  I'm here with you. \n"}},
			},
		})
	}))
	defer srv.Close()

	client := NewChatClient("test-key", "gpt-4o-mini", srv.URL)
	reply, err := client.Reply(context.Background(), "Sam", "rough day")
	require.NoError(t, err)

	assert.Equal(t, "I'm here with you.", reply)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "Sam")
	assert.Equal(t, "rough day", gotReq.Messages[1].Content)
}

func TestChatClientHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewChatClient("test-key", "gpt-4o-mini", srv.URL)
	_, err := client.Reply(context.Background(), "", "hello")
	assert.Error(t, err)
}

func TestChatClientNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewChatClient("test-key", "gpt-4o-mini", srv.URL)
	_, err := client.Reply(context.Background(), "", "hello")
	assert.Error(t, err)
}

func TestChatClientUnconfigured(t *testing.T) {
	client := NewChatClient("", "gpt-4o-mini", "")
	_, err := client.Reply(context.Background(), "", "hello")
	assert.Error(t, err)
}
