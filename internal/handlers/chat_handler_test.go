package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

type stubChat struct {
	reply string
	err   error
	calls int
}

func (s *stubChat) Reply(ctx context.Context, userName, message string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func postChat(t *testing.T, h *ChatHandler, userID, message string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(models.ChatRequest{Message: message})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func decodeChatResponse(t *testing.T, rec *httptest.ResponseRecorder) models.ChatResponse {
	t.Helper()
	var resp struct {
		Success bool                `json:"success"`
		Data    models.ChatResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestChatRelaysReply(t *testing.T) {
	stub := &stubChat{reply: "That sounds hard. Want to talk about it?"}
	h := NewChatHandler(stub, services.NewMemoryProfileService(nil))

	rec := postChat(t, h, "u1", "I had a rough day")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeChatResponse(t, rec)
	assert.Equal(t, stub.reply, data.Reply)
	assert.Empty(t, data.Redirect)
	assert.Equal(t, 1, stub.calls)
}

func TestChatCrisisShortCircuit(t *testing.T) {
	stub := &stubChat{reply: "never seen"}
	h := NewChatHandler(stub, services.NewMemoryProfileService(nil))

	rec := postChat(t, h, "u1", "I want to die")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeChatResponse(t, rec)
	assert.Equal(t, services.CrisisSupportMessage, data.Reply)
	assert.Equal(t, "emergency", data.Redirect)
	// The model never sees crisis messages.
	assert.Zero(t, stub.calls)
}

func TestChatRelayFailure(t *testing.T) {
	stub := &stubChat{err: errors.New("upstream down")}
	h := NewChatHandler(stub, services.NewMemoryProfileService(nil))

	rec := postChat(t, h, "u1", "hello")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestChatRequiresAuth(t *testing.T) {
	h := NewChatHandler(&stubChat{}, services.NewMemoryProfileService(nil))
	rec := postChat(t, h, "", "hello")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	h := NewChatHandler(&stubChat{}, services.NewMemoryProfileService(nil))
	rec := postChat(t, h, "u1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
