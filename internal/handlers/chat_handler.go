package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
	"github.com/withu/backend/internal/view"
)

// ChatResponder produces a companion reply for a user message. Satisfied by
// *services.ChatClient; tests substitute a stub.
type ChatResponder interface {
	Reply(ctx context.Context, userName, message string) (string, error)
}

type ChatHandler struct {
	chat     ChatResponder
	profiles services.ProfileService
}

func NewChatHandler(chat ChatResponder, profiles services.ProfileService) *ChatHandler {
	return &ChatHandler{chat: chat, profiles: profiles}
}

// Chat relays a message to the companion model. Crisis language never
// reaches the model: the handler answers with the support message and tells
// the client to switch to the emergency view.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	if services.ContainsCrisisLanguage(req.Message) {
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.ChatResponse{
			Reply:    services.CrisisSupportMessage,
			Redirect: string(view.Emergency),
		}))
		return
	}

	name := h.displayName(r.Context(), userID)

	reply, err := h.chat.Reply(r.Context(), name, req.Message)
	if err != nil {
		log.Printf("[Chat] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Something went wrong."))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.ChatResponse{Reply: reply}))
}

func (h *ChatHandler) displayName(ctx context.Context, userID string) string {
	if h.profiles == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	prof, err := h.profiles.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		return ""
	}
	return prof.DisplayName
}
