package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

type JournalHandler struct {
	profiles services.ProfileService
	sessions *services.SessionCache
}

func NewJournalHandler(profiles services.ProfileService, sessions *services.SessionCache) *JournalHandler {
	return &JournalHandler{profiles: profiles, sessions: sessions}
}

// TodaysQuestion returns today's journal question, generating one on first
// call. Idempotent until the day rolls over.
func (h *JournalHandler) TodaysQuestion(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entry, err := h.profiles.GetOrCreateTodaysQuestion(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		case errors.Is(err, services.ErrPromptUnavailable):
			writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Journal prompts are unavailable right now"))
		default:
			// Generation failures included; no fallback question bank.
			log.Printf("[TodaysQuestion] user=%s error=%v", userID, err)
			writeJSON(w, http.StatusBadGateway, models.NewErrorResponse("Failed to generate today's question"))
		}
		return
	}

	h.sessions.Invalidate(r.Context(), userID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(entry))
}

// SaveAnswer stores today's answer, possibly with a refined question when
// the answer is substantial.
func (h *JournalHandler) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.JournalAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entry, err := h.profiles.SaveJournalAnswer(ctx, userID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoQuestion):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("No question generated for today yet"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		default:
			log.Printf("[SaveAnswer] user=%s error=%v", userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save answer"))
		}
		return
	}

	h.sessions.Invalidate(r.Context(), userID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(entry))
}

// ListEntries returns the whole journal wall, keyed by date.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	prof, err := h.profiles.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		log.Printf("[ListEntries] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load journal"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof.JournalWall))
}
