package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

const defaultTrendWindow = 7

type MoodHandler struct {
	profiles services.ProfileService
	sessions *services.SessionCache
}

func NewMoodHandler(profiles services.ProfileService, sessions *services.SessionCache) *MoodHandler {
	return &MoodHandler{profiles: profiles, sessions: sessions}
}

// LogMood records today's mood, overwriting any earlier log for the day.
// The first log of a day awards points and advances the streak.
func (h *MoodHandler) LogMood(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.LogMoodRequest
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

	prof, err := h.profiles.LogMood(ctx, userID, req.Mood, req.Note)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[LogMood] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to log mood"))
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// ListMoods returns the full date-keyed mood map.
func (h *MoodHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	prof, err := h.profiles.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		log.Printf("[ListMoods] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load moods"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof.Moods))
}

// Trend returns the windowed chart slice plus the all-time negative count
// driving the help suggestion.
func (h *MoodHandler) Trend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	window := defaultTrendWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid window"))
			return
		}
		window = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	trend, err := h.profiles.MoodTrend(ctx, userID, window)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[Trend] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to compute trend"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(trend))
}

// Catalog returns the canonical mood scale for clients to render.
func (h *MoodHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.MoodCatalog))
}
