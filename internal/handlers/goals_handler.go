package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

type GoalsHandler struct {
	profiles services.ProfileService
	sessions *services.SessionCache
}

func NewGoalsHandler(profiles services.ProfileService, sessions *services.SessionCache) *GoalsHandler {
	return &GoalsHandler{profiles: profiles, sessions: sessions}
}

func (h *GoalsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	prof, err := h.profiles.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		log.Printf("[ListGoals] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load goals"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof.Goals))
}

func (h *GoalsHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.AddGoalRequest
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

	prof, err := h.profiles.AddGoal(ctx, userID, req.Title)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[AddGoal] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add goal"))
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(prof.Goals))
}

// Complete marks a goal done and awards its points. The award fires at most
// once per goal.
func (h *GoalsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	goalID := chi.URLParam(r, "goalId")
	if goalID == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing goalId"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	prof, err := h.profiles.CompleteGoal(ctx, userID, goalID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGoalNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Goal not found"))
		case errors.Is(err, services.ErrGoalCompleted):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Goal already completed"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		default:
			log.Printf("[CompleteGoal] user=%s goal=%s error=%v", userID, goalID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to complete goal"))
		}
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}
