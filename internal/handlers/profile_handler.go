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

type ProfileHandler struct {
	profiles services.ProfileService
	users    services.UserService
	sessions *services.SessionCache
}

func NewProfileHandler(profiles services.ProfileService, users services.UserService, sessions *services.SessionCache) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, users: users, sessions: sessions}
}

// GetProfile returns the caller's profile, creating a fresh shell on first
// access. Served from the session cache when a snapshot exists.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	if prof, ok := h.sessions.Get(r.Context(), userID); ok {
		writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	email, name := h.identity(ctx, userID)
	prof, err := h.profiles.GetOrCreate(ctx, userID, email, name)
	if err != nil {
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	prof, err := h.profiles.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
			return
		}
		log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update profile"))
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// CompleteOnboarding finishes the signup wizard: initial avatar, trusted
// contact, onboarded=true. Exactly once per profile.
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.OnboardingRequest
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

	// Make sure the shell exists before flipping the flag.
	email, name := h.identity(ctx, userID)
	if _, err := h.profiles.GetOrCreate(ctx, userID, email, name); err != nil {
		log.Printf("[CompleteOnboarding] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load profile"))
		return
	}

	prof, err := h.profiles.CompleteOnboarding(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyOnboarded) {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Profile already onboarded"))
			return
		}
		log.Printf("[CompleteOnboarding] user=%s error=%v", userID, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to complete onboarding"))
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// identity looks up the auth account's email and name used to seed new
// profile shells. Best-effort; a missing account just seeds blanks.
func (h *ProfileHandler) identity(ctx context.Context, userID string) (email, name string) {
	if h.users == nil {
		return "", ""
	}
	user, err := h.users.GetByID(ctx, userID)
	if err != nil {
		return "", ""
	}
	return user.Email, user.Name
}
