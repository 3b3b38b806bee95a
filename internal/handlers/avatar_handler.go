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

type AvatarHandler struct {
	profiles services.ProfileService
	sessions *services.SessionCache
}

func NewAvatarHandler(profiles services.ProfileService, sessions *services.SessionCache) *AvatarHandler {
	return &AvatarHandler{profiles: profiles, sessions: sessions}
}

// Catalog returns the purchasable outfits and accessories with their costs.
func (h *AvatarHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string][]models.AvatarItem{
		"outfits":     models.OutfitCatalog,
		"accessories": models.AccessoryCatalog,
	}))
}

// Save equips an outfit and accessory set. Every equipped tag must already
// be in the caller's unlocked sets.
func (h *AvatarHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.SaveAvatarRequest
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

	prof, err := h.profiles.SaveAvatar(ctx, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemLocked):
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("Item is not unlocked yet"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		default:
			log.Printf("[SaveAvatar] user=%s error=%v", userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to save avatar"))
		}
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}

// Unlock spends points to own an item. Cost comes from the server catalog.
func (h *AvatarHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.UnlockItemRequest
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

	prof, err := h.profiles.UnlockItem(ctx, userID, req.Kind, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInsufficientPoints):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Not enough points"))
		case errors.Is(err, services.ErrAlreadyUnlocked):
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Item already unlocked"))
		case errors.Is(err, services.ErrUnknownItem):
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Unknown item"))
		case errors.Is(err, services.ErrProfileNotFound):
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Profile not found"))
		default:
			log.Printf("[Unlock] user=%s error=%v", userID, err)
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to unlock item"))
		}
		return
	}

	h.sessions.Set(r.Context(), userID, prof)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(prof))
}
