package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

var groundingSteps = []string{
	"5 things you can SEE around you",
	"4 things you can HEAR right now",
	"3 things you can TOUCH or feel",
	"2 things you can SMELL nearby",
	"1 thing you can TASTE",
}

var affirmations = []string{
	"Hey, just take some rest",
	"I am safe right now in this moment",
	"This feeling will pass, just like clouds in the sky",
	"I am stronger than I know",
	"I deserve love, care, and support",
	"One breath at a time, one moment at a time",
	"I have survived difficult moments before",
	"There are people who care about me",
	"It's okay to not be okay sometimes",
}

type EmergencyHandler struct {
	profiles services.ProfileService
	hotline  string
}

func NewEmergencyHandler(profiles services.ProfileService, hotline string) *EmergencyHandler {
	return &EmergencyHandler{profiles: profiles, hotline: hotline}
}

// Resources returns everything the emergency screen needs: the crisis
// hotline, the caller's trusted contact, and the coping exercises.
func (h *EmergencyHandler) Resources(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	resources := models.EmergencyResources{
		Hotline:        h.hotline,
		GroundingSteps: groundingSteps,
		Affirmations:   affirmations,
		Breathing:      models.BreathingPattern{InhaleSeconds: 4, HoldSeconds: 4, ExhaleSeconds: 6, Cycles: 5},
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	// Trusted contact is best-effort; the hotline must render even when the
	// profile read fails.
	prof, err := h.profiles.GetOrCreate(ctx, userID, "", "")
	if err != nil {
		log.Printf("[Emergency] user=%s error=%v", userID, err)
	} else {
		resources.TrustedContact = prof.TrustedContact
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resources))
}
