package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/withu/backend/internal/middleware"
	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

type AuthHandler struct {
	userService   services.UserService
	sessions      *services.SessionCache
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthHandler(userService services.UserService, sessions *services.SessionCache, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
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

	user, err := h.userService.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		log.Printf("[Register] email=%s error=%v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
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

	user, err := h.userService.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidPassword) {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid email or password"))
			return
		}
		log.Printf("[Login] email=%s error=%v", req.Email, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Login failed"))
		return
	}

	token, err := h.generateToken(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AuthResponse{
		Token: token,
		User:  *user,
	}))
}

// Logout clears the cached profile snapshot. Tokens are stateless; the
// client is expected to discard its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	h.sessions.Invalidate(r.Context(), userID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *AuthHandler) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(h.jwtExpiration).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
