package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withu/backend/internal/models"
	"github.com/withu/backend/internal/services"
)

const testJWTSecret = "unit-test-secret"

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(services.NewMemoryUserService(), nil, testJWTSecret, time.Hour)
}

func doJSON(t *testing.T, handler http.HandlerFunc, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterIssuesToken(t *testing.T) {
	h := newAuthHandler()

	rec := doJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Email:    "sam@example.com",
		Password: "sekret1",
		Name:     "Sam",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    models.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.Equal(t, "sam@example.com", resp.Data.User.Email)
	assert.Empty(t, resp.Data.User.PasswordHash)

	// The token must carry the user ID and verify against the secret.
	token, err := jwt.Parse(resp.Data.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.Data.User.ID, claims["user_id"])
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	h := newAuthHandler()

	req := models.RegisterRequest{Email: "sam@example.com", Password: "sekret1", Name: "Sam"}
	rec := doJSON(t, h.Register, "/api/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h.Register, "/api/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newAuthHandler()

	rec := doJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Errors)
}

func TestLogin(t *testing.T) {
	h := newAuthHandler()

	rec := doJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Email:    "sam@example.com",
		Password: "sekret1",
		Name:     "Sam",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email:    "sam@example.com",
		Password: "sekret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password and unknown user are indistinguishable to the caller.
	rec = doJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "sekret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
