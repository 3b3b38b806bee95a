package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withu/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{
		Email:    "  Sam@Example.com ",
		Password: "sekret1",
		Name:     " Sam ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "sam@example.com", user.Email)
	assert.Equal(t, "Sam", user.Name)
	assert.NotEqual(t, "sekret1", user.PasswordHash)

	// Email comparison is case-insensitive at login too.
	logged, err := svc.Login(ctx, &models.LoginRequest{Email: "SAM@example.COM", Password: "sekret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "sam@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "sekret1"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{Email: "sam@example.com", Password: "sekret1", Name: "Sam"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.RegisterRequest{Email: "SAM@example.com", Password: "other22", Name: "Other"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetByID(t *testing.T) {
	svc := NewMemoryUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{Email: "sam@example.com", Password: "sekret1", Name: "Sam"})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
