package services

import "errors"

var (
	// Auth.
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidPassword = errors.New("invalid password")

	// Profile store.
	ErrProfileNotFound  = errors.New("profile not found")
	ErrAlreadyOnboarded = errors.New("profile already onboarded")

	// Mood / avatar economy.
	ErrInvalidMood        = errors.New("unknown mood tag")
	ErrUnknownItem        = errors.New("unknown avatar item")
	ErrInsufficientPoints = errors.New("not enough points")
	ErrAlreadyUnlocked    = errors.New("item already unlocked")
	ErrItemLocked         = errors.New("item is not unlocked")

	// Journal.
	ErrNoQuestion        = errors.New("no question generated for today")
	ErrPromptUnavailable = errors.New("prompt generator not configured")

	// Goals.
	ErrGoalNotFound  = errors.New("goal not found")
	ErrGoalCompleted = errors.New("goal already completed")
)
