package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, v := range []View{Onboarding, Home, Mood, Chat, Goals, Journal, Profile, Avatar, Emergency} {
		assert.True(t, Valid(v), "view %q", v)
	}
	assert.False(t, Valid(View("settings")))
	assert.False(t, Valid(View("")))
}

func TestCanTransitionNavBar(t *testing.T) {
	// All navigation-bar pages are freely interchangeable.
	nav := []View{Home, Mood, Chat, Goals, Journal, Profile}
	for _, from := range nav {
		for _, to := range nav {
			assert.True(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionEmergency(t *testing.T) {
	// A crisis can surface on any screen except onboarding.
	for _, from := range []View{Home, Mood, Chat, Goals, Journal, Profile, Avatar} {
		assert.True(t, CanTransition(from, Emergency), "%s -> emergency", from)
	}
	assert.False(t, CanTransition(Onboarding, Emergency))

	// Emergency returns only to home.
	assert.True(t, CanTransition(Emergency, Home))
	assert.False(t, CanTransition(Emergency, Chat))
}

func TestCanTransitionOnboarding(t *testing.T) {
	assert.True(t, CanTransition(Onboarding, Home))
	assert.False(t, CanTransition(Onboarding, Mood))
	// Onboarding is never re-entered.
	assert.False(t, CanTransition(Home, Onboarding))
}

func TestCanTransitionAvatarModal(t *testing.T) {
	assert.True(t, CanTransition(Home, Avatar))
	assert.True(t, CanTransition(Profile, Avatar))
	assert.False(t, CanTransition(Chat, Avatar))

	assert.True(t, CanTransition(Avatar, Home))
	assert.False(t, CanTransition(Avatar, Profile))
}

func TestCanTransitionSelf(t *testing.T) {
	assert.True(t, CanTransition(Home, Home))
	assert.True(t, CanTransition(Emergency, Emergency))
}

func TestCanTransitionUnknownView(t *testing.T) {
	assert.False(t, CanTransition(View("settings"), Home))
	assert.False(t, CanTransition(Home, View("settings")))
}
