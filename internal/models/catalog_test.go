package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodScore(t *testing.T) {
	cases := []struct {
		tag   string
		score int
	}{
		{"happy", 2},
		{"calm", 1},
		{"neutral", 0},
		{"sad", -1},
		{"anxious", -2},
		{"stressed", -2},
	}
	for _, tc := range cases {
		score, ok := MoodScore(tc.tag)
		assert.True(t, ok, "tag %q should be in the catalog", tc.tag)
		assert.Equal(t, tc.score, score, "tag %q", tc.tag)
	}

	_, ok := MoodScore("ecstatic")
	assert.False(t, ok)
}

func TestIsValidMood(t *testing.T) {
	assert.True(t, IsValidMood("happy"))
	assert.False(t, IsValidMood(""))
	assert.False(t, IsValidMood("Happy")) // tags are lowercase
}

func TestLookupItem(t *testing.T) {
	item, ok := LookupItem(ItemOutfit, "sporty")
	assert.True(t, ok)
	assert.Equal(t, 75, item.Cost)
	assert.Equal(t, ItemOutfit, item.Kind)

	item, ok = LookupItem(ItemAccessory, "hat")
	assert.True(t, ok)
	assert.Equal(t, 30, item.Cost)

	// An outfit ID is not an accessory ID.
	_, ok = LookupItem(ItemAccessory, "sporty")
	assert.False(t, ok)

	_, ok = LookupItem(ItemKind("pet"), "hat")
	assert.False(t, ok)
}

func TestHasUnlocked(t *testing.T) {
	p := &Profile{
		UnlockedOutfits:     []string{"default", "formal"},
		UnlockedAccessories: []string{"hat"},
	}
	assert.True(t, p.HasUnlocked(ItemOutfit, "formal"))
	assert.False(t, p.HasUnlocked(ItemOutfit, "sporty"))
	assert.True(t, p.HasUnlocked(ItemAccessory, "hat"))
	assert.False(t, p.HasUnlocked(ItemAccessory, "formal"))
}
