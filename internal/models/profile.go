package models

import (
	"strings"
	"time"
)

// Avatar is the user's companion character configuration. Equipped tags are
// only valid while also present in the profile's unlocked sets.
type Avatar struct {
	Mood        string   `json:"mood" bson:"mood"`
	Outfit      string   `json:"outfit" bson:"outfit"`
	Accessories []string `json:"accessories" bson:"accessories"`
}

// MoodEntry is the single mood record for one calendar day. A later log on
// the same day overwrites it; no per-day history is kept.
type MoodEntry struct {
	Mood      string    `json:"mood" bson:"mood"`
	Note      string    `json:"note" bson:"note"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// JournalEntry is the single journal record for one calendar day. If the
// question was refined after a long answer, the original is preserved.
type JournalEntry struct {
	Question       string    `json:"question" bson:"question"`
	Answer         string    `json:"answer" bson:"answer"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	OriginalPrompt string    `json:"original_prompt,omitempty" bson:"original_prompt,omitempty"`
}

type GoalType string

const (
	GoalDaily  GoalType = "daily"
	GoalCustom GoalType = "custom"
)

// Goal is one checkable item on the goals page. Completing it awards Points
// exactly once.
type Goal struct {
	ID        string    `json:"id" bson:"id"`
	Title     string    `json:"title" bson:"title"`
	Points    int       `json:"points" bson:"points"`
	Completed bool      `json:"completed" bson:"completed"`
	Type      GoalType  `json:"type" bson:"type"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Profile is the one persisted document holding all durable state for a
// user, keyed by the auth user's ID.
type Profile struct {
	UserID              string                  `json:"user_id" bson:"user_id"`
	DisplayName         string                  `json:"display_name" bson:"display_name,omitempty"`
	Email               string                  `json:"email" bson:"email,omitempty"`
	Avatar              Avatar                  `json:"avatar" bson:"avatar"`
	TrustedContact      string                  `json:"trusted_contact,omitempty" bson:"trusted_contact,omitempty"`
	Points              int                     `json:"points" bson:"points"`
	Streak              int                     `json:"streak" bson:"streak"`
	UnlockedOutfits     []string                `json:"unlocked_outfits" bson:"unlocked_outfits"`
	UnlockedAccessories []string                `json:"unlocked_accessories" bson:"unlocked_accessories"`
	Onboarded           bool                    `json:"onboarded" bson:"onboarded"`
	Moods               map[string]MoodEntry    `json:"moods" bson:"moods"`
	JournalWall         map[string]JournalEntry `json:"journal_wall" bson:"journal_wall"`
	Goals               map[string]Goal         `json:"goals" bson:"goals"`
	CreatedAt           time.Time               `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at" bson:"updated_at"`
}

// HasUnlocked reports whether the item is in the profile's owned set.
func (p *Profile) HasUnlocked(kind ItemKind, itemID string) bool {
	set := p.UnlockedOutfits
	if kind == ItemAccessory {
		set = p.UnlockedAccessories
	}
	for _, id := range set {
		if id == itemID {
			return true
		}
	}
	return false
}

// TrendPoint is one charted day: the date key plus the derived score.
type TrendPoint struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// MoodTrend is the windowed chart data plus the all-time low-mood counter.
// NegativeCount deliberately spans the entire history, not the window.
type MoodTrend struct {
	Points        []TrendPoint `json:"points"`
	NegativeCount int          `json:"negative_count"`
	SuggestHelp   bool         `json:"suggest_help"`
}

type UpdateProfileRequest struct {
	DisplayName    *string `json:"display_name"`
	Email          *string `json:"email"`
	TrustedContact *string `json:"trusted_contact"`
}

type OnboardingRequest struct {
	AvatarMood     string   `json:"avatar_mood"`
	Accessories    []string `json:"accessories"`
	TrustedContact string   `json:"trusted_contact"`
}

func (r *OnboardingRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.AvatarMood == "" {
		r.AvatarMood = "happy"
	} else if !IsValidMood(r.AvatarMood) {
		errors["avatar_mood"] = "Unknown mood"
	}
	return errors
}

type LogMoodRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

func (r *LogMoodRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Mood == "" {
		errors["mood"] = "Mood is required"
	} else if !IsValidMood(r.Mood) {
		errors["mood"] = "Unknown mood"
	}
	return errors
}

type JournalAnswerRequest struct {
	Answer string `json:"answer"`
}

func (r *JournalAnswerRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(r.Answer) == "" {
		errors["answer"] = "Answer is required"
	}
	return errors
}

type SaveAvatarRequest struct {
	Outfit      string   `json:"outfit"`
	Accessories []string `json:"accessories"`
}

func (r *SaveAvatarRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Outfit == "" {
		errors["outfit"] = "Outfit is required"
	} else if _, ok := LookupItem(ItemOutfit, r.Outfit); !ok {
		errors["outfit"] = "Unknown outfit"
	}
	for _, a := range r.Accessories {
		if _, ok := LookupItem(ItemAccessory, a); !ok {
			errors["accessories"] = "Unknown accessory: " + a
			break
		}
	}
	return errors
}

type UnlockItemRequest struct {
	Kind   ItemKind `json:"kind"`
	ItemID string   `json:"item_id"`
}

func (r *UnlockItemRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Kind != ItemOutfit && r.Kind != ItemAccessory {
		errors["kind"] = "Kind must be outfit or accessory"
	}
	if r.ItemID == "" {
		errors["item_id"] = "Item is required"
	} else if len(errors) == 0 {
		if _, ok := LookupItem(r.Kind, r.ItemID); !ok {
			errors["item_id"] = "Unknown item"
		}
	}
	return errors
}

type AddGoalRequest struct {
	Title string `json:"title"`
}

func (r *AddGoalRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(r.Title) == "" {
		errors["title"] = "Title is required"
	}
	return errors
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (r *ChatRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(r.Message) == "" {
		errors["message"] = "Message is required"
	}
	return errors
}

// ChatResponse mirrors the original relay contract: a reply plus an optional
// view hint the client should transition to (set on crisis detection).
type ChatResponse struct {
	Reply    string `json:"reply"`
	Redirect string `json:"redirect,omitempty"`
}

// BreathingPattern is the guided 4-4-6 exercise shown in emergency mode.
type BreathingPattern struct {
	InhaleSeconds int `json:"inhale_seconds"`
	HoldSeconds   int `json:"hold_seconds"`
	ExhaleSeconds int `json:"exhale_seconds"`
	Cycles        int `json:"cycles"`
}

// EmergencyResources is the payload backing the emergency-support screen.
type EmergencyResources struct {
	Hotline        string           `json:"hotline"`
	TrustedContact string           `json:"trusted_contact,omitempty"`
	GroundingSteps []string         `json:"grounding_steps"`
	Affirmations   []string         `json:"affirmations"`
	Breathing      BreathingPattern `json:"breathing"`
}
