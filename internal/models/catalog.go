package models

// Mood is one entry of the fixed six-value mood scale. The tag is what gets
// persisted; Score is derived at read time for charting and thresholds.
type Mood struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
	Score int    `json:"score"`
}

// MoodCatalog is the single canonical mood scale. Negative scores feed the
// all-time help-suggestion counter in the trend endpoint.
var MoodCatalog = []Mood{
	{Tag: "happy", Label: "Happy", Emoji: "😊", Score: 2},
	{Tag: "calm", Label: "Calm", Emoji: "😌", Score: 1},
	{Tag: "neutral", Label: "Neutral", Emoji: "😐", Score: 0},
	{Tag: "sad", Label: "Sad", Emoji: "😢", Score: -1},
	{Tag: "anxious", Label: "Anxious", Emoji: "😰", Score: -2},
	{Tag: "stressed", Label: "Stressed", Emoji: "😤", Score: -2},
}

// MoodScore returns the intensity score for a mood tag.
func MoodScore(tag string) (int, bool) {
	for _, m := range MoodCatalog {
		if m.Tag == tag {
			return m.Score, true
		}
	}
	return 0, false
}

// IsValidMood reports whether tag is one of the six catalog tags.
func IsValidMood(tag string) bool {
	_, ok := MoodScore(tag)
	return ok
}

// ItemKind distinguishes the two unlockable avatar item sets.
type ItemKind string

const (
	ItemOutfit    ItemKind = "outfit"
	ItemAccessory ItemKind = "accessory"
)

// AvatarItem is one purchasable outfit or accessory.
type AvatarItem struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Kind    ItemKind `json:"kind"`
	Cost    int      `json:"cost"`
	Preview string   `json:"preview"`
}

// OutfitCatalog and AccessoryCatalog are the server-side source of truth for
// unlock costs. Clients never supply a cost.
var OutfitCatalog = []AvatarItem{
	{ID: "default", Name: "Default", Kind: ItemOutfit, Cost: 0, Preview: "👕"},
	{ID: "casual", Name: "Casual Wear", Kind: ItemOutfit, Cost: 50, Preview: "👔"},
	{ID: "sporty", Name: "Sports Outfit", Kind: ItemOutfit, Cost: 75, Preview: "🏃"},
	{ID: "formal", Name: "Formal Suit", Kind: ItemOutfit, Cost: 100, Preview: "🤵"},
	{ID: "elegant", Name: "Elegant Style", Kind: ItemOutfit, Cost: 120, Preview: "💃"},
}

var AccessoryCatalog = []AvatarItem{
	{ID: "hat", Name: "Cool Hat", Kind: ItemAccessory, Cost: 30, Preview: "🎩"},
	{ID: "glasses", Name: "Smart Glasses", Kind: ItemAccessory, Cost: 40, Preview: "👓"},
	{ID: "watch", Name: "Digital Watch", Kind: ItemAccessory, Cost: 60, Preview: "⌚"},
	{ID: "necklace", Name: "Sparkle Necklace", Kind: ItemAccessory, Cost: 80, Preview: "📿"},
}

// LookupItem finds an item in the catalog for the given kind.
func LookupItem(kind ItemKind, itemID string) (AvatarItem, bool) {
	var catalog []AvatarItem
	switch kind {
	case ItemOutfit:
		catalog = OutfitCatalog
	case ItemAccessory:
		catalog = AccessoryCatalog
	default:
		return AvatarItem{}, false
	}
	for _, it := range catalog {
		if it.ID == itemID {
			return it, true
		}
	}
	return AvatarItem{}, false
}

// Points awarded for the first mood log of a calendar day.
const MoodLogPoints = 5

// Default points for a user-created goal.
const CustomGoalPoints = 5

// DefaultGoals seeds every new profile with the standard daily goals.
func DefaultGoals() []Goal {
	return []Goal{
		{Title: "Drink 8 glasses of water", Points: 10, Type: GoalDaily},
		{Title: "Take 10 deep breaths", Points: 5, Type: GoalDaily},
		{Title: "Get 7+ hours sleep", Points: 15, Type: GoalDaily},
		{Title: "Write in journal", Points: 10, Type: GoalDaily},
	}
}
