package services

import (
	"context"
	"sort"

	"github.com/withu/backend/internal/models"
)

// ProfileService is the single authoritative interface for all reads and
// writes of a user's profile document. Every view-facing handler goes
// through it; nothing else touches the store. Points awards and unlock
// spends are single conditional updates so concurrent sessions cannot
// double-award or lose an award.
type ProfileService interface {
	// GetOrCreate returns the profile, creating a not-yet-onboarded shell
	// (with default unlocks and seeded daily goals) if none exists.
	GetOrCreate(ctx context.Context, userID, email, name string) (*models.Profile, error)

	// UpdateProfile applies a partial update of name/email/trusted contact.
	UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error)

	// CompleteOnboarding sets the initial avatar and trusted contact and
	// flips onboarded to true. It fails with ErrAlreadyOnboarded on a
	// second call; the flag is set exactly once.
	CompleteOnboarding(ctx context.Context, userID string, req *models.OnboardingRequest) (*models.Profile, error)

	// LogMood upserts today's mood entry, overwriting any earlier log for
	// the day. The first log of a day awards MoodLogPoints and advances the
	// streak (continuing if yesterday has an entry, restarting otherwise).
	LogMood(ctx context.Context, userID, moodTag, note string) (*models.Profile, error)

	// MoodTrend returns the last `window` days of scored entries in
	// ascending date order, plus the all-time negative count.
	MoodTrend(ctx context.Context, userID string, window int) (*models.MoodTrend, error)

	// GetOrCreateTodaysQuestion returns today's journal question, asking
	// the prompt generator for a fresh one only if none exists yet.
	GetOrCreateTodaysQuestion(ctx context.Context, userID string) (*models.JournalEntry, error)

	// SaveJournalAnswer stores the answer for today's question, optionally
	// refining the question first when the answer is substantial.
	SaveJournalAnswer(ctx context.Context, userID, answer string) (*models.JournalEntry, error)

	// SaveAvatar equips an outfit and accessory set. Every equipped tag
	// must already be unlocked.
	SaveAvatar(ctx context.Context, userID string, req *models.SaveAvatarRequest) (*models.Profile, error)

	// UnlockItem spends points to move an item into the owned set. The
	// spend and the grant happen in one conditional update.
	UnlockItem(ctx context.Context, userID string, kind models.ItemKind, itemID string) (*models.Profile, error)

	AddGoal(ctx context.Context, userID, title string) (*models.Profile, error)
	CompleteGoal(ctx context.Context, userID, goalID string) (*models.Profile, error)
}

// helpSuggestionThreshold is the all-time negative-entry count at which the
// trend response starts suggesting professional help. It intentionally
// counts the whole history, not the displayed window.
const helpSuggestionThreshold = 5

// ComputeMoodTrend derives chart data from a profile's mood map: entries
// scored through the catalog, sorted ascending by calendar date, the last
// `window` returned. Unknown tags (from older scales) score zero.
func ComputeMoodTrend(moods map[string]models.MoodEntry, window int) *models.MoodTrend {
	if window <= 0 {
		window = 7
	}

	keys := make([]string, 0, len(moods))
	for k := range moods {
		if _, err := models.ParseDateKey(k); err != nil {
			continue
		}
		keys = append(keys, k)
	}
	// Date keys are zero-padded, so lexicographic order is calendar order.
	sort.Strings(keys)

	trend := &models.MoodTrend{Points: make([]models.TrendPoint, 0, len(keys))}
	for _, k := range keys {
		score, _ := models.MoodScore(moods[k].Mood)
		if score < 0 {
			trend.NegativeCount++
		}
		trend.Points = append(trend.Points, models.TrendPoint{Date: k, Score: score})
	}

	if len(trend.Points) > window {
		trend.Points = trend.Points[len(trend.Points)-window:]
	}
	trend.SuggestHelp = trend.NegativeCount >= helpSuggestionThreshold
	return trend
}

// defaultUnlockedOutfits is every new profile's starting wardrobe.
func defaultUnlockedOutfits() []string {
	return []string{"default", "formal"}
}

// recentQuestions returns up to max question texts from the journal wall,
// most recent first, used as a do-not-repeat hint for the generator.
func recentQuestions(wall map[string]models.JournalEntry, max int) []string {
	keys := make([]string, 0, len(wall))
	for k := range wall {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	out := make([]string, 0, max)
	for _, k := range keys {
		if q := wall[k].Question; q != "" {
			out = append(out, q)
		}
		if len(out) == max {
			break
		}
	}
	return out
}
