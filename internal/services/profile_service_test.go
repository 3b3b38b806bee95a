package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withu/backend/internal/models"
)

func moodsFixture(start time.Time, tags ...string) map[string]models.MoodEntry {
	moods := make(map[string]models.MoodEntry, len(tags))
	for i, tag := range tags {
		day := start.AddDate(0, 0, i)
		moods[models.DateKey(day)] = models.MoodEntry{Mood: tag, Timestamp: day}
	}
	return moods
}

func TestComputeMoodTrendWindow(t *testing.T) {
	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	// Ten consecutive days; five of them score negative.
	moods := moodsFixture(start,
		"happy", "calm", "neutral", "sad", "anxious",
		"stressed", "sad", "happy", "calm", "sad",
	)

	trend := ComputeMoodTrend(moods, 7)
	require.Len(t, trend.Points, 7)

	// Last seven days, ascending.
	assert.Equal(t, "2024-03-04", trend.Points[0].Date)
	assert.Equal(t, "2024-03-10", trend.Points[6].Date)
	scores := make([]int, 0, 7)
	for _, p := range trend.Points {
		scores = append(scores, p.Score)
	}
	assert.Equal(t, []int{-1, -2, -2, -1, 2, 1, -1}, scores)

	// Negative count is all-time, not the displayed window.
	assert.Equal(t, 5, trend.NegativeCount)
	assert.True(t, trend.SuggestHelp)
}

func TestComputeMoodTrendBelowThreshold(t *testing.T) {
	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	moods := moodsFixture(start, "sad", "anxious", "happy", "sad", "calm")

	trend := ComputeMoodTrend(moods, 7)
	assert.Len(t, trend.Points, 5)
	assert.Equal(t, 3, trend.NegativeCount)
	assert.False(t, trend.SuggestHelp)
}

func TestComputeMoodTrendEmpty(t *testing.T) {
	trend := ComputeMoodTrend(map[string]models.MoodEntry{}, 7)
	assert.Empty(t, trend.Points)
	assert.Zero(t, trend.NegativeCount)
	assert.False(t, trend.SuggestHelp)
}

func TestComputeMoodTrendSkipsBadKeys(t *testing.T) {
	moods := map[string]models.MoodEntry{
		"2024-03-01": {Mood: "sad"},
		"garbage":    {Mood: "sad"},
	}
	trend := ComputeMoodTrend(moods, 7)
	require.Len(t, trend.Points, 1)
	assert.Equal(t, "2024-03-01", trend.Points[0].Date)
	assert.Equal(t, 1, trend.NegativeCount)
}

func TestComputeMoodTrendUnknownTagScoresZero(t *testing.T) {
	moods := map[string]models.MoodEntry{
		"2024-03-01": {Mood: "melancholy"},
	}
	trend := ComputeMoodTrend(moods, 7)
	require.Len(t, trend.Points, 1)
	assert.Zero(t, trend.Points[0].Score)
	assert.Zero(t, trend.NegativeCount)
}

func TestComputeMoodTrendDefaultWindow(t *testing.T) {
	start := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	moods := moodsFixture(start,
		"happy", "happy", "happy", "happy", "happy",
		"happy", "happy", "happy", "happy",
	)
	trend := ComputeMoodTrend(moods, 0)
	assert.Len(t, trend.Points, 7)
}

func TestRecentQuestions(t *testing.T) {
	wall := map[string]models.JournalEntry{
		"2024-03-01": {Question: "q1"},
		"2024-03-02": {Question: "q2"},
		"2024-03-03": {Question: ""},
		"2024-03-04": {Question: "q4"},
	}

	got := recentQuestions(wall, 30)
	assert.Equal(t, []string{"q4", "q2", "q1"}, got)

	got = recentQuestions(wall, 2)
	assert.Equal(t, []string{"q4", "q2"}, got)

	assert.Empty(t, recentQuestions(map[string]models.JournalEntry{}, 30))
}
