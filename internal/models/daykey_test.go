package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2024, time.March, 7, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-03-07", DateKey(ts))

	// Two instants on the same calendar day share a key.
	assert.Equal(t, DateKey(ts), DateKey(ts.Add(-5*time.Hour)))

	// Crossing midnight changes the key.
	assert.Equal(t, "2024-03-08", DateKey(ts.Add(time.Minute)))
}

func TestDateKeyZeroPadded(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", DateKey(ts))
}

func TestParseDateKey(t *testing.T) {
	parsed, err := ParseDateKey("2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 7, parsed.Day())

	_, err = ParseDateKey("03/07/2024")
	assert.Error(t, err)

	_, err = ParseDateKey("not-a-date")
	assert.Error(t, err)
}
