package models

import "time"

// DateKeyLayout is the map key format for all daily records (moods, journal).
const DateKeyLayout = "2006-01-02"

// DateKey returns the YYYY-MM-DD key for t's calendar day, in t's location.
// Every reader and writer of a daily record must key through this function;
// a writer and reader disagreeing on the key would silently fork the day.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back into a time (UTC midnight),
// used only for sorting and display.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}
