package services

import "strings"

// crisisPhrases is the fixed self-harm phrase list scanned on every chat
// message. Matching is substring-based so surrounding words don't hide a
// phrase.
var crisisPhrases = []string{
	"want to die",
	"kill myself",
	"self harm",
	"suicide",
	"hurt myself",
	"not worth living",
	"better off dead",
}

// CrisisSupportMessage is returned in place of a generated reply when crisis
// language is detected; the client is simultaneously told to switch to the
// emergency view.
const CrisisSupportMessage = "I'm really concerned about you right now. 💙 " +
	"Your life has value and you matter. Please reach out for immediate support."

// ContainsCrisisLanguage reports whether text contains any crisis phrase,
// case-insensitively. Pure and synchronous; no external call.
func ContainsCrisisLanguage(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
