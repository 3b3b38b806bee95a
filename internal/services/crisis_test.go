package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsCrisisLanguage(t *testing.T) {
	positives := []string{
		"I want to die",
		"i WANT TO DIE",
		"sometimes I think about suicide a lot",
		"I might hurt myself tonight",
		"honestly I'm not worth living",
		"everyone would be better off dead without me",
		"I keep thinking about self harm",
		"I'm going to kill myself",
	}
	for _, msg := range positives {
		assert.True(t, ContainsCrisisLanguage(msg), "message %q", msg)
	}

	negatives := []string{
		"",
		"I had a rough day at work",
		"my plant died last week and I'm sad",
		"this traffic is killing my mood",
		"I feel anxious about tomorrow",
	}
	for _, msg := range negatives {
		assert.False(t, ContainsCrisisLanguage(msg), "message %q", msg)
	}
}
