package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// PromptGenerator produces and refines daily journal questions. The Gemini
// implementation below is the production one; tests substitute a stub.
type PromptGenerator interface {
	// GenerateQuestion returns a fresh reflective question, avoiding the
	// given recent ones.
	GenerateQuestion(ctx context.Context, recent []string) (string, error)

	// RefineQuestion suggests a version of the question that better matches
	// the answer the user actually wrote. Returning the question unchanged
	// means no refinement.
	RefineQuestion(ctx context.Context, question, answer string) (string, error)
}

// RecentQuestionLimit caps how many prior questions are sent as a
// do-not-repeat hint.
const RecentQuestionLimit = 30

type GeminiPromptService struct {
	client *genai.Client
	model  string
}

func NewGeminiPromptService(ctx context.Context, apiKey, model string) (*GeminiPromptService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiPromptService{client: client, model: model}, nil
}

func (s *GeminiPromptService) Close() error {
	return s.client.Close()
}

func (s *GeminiPromptService) GenerateQuestion(ctx context.Context, recent []string) (string, error) {
	var sb strings.Builder
	sb.WriteString("You write one short, gentle journaling question for a mental-health companion app. ")
	sb.WriteString("Return only the question text, no preamble or quotes.\n")
	if len(recent) > RecentQuestionLimit {
		recent = recent[:RecentQuestionLimit]
	}
	if len(recent) > 0 {
		sb.WriteString("Do not repeat any of these recent questions:\n")
		for _, q := range recent {
			sb.WriteString("- ")
			sb.WriteString(q)
			sb.WriteString("\n")
		}
	}
	return s.generate(ctx, sb.String())
}

func (s *GeminiPromptService) RefineQuestion(ctx context.Context, question, answer string) (string, error) {
	prompt := fmt.Sprintf(
		"A journaling app asked: %q\nThe user answered: %q\n"+
			"If a slightly reworded question would fit this answer better, return the reworded question. "+
			"Otherwise return the original question exactly. Return only the question text.",
		question, answer,
	)
	refined, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if refined == "" {
		return question, nil
	}
	return refined, nil
}

func (s *GeminiPromptService) generate(ctx context.Context, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return firstText(resp), nil
}

// firstText pulls the first text part out of a generation response.
func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return strings.TrimSpace(strings.Trim(strings.TrimSpace(string(txt)), `"`))
			}
		}
	}
	return ""
}
