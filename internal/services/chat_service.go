package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// companionSystemPrompt frames every chat completion. Crisis handling never
// reaches the model; the handler short-circuits before calling Reply.
const companionSystemPrompt = "You are WithU, a gentle mental-health companion. " +
	"Listen, validate feelings, and keep replies short and warm. " +
	"You are not a therapist and you never give medical advice."

// ChatClient relays chat messages to an OpenAI-compatible chat-completions
// endpoint. No streaming, no retries; a failure is surfaced to the caller.
type ChatClient struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

func NewChatClient(apiKey, model, baseURL string) *ChatClient {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &ChatClient{
		APIKey:   strings.TrimSpace(apiKey),
		Model:    model,
		Endpoint: base + "/chat/completions",
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Reply sends the user's message and returns the model's reply text.
func (c *ChatClient) Reply(ctx context.Context, userName, message string) (string, error) {
	if c == nil || c.APIKey == "" {
		return "", fmt.Errorf("chat client not configured (missing OPENAI_API_KEY)")
	}

	system := companionSystemPrompt
	if name := strings.TrimSpace(userName); name != "" {
		system += " The user's name is " + name + "."
	}

	reqBody := chatCompletionRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: message},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion http %d", resp.StatusCode)
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
