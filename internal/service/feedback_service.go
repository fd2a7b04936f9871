package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"readnest/internal/validation"
)

// AnalyzeInput is a homework submission handed to the AI for feedback
type AnalyzeInput struct {
	Notes     string `json:"notes"`
	PhotoKey  string `json:"photo_key"`
	ChildName string `json:"child_name"`
}

// chatMessage is one turn of an OpenAI-style chat completion
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the completion request body
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse is the subset of the completion response we read
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// FeedbackService asks a chat-completions API for a short encouragement
// message about a homework submission
type FeedbackService struct {
	client *resty.Client
	model  string
}

// NewFeedbackService creates a feedback service. An empty baseURL leaves
// the service unconfigured; Analyze then fails with ErrNotConfigured.
func NewFeedbackService(baseURL, apiKey, model string) *FeedbackService {
	if baseURL == "" {
		return &FeedbackService{}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &FeedbackService{client: client, model: model}
}

// Analyze returns a warm teacher-style message for a submission
func (s *FeedbackService) Analyze(ctx context.Context, input AnalyzeInput) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("%w: AI endpoint", ErrNotConfigured)
	}
	if input.PhotoKey == "" {
		return "", validationErr(validation.ValidationError{
			Field: "photo_key", Message: "photo_key is required"})
	}

	name := input.ChildName
	if name == "" {
		name = "the student"
	}
	prompt := fmt.Sprintf(`You are a kind teacher. A child named %s just submitted homework.
The child wrote: %q. Write a short, warm, positive message praising their effort and suggesting one improvement.`,
		name, input.Notes)

	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    s.model,
			Messages: []chatMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to reach AI endpoint: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("AI endpoint returned %s", resp.Status())
	}

	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "Great job!", nil
	}
	return out.Choices[0].Message.Content, nil
}
