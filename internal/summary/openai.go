package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const defaultModel = openai.GPT3Dot5Turbo

// OpenAISummarizer shortens a news story for the channel post. Without an
// API key it is disabled and every summary is empty.
type OpenAISummarizer struct {
	client  *openai.Client
	prompt  string
	enabled bool
	mu      sync.Mutex
}

type Options struct {
	APIKey string
	Prompt string
	// BaseURL overrides the OpenAI endpoint. Empty means the public API.
	BaseURL string
	Logger  *zap.Logger
}

func NewOpenAISummarizer(opts Options) *OpenAISummarizer {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	s := &OpenAISummarizer{
		client:  openai.NewClientWithConfig(cfg),
		prompt:  opts.Prompt,
		enabled: opts.APIKey != "",
	}

	if opts.Logger != nil {
		opts.Logger.Info("openai summarizer", zap.Bool("enabled", s.enabled))
	}

	return s
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.enabled {
		return "", nil
	}

	request := openai.ChatCompletionRequest{
		Model: defaultModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: strings.TrimSpace(s.prompt),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   256,
		Temperature: 0.7,
		TopP:        1,
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	return trimToSentence(resp.Choices[0].Message.Content), nil
}

// trimToSentence drops a trailing unfinished sentence cut off by MaxTokens.
func trimToSentence(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasSuffix(raw, ".") {
		return raw
	}

	i := strings.LastIndex(raw, ".")
	if i < 0 {
		return raw
	}
	return raw[:i+1]
}
