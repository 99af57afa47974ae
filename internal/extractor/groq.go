package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"event-inbox/internal/email"
)

// LLMClient extracts event candidates from one normalized email.
type LLMClient interface {
	ExtractEvents(ctx context.Context, msg email.NormalizedEmail) ([]EventCandidate, error)
}

// Config holds the text-generation API settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
	RetryCount  int
}

// SetDefaults fills unset fields with production defaults. The default
// endpoint is Groq's OpenAI-compatible API.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.Model == "" {
		c.Model = "llama-3.1-8b-instant"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 2000
	}
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.RetryCount == 0 {
		c.RetryCount = 2
	}
}

// GroqClient talks to an OpenAI-compatible chat completion endpoint.
type GroqClient struct {
	client *openai.Client
	config Config
	logger *slog.Logger
}

// NewGroqClient builds a client for the configured endpoint. The API key is
// required; everything else falls back to defaults.
func NewGroqClient(config Config, logger *slog.Logger) (*GroqClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("LLM API key is required")
	}
	config.SetDefaults()

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = config.BaseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
		logger: logger,
	}, nil
}

// ExtractEvents sends one email to the model and parses the response into
// event candidates. An empty slice with a nil error means the model found no
// events, which is the common case for most mail.
func (c *GroqClient) ExtractEvents(ctx context.Context, msg email.NormalizedEmail) ([]EventCandidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	prompt := BuildPrompt(msg)

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying event extraction",
				"message_id", msg.MessageID,
				"attempt", attempt,
				"error", lastErr)
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		candidates, err := c.extractOnce(ctx, prompt)
		if err == nil {
			c.logger.Debug("event extraction completed",
				"message_id", msg.MessageID,
				"candidates", len(candidates))
			return candidates, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("event extraction failed after %d attempts: %w", c.config.RetryCount+1, lastErr)
}

func (c *GroqClient) extractOnce(ctx context.Context, prompt string) ([]EventCandidate, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return ParseCandidates(resp.Choices[0].Message.Content)
}
