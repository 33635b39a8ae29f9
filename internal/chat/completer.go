package chat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

var (
	ErrEmptyCompletion = errors.New("conversational api returned no reply")
	ErrRateLimited     = errors.New("conversational api budget exhausted")
)

// Completer is the conversational API boundary: one system instruction and
// one user message in, one reply out. Implementations hold no conversation
// state between calls.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAICompleter calls the chat completions endpoint.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

type OpenAIOptions struct {
	APIKey string
	// BaseURL overrides the API root, e.g. a proxy or a test server.
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

func NewOpenAICompleter(opts OpenAIOptions) *OpenAICompleter {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAICompleter{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	temperature := c.temperature
	if temperature == 0 {
		// A zero temperature is dropped by omitempty and the API applies its
		// own default.
		temperature = math.SmallestNonzeroFloat32
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	reply := resp.Choices[0].Message.Content
	if strings.TrimSpace(reply) == "" {
		return "", ErrEmptyCompletion
	}
	return reply, nil
}

// RateLimitedCompleter caps how often the wrapped Completer is called across
// all visitors. Over budget it fails fast with ErrRateLimited.
type RateLimitedCompleter struct {
	next    Completer
	limiter *rate.Limiter
}

func NewRateLimitedCompleter(next Completer, perMinute float64, burst int) *RateLimitedCompleter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedCompleter{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perMinute/60.0), burst),
	}
}

func (c *RateLimitedCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.limiter.Allow() {
		return "", ErrRateLimited
	}
	return c.next.Complete(ctx, system, user)
}
