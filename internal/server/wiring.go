package server

import (
	"fmt"

	"softsell-backend/internal/chat"
	"softsell-backend/internal/config"
	"softsell-backend/internal/metrics"
	"softsell-backend/pkg/logging"
)

// NewResponder builds the chat responder from config. Without an API key
// the responder runs in fallback-only mode.
func NewResponder(cfg config.Config, logger *logging.Logger, m *metrics.Metrics) (*chat.Responder, error) {
	prompt, err := chat.LoadPrompt(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat prompt: %w", err)
	}

	if !cfg.ChatOnline() {
		logger.Info("OPENAI_API_KEY not set; chat uses fallback responses")
		return chat.NewResponder(nil, prompt, logger, m), nil
	}

	model := prompt.Model
	if model == "" {
		model = cfg.Model
	}
	var completer chat.Completer = chat.NewOpenAICompleter(chat.OpenAIOptions{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       model,
		Temperature: prompt.Style.Temperature,
		MaxTokens:   prompt.Style.MaxTokens,
	})
	if cfg.ChatRatePerMinute > 0 {
		completer = chat.NewRateLimitedCompleter(completer, cfg.ChatRatePerMinute, cfg.ChatRateBurst)
	}
	logger.Info("conversational api configured", "model", model)
	return chat.NewResponder(completer, prompt, logger, m), nil
}
