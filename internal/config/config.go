package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	SecureCookie   bool
	LogLevel       string
	// Conversational API. An empty key is a supported state: the chat
	// responder runs in fallback-only mode.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string
	PromptFile    string
	// Chat transport
	ChatTimeout       time.Duration
	ChatRatePerMinute float64
	ChatRateBurst     int
	// Sessions
	SessionTTL    time.Duration
	MaxTranscript int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:              getEnvDefault("PORT", "8080"),
		AllowedOrigins:    getEnvListDefault("ALLOWED_ORIGINS", []string{"*"}),
		SecureCookie:      getEnvBoolDefault("SECURE_COOKIE", false),
		LogLevel:          getEnvDefault("LOG_LEVEL", "info"),
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		Model:             getEnvDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		PromptFile:        getEnvDefault("PROMPT_FILE", "./prompts/assistant.yaml"),
		ChatTimeout:       getEnvDurationDefault("CHAT_TIMEOUT", 20*time.Second),
		ChatRatePerMinute: getEnvFloatDefault("CHAT_RATE_PER_MINUTE", 60),
		ChatRateBurst:     getEnvIntDefault("CHAT_RATE_BURST", 10),
		SessionTTL:        getEnvDurationDefault("SESSION_TTL", 30*time.Minute),
		MaxTranscript:     getEnvIntDefault("MAX_TRANSCRIPT", 200),
	}
	return cfg
}

// ChatOnline reports whether a conversational API credential is configured.
func (c Config) ChatOnline() bool {
	return c.OpenAIAPIKey != ""
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvListDefault(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
		log.Printf("warning: %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getEnvFloatDefault(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
		log.Printf("warning: %s=%q is not a number, using %v", key, v, def)
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
		log.Printf("warning: %s=%q is not a duration, using %s", key, v, def)
	}
	return def
}
