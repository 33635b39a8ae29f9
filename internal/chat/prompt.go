package chat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 150
)

const defaultSystemPrompt = "You are a helpful customer service agent for SoftSell, a software license resale platform. " +
	"Keep responses brief (under 100 words) and focused on helping customers sell their software licenses. " +
	"SoftSell helps businesses recoup value from unused software licenses through a 3-step process: " +
	"Upload License, Get Valuation, Get Paid. " +
	"We purchase Microsoft, Adobe, Autodesk, Oracle, and many other software licenses."

// Prompt is the system instruction and sampling settings for the
// conversational API.
type Prompt struct {
	System string `yaml:"system"`
	Model  string `yaml:"model"`
	Style  struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// DefaultPrompt returns the built-in prompt used when no prompt file exists.
func DefaultPrompt() Prompt {
	p := promptWithDefaults()
	p.System = defaultSystemPrompt
	return p
}

func promptWithDefaults() Prompt {
	var p Prompt
	p.Style.Temperature = defaultTemperature
	p.Style.MaxTokens = defaultMaxTokens
	return p
}

// LoadPrompt reads a YAML prompt file. A missing file yields DefaultPrompt;
// a file that exists but does not parse is an error. Keys the file leaves out
// keep their defaults, so an explicit `temperature: 0` is honored.
func LoadPrompt(path string) (Prompt, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultPrompt(), nil
		}
		return Prompt{}, fmt.Errorf("read prompt %s: %w", path, err)
	}
	p := promptWithDefaults()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Prompt{}, fmt.Errorf("parse prompt %s: %w", path, err)
	}
	p.applyDefaults()
	return p, nil
}

func (p *Prompt) applyDefaults() {
	p.System = strings.TrimSpace(p.System)
	if p.System == "" {
		p.System = defaultSystemPrompt
	}
	if p.Style.Temperature < 0 {
		p.Style.Temperature = defaultTemperature
	}
	if p.Style.MaxTokens <= 0 {
		p.Style.MaxTokens = defaultMaxTokens
	}
}
