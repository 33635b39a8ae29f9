package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompt_MissingFileUsesDefault(t *testing.T) {
	p, err := LoadPrompt(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultPrompt(), p)
	assert.Contains(t, p.System, "3-step process")
	assert.Contains(t, p.System, "under 100 words")
	assert.Equal(t, 150, p.Style.MaxTokens)
	assert.InDelta(t, 0.7, p.Style.Temperature, 0.0001)
}

func TestLoadPrompt_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
system: |
  You sell licenses.
model: gpt-4o-mini
style:
  temperature: 0.3
`), 0o600))

	p, err := LoadPrompt(path)

	require.NoError(t, err)
	assert.Equal(t, "You sell licenses.", p.System)
	assert.Equal(t, "gpt-4o-mini", p.Model)
	assert.InDelta(t, 0.3, p.Style.Temperature, 0.0001)
	assert.Equal(t, 150, p.Style.MaxTokens)
}

func TestLoadPrompt_ZeroTemperatureIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
style:
  temperature: 0
  max_tokens: 80
`), 0o600))

	p, err := LoadPrompt(path)

	require.NoError(t, err)
	assert.Zero(t, p.Style.Temperature)
	assert.Equal(t, 80, p.Style.MaxTokens)
	assert.Equal(t, defaultSystemPrompt, p.System)
}

func TestLoadPrompt_NegativeTemperatureUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte("style:\n  temperature: -1\n"), 0o600))

	p, err := LoadPrompt(path)

	require.NoError(t, err)
	assert.InDelta(t, 0.7, p.Style.Temperature, 0.0001)
}

func TestLoadPrompt_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assistant.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: [unclosed"), 0o600))

	_, err := LoadPrompt(path)

	assert.Error(t, err)
}

func TestLoadPrompt_RepoFile(t *testing.T) {
	p, err := LoadPrompt("../../prompts/assistant.yaml")

	require.NoError(t, err)
	assert.Contains(t, p.System, "SoftSell")
	assert.Equal(t, 150, p.Style.MaxTokens)
}
