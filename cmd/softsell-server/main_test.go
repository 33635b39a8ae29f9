package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softsell-backend/internal/config"
	"softsell-backend/pkg/logging"
)

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Port:           "0",
		AllowedOrigins: []string{"*"},
		PromptFile:     filepath.Join(t.TempDir(), "missing.yaml"),
		ChatTimeout:    time.Second,
		SessionTTL:     time.Minute,
	}
}

func TestRun_BadPromptFileIsReturned(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.PromptFile, []byte("system: [unclosed"), 0o600))

	err := run(context.Background(), cfg, logging.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build chat responder")
}

func TestRun_StopsWhenContextIsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(t), logging.Nop()) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
