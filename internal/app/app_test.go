package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/1234620/Travel-Based-Chatbot/internal/config"
)

func baseConfig() config.Config {
	var cfg config.Config
	cfg.Conversation.Backend = config.BackendMemory
	cfg.Conversation.RedisKey = "travelbot:conversation"
	cfg.Router.DefaultOrigin = "NYC"
	cfg.Router.PriceMin, cfg.Router.PriceMax = 50, 500
	cfg.Router.Currency = "USD"
	cfg.Router.EnrichmentTimeout = time.Second
	return cfg
}

func TestBuildMemoryBackend(t *testing.T) {
	a, err := Build(context.Background(), baseConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	resp := a.Router.ProcessMessage(context.Background(), "hello", "u1")
	assert.Empty(t, resp.Error)
	assert.Equal(t, 2, resp.ConversationID)
}

func TestBuildRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig()
	cfg.Conversation.Backend = config.BackendRedis
	cfg.Redis.Addr = mr.Addr()

	a, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	a.Router.ProcessMessage(context.Background(), "hello", "u1")
	items, err := mr.List("travelbot:conversation")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestBuildRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := baseConfig()
	cfg.Conversation.Backend = config.BackendRedis
	cfg.Redis.Addr = addr

	_, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestBuildDestinationsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "destinations.yaml")
	require.NoError(t, os.WriteFile(path, []byte("destinations:\n  reykjavik: \"-2600000\"\n  paris: \"\"\n"), 0o600))

	cfg := baseConfig()
	cfg.Destinations.File = path
	a, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	id, ok := a.Destinations.Resolve("Reykjavik")
	assert.True(t, ok)
	assert.Equal(t, "-2600000", id)
	_, ok = a.Destinations.Resolve("Paris")
	assert.False(t, ok)
}

func TestBuildMissingDestinationsFile(t *testing.T) {
	cfg := baseConfig()
	cfg.Destinations.File = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
