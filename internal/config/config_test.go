package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 10, cfg.Feed.Limit)
	assert.Equal(t, 8, cfg.Feed.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Deck.AutoplayDelay)
	assert.False(t, cfg.Deck.Loop)
	assert.Equal(t, 100, cfg.News.MaxLimit)
}

func TestLoadFileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
feed:
  endpoint: https://api.example.com/news
  limit: 25
  threshold: 4
deck:
  direction: vertical
  autoplay_delay: 250ms
`))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/news", cfg.Feed.Endpoint)
	assert.Equal(t, 25, cfg.Feed.Limit)
	assert.Equal(t, 4, cfg.Feed.Threshold)
	assert.Equal(t, "vertical", cfg.Deck.Direction)
	assert.Equal(t, 250*time.Millisecond, cfg.Deck.AutoplayDelay)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("NEWSDECK_FEED_LIMIT", "30")
	t.Setenv("NEWS_ENDPOINT", "http://news.internal/api/v1/news")

	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Feed.Limit)
	assert.Equal(t, "http://news.internal/api/v1/news", cfg.Feed.Endpoint)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero limit":        "feed:\n  limit: 0\n",
		"zero threshold":    "feed:\n  threshold: 0\n",
		"bad direction":     "deck:\n  direction: diagonal\n",
		"bad driver":        "database:\n  driver: mysql\n",
		"max below default": "news:\n  default_limit: 50\n  max_limit: 20\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "./x.db", DatabaseConfig{Driver: "sqlite", Path: "./x.db"}.DSN())
	assert.Equal(t, "postgres://u@h/db", DatabaseConfig{Driver: "postgres", URL: "postgres://u@h/db"}.DSN())
}
